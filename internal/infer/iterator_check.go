package infer

import (
	"github.com/sigil-lang/ori/internal/diagnostic"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/registry"
	"github.com/sigil-lang/ori/internal/types"
)

// checkDoubleEndedOnly rejects a double-ended-only method (rev,
// rposition) called on a plain Iterator receiver (§4.6); a
// DoubleEndedIterator receiver is unaffected.
func (e *Engine) checkDoubleEndedOnly(receiverTy types.Idx, method ir.Expr) {
	if e.Pool.Tag(receiverTy) != types.TagIterator {
		return
	}
	if !registry.DoubleEndedOnlyMethods(e.Interner)[method.Name] {
		return
	}
	e.Bag.Push(diagnostic.New(diagnostic.E2019DoubleEndedOnly, method.Span,
		e.Interner.Lookup(method.Name)+" requires a double-ended iterator"))
}

// checkInfiniteIteratorConsumption implements §4.4.4: a call to a
// consuming method (collect, count, fold, for_each, to_list) on a
// receiver whose source, traced back through transparent adapters, is
// an unbounded iterator with no intervening .take triggers
// W2004InfiniteIteratorUsed.
func (e *Engine) checkInfiniteIteratorConsumption(receiver ir.ExprId, method ir.Expr) {
	if !registry.ConsumingIteratorMethods(e.Interner)[method.Name] {
		return
	}
	if e.chainHasUnboundedSource(receiver) {
		e.Bag.Push(diagnostic.New(diagnostic.W2004InfiniteIteratorUsed, method.Span,
			"calling "+e.Interner.Lookup(method.Name)+" on an unbounded iterator never terminates"))
	}
}

// chainHasUnboundedSource walks id's call chain inward through the
// transparent-adapter whitelist, reporting whether it bottoms out at
// an unbounded source (repeat(), .cycle(), or an open-ended range)
// with no intervening .take. An unrecognized method or expression
// shape breaks the walk conservatively (assume bounded).
func (e *Engine) chainHasUnboundedSource(id ir.ExprId) bool {
	adapters := registry.TransparentIteratorAdapters(e.Interner)
	cur := id
	for cur.Valid() {
		expr := e.Arena.Expr(cur)
		switch expr.Kind {
		case ir.ExprMethodCall:
			switch {
			case e.Interner.Lookup(expr.Name) == "take":
				return false
			case e.Interner.Lookup(expr.Name) == "cycle":
				return true
			case adapters[expr.Name]:
				cur = ir.ExprId(expr.A)
				continue
			default:
				return false
			}
		case ir.ExprCall:
			callee := e.Arena.Expr(ir.ExprId(expr.A))
			if callee.Kind == ir.ExprIdent && e.Interner.Lookup(callee.Name) == "repeat" {
				return true
			}
			return false
		case ir.ExprRangeLit:
			return !ir.ExprId(expr.B).Valid()
		default:
			return false
		}
	}
	return false
}
