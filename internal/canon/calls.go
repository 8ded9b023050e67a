package canon

import (
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/types"
)

func (c *Canonicalizer) lowerCall(expr ir.Expr, ty types.Idx) CanId {
	callee := c.Lower(ir.ExprId(expr.A))
	args := c.Arena.ExprListOf(ir.ExprRange{Start: expr.B, Len: expr.Len})
	canArgs := make([]CanId, len(args))
	for i, a := range args {
		canArgs[i] = c.Lower(a)
	}
	argRange := c.Can.allocExprList(canArgs)
	return c.alloc(CanExpr{Kind: CanCall, Span: expr.Span, A: uint32(callee), B: argRange.Start, Len: argRange.Len}, ty)
}

// calleeName returns the plain name a callee expression resolves to, if
// it is a bare reference rather than a computed expression (e.g. a
// lambda value) — the only shape a name.Name signature lookup can key
// on.
func (c *Canonicalizer) calleeName(id ir.ExprId) (name.Name, bool) {
	expr := c.Arena.Expr(id)
	switch expr.Kind {
	case ir.ExprIdent, ir.ExprFuncRef:
		return expr.Name, true
	default:
		return 0, false
	}
}

// lowerCallNamed implements CallNamed -> Call (§4.7): named arguments
// are reordered to match the callee signature's parameter order and
// gaps are filled with the parameter's default expression, itself
// lowered. When the callee isn't a plain reference the table can key
// on (a computed callee, e.g. a lambda value) — the signature-unknown
// case the spec itself calls out — source order is preserved instead.
func (c *Canonicalizer) lowerCallNamed(expr ir.Expr, ty types.Idx) CanId {
	callee := c.Lower(ir.ExprId(expr.A))
	args := c.Arena.CallArgsOf(ir.CallArgRange{Start: expr.B, Len: expr.Len})

	var canArgs []CanId
	if calleeName, ok := c.calleeName(ir.ExprId(expr.A)); ok {
		if params, ok := c.Sigs[calleeName]; ok {
			canArgs = c.reorderArgs(c.Arena.ParamsOf(params), args)
		}
	}
	if canArgs == nil {
		canArgs = make([]CanId, len(args))
		for i, a := range args {
			canArgs[i] = c.Lower(a.Value)
		}
	}

	argRange := c.Can.allocExprList(canArgs)
	return c.alloc(CanExpr{Kind: CanCall, Span: expr.Span, A: uint32(callee), B: argRange.Start, Len: argRange.Len}, ty)
}

func (c *Canonicalizer) lowerMethodCall(expr ir.Expr, ty types.Idx) CanId {
	receiver := c.Lower(ir.ExprId(expr.A))
	args := c.Arena.ExprListOf(ir.ExprRange{Start: expr.B, Len: expr.Len})
	canArgs := make([]CanId, len(args)+1)
	canArgs[0] = receiver
	for i, a := range args {
		canArgs[i+1] = c.Lower(a)
	}
	argRange := c.Can.allocExprList(canArgs)
	return c.alloc(CanExpr{Kind: CanMethodCall, Span: expr.Span, Name: expr.Name, A: argRange.Start, Len: argRange.Len}, ty)
}

// lowerMethodCallNamed mirrors lowerCallNamed's reorder-and-default
// behavior (§4.7 "same reorder + defaults via impl-method signatures"),
// keyed on the method name directly since expr.Name already names it.
func (c *Canonicalizer) lowerMethodCallNamed(expr ir.Expr, ty types.Idx) CanId {
	receiver := c.Lower(ir.ExprId(expr.A))
	args := c.Arena.CallArgsOf(ir.CallArgRange{Start: expr.B, Len: expr.Len})

	var restArgs []CanId
	if params, ok := c.Sigs[expr.Name]; ok {
		restArgs = c.reorderArgs(c.Arena.ParamsOf(params), args)
	}
	if restArgs == nil {
		restArgs = make([]CanId, len(args))
		for i, a := range args {
			restArgs[i] = c.Lower(a.Value)
		}
	}

	canArgs := make([]CanId, len(restArgs)+1)
	canArgs[0] = receiver
	copy(canArgs[1:], restArgs)

	argRange := c.Can.allocExprList(canArgs)
	return c.alloc(CanExpr{Kind: CanMethodCall, Span: expr.Span, Name: expr.Name, A: argRange.Start, Len: argRange.Len}, ty)
}

// reorderArgs walks params in declaration order, filling each slot from
// a matching positional or named source argument (leading positional
// args bind to the leading params in order; any named arg binds to its
// named param regardless of position) and falling back to the param's
// own default expression — lowered here, same as any other operand —
// when the call site omits it. A required param with neither a source
// argument nor a default (a case the checker should already have
// diagnosed) lowers to an Error-typed constant placeholder rather than
// panicking, matching lowerStructLit's unresolvable-type fallback.
func (c *Canonicalizer) reorderArgs(params []ir.Param, args []ir.CallArg) []CanId {
	named := make(map[name.Name]ir.CallArg, len(args))
	var positional []ir.CallArg
	for _, a := range args {
		if a.IsNamed() {
			named[a.Name] = a
		} else {
			positional = append(positional, a)
		}
	}

	out := make([]CanId, len(params))
	posIdx := 0
	for i, p := range params {
		if posIdx < len(positional) {
			out[i] = c.Lower(positional[posIdx].Value)
			posIdx++
			continue
		}
		if a, ok := named[p.Name]; ok {
			out[i] = c.Lower(a.Value)
			continue
		}
		if p.HasDefault() {
			out[i] = c.Lower(p.Default)
			continue
		}
		out[i] = c.alloc(CanExpr{Kind: CanConstant, Span: p.Span}, types.IdxError)
	}
	return out
}
