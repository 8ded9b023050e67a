package canon

import (
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/types"
)

// lowerIf implements dead-branch elimination (§4.7): once the condition
// is lowered, a folded Bool constant picks its surviving branch instead
// of emitting a CanIf node at all. Both branches are still lowered
// first — the pass is a single bottom-up sweep, not a fixpoint, so the
// elided branch's lowering work is simply discarded.
func (c *Canonicalizer) lowerIf(expr ir.Expr, ty types.Idx) CanId {
	cond := c.Lower(ir.ExprId(expr.A))
	then := c.Lower(ir.ExprId(expr.B))
	els := c.Lower(ir.ExprId(expr.C))

	if v, ok := c.constOf(cond); ok && v.Kind == ConstBool {
		if v.Bool {
			return then
		}
		if els.Valid() {
			return els
		}
		return c.constId(ConstValue{Kind: ConstUnit}, ty, expr.Span)
	}
	return c.alloc(CanExpr{Kind: CanIf, Span: expr.Span, A: uint32(cond), B: uint32(then), C: uint32(els)}, ty)
}

func (c *Canonicalizer) lowerMatch(expr ir.Expr, ty types.Idx) CanId {
	scrutinee := c.Lower(ir.ExprId(expr.A))
	arms := c.Arena.ArmsOf(ir.ArmRange{Start: expr.B, Len: expr.Len})
	canArms := make([]CanArm, len(arms))
	for i, arm := range arms {
		canArms[i] = CanArm{
			Pattern: c.lowerPattern(arm.Pattern),
			Guard:   c.Lower(arm.Guard),
			Body:    c.Lower(arm.Body),
			Span:    arm.Span,
		}
	}
	armRange := c.Can.allocArms(canArms)
	return c.alloc(CanExpr{Kind: CanMatch, Span: expr.Span, A: uint32(scrutinee), B: armRange.Start, Len: armRange.Len}, ty)
}

// lowerPattern converts one typed match pattern into its canonical
// shape (§4.4.3, §4.7): disambiguation already happened in inference,
// so a PatBinding that resolved to ResUnitVariant becomes a tag test
// here instead of a binding.
func (c *Canonicalizer) lowerPattern(patID ir.MatchPatternId) CanPatId {
	pat := c.Arena.MatchPattern(patID)
	switch pat.Kind {
	case ir.PatWildcard:
		return c.Can.allocPat(CanPat{Kind: CanPatWildcard})

	case ir.PatBinding:
		if res, ok := c.Patterns[patID]; ok && res.Kind == ResUnitVariant {
			return c.Can.allocPat(CanPat{Kind: CanPatTag, Name: pat.Name, VariantIndex: res.VariantIndex})
		}
		return c.Can.allocPat(CanPat{Kind: CanPatBinding, Name: pat.Name})

	case ir.PatLiteral:
		return c.Can.allocPat(CanPat{Kind: CanPatLiteral, Const: c.Consts.Intern(patLiteralConstValue(pat))})

	case ir.PatVariant:
		variantIndex := 0
		if res, ok := c.Patterns[patID]; ok {
			variantIndex = res.VariantIndex
		}
		subIDs := c.Arena.MatchPatternListOf(pat.Sub)
		subs := make([]CanPatId, len(subIDs))
		for i, s := range subIDs {
			subs[i] = c.lowerPattern(s)
		}
		return c.Can.allocPat(CanPat{
			Kind: CanPatTag, Name: pat.Name, VariantIndex: variantIndex,
			Sub: c.Can.allocPatList(subs), FieldNames: pat.FieldNames,
		})

	case ir.PatTuple:
		subIDs := c.Arena.MatchPatternListOf(pat.Sub)
		subs := make([]CanPatId, len(subIDs))
		for i, s := range subIDs {
			subs[i] = c.lowerPattern(s)
		}
		return c.Can.allocPat(CanPat{Kind: CanPatTuple, Sub: c.Can.allocPatList(subs)})

	case ir.PatStructRest:
		subIDs := c.Arena.MatchPatternListOf(pat.Sub)
		subs := make([]CanPatId, len(subIDs))
		for i, s := range subIDs {
			subs[i] = c.lowerPattern(s)
		}
		return c.Can.allocPat(CanPat{Kind: CanPatStruct, Sub: c.Can.allocPatList(subs), FieldNames: pat.FieldNames})

	case ir.PatOr:
		subIDs := c.Arena.MatchPatternListOf(pat.Sub)
		subs := make([]CanPatId, len(subIDs))
		for i, s := range subIDs {
			subs[i] = c.lowerPattern(s)
		}
		return c.Can.allocPat(CanPat{Kind: CanPatOr, Sub: c.Can.allocPatList(subs)})

	case ir.PatAt:
		subIDs := c.Arena.MatchPatternListOf(pat.Sub)
		sub := c.lowerPattern(subIDs[0])
		return c.Can.allocPat(CanPat{Kind: CanPatAt, Name: pat.Name, Sub: c.Can.allocPatList([]CanPatId{sub})})

	default:
		// PatListRest/PatRange have no backend lowering yet; a
		// conservative wildcard keeps every other arm's semantics
		// correct at the cost of this arm over-matching, tracked in
		// DESIGN.md rather than silently miscompiling.
		return c.Can.allocPat(CanPat{Kind: CanPatWildcard})
	}
}

func patLiteralConstValue(pat ir.MatchPattern) ConstValue {
	switch {
	case pat.LitIsInt:
		return ConstValue{Kind: ConstInt, Int: pat.LitInt}
	case pat.LitIsFloat:
		return ConstValue{Kind: ConstFloat, FloatBits: floatBits(pat.LitFloat)}
	case pat.LitIsBool:
		return ConstValue{Kind: ConstBool, Bool: pat.LitBool}
	case pat.LitIsStr:
		return ConstValue{Kind: ConstStr, Str: pat.LitStr}
	case pat.LitIsChar:
		return ConstValue{Kind: ConstChar, Char: pat.LitChar}
	default:
		return ConstValue{Kind: ConstUnit}
	}
}

func (c *Canonicalizer) lowerBlock(expr ir.Expr, ty types.Idx) CanId {
	stmts := c.Arena.StmtsOf(ir.StmtRange{Start: expr.A, Len: expr.Len})
	canStmts := make([]CanStmt, len(stmts))
	for i, s := range stmts {
		kind := CanStmtExpr
		if s.Kind == ir.StmtLet {
			kind = CanStmtLet
		}
		canStmts[i] = CanStmt{Kind: kind, Expr: c.Lower(s.Expr), Span: s.Span}
	}
	stmtRange := c.Can.allocStmts(canStmts)
	result := c.Lower(ir.ExprId(expr.B))
	return c.alloc(CanExpr{Kind: CanBlock, Span: expr.Span, A: stmtRange.Start, Len: stmtRange.Len, B: uint32(result)}, ty)
}

func (c *Canonicalizer) lowerForIn(expr ir.Expr, ty types.Idx) CanId {
	data := c.Arena.ForIn(expr.A)
	idx := c.Can.addForIn(CanForInData{
		Binder:   data.Binder,
		Iterable: c.Lower(data.Iterable),
		Guard:    c.Lower(data.Guard),
		Body:     c.Lower(data.Body),
		Yield:    data.Yield,
	})
	return c.alloc(CanExpr{Kind: CanForIn, Span: expr.Span, A: idx}, ty)
}

func (c *Canonicalizer) lowerLet(expr ir.Expr, ty types.Idx) CanId {
	data := c.Arena.Let(expr.A)
	value := c.Lower(data.Value)
	if !data.HasPattern() {
		idx := c.Can.addLet(CanLetData{Binder: data.Binder, Value: value})
		return c.alloc(CanExpr{Kind: CanLet, Span: expr.Span, A: idx}, ty)
	}
	// A destructuring let shares CanLetData's simple-binder shape by
	// binding the whole value under a synthesized temporary and letting
	// a single-arm match's pattern perform the actual destructuring
	// (its arm bindings flow into the enclosing block the same way a
	// real let's binding would); full expansion into a field-access
	// sequence is left to a later lowering stage once a name-mangling
	// scheme for the temporaries is settled.
	canPat := c.lowerPattern(data.Pattern)
	tmp := c.Interner.Intern("$let")
	tmpIdx := c.Can.addLet(CanLetData{Binder: tmp, Value: value})
	tmpLet := c.alloc(CanExpr{Kind: CanLet, Span: expr.Span, A: tmpIdx}, types.IdxUnit)
	tmpIdent := c.alloc(CanExpr{Kind: CanIdent, Span: expr.Span, Name: tmp}, c.typeOf(data.Value))
	unit := c.constId(ConstValue{Kind: ConstUnit}, types.IdxUnit, expr.Span)
	arm := CanArm{Pattern: canPat, Guard: NoCan, Body: unit, Span: expr.Span}
	armRange := c.Can.allocArms([]CanArm{arm})
	match := c.alloc(CanExpr{Kind: CanMatch, Span: expr.Span, A: uint32(tmpIdent), B: armRange.Start, Len: armRange.Len}, types.IdxUnit)
	stmtRange := c.Can.allocStmts([]CanStmt{{Kind: CanStmtExpr, Expr: tmpLet, Span: expr.Span}})
	return c.alloc(CanExpr{Kind: CanBlock, Span: expr.Span, A: stmtRange.Start, Len: stmtRange.Len, B: uint32(match)}, ty)
}
