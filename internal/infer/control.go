package infer

import (
	"github.com/sigil-lang/ori/internal/diagnostic"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/types"
)

// inferIf implements the if/then/else row of §4.4: the condition must
// be Bool; with an else branch present, both arms unify to a common
// type, otherwise the whole expression is Unit.
func (e *Engine) inferIf(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	cond, then, elseBranch := ir.ExprId(expr.A), ir.ExprId(expr.B), ir.ExprId(expr.C)
	condTy := e.Infer(cond, env)
	e.CheckType(condTy, types.IdxBool, e.Arena.Expr(cond).Span, ExpectedOrigin{Kind: OriginCondition})

	thenTy := e.Infer(then, env)
	if !elseBranch.Valid() {
		e.CheckType(thenTy, types.IdxUnit, e.Arena.Expr(then).Span, ExpectedOrigin{Kind: OriginIfElse})
		return types.IdxUnit
	}
	elseTy := e.Infer(elseBranch, env)
	e.CheckType(elseTy, thenTy, e.Arena.Expr(elseBranch).Span, ExpectedOrigin{Kind: OriginIfElse})
	return thenTy
}

// inferMatch implements the match row of §4.4/§4.4.2/§4.4.3: the
// scrutinee's type is checked against every arm's pattern, every arm's
// guard (if present) must be Bool, every arm's body unifies to one
// common result type, and the arm set as a whole is checked for
// exhaustiveness and redundancy once every arm has been processed.
func (e *Engine) inferMatch(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	scrutinee := ir.ExprId(expr.A)
	scrutineeTy := e.Infer(scrutinee, env)
	arms := e.Arena.ArmsOf(ir.ArmRange{Start: expr.B, Len: expr.Len})

	result := e.Pool.NewVar()
	for i, arm := range arms {
		armEnv := env.Child()
		e.checkPattern(arm.Pattern, scrutineeTy, armEnv)
		if arm.Guard.Valid() {
			guardTy := e.Infer(arm.Guard, armEnv)
			e.CheckType(guardTy, types.IdxBool, e.Arena.Expr(arm.Guard).Span, ExpectedOrigin{Kind: OriginGuard})
		}
		bodyTy := e.Infer(arm.Body, armEnv)
		e.CheckType(bodyTy, result, arm.Span, ExpectedOrigin{Kind: OriginMatchArm, Index: i})
	}
	e.checkExhaustiveness(scrutineeTy, arms, expr.Span)
	return result
}

// inferBlock implements the block row of §4.4: every statement is
// checked in sequence (a StmtLet binds into a fresh child scope that
// stays in effect for the rest of the block), and the trailing result
// expression, if any, is the block's type; otherwise the block is Unit.
func (e *Engine) inferBlock(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	stmts := e.Arena.StmtsOf(ir.StmtRange{Start: expr.A, Len: expr.Len})
	result := ir.ExprId(expr.B)
	scope := env.Child()
	for _, stmt := range stmts {
		switch stmt.Kind {
		case ir.StmtLet:
			e.Infer(stmt.Expr, scope)
		case ir.StmtExpr:
			e.Infer(stmt.Expr, scope)
		}
	}
	if !result.Valid() {
		return types.IdxUnit
	}
	return e.Infer(result, scope)
}

// inferForIn implements the for-in row of §4.4: the iterable must
// produce elements via the Iterator capability (approximated here as
// List/Set/Range/Iterator/DoubleEndedIterator/Map, whose element type
// seeds the binder; a Map yields (key, value) tuples), the
// optional guard must be Bool, and `for .. yield` collects the body's
// type into a List while `for .. do` is Unit.
func (e *Engine) inferForIn(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	data := e.Arena.ForIn(expr.A)
	iterableTy := e.Infer(data.Iterable, env)
	resolved := e.resolve(iterableTy)
	var elemTy types.Idx
	if e.Pool.Tag(resolved) == types.TagRange && e.Pool.Tag(e.Pool.Elem(resolved)) == types.TagFloat {
		e.Bag.Push(diagnostic.New(diagnostic.E2020FloatRangeNotIterable, e.Arena.Expr(data.Iterable).Span,
			"a Range<Float> cannot be iterated directly; iterate over an integer range instead"))
		elemTy = e.Pool.NewVar()
	} else {
		elemTy = e.iterableElemType(iterableTy)
	}

	loopEnv := env.Child()
	loopEnv.Bind(data.Binder, elemTy)
	if data.Guard.Valid() {
		guardTy := e.Infer(data.Guard, loopEnv)
		e.CheckType(guardTy, types.IdxBool, e.Arena.Expr(data.Guard).Span, ExpectedOrigin{Kind: OriginGuard})
	}
	bodyTy := e.Infer(data.Body, loopEnv)
	if data.Yield {
		return e.Pool.NewList(bodyTy)
	}
	return types.IdxUnit
}

// iterableElemType returns the element type a for-in loop binds its
// iteration variable to, given the resolved type of the expression
// being iterated.
func (e *Engine) iterableElemType(ty types.Idx) types.Idx {
	resolved := e.resolve(ty)
	switch e.Pool.Tag(resolved) {
	case types.TagList, types.TagSet, types.TagRange,
		types.TagIterator, types.TagDoubleEndedIterator:
		return e.Pool.Elem(resolved)
	case types.TagMap:
		k, v := e.Pool.MapKeyValue(resolved)
		return e.Pool.NewTuple([]types.Idx{k, v})
	default:
		return e.Pool.NewVar()
	}
}

// inferLoop implements the bare loop row of §4.4: a `loop { .. }` body
// is checked in a fresh break-type slot pushed onto the Engine's break
// stack, and the loop's own type is whatever its `break` statements (or
// the implicit Unit, if none carries a value) unify to.
func (e *Engine) inferLoop(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	breakTy := e.Pool.NewVar()
	e.loopBreak = append(e.loopBreak, breakTy)
	defer func() { e.loopBreak = e.loopBreak[:len(e.loopBreak)-1] }()

	e.Infer(ir.ExprId(expr.A), env)
	return breakTy
}

// inferBreak implements break (§4.4): with a value, it's unified
// against the enclosing loop's break-type slot; a bare break unifies
// that slot against Unit. break outside any loop is a diagnostic.
func (e *Engine) inferBreak(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	if len(e.loopBreak) == 0 {
		e.Bag.Push(diagnostic.New(diagnostic.E2001TypeMismatch, expr.Span, "`break` outside a loop"))
		return types.IdxNever
	}
	breakTy := e.loopBreak[len(e.loopBreak)-1]
	value := ir.ExprId(expr.A)
	if value.Valid() {
		valueTy := e.Infer(value, env)
		e.CheckType(valueTy, breakTy, e.Arena.Expr(value).Span, ExpectedOrigin{Kind: OriginBreakValue})
	} else {
		e.CheckType(types.IdxUnit, breakTy, expr.Span, ExpectedOrigin{Kind: OriginBreakValue})
	}
	return types.IdxNever
}

// inferLet implements let-binding (§4.4): the value's type is checked
// against an explicit annotation if present, then bound into env —
// either as a single name or, for a destructuring let, via checkPattern
// against the value's type. A let's own type is always Unit.
func (e *Engine) inferLet(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	data := e.Arena.Let(expr.A)
	valueTy := e.Infer(data.Value, env)

	if data.Annotation.Valid() {
		annotTy := e.resolveParsedType(data.Annotation, nil)
		if !e.widenIntLiteral(data.Value, annotTy) {
			e.CheckType(valueTy, annotTy, e.Arena.Expr(data.Value).Span, ExpectedOrigin{Kind: OriginAnnotation})
		}
		valueTy = annotTy
	}

	if data.HasPattern() {
		e.checkPattern(data.Pattern, valueTy, env)
	} else {
		env.Bind(data.Binder, valueTy)
	}
	return types.IdxUnit
}

// inferAssign implements assignment (§4.4): the target must already be
// bound (assignment never introduces a binding), and the value unifies
// against the target's existing type. The expression's own type is Unit.
func (e *Engine) inferAssign(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	target, value := ir.ExprId(expr.A), ir.ExprId(expr.B)
	targetTy := e.Infer(target, env)
	valueTy := e.Infer(value, env)
	e.CheckType(valueTy, targetTy, e.Arena.Expr(value).Span, ExpectedOrigin{Kind: OriginAnnotation})
	return types.IdxUnit
}
