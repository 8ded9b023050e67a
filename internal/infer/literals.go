package infer

import (
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/types"
)

// inferLiteral implements the literal row of the §4.4 dispatch table.
// Integer literals default to Int; a caller checking against an
// expected Float or Byte widens silently by unifying against that
// expectation instead (see inferCall/inferLet, which call CheckType
// directly rather than routing through here for that reason — this
// function only produces the literal's natural type).
func (e *Engine) inferLiteral(id ir.ExprId, expr ir.Expr) types.Idx {
	switch expr.Kind {
	case ir.ExprIntLit:
		return types.IdxInt
	case ir.ExprFloatLit:
		return types.IdxFloat
	case ir.ExprBoolLit:
		return types.IdxBool
	case ir.ExprStringLit:
		return types.IdxStr
	case ir.ExprCharLit:
		return types.IdxChar
	case ir.ExprDurationLit:
		return types.IdxDuration
	case ir.ExprSizeLit:
		return types.IdxSize
	case ir.ExprUnitLit:
		return types.IdxUnit
	case ir.ExprNilLit:
		return e.Pool.NewOption(e.Pool.NewVar())
	default:
		return types.IdxError
	}
}

// inferIdent looks up a bound identifier, instantiating a Scheme if
// that's what it resolves to (§4.4).
func (e *Engine) inferIdent(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	ty, ok := env.Lookup(expr.Name)
	if !ok {
		return types.IdxError
	}
	if e.Pool.Tag(e.resolve(ty)) == types.TagScheme {
		return types.Instantiate(e.Pool, e.resolve(ty))
	}
	return ty
}

// widenIntLiteral reports whether id is a bare integer literal that
// should silently widen to expected (Float or Byte), per §4.4's
// integer-literal rule. Callers that are about to CheckType an
// integer-literal argument call this first to avoid a spurious
// mismatch diagnostic.
func (e *Engine) widenIntLiteral(id ir.ExprId, expected types.Idx) bool {
	if !id.Valid() {
		return false
	}
	expr := e.Arena.Expr(id)
	if expr.Kind != ir.ExprIntLit {
		return false
	}
	switch e.Pool.Tag(e.resolve(expected)) {
	case types.TagFloat, types.TagByte:
		e.record(id, expected)
		return true
	default:
		return false
	}
}
