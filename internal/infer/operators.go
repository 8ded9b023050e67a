package infer

import (
	"github.com/sigil-lang/ori/internal/diagnostic"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/types"
)

// inferUnary implements the unary row of §4.4: `-`/`~` preserve the
// operand's (numeric/integer) type, `!` constrains to Bool and always
// produces Bool.
func (e *Engine) inferUnary(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	operand := ir.ExprId(expr.A)
	operandTy := e.Infer(operand, env)

	switch ir.UnaryOp(expr.Op) {
	case ir.UnaryNot:
		e.CheckType(operandTy, types.IdxBool, e.Arena.Expr(operand).Span, ExpectedOrigin{Kind: OriginBinaryOperand})
		return types.IdxBool
	case ir.UnaryBitNot:
		e.CheckType(operandTy, types.IdxInt, e.Arena.Expr(operand).Span, ExpectedOrigin{Kind: OriginBinaryOperand})
		return types.IdxInt
	case ir.UnaryNeg:
		switch e.Pool.Tag(e.resolve(operandTy)) {
		case types.TagInt, types.TagFloat, types.TagDuration:
			return operandTy
		default:
			e.Bag.Push(diagnostic.New(diagnostic.E2001TypeMismatch, expr.Span, "unary `-` requires a numeric operand"))
			return types.IdxError
		}
	default:
		return types.IdxError
	}
}

// inferBinary implements the binary row of §4.4, computing expected
// operand types and the result type from the statically-known operand
// tags, then unifying each operand against what the operator needs.
func (e *Engine) inferBinary(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	left, right := ir.ExprId(expr.A), ir.ExprId(expr.B)
	leftTy := e.Infer(left, env)
	rightTy := e.Infer(right, env)
	op := ir.BinaryOp(expr.Op)

	switch op {
	case ir.BinAnd, ir.BinOr:
		e.CheckType(leftTy, types.IdxBool, e.Arena.Expr(left).Span, ExpectedOrigin{Kind: OriginBinaryOperand})
		e.CheckType(rightTy, types.IdxBool, e.Arena.Expr(right).Span, ExpectedOrigin{Kind: OriginBinaryOperand})
		return types.IdxBool

	case ir.BinEq, ir.BinNe:
		e.CheckType(rightTy, leftTy, e.Arena.Expr(right).Span, ExpectedOrigin{Kind: OriginBinaryOperand})
		return types.IdxBool

	case ir.BinSpaceship:
		e.CheckType(rightTy, leftTy, e.Arena.Expr(right).Span, ExpectedOrigin{Kind: OriginBinaryOperand})
		return types.IdxOrdering

	case ir.BinLt, ir.BinLe, ir.BinGt, ir.BinGe:
		e.CheckType(rightTy, leftTy, e.Arena.Expr(right).Span, ExpectedOrigin{Kind: OriginBinaryOperand})
		return types.IdxBool

	case ir.BinBitAnd, ir.BinBitOr, ir.BinBitXor, ir.BinShl, ir.BinShr:
		e.CheckType(leftTy, types.IdxInt, e.Arena.Expr(left).Span, ExpectedOrigin{Kind: OriginBinaryOperand})
		e.CheckType(rightTy, types.IdxInt, e.Arena.Expr(right).Span, ExpectedOrigin{Kind: OriginBinaryOperand})
		return types.IdxInt

	case ir.BinAdd, ir.BinSub, ir.BinMul, ir.BinDiv, ir.BinMod:
		return e.inferArithmetic(expr, left, right, leftTy, rightTy)

	default:
		return types.IdxError
	}
}

// inferArithmetic resolves the special-cased numeric/duration/size
// combinations the spec's operator registry carries (§4.4): same-kind
// Int/Float arithmetic, duration+duration, int*duration symmetric in
// either order, and size-size. Anything else is a type-mismatch
// diagnostic naming the unsupported operand pairing.
func (e *Engine) inferArithmetic(expr ir.Expr, left, right ir.ExprId, leftTy, rightTy types.Idx) types.Idx {
	lt, rt := e.Pool.Tag(e.resolve(leftTy)), e.Pool.Tag(e.resolve(rightTy))
	op := ir.BinaryOp(expr.Op)

	switch {
	case lt == types.TagInt && rt == types.TagInt:
		return types.IdxInt
	case lt == types.TagFloat && rt == types.TagFloat:
		return types.IdxFloat
	case lt == types.TagDuration && rt == types.TagDuration && (op == ir.BinAdd || op == ir.BinSub):
		return types.IdxDuration
	case lt == types.TagDuration && rt == types.TagInt && (op == ir.BinMul || op == ir.BinDiv):
		return types.IdxDuration
	case lt == types.TagInt && rt == types.TagDuration && op == ir.BinMul:
		return types.IdxDuration
	case lt == types.TagSize && rt == types.TagSize && (op == ir.BinAdd || op == ir.BinSub):
		// Refusing a negative Size result of a subtraction is a
		// const-folding-time check (§4.7); statically both operands
		// being Size is all that can be verified here.
		return types.IdxSize
	case lt == types.TagSize && rt == types.TagInt && (op == ir.BinMul || op == ir.BinDiv):
		return types.IdxSize
	case lt == types.TagInt && rt == types.TagSize && op == ir.BinMul:
		return types.IdxSize
	default:
		e.Bag.Push(diagnostic.New(diagnostic.E2001TypeMismatch, expr.Span,
			"operator does not support operands of these types"))
		return types.IdxError
	}
}
