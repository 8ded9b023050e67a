package canon

import (
	"math"

	"github.com/sigil-lang/ori/internal/ir"
)

// constOf reads the folded constant a CanConstant node holds.
func (c *Canonicalizer) constOf(id CanId) (ConstValue, bool) {
	if !id.Valid() {
		return ConstValue{}, false
	}
	e := c.Can.Expr(id)
	if e.Kind != CanConstant {
		return ConstValue{}, false
	}
	return c.Consts.Value(ConstId(e.A)), true
}

// literalConstValue extracts the constant a source literal expression
// represents (§3.5's primitive ConstKind set); nil/option literals have
// no constant representation and return false.
func literalConstValue(arena *ir.Arena, expr ir.Expr) (ConstValue, bool) {
	switch expr.Kind {
	case ir.ExprIntLit:
		return ConstValue{Kind: ConstInt, Int: arena.Int(expr.A)}, true
	case ir.ExprFloatLit:
		return ConstValue{Kind: ConstFloat, FloatBits: floatBits(arena.Float(expr.A))}, true
	case ir.ExprBoolLit:
		return ConstValue{Kind: ConstBool, Bool: expr.A != 0}, true
	case ir.ExprStringLit:
		return ConstValue{Kind: ConstStr, Str: expr.Name}, true
	case ir.ExprCharLit:
		return ConstValue{Kind: ConstChar, Char: rune(expr.A)}, true
	case ir.ExprDurationLit:
		d := arena.Duration(expr.A)
		return ConstValue{Kind: ConstDuration, DurValue: d.Nanos()}, true
	case ir.ExprSizeLit:
		s := arena.Size(expr.A)
		return ConstValue{Kind: ConstSize, SizeValue: s.Bytes()}, true
	case ir.ExprUnitLit:
		return ConstValue{Kind: ConstUnit}, true
	default:
		return ConstValue{}, false
	}
}

func floatBits(f float64) uint64 { return math.Float64bits(f) }

// foldUnary applies a prefix operator to a folded operand (§4.7). It
// refuses to fold `-i64::MIN` (no positive representation exists) and
// leaves the caller to emit a real CanUnary node in that case.
func foldUnary(op ir.UnaryOp, v ConstValue) (ConstValue, bool) {
	switch op {
	case ir.UnaryNeg:
		switch v.Kind {
		case ConstInt:
			if v.Int == minInt64 {
				return ConstValue{}, false
			}
			return ConstValue{Kind: ConstInt, Int: -v.Int}, true
		case ConstFloat:
			f := math.Float64frombits(v.FloatBits)
			return ConstValue{Kind: ConstFloat, FloatBits: floatBits(-f)}, true
		}
	case ir.UnaryNot:
		if v.Kind == ConstBool {
			return ConstValue{Kind: ConstBool, Bool: !v.Bool}, true
		}
	case ir.UnaryBitNot:
		if v.Kind == ConstInt {
			return ConstValue{Kind: ConstInt, Int: ^v.Int}, true
		}
	}
	return ConstValue{}, false
}

const minInt64 = -1 << 63

// foldBinary applies an infix operator to two folded operands (§4.7):
// integer arithmetic is guarded against overflow and division/modulo by
// zero, duration/size arithmetic stays normalized to their base unit,
// and comparisons are defined across every primitive kind that supports
// ordering. Returns ok=false whenever the operation cannot be folded at
// compile time, in which case the caller keeps a real CanBinary node.
func foldBinary(op ir.BinaryOp, l, r ConstValue) (ConstValue, bool) {
	switch {
	case l.Kind == ConstInt && r.Kind == ConstInt:
		return foldIntBinary(op, l.Int, r.Int)
	case l.Kind == ConstFloat && r.Kind == ConstFloat:
		return foldFloatBinary(op, math.Float64frombits(l.FloatBits), math.Float64frombits(r.FloatBits))
	case l.Kind == ConstBool && r.Kind == ConstBool:
		return foldBoolBinary(op, l.Bool, r.Bool)
	case l.Kind == ConstChar && r.Kind == ConstChar:
		return foldOrderingBinary(op, int64(l.Char), int64(r.Char))
	case l.Kind == ConstStr && r.Kind == ConstStr && isEqualityOp(op):
		return ConstValue{Kind: ConstBool, Bool: (l.Str == r.Str) == (op == ir.BinEq)}, true
	case l.Kind == ConstDuration && r.Kind == ConstDuration:
		return foldDurationBinary(op, l.DurValue, r.DurValue)
	case l.Kind == ConstSize && r.Kind == ConstSize:
		return foldSizeBinary(op, l.SizeValue, r.SizeValue)
	case l.Kind == ConstDuration && r.Kind == ConstInt && op == ir.BinMul:
		return ConstValue{Kind: ConstDuration, DurValue: l.DurValue * r.Int}, true
	case l.Kind == ConstInt && r.Kind == ConstDuration && op == ir.BinMul:
		return ConstValue{Kind: ConstDuration, DurValue: l.Int * r.DurValue}, true
	case l.Kind == ConstDuration && r.Kind == ConstInt && op == ir.BinDiv:
		if r.Int == 0 {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstDuration, DurValue: l.DurValue / r.Int}, true
	}
	return ConstValue{}, false
}

func isEqualityOp(op ir.BinaryOp) bool { return op == ir.BinEq || op == ir.BinNe }

func foldIntBinary(op ir.BinaryOp, l, r int64) (ConstValue, bool) {
	switch op {
	case ir.BinAdd:
		sum := l + r
		if (r > 0 && sum < l) || (r < 0 && sum > l) {
			return ConstValue{}, false // overflow
		}
		return ConstValue{Kind: ConstInt, Int: sum}, true
	case ir.BinSub:
		diff := l - r
		if (r < 0 && diff < l) || (r > 0 && diff > l) {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstInt, Int: diff}, true
	case ir.BinMul:
		if l == 0 || r == 0 {
			return ConstValue{Kind: ConstInt, Int: 0}, true
		}
		if (l == minInt64 && r == -1) || (r == minInt64 && l == -1) {
			return ConstValue{}, false // the divide-back check below cannot see this overflow
		}
		prod := l * r
		if prod/r != l {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstInt, Int: prod}, true
	case ir.BinDiv:
		if r == 0 || (l == minInt64 && r == -1) {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstInt, Int: l / r}, true
	case ir.BinMod:
		if r == 0 || (l == minInt64 && r == -1) {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstInt, Int: l % r}, true
	case ir.BinBitAnd:
		return ConstValue{Kind: ConstInt, Int: l & r}, true
	case ir.BinBitOr:
		return ConstValue{Kind: ConstInt, Int: l | r}, true
	case ir.BinBitXor:
		return ConstValue{Kind: ConstInt, Int: l ^ r}, true
	case ir.BinShl:
		if r < 0 || r >= 64 {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstInt, Int: l << uint(r)}, true
	case ir.BinShr:
		if r < 0 || r >= 64 {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstInt, Int: l >> uint(r)}, true
	default:
		return foldOrderingBinary(op, l, r)
	}
}

func foldFloatBinary(op ir.BinaryOp, l, r float64) (ConstValue, bool) {
	switch op {
	case ir.BinAdd:
		return ConstValue{Kind: ConstFloat, FloatBits: floatBits(l + r)}, true
	case ir.BinSub:
		return ConstValue{Kind: ConstFloat, FloatBits: floatBits(l - r)}, true
	case ir.BinMul:
		return ConstValue{Kind: ConstFloat, FloatBits: floatBits(l * r)}, true
	case ir.BinDiv:
		if r == 0 {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstFloat, FloatBits: floatBits(l / r)}, true
	case ir.BinEq:
		return ConstValue{Kind: ConstBool, Bool: l == r}, true
	case ir.BinNe:
		return ConstValue{Kind: ConstBool, Bool: l != r}, true
	case ir.BinLt:
		return ConstValue{Kind: ConstBool, Bool: l < r}, true
	case ir.BinLe:
		return ConstValue{Kind: ConstBool, Bool: l <= r}, true
	case ir.BinGt:
		return ConstValue{Kind: ConstBool, Bool: l > r}, true
	case ir.BinGe:
		return ConstValue{Kind: ConstBool, Bool: l >= r}, true
	default:
		return ConstValue{}, false
	}
}

func foldBoolBinary(op ir.BinaryOp, l, r bool) (ConstValue, bool) {
	switch op {
	case ir.BinAnd:
		return ConstValue{Kind: ConstBool, Bool: l && r}, true
	case ir.BinOr:
		return ConstValue{Kind: ConstBool, Bool: l || r}, true
	case ir.BinEq:
		return ConstValue{Kind: ConstBool, Bool: l == r}, true
	case ir.BinNe:
		return ConstValue{Kind: ConstBool, Bool: l != r}, true
	default:
		return ConstValue{}, false
	}
}

// foldOrderingBinary folds the six comparison operators plus `<=>`
// (producing an Ordering encoded as an Int in {-1,0,1}) shared by Int
// and Char operands.
func foldOrderingBinary(op ir.BinaryOp, l, r int64) (ConstValue, bool) {
	switch op {
	case ir.BinEq:
		return ConstValue{Kind: ConstBool, Bool: l == r}, true
	case ir.BinNe:
		return ConstValue{Kind: ConstBool, Bool: l != r}, true
	case ir.BinLt:
		return ConstValue{Kind: ConstBool, Bool: l < r}, true
	case ir.BinLe:
		return ConstValue{Kind: ConstBool, Bool: l <= r}, true
	case ir.BinGt:
		return ConstValue{Kind: ConstBool, Bool: l > r}, true
	case ir.BinGe:
		return ConstValue{Kind: ConstBool, Bool: l >= r}, true
	case ir.BinSpaceship:
		switch {
		case l < r:
			return ConstValue{Kind: ConstInt, Int: -1}, true
		case l > r:
			return ConstValue{Kind: ConstInt, Int: 1}, true
		default:
			return ConstValue{Kind: ConstInt, Int: 0}, true
		}
	default:
		return ConstValue{}, false
	}
}

func foldDurationBinary(op ir.BinaryOp, l, r int64) (ConstValue, bool) {
	switch op {
	case ir.BinAdd:
		return ConstValue{Kind: ConstDuration, DurValue: l + r}, true
	case ir.BinSub:
		return ConstValue{Kind: ConstDuration, DurValue: l - r}, true
	default:
		return foldOrderingBinary(op, l, r)
	}
}

// foldSizeBinary folds Size arithmetic in bytes; a subtraction that
// would go negative is left unfolded since a negative Size has no
// meaning (§4.7).
func foldSizeBinary(op ir.BinaryOp, l, r int64) (ConstValue, bool) {
	switch op {
	case ir.BinAdd:
		return ConstValue{Kind: ConstSize, SizeValue: l + r}, true
	case ir.BinSub:
		if l-r < 0 {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstSize, SizeValue: l - r}, true
	default:
		return foldOrderingBinary(op, l, r)
	}
}
