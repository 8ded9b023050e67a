package canon

import (
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/span"
	"github.com/sigil-lang/ori/internal/types"
)

// constId interns v and returns a CanConstant node wrapping it.
func (c *Canonicalizer) constId(v ConstValue, ty types.Idx, sp span.Span) CanId {
	id := c.Consts.Intern(v)
	return c.alloc(CanExpr{Kind: CanConstant, Span: sp, A: uint32(id)}, ty)
}

func (c *Canonicalizer) lowerLiteral(expr ir.Expr, ty types.Idx) CanId {
	v, ok := literalConstValue(c.Arena, expr)
	if !ok {
		// Only ExprUnitLit and truly unrepresentable kinds reach here;
		// §3.2 guarantees every other literal kind has a payload.
		v = ConstValue{Kind: ConstUnit}
	}
	return c.constId(v, ty, expr.Span)
}

func (c *Canonicalizer) lowerUnary(id ir.ExprId, expr ir.Expr, ty types.Idx) CanId {
	operand := c.Lower(ir.ExprId(expr.A))
	if v, ok := c.constOf(operand); ok {
		if folded, ok := foldUnary(ir.UnaryOp(expr.Op), v); ok {
			return c.constId(folded, ty, expr.Span)
		}
	}
	return c.alloc(CanExpr{Kind: CanUnary, Span: expr.Span, Op: expr.Op, A: uint32(operand)}, ty)
}

func (c *Canonicalizer) lowerBinary(id ir.ExprId, expr ir.Expr, ty types.Idx) CanId {
	left := c.Lower(ir.ExprId(expr.A))
	right := c.Lower(ir.ExprId(expr.B))
	if lv, ok := c.constOf(left); ok {
		if rv, ok := c.constOf(right); ok {
			if folded, ok := foldBinary(ir.BinaryOp(expr.Op), lv, rv); ok {
				return c.constId(folded, ty, expr.Span)
			}
		}
	}
	return c.alloc(CanExpr{Kind: CanBinary, Span: expr.Span, Op: expr.Op, A: uint32(left), B: uint32(right)}, ty)
}

// internStr wraps an already-interned string name as a constant string
// node — used both for plain string literals reached indirectly (e.g. a
// fully-literal template) and ExprTemplateComplete.
func (c *Canonicalizer) internStr(n name.Name, sp span.Span) CanId {
	return c.constId(ConstValue{Kind: ConstStr, Str: n}, types.IdxStr, sp)
}
