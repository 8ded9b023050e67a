package canon

import (
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/registry"
	"github.com/sigil-lang/ori/internal/span"
	"github.com/sigil-lang/ori/internal/types"
)

func (c *Canonicalizer) lowerListLit(expr ir.Expr, ty types.Idx) CanId {
	elems := c.Arena.ExprListOf(ir.ExprRange{Start: expr.A, Len: expr.Len})
	canElems := make([]CanId, len(elems))
	for i, e := range elems {
		canElems[i] = c.Lower(e)
	}
	r := c.Can.allocExprList(canElems)
	return c.alloc(CanExpr{Kind: CanListLit, Span: expr.Span, A: r.Start, Len: r.Len}, ty)
}

func (c *Canonicalizer) lowerSetLit(expr ir.Expr, ty types.Idx) CanId {
	elems := c.Arena.ExprListOf(ir.ExprRange{Start: expr.A, Len: expr.Len})
	canElems := make([]CanId, len(elems))
	for i, e := range elems {
		canElems[i] = c.Lower(e)
	}
	r := c.Can.allocExprList(canElems)
	return c.alloc(CanExpr{Kind: CanSetLit, Span: expr.Span, A: r.Start, Len: r.Len}, ty)
}

func (c *Canonicalizer) lowerTupleLit(expr ir.Expr, ty types.Idx) CanId {
	elems := c.Arena.ExprListOf(ir.ExprRange{Start: expr.A, Len: expr.Len})
	canElems := make([]CanId, len(elems))
	for i, e := range elems {
		canElems[i] = c.Lower(e)
	}
	r := c.Can.allocExprList(canElems)
	return c.alloc(CanExpr{Kind: CanTupleLit, Span: expr.Span, A: r.Start, Len: r.Len}, ty)
}

// lowerMapLit flattens a MapLit's possible spread entries by emitting a
// MapWithSpread-style merge chain (§4.7) whenever a spread is present;
// a spread-free literal lowers straight to CanMapLit.
func (c *Canonicalizer) lowerMapLit(expr ir.Expr, ty types.Idx) CanId {
	entries := c.Arena.MapEntriesOf(ir.MapEntryRange{Start: expr.A, Len: expr.Len})
	if !anyMapSpread(entries) {
		return c.lowerPlainMapEntries(entries, expr.Span, ty)
	}
	return c.lowerMapWithSpread(entries, expr.Span, ty)
}

func anyMapSpread(entries []ir.MapEntry) bool {
	for _, e := range entries {
		if e.IsSpread() {
			return true
		}
	}
	return false
}

func (c *Canonicalizer) lowerPlainMapEntries(entries []ir.MapEntry, sp span.Span, ty types.Idx) CanId {
	canEntries := make([]CanMapEntry, len(entries))
	for i, e := range entries {
		canEntries[i] = CanMapEntry{Key: c.Lower(e.Key), Value: c.Lower(e.Value)}
	}
	r := c.Can.allocMapEntries(canEntries)
	return c.alloc(CanExpr{Kind: CanMapLit, Span: sp, A: r.Start, Len: r.Len}, ty)
}

// lowerMapWithSpread groups consecutive non-spread runs into map
// literals and left-folds them against each spread base via `.merge()`
// (§4.7 MapWithSpread), matching ListWithSpread's grouping strategy.
func (c *Canonicalizer) lowerMapWithSpread(entries []ir.MapEntry, sp span.Span, ty types.Idx) CanId {
	var acc CanId = NoCan
	var run []CanMapEntry
	flushRun := func() {
		if len(run) == 0 {
			return
		}
		r := c.Can.allocMapEntries(run)
		lit := c.alloc(CanExpr{Kind: CanMapLit, Span: sp, A: r.Start, Len: r.Len}, ty)
		acc = c.mergeInto(acc, lit, ty, sp)
		run = nil
	}
	for _, e := range entries {
		if e.IsSpread() {
			flushRun()
			base := c.Lower(e.Value)
			acc = c.mergeInto(acc, base, ty, sp)
			continue
		}
		run = append(run, CanMapEntry{Key: c.Lower(e.Key), Value: c.Lower(e.Value)})
	}
	flushRun()
	if !acc.Valid() {
		r := c.Can.allocMapEntries(nil)
		return c.alloc(CanExpr{Kind: CanMapLit, Span: sp, A: r.Start, Len: r.Len}, ty)
	}
	return acc
}

func (c *Canonicalizer) mergeInto(acc, next CanId, ty types.Idx, sp span.Span) CanId {
	if !acc.Valid() {
		return next
	}
	args := c.Can.allocExprList([]CanId{acc, next})
	return c.alloc(CanExpr{Kind: CanMethodCall, Span: sp, Name: c.mergeName, A: args.Start, Len: args.Len}, ty)
}

// lowerStructLit implements StructWithSpread (§4.7): the struct's
// declared field list is resolved from the TypeRegistry and the source
// field list is walked left to right, later writers (explicit fields or
// spread bases) winning each slot.
func (c *Canonicalizer) lowerStructLit(expr ir.Expr, ty types.Idx) CanId {
	fields := c.Arena.FieldInitsOf(ir.FieldInitRange{Start: expr.A, Len: expr.Len})
	typeName := expr.Name

	def, ok := c.Types.Lookup(typeName)
	if !ok || def.Kind != registry.KindStruct {
		// Unresolvable type: the type checker already reported this;
		// lower field values for their side effects and emit an
		// Error-typed placeholder rather than panicking on a nil def.
		for _, f := range fields {
			if !f.IsSpread() {
				c.Lower(f.Value)
			} else {
				c.Lower(f.Value)
			}
		}
		return c.alloc(CanExpr{Kind: CanStructLit, Span: expr.Span, Name: typeName}, types.IdxError)
	}

	slots := make(map[name.Name]CanId, len(def.Fields))
	for _, f := range fields {
		if f.IsSpread() {
			base := c.Lower(f.Value)
			for _, declared := range def.Fields {
				slots[declared.Name] = c.alloc(CanExpr{Kind: CanField, Span: f.Span, Name: declared.Name, A: uint32(base)}, declared.Type)
			}
			continue
		}
		slots[f.Name] = c.Lower(f.Value)
	}

	inits := make([]CanFieldInit, 0, len(def.Fields))
	for _, declared := range def.Fields {
		v, ok := slots[declared.Name]
		if !ok {
			v = c.alloc(CanExpr{Kind: CanConstant, Span: expr.Span}, types.IdxError)
		}
		inits = append(inits, CanFieldInit{Name: declared.Name, Value: v})
	}
	r := c.Can.allocFieldInits(inits)
	return c.alloc(CanExpr{Kind: CanStructLit, Span: expr.Span, Name: typeName, A: r.Start, Len: r.Len}, ty)
}

// lowerListSpread implements ListWithSpread (§4.7): consecutive
// non-spread runs are grouped into list literals, then left-folded
// against each spread base via `.concat()`.
func (c *Canonicalizer) lowerListSpread(expr ir.Expr, ty types.Idx) CanId {
	items := c.Arena.CallArgsOf(ir.CallArgRange{Start: expr.A, Len: expr.Len})
	var acc CanId = NoCan
	var run []CanId
	flushRun := func() {
		if len(run) == 0 {
			return
		}
		r := c.Can.allocExprList(run)
		lit := c.alloc(CanExpr{Kind: CanListLit, Span: expr.Span, A: r.Start, Len: r.Len}, ty)
		acc = c.concatInto(acc, lit, ty, expr.Span)
		run = nil
	}
	for _, item := range items {
		if item.IsSpread {
			flushRun()
			base := c.Lower(item.Value)
			acc = c.concatInto(acc, base, ty, expr.Span)
			continue
		}
		run = append(run, c.Lower(item.Value))
	}
	flushRun()
	if !acc.Valid() {
		r := c.Can.allocExprList(nil)
		return c.alloc(CanExpr{Kind: CanListLit, Span: expr.Span, A: r.Start, Len: r.Len}, ty)
	}
	return acc
}

func (c *Canonicalizer) concatInto(acc, next CanId, ty types.Idx, sp span.Span) CanId {
	if !acc.Valid() {
		return next
	}
	args := c.Can.allocExprList([]CanId{acc, next})
	return c.alloc(CanExpr{Kind: CanMethodCall, Span: sp, Name: c.concatName, A: args.Start, Len: args.Len}, ty)
}

func (c *Canonicalizer) lowerMapSpread(expr ir.Expr, ty types.Idx) CanId {
	entries := c.Arena.MapEntriesOf(ir.MapEntryRange{Start: expr.A, Len: expr.Len})
	return c.lowerMapWithSpread(entries, expr.Span, ty)
}

// lowerTemplateLit implements TemplateLiteral lowering (§4.7): a
// left-folded chain of `.concat()` calls over the text/expression
// parts, eliding `.to_str()` on any part whose static type is already
// Str.
func (c *Canonicalizer) lowerTemplateLit(expr ir.Expr, ty types.Idx) CanId {
	parts := c.Arena.ExprListOf(ir.ExprRange{Start: expr.A, Len: expr.Len})
	var acc CanId = NoCan
	for _, p := range parts {
		partExpr := c.Arena.Expr(p)
		var piece CanId
		if partExpr.Kind == ir.ExprStringLit {
			piece = c.internStr(partExpr.Name, partExpr.Span)
		} else {
			lowered := c.Lower(p)
			if c.Pool.Tag(c.typeOf(p)) == types.TagStr {
				piece = lowered
			} else {
				callArgs := c.Can.allocExprList([]CanId{lowered})
				piece = c.alloc(CanExpr{Kind: CanMethodCall, Span: partExpr.Span, Name: c.toStrName, A: callArgs.Start, Len: callArgs.Len}, types.IdxStr)
			}
		}
		acc = c.concatInto(acc, piece, types.IdxStr, expr.Span)
	}
	if !acc.Valid() {
		return c.internStr(c.Interner.Intern(""), expr.Span)
	}
	return acc
}
