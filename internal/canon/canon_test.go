package canon

import (
	"testing"

	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/registry"
	"github.com/sigil-lang/ori/internal/span"
	"github.com/sigil-lang/ori/internal/types"
)

func newTestCanon() (*Canonicalizer, *ir.Arena, *name.Interner, map[ir.ExprId]types.Idx) {
	in := name.New()
	arena := ir.New()
	pool := types.New()
	typeReg := registry.NewTypeRegistry()
	exprTypes := make(map[ir.ExprId]types.Idx)
	patterns := make(map[ir.MatchPatternId]PatternResolution)
	sigs := make(map[name.Name]ir.ParamRange)
	c := New(arena, pool, in, typeReg, exprTypes, patterns, sigs)
	return c, arena, in, exprTypes
}

func sp(n uint32) span.Span { return span.Span{Start: n, End: n + 1} }

func TestLowerBinaryFoldsIntConstants(t *testing.T) {
	c, arena, _, exprTypes := newTestCanon()

	left := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(0)))
	right := arena.AllocExpr(ir.NewIntLit(arena, 2, sp(1)))
	addID := arena.AllocExpr(ir.NewBinary(ir.BinAdd, left, right, sp(2)))
	exprTypes[left] = types.IdxInt
	exprTypes[right] = types.IdxInt
	exprTypes[addID] = types.IdxInt

	canID := c.Lower(addID)
	got := c.Can.Expr(canID)
	if got.Kind != CanConstant {
		t.Fatalf("expected a folded constant, got kind %v", got.Kind)
	}
	v := c.Consts.Value(ConstId(got.A))
	if v.Kind != ConstInt || v.Int != 3 {
		t.Errorf("1 + 2: got %+v, want Int(3)", v)
	}
}

func TestLowerBinaryOverflowDoesNotFold(t *testing.T) {
	c, arena, _, exprTypes := newTestCanon()

	left := arena.AllocExpr(ir.NewIntLit(arena, 1<<62, sp(0)))
	right := arena.AllocExpr(ir.NewIntLit(arena, 1<<62, sp(1)))
	addID := arena.AllocExpr(ir.NewBinary(ir.BinAdd, left, right, sp(2)))
	exprTypes[addID] = types.IdxInt

	canID := c.Lower(addID)
	got := c.Can.Expr(canID)
	if got.Kind != CanBinary {
		t.Errorf("expected overflow to suppress folding, got kind %v", got.Kind)
	}
}

func TestLowerIfEliminatesDeadBranch(t *testing.T) {
	c, arena, _, exprTypes := newTestCanon()

	cond := arena.AllocExpr(ir.NewBoolLit(true, sp(0)))
	then := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(1)))
	els := arena.AllocExpr(ir.NewIntLit(arena, 2, sp(2)))
	ifID := arena.AllocExpr(ir.NewIf(cond, then, els, sp(3)))
	exprTypes[ifID] = types.IdxInt

	canID := c.Lower(ifID)
	got := c.Can.Expr(canID)
	if got.Kind != CanConstant {
		t.Fatalf("expected dead-branch elimination to fold to the then-branch constant, got kind %v", got.Kind)
	}
	v := c.Consts.Value(ConstId(got.A))
	if v.Int != 1 {
		t.Errorf("if true {1} else {2}: got %d, want 1", v.Int)
	}
}

func TestLowerListSpreadFoldsIntoConcatChain(t *testing.T) {
	c, arena, _, exprTypes := newTestCanon()

	a := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(0)))
	b := arena.AllocExpr(ir.NewIdent(0, sp(1)))
	items := arena.AllocCallArgs([]ir.CallArg{
		{Value: a, Span: sp(0)},
		{Value: b, IsSpread: true, Span: sp(1)},
	})
	spreadID := arena.AllocExpr(ir.NewListSpread(items, sp(2)))
	exprTypes[spreadID] = pool_NewListInt(c)

	canID := c.Lower(spreadID)
	got := c.Can.Expr(canID)
	if got.Kind != CanMethodCall {
		t.Fatalf("expected a .concat() method call, got kind %v", got.Kind)
	}
	if c.Interner.Lookup(got.Name) != "concat" {
		t.Errorf("got method %q, want concat", c.Interner.Lookup(got.Name))
	}
}

func pool_NewListInt(c *Canonicalizer) types.Idx { return c.Pool.NewList(types.IdxInt) }

func TestConstValueTableDedupes(t *testing.T) {
	table := NewConstValueTable()
	a := table.Intern(ConstValue{Kind: ConstInt, Int: 42})
	b := table.Intern(ConstValue{Kind: ConstInt, Int: 42})
	if a != b {
		t.Errorf("interning the same constant twice should share one id: got %d and %d", a, b)
	}
	c := table.Intern(ConstValue{Kind: ConstInt, Int: 7})
	if c == a {
		t.Error("distinct constants should not share an id")
	}
}

func TestLowerMatchLiteralPattern(t *testing.T) {
	c, arena, in, exprTypes := newTestCanon()

	scrut := arena.AllocExpr(ir.NewBoolLit(true, sp(0)))
	truePat := arena.AllocMatchPattern(ir.MatchPattern{Kind: ir.PatLiteral, LitIsBool: true, LitBool: true})
	body1 := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(1)))
	wildcard := arena.AllocMatchPattern(ir.MatchPattern{Kind: ir.PatWildcard})
	body2 := arena.AllocExpr(ir.NewIntLit(arena, 2, sp(2)))
	arms := arena.AllocArms([]ir.MatchArm{
		{Pattern: truePat, Guard: ir.NoExpr, Body: body1, Span: sp(3)},
		{Pattern: wildcard, Guard: ir.NoExpr, Body: body2, Span: sp(4)},
	})
	matchID := arena.AllocExpr(ir.NewMatch(scrut, arms, sp(5)))
	exprTypes[matchID] = types.IdxInt
	_ = in

	canID := c.Lower(matchID)
	got := c.Can.Expr(canID)
	if got.Kind != CanMatch {
		t.Fatalf("expected a CanMatch node, got kind %v", got.Kind)
	}
	canArms := c.Can.ArmsOf(ir_CanArmRange(got))
	if len(canArms) != 2 {
		t.Fatalf("expected 2 lowered arms, got %d", len(canArms))
	}
	if c.Can.Pat(canArms[0].Pattern).Kind != CanPatLiteral {
		t.Errorf("first arm: got pattern kind %v, want CanPatLiteral", c.Can.Pat(canArms[0].Pattern).Kind)
	}
	if c.Can.Pat(canArms[1].Pattern).Kind != CanPatWildcard {
		t.Errorf("second arm: got pattern kind %v, want CanPatWildcard", c.Can.Pat(canArms[1].Pattern).Kind)
	}
}

func ir_CanArmRange(e CanExpr) CanArmRange { return CanArmRange{Start: e.B, Len: e.Len} }

// TestLowerStructLitWithSpread covers spec §8.5: `Point{ ...base, x: 10 }`
// against `Point{x: Int, y: Int, z: Int}` resolves every declared field,
// taking x from the explicit literal and y/z from the spread base.
func TestLowerStructLitWithSpread(t *testing.T) {
	c, arena, in, exprTypes := newTestCanon()

	xName, yName, zName := in.Intern("x"), in.Intern("y"), in.Intern("z")
	pointName := in.Intern("Point")
	if err := c.Types.Register(&registry.TypeDef{
		Kind: registry.KindStruct,
		Name: pointName,
		Fields: []registry.StructField{
			{Name: xName, Type: types.IdxInt},
			{Name: yName, Type: types.IdxInt},
			{Name: zName, Type: types.IdxInt},
		},
	}); err != nil {
		t.Fatalf("registering Point: %v", err)
	}

	base := arena.AllocExpr(ir.NewIdent(in.Intern("base"), sp(0)))
	exprTypes[base] = c.Pool.NewNamed(pointName)
	ten := arena.AllocExpr(ir.NewIntLit(arena, 10, sp(1)))

	fields := arena.AllocFieldInits([]ir.FieldInit{
		{Value: base, Span: sp(0)}, // spread: Name left zero
		{Name: xName, Value: ten, Span: sp(1)},
	})
	litID := arena.AllocExpr(ir.NewStructSpread(pointName, fields, sp(2)))
	exprTypes[litID] = exprTypes[base]

	canID := c.Lower(litID)
	got := c.Can.Expr(canID)
	if got.Kind != CanStructLit {
		t.Fatalf("expected a CanStructLit node, got kind %v", got.Kind)
	}
	inits := c.Can.FieldInitsOf(CanFieldInitRange{Start: got.A, Len: got.Len})
	if len(inits) != 3 {
		t.Fatalf("expected all 3 declared fields present, got %d", len(inits))
	}
	xInit := c.Can.Expr(inits[0].Value)
	if xInit.Kind != CanConstant || c.Consts.Value(ConstId(xInit.A)).Int != 10 {
		t.Errorf("field x: expected the literal 10, got kind %v", xInit.Kind)
	}
	yInit := c.Can.Expr(inits[1].Value)
	if yInit.Kind != CanField || c.Interner.Lookup(yInit.Name) != "y" {
		t.Errorf("field y: expected a Field(base, y) projection, got kind %v name %q", yInit.Kind, c.Interner.Lookup(yInit.Name))
	}
}
