package pipeline

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/sigil-lang/ori/internal/canon"
	"github.com/sigil-lang/ori/internal/config"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/module"
	"github.com/sigil-lang/ori/internal/name"
)

// Golden end-to-end tests run a hand-built function body through the
// full Check/Lower pipeline and snapshot the resulting canonical tree,
// the same way the teacher snapshots a parsed AST: testdata/*.snap
// holds the expected output, and -update regenerates it.
var update = flag.Bool("update", false, "update golden snapshot files")

func checkSnapshot(t *testing.T, name, actual string) {
	t.Helper()
	snapshotFile := filepath.Join("testdata", name+".snap")

	if *update {
		if err := os.WriteFile(snapshotFile, []byte(actual), 0644); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := os.ReadFile(snapshotFile)
	if err != nil {
		t.Fatalf("failed to read snapshot file: %v. Run with -update to create it.", err)
	}
	if string(expected) != actual {
		t.Errorf("snapshot mismatch:\n--- expected\n%s\n--- actual\n%s", expected, actual)
	}
}

// newGoldenContext returns a fresh Context whose Arena callers build
// expressions into before assigning ctx.Mod.
func newGoldenContext(in *name.Interner) *module.Context {
	return module.NewContext(in, &module.Module{}, config.DefaultLimits())
}

// runFunction runs a one-function module through CheckStage+LowerStage
// and returns the resulting Result.
func runFunction(t *testing.T, ctx *module.Context, fn module.FunctionDecl, in *name.Interner) *Result {
	t.Helper()
	ctx.Mod = &module.Module{Name: "golden", Functions: []module.FunctionDecl{fn}}

	p := New(CheckStage{}, LowerStage{})
	result := p.Run(&Result{Ctx: ctx})
	if !result.Typed.Succeeded() {
		t.Fatalf("expected %s to type-check cleanly, got errors: %v", in.Lookup(fn.Name), result.Typed.Errors)
	}
	return result
}

func dumpFunction(t *testing.T, r *Result, in *name.Interner, fnName name.Name) string {
	t.Helper()
	can, ok := r.Canonical[fnName]
	if !ok {
		t.Fatalf("no canonical IR for %s", in.Lookup(fnName))
	}
	return canon.Dump(can.Arena, can.Constants, r.Ctx.Pool, in, can.Root)
}

func intAnnotation(in *name.Interner, arena *ir.Arena) ir.ParsedTypeId {
	return arena.AllocParsedType(ir.ParsedType{Kind: ir.PTPrimitive, Name: in.Intern("Int")})
}

func strAnnotation(in *name.Interner, arena *ir.Arena) ir.ParsedTypeId {
	return arena.AllocParsedType(ir.ParsedType{Kind: ir.PTPrimitive, Name: in.Intern("Str")})
}

// Scenario 1 (spec §8.1): `1 + 2` folds to the constant 3.
func TestGoldenConstantFolding(t *testing.T) {
	in := name.New()
	ctx := newGoldenContext(in)
	arena := ctx.Arena

	left := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(0)))
	right := arena.AllocExpr(ir.NewIntLit(arena, 2, sp(1)))
	body := arena.AllocExpr(ir.NewBinary(ir.BinAdd, left, right, sp(2)))

	fn := module.FunctionDecl{Name: in.Intern("sum"), Span: sp(3), ReturnType: intAnnotation(in, arena), Body: body}
	r := runFunction(t, ctx, fn, in)
	checkSnapshot(t, "constant_folding", dumpFunction(t, r, in, fn.Name))
}

// Scenario 2 (spec §8.2): `10 / 0` is never folded — division is a
// runtime trap, not a compile-time error, so the Binary node survives.
func TestGoldenDivisionByZeroNotFolded(t *testing.T) {
	in := name.New()
	ctx := newGoldenContext(in)
	arena := ctx.Arena

	left := arena.AllocExpr(ir.NewIntLit(arena, 10, sp(0)))
	right := arena.AllocExpr(ir.NewIntLit(arena, 0, sp(1)))
	body := arena.AllocExpr(ir.NewBinary(ir.BinDiv, left, right, sp(2)))

	fn := module.FunctionDecl{Name: in.Intern("divz"), Span: sp(3), ReturnType: intAnnotation(in, arena), Body: body}
	r := runFunction(t, ctx, fn, in)
	checkSnapshot(t, "division_by_zero_not_folded", dumpFunction(t, r, in, fn.Name))
}

// Scenario 3 (spec §8.3): `if true { 42 } else { 99 }` eliminates the
// dead else-branch and lowers straight to the constant 42.
func TestGoldenDeadBranchElimination(t *testing.T) {
	in := name.New()
	ctx := newGoldenContext(in)
	arena := ctx.Arena

	cond := arena.AllocExpr(ir.NewBoolLit(true, sp(0)))
	then := arena.AllocExpr(ir.NewIntLit(arena, 42, sp(1)))
	els := arena.AllocExpr(ir.NewIntLit(arena, 99, sp(2)))
	body := arena.AllocExpr(ir.NewIf(cond, then, els, sp(3)))

	fn := module.FunctionDecl{Name: in.Intern("choose"), Span: sp(4), ReturnType: intAnnotation(in, arena), Body: body}
	r := runFunction(t, ctx, fn, in)
	checkSnapshot(t, "dead_branch_elimination", dumpFunction(t, r, in, fn.Name))
}

// Scenario 4 (spec §8.4): a template literal over an already-Str part
// lowers to a concat chain with no to_str wrap on that part.
func TestGoldenTemplateLiteralConcatChain(t *testing.T) {
	in := name.New()
	ctx := newGoldenContext(in)
	arena := ctx.Arena

	nameParam := in.Intern("name")
	hello := arena.AllocExpr(ir.NewStringLit(in.Intern("hello "), sp(0)))
	ident := arena.AllocExpr(ir.NewIdent(nameParam, sp(1)))
	bang := arena.AllocExpr(ir.NewStringLit(in.Intern("!"), sp(2)))
	parts := arena.AllocExprList([]ir.ExprId{hello, ident, bang})
	body := arena.AllocExpr(ir.NewTemplateLit(parts, sp(3)))

	param := ir.Param{Name: nameParam, Annotation: strAnnotation(in, arena), Span: sp(0)}
	fn := module.FunctionDecl{
		Name:       in.Intern("greet"),
		Span:       sp(4),
		Params:     arena.AllocParams([]ir.Param{param}),
		ReturnType: strAnnotation(in, arena),
		Body:       body,
	}
	r := runFunction(t, ctx, fn, in)
	checkSnapshot(t, "template_literal_concat_chain", dumpFunction(t, r, in, fn.Name))
}

// Scenario 5 (struct-with-spread field resolution) is covered directly
// at the canon package level, by TestLowerStructLitWithSpread in
// internal/canon/canon_test.go; repeating it here would only
// re-snapshot the same lowering in a noisier harness. Scenario 6 (match
// exhaustiveness over a tag pattern) has no test here: the nearest one,
// TestLowerMatchLiteralPattern in the same canon file, lowers a
// Bool-literal-plus-wildcard match and checks only the arm pattern
// kinds.
