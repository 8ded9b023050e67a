package module

import (
	"testing"

	"github.com/sigil-lang/ori/internal/config"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/span"
)

func sp(n uint32) span.Span { return span.Span{Start: n, End: n + 1} }

// buildIdentity builds a Module containing one function: fn identity(x: Int) -> Int { x }
func buildIdentity(in *name.Interner, arena *ir.Arena) *Module {
	xName := in.Intern("x")
	fnName := in.Intern("identity")

	xExpr := arena.AllocExpr(ir.NewIdent(xName, sp(0)))
	param := ir.Param{Name: xName, Annotation: ir.NoParsedType, Span: sp(0)}
	params := arena.AllocParams([]ir.Param{param})

	fn := FunctionDecl{
		Name:       fnName,
		Span:       sp(0),
		Params:     params,
		ReturnType: ir.NoParsedType,
		Body:       xExpr,
	}
	return &Module{Name: "test", Functions: []FunctionDecl{fn}}
}

func TestContextCheckAndLowerIdentity(t *testing.T) {
	in := name.New()
	mod := &Module{}
	ctx := NewContext(in, mod, config.DefaultLimits())
	mod = buildIdentity(in, ctx.Arena)
	ctx.Mod = mod

	tm := ctx.Check()
	if !tm.Succeeded() {
		for _, e := range tm.Errors {
			t.Logf("error: %s", e.Message)
		}
		t.Fatalf("expected identity function to type-check with no errors, got %d", len(tm.Errors))
	}

	fn := mod.Functions[0]
	if _, ok := tm.ExprTypes[fn.Body]; !ok {
		t.Fatalf("expected body expr to have a resolved type")
	}

	lowered := ctx.Lower(tm)
	cir, ok := lowered[fn.Name]
	if !ok {
		t.Fatalf("expected a CanonicalIR for %q", in.Lookup(fn.Name))
	}
	if cir.Arena == nil {
		t.Fatalf("expected a non-nil canonical arena")
	}
}

func TestContextSessionIDsDiffer(t *testing.T) {
	in := name.New()
	c1 := NewContext(in, &Module{}, config.DefaultLimits())
	c2 := NewContext(in, &Module{}, config.DefaultLimits())
	if c1.SessionID == c2.SessionID {
		t.Fatalf("expected distinct session ids across contexts")
	}
}

func TestSharedArenaResolvesImportedFunction(t *testing.T) {
	in := name.New()
	srcCtx := NewContext(in, &Module{}, config.DefaultLimits())
	srcMod := buildIdentity(in, srcCtx.Arena)
	srcCtx.Mod = srcMod

	tm := srcCtx.Check()
	if !tm.Succeeded() {
		t.Fatalf("expected source module to type-check cleanly")
	}

	sa := srcCtx.Share(tm)
	decl, ty, ok := sa.ResolveFunction(in, srcMod.Functions[0].Name)
	if !ok {
		t.Fatalf("expected to resolve identity across the shared arena")
	}
	if decl.Name != srcMod.Functions[0].Name {
		t.Fatalf("resolved wrong declaration")
	}
	_ = srcCtx.Pool.Tag(ty) // just confirm ty indexes a real pool entry

	if _, _, ok := sa.ResolveFunction(in, in.Intern("missing")); ok {
		t.Fatalf("expected no resolution for an undeclared name")
	}
}

func TestModuleFunctionByName(t *testing.T) {
	in := name.New()
	arena := ir.New()
	mod := buildIdentity(in, arena)

	fn, ok := mod.FunctionByName(in, mod.Functions[0].Name)
	if !ok {
		t.Fatalf("expected to find identity by name")
	}
	if in.Lookup(fn.Name) != "identity" {
		t.Fatalf("got %q", in.Lookup(fn.Name))
	}

	_, ok = mod.FunctionByName(in, in.Intern("nope"))
	if ok {
		t.Fatalf("expected no match for undeclared name")
	}
}
