package pipeline

import (
	"testing"

	"github.com/sigil-lang/ori/internal/config"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/module"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/span"
)

func sp(n uint32) span.Span { return span.Span{Start: n, End: n + 1} }

func buildIdentity(in *name.Interner, arena *ir.Arena) *module.Module {
	xName := in.Intern("x")
	fnName := in.Intern("identity")

	xExpr := arena.AllocExpr(ir.NewIdent(xName, sp(0)))
	param := ir.Param{Name: xName, Annotation: ir.NoParsedType, Span: sp(0)}
	params := arena.AllocParams([]ir.Param{param})

	fn := module.FunctionDecl{
		Name:       fnName,
		Span:       sp(0),
		Params:     params,
		ReturnType: ir.NoParsedType,
		Body:       xExpr,
	}
	return &module.Module{Name: "test", Functions: []module.FunctionDecl{fn}}
}

func TestPipelineChecksAndLowers(t *testing.T) {
	in := name.New()
	ctx := module.NewContext(in, &module.Module{}, config.DefaultLimits())
	mod := buildIdentity(in, ctx.Arena)
	ctx.Mod = mod

	p := New(CheckStage{}, LowerStage{})
	result := p.Run(&Result{Ctx: ctx})

	if result.Typed == nil || !result.Typed.Succeeded() {
		t.Fatalf("expected identity to type-check cleanly")
	}
	if result.Canonical == nil {
		t.Fatalf("expected LowerStage to have run")
	}
	if _, ok := result.Canonical[mod.Functions[0].Name]; !ok {
		t.Fatalf("expected a canonical IR for identity")
	}
}

func TestLowerStageSkipsOnTypeError(t *testing.T) {
	in := name.New()
	ctx := module.NewContext(in, &module.Module{}, config.DefaultLimits())

	boolLit := ctx.Arena.AllocExpr(ir.NewBoolLit(true, sp(0)))
	intAnnotation := ctx.Arena.AllocParsedType(ir.ParsedType{Kind: ir.PTPrimitive, Name: in.Intern("Int")})

	fn := module.FunctionDecl{
		Name:       in.Intern("bad"),
		Span:       sp(0),
		ReturnType: intAnnotation,
		Body:       boolLit,
	}
	ctx.Mod = &module.Module{Name: "test", Functions: []module.FunctionDecl{fn}}

	p := New(CheckStage{}, LowerStage{})
	result := p.Run(&Result{Ctx: ctx})

	if result.Typed == nil || result.Typed.Succeeded() {
		t.Fatalf("expected a type error returning Bool where Int was declared")
	}
	if result.Canonical != nil {
		t.Fatalf("expected LowerStage to skip lowering an ill-typed module")
	}
}
