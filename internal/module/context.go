package module

import (
	"github.com/google/uuid"

	"github.com/sigil-lang/ori/internal/canon"
	"github.com/sigil-lang/ori/internal/config"
	"github.com/sigil-lang/ori/internal/diagnostic"
	"github.com/sigil-lang/ori/internal/infer"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/registry"
	"github.com/sigil-lang/ori/internal/types"
)

// Context owns the mutable state one Module is checked and lowered
// through (§3.6): the arena, type pool, and three registries have
// exactly one writer, the Context itself, for the lifetime of a
// compile. The Interner is the one piece of state shared across every
// Context in a process, passed in rather than owned.
type Context struct {
	SessionID uuid.UUID

	Interner *name.Interner
	Arena    *ir.Arena
	Pool     *types.Pool
	Types    *registry.TypeRegistry
	Traits   *registry.TraitRegistry
	Methods  *registry.MethodRegistry
	Bag      *diagnostic.Bag

	Mod *Module
}

// NewContext allocates a fresh Context for checking mod, sharing in
// across every Context in the process the way the teacher's single
// process-wide identifier table is shared across modules.
func NewContext(in *name.Interner, mod *Module, lim config.Limits) *Context {
	return &Context{
		SessionID: newSessionID(),
		Interner:  in,
		Arena:     ir.New(),
		Pool:      types.New(),
		Types:     registry.NewTypeRegistry(),
		Traits:    registry.NewTraitRegistry(),
		Methods:   registry.NewMethodRegistry(in),
		Bag:       diagnostic.NewBag(lim),
		Mod:       mod,
	}
}

// newSessionID is a seam so a replayed/fuzzed compile can substitute a
// deterministic id; production callers always get a real random UUID.
var newSessionID = uuid.New

// Engine builds an inference engine bound to this Context's arena,
// pool, and registries — one per Check call, since internal/infer's
// Engine carries per-compile scratch state (return-type stack,
// substitution table) that must not survive past a single pass.
func (c *Context) Engine() *infer.Engine {
	return infer.New(c.Arena, c.Pool, c.Interner, c.Types, c.Traits, c.Methods, c.Bag)
}

// Check type-checks every function body in c.Mod and returns the
// resulting TypedModule. Per §5, this is the module's one single-
// threaded pass: the arena and pool are exclusively owned for its
// duration.
func (c *Context) Check() *TypedModule {
	eng := c.Engine()
	eng.FuncUses = c.Mod.Capabilities()
	eng.FuncBounds = c.Mod.GenericBounds(c.Arena)
	for _, fn := range allFunctionDecls(c.Mod) {
		if !fn.Body.Valid() {
			continue // signature-only (trait method stub, extern decl)
		}
		generics := functionGenerics(eng, fn)
		eng.CheckFunction(fn.Params, fn.ReturnType, fn.Body, generics, fn.Uses)
	}
	eng.Finish()

	diagnostics := c.Bag.All()
	var errs, warns []*diagnostic.Diagnostic
	for _, d := range diagnostics {
		if d.Severity == diagnostic.Error {
			errs = append(errs, d)
		} else if d.Severity == diagnostic.Warning {
			warns = append(warns, d)
		}
	}

	return &TypedModule{
		ExprTypes:          eng.ExprTypes,
		PatternResolutions: eng.Patterns,
		Errors:             errs,
		Warnings:           warns,
	}
}

// functionGenerics turns fn's declared generic parameters into fresh
// pool Vars, one per parameter, so a generic function's body type-
// checks against its own parameters rather than against concrete
// types (§4.4.1).
func functionGenerics(eng *infer.Engine, fn FunctionDecl) infer.TypeParams {
	params := eng.Arena.GenericParamsOf(fn.Generics)
	if len(params) == 0 {
		return nil
	}
	tp := make(infer.TypeParams, len(params))
	for _, p := range params {
		tp[p.Name] = eng.Pool.NewVar()
	}
	return tp
}

// Lower canonicalizes every function body in c.Mod against an already
// type-checked tm, returning one CanonicalIR per function keyed by its
// declared name. A module's canonical IR is a forest, not a single
// tree, since each top-level function lowers independently.
func (c *Context) Lower(tm *TypedModule) map[name.Name]*CanonicalIR {
	patterns := make(map[ir.MatchPatternId]canon.PatternResolution, len(tm.PatternResolutions))
	for id, res := range tm.PatternResolutions {
		patterns[id] = canon.PatternResolution{
			Kind:         canon.PatternResolutionKind(res.Kind),
			TypeName:     res.TypeName,
			VariantIndex: res.VariantIndex,
		}
	}

	sigs := c.Mod.Signatures()
	out := make(map[name.Name]*CanonicalIR, len(c.Mod.Functions))
	for _, fn := range allFunctionDecls(c.Mod) {
		if !fn.Body.Valid() {
			continue
		}
		cz := canon.New(c.Arena, c.Pool, c.Interner, c.Types, tm.ExprTypes, patterns, sigs)
		root := cz.Lower(fn.Body)
		out[fn.Name] = &CanonicalIR{
			Arena:     cz.Can,
			Root:      root,
			Constants: cz.Consts,
		}
	}
	return out
}

func allFunctionDecls(m *Module) []FunctionDecl {
	all := make([]FunctionDecl, 0, len(m.Functions)+len(m.Tests)+len(m.Configs))
	all = append(all, m.Functions...)
	all = append(all, m.Tests...)
	all = append(all, m.Configs...)
	return all
}
