package module

import (
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/registry"
	"github.com/sigil-lang/ori/internal/types"
)

// SharedArena is the handle one module keeps on another's already-
// checked state so a `use` of an imported function can be lowered and
// later code-generated without re-checking the imported module or
// copying its arena (§3.6). It carries exactly what a consumer needs
// to resolve an imported name and read the referenced function's
// already-resolved type and body: the exporting module's own arena,
// pool, type registry, declaration list, and completed TypedModule.
//
// Go's garbage collector makes the handle itself a plain pointer
// rather than anything resembling the teacher's explicit reference
// counting — nothing here manages a refcount, the GC keeps the source
// Context's arena alive for as long as any SharedArena (or
// FunctionDecl pulled from it) still points into it.
type SharedArena struct {
	ModuleName string
	Arena      *ir.Arena
	Pool       *types.Pool
	Types      *registry.TypeRegistry
	Mod        *Module
	Typed      *TypedModule
}

// Share exposes c's checked module for another Context to import from.
// tm must be the TypedModule c.Check() produced; sharing before Check
// has run would hand out a SharedArena whose Typed.ExprTypes is empty.
func (c *Context) Share(tm *TypedModule) *SharedArena {
	return &SharedArena{
		ModuleName: c.Mod.Name,
		Arena:      c.Arena,
		Pool:       c.Pool,
		Types:      c.Types,
		Mod:        c.Mod,
		Typed:      tm,
	}
}

// Imports collects the SharedArenas a Context has pulled in so far,
// keyed by the importing module's own alias for each — mirroring the
// teacher's Module.Imports alias-to-module map, generalized from "whole
// module import" to "one resolved function handle per use clause."
type Imports map[name.Name]*SharedArena

// ResolveFunction looks up fn (declared in the module backing sa) and
// returns its declaration plus resolved type, ready for the importing
// module's lowering pass to reference across the arena boundary.
// Returns false if fn names a test or config rather than a plain
// function, or isn't declared in sa's module at all — both are
// unimportable by construction.
func (sa *SharedArena) ResolveFunction(in *name.Interner, fn name.Name) (FunctionDecl, types.Idx, bool) {
	decl, ok := sa.Mod.FunctionByName(in, fn)
	if !ok {
		return FunctionDecl{}, 0, false
	}
	ty, ok := sa.Typed.ExprTypes[decl.Body]
	if !ok {
		return FunctionDecl{}, 0, false
	}
	return decl, ty, true
}
