// Package module holds the per-compilation-unit records the core
// exchanges with its parser and backend collaborators (spec §3.6,
// §6.1-§6.2): the Module a parser hands in, the Context a Module is
// checked and lowered inside, and the TypedModule/CanonicalIR a
// compile produces.
package module

import (
	"github.com/sigil-lang/ori/internal/infer"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/span"
)

// FunctionDecl is one top-level function, test, or config declared in
// a Module — the shape a parser must deliver per §6.1 ("each with its
// name, span, generic parameters, type-parameter bounds, where
// clauses, uses clauses, parameters, return type, body expression id").
type FunctionDecl struct {
	Name         name.Name
	Span         span.Span
	Generics     ir.GenericParamRange // bounds live on ir.GenericParam itself
	WhereClauses []WhereClause
	Uses         []name.Name // capability set required to call this function (§4.5)
	Params       ir.ParamRange
	ReturnType   ir.ParsedTypeId
	Body         ir.ExprId
	IsTest       bool
	IsConfig     bool
}

// WhereClause is one `T: Trait` (or associated-type projection) bound
// on a generic function beyond what's already attached to the
// GenericParam itself — kept distinct per §6.1's own wording, since a
// where clause may name a bound on a type that is not one of the
// function's own declared generic parameters (e.g. a bound on an
// associated type projection).
type WhereClause struct {
	Subject ir.ParsedTypeId
	Trait   name.Name
}

// TraitDecl is one top-level `trait` declaration.
type TraitDecl struct {
	Name        name.Name
	Span        span.Span
	Methods     []FunctionDecl // method signatures; Body is NoExpr unless a default is given
	Supertraits []name.Name
}

// ImplDecl is one top-level `impl Trait for Type` (or inherent `impl
// Type`) block.
type ImplDecl struct {
	Span    span.Span
	Trait   name.Name // empty Name for an inherent impl
	Type    ir.ParsedTypeId
	Methods []FunctionDecl
}

// ExtendDecl is one top-level `extend Type { ... }` block adding
// methods to a type defined elsewhere (§4.6's extension-method surface).
type ExtendDecl struct {
	Span    span.Span
	Type    ir.ParsedTypeId
	Methods []FunctionDecl
}

// UseDecl is one top-level `use` statement importing another module's
// exports.
type UseDecl struct {
	Span span.Span
	Path []name.Name
}

// TypeDeclSyntax is the parser-level shape of a top-level `type`
// declaration, before internal/infer resolves it into a
// registry.TypeDef; the core re-derives the registry entry from this
// during the headers pass.
type TypeDeclSyntax struct {
	Name   name.Name
	Span   span.Span
	Params []name.Name
}

// Module is everything a parser delivers for one source unit (§6.1):
// a single ExprArena's worth of top-level declarations. Multiple
// Modules share one interner but each owns its own arena/pool/
// registries via a Context.
type Module struct {
	Name       string
	Functions  []FunctionDecl
	Tests      []FunctionDecl
	Configs    []FunctionDecl
	Types      []TypeDeclSyntax
	Traits     []TraitDecl
	Impls      []ImplDecl
	Extends    []ExtendDecl
	Uses       []UseDecl
	Extensions []name.Name // extension imports (bring an extend block's methods into scope)
}

// FunctionByName returns the first top-level function (not test or
// config) declared under n, if any.
func (m *Module) FunctionByName(in *name.Interner, n name.Name) (FunctionDecl, bool) {
	for _, f := range m.Functions {
		if f.Name == n {
			return f, true
		}
	}
	return FunctionDecl{}, false
}

// Signatures builds the name -> parameter-list table the canonicalizer
// reorders CallNamed/MethodCallNamed arguments against (§4.7): one
// entry per top-level function/test/config and one per trait/impl/
// extend method, keyed by plain name. A method name reused across two
// receiver types with different parameter orders collides here (last
// declaration wins) since nothing upstream of this table indexes
// methods by receiver type yet — an accepted limitation, not a silent
// miscompile, since mismatched reordering would only occur for that
// narrow overload shape.
func (m *Module) Signatures() map[name.Name]ir.ParamRange {
	sigs := make(map[name.Name]ir.ParamRange, len(m.Functions)+len(m.Tests)+len(m.Configs))
	for _, fn := range allFunctionDecls(m) {
		sigs[fn.Name] = fn.Params
	}
	for _, t := range m.Traits {
		for _, meth := range t.Methods {
			sigs[meth.Name] = meth.Params
		}
	}
	for _, impl := range m.Impls {
		for _, meth := range impl.Methods {
			sigs[meth.Name] = meth.Params
		}
	}
	for _, ext := range m.Extends {
		for _, meth := range ext.Methods {
			sigs[meth.Name] = meth.Params
		}
	}
	return sigs
}

// Capabilities builds the name -> declared-`uses`-set table that drives
// §4.5 capability checking: one entry per top-level function/test/
// config and one per trait/impl/extend method, keyed the same way and
// with the same name-not-receiver collision caveat as Signatures. A
// name absent from the result requires no capability.
func (m *Module) Capabilities() map[name.Name][]name.Name {
	caps := make(map[name.Name][]name.Name, len(m.Functions)+len(m.Tests)+len(m.Configs))
	for _, fn := range allFunctionDecls(m) {
		if len(fn.Uses) > 0 {
			caps[fn.Name] = fn.Uses
		}
	}
	for _, t := range m.Traits {
		for _, meth := range t.Methods {
			if len(meth.Uses) > 0 {
				caps[meth.Name] = meth.Uses
			}
		}
	}
	for _, impl := range m.Impls {
		for _, meth := range impl.Methods {
			if len(meth.Uses) > 0 {
				caps[meth.Name] = meth.Uses
			}
		}
	}
	for _, ext := range m.Extends {
		for _, meth := range ext.Methods {
			if len(meth.Uses) > 0 {
				caps[meth.Name] = meth.Uses
			}
		}
	}
	return caps
}

// GenericBounds builds the name -> bound-list table that drives §4.4.1
// phases 2-3 (bound satisfaction beyond ordinary unification): one
// entry per declaration with at least one `where` clause whose subject
// resolves to exactly one of that declaration's own parameter types,
// keyed and collision-capped the same way as Signatures/Capabilities.
// A where clause on a nested or associated-type subject (anything but
// a bare `T` matching a declared parameter's own annotation) has no
// single parameter to anchor a call-site check on and is skipped —
// the same carve-out infer.GenericBound documents.
func (m *Module) GenericBounds(arena *ir.Arena) map[name.Name][]infer.GenericBound {
	bounds := make(map[name.Name][]infer.GenericBound)
	add := func(fn FunctionDecl) {
		if len(fn.WhereClauses) == 0 {
			return
		}
		params := arena.ParamsOf(fn.Params)
		var fnBounds []infer.GenericBound
		for _, wc := range fn.WhereClauses {
			subject := arena.ParsedType(wc.Subject)
			if subject.Kind != ir.PTNamed {
				continue
			}
			for i, p := range params {
				if !p.Annotation.Valid() {
					continue
				}
				annot := arena.ParsedType(p.Annotation)
				if annot.Kind == ir.PTNamed && annot.Name == subject.Name {
					fnBounds = append(fnBounds, infer.GenericBound{Trait: wc.Trait, ParamIndex: i})
					break
				}
			}
		}
		if len(fnBounds) > 0 {
			bounds[fn.Name] = fnBounds
		}
	}

	for _, fn := range allFunctionDecls(m) {
		add(fn)
	}
	for _, t := range m.Traits {
		for _, meth := range t.Methods {
			add(meth)
		}
	}
	for _, impl := range m.Impls {
		for _, meth := range impl.Methods {
			add(meth)
		}
	}
	for _, ext := range m.Extends {
		for _, meth := range ext.Methods {
			add(meth)
		}
	}
	return bounds
}

