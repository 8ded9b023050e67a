package infer

import (
	"sort"
	"strings"

	"github.com/sigil-lang/ori/internal/diagnostic"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/registry"
	"github.com/sigil-lang/ori/internal/span"
	"github.com/sigil-lang/ori/internal/types"
)

// PatternResolutionKind distinguishes the two things a PatBinding
// pattern can mean (§4.4.3).
type PatternResolutionKind uint8

const (
	ResBinding PatternResolutionKind = iota
	ResUnitVariant
)

// PatternResolution records how an ambiguous PatBinding pattern was
// disambiguated; the canonicalizer reads this map to emit a tag
// comparison instead of a binding for ResUnitVariant (§4.4.3).
type PatternResolution struct {
	Kind         PatternResolutionKind
	TypeName     name.Name
	VariantIndex int
}

// namedTypeOf returns the registry type name idx stands for, if it's a
// Named or Applied reference, so pattern checking can consult the
// TypeRegistry for its variants/fields.
func (e *Engine) namedTypeOf(idx types.Idx) (name.Name, bool) {
	switch e.Pool.Tag(idx) {
	case types.TagNamed:
		return e.Pool.NamedName(idx), true
	case types.TagApplied:
		return e.Pool.AppliedName(idx), true
	default:
		return 0, false
	}
}

// checkPattern binds pat's variables into env against scrutinee type
// ty, resolving PatBinding ambiguity via the type registry (§4.4.3).
func (e *Engine) checkPattern(patID ir.MatchPatternId, ty types.Idx, env *Env) {
	pat := e.Arena.MatchPattern(patID)
	ty = e.resolve(ty)

	switch pat.Kind {
	case ir.PatWildcard:
		// binds nothing

	case ir.PatBinding:
		if typeName, ok := e.namedTypeOf(ty); ok {
			if def, ok := e.Types.Lookup(typeName); ok {
				for i, v := range def.Variants {
					if v.Name == pat.Name && v.Kind == registry.VariantUnit {
						e.Patterns[patID] = PatternResolution{Kind: ResUnitVariant, TypeName: typeName, VariantIndex: i}
						return
					}
				}
			}
		}
		e.Patterns[patID] = PatternResolution{Kind: ResBinding}
		env.Bind(pat.Name, ty)

	case ir.PatLiteral:
		e.CheckType(e.literalPatternType(pat), ty, pat.Span, ExpectedOrigin{})

	case ir.PatVariant:
		e.checkVariantPattern(patID, pat, ty, env)

	case ir.PatTuple:
		if e.Pool.Tag(ty) == types.TagTuple {
			elems := e.Pool.TupleElems(ty)
			subs := e.Arena.MatchPatternListOf(pat.Sub)
			for i, sub := range subs {
				if i < len(elems) {
					e.checkPattern(sub, elems[i], env)
				}
			}
		}

	case ir.PatListRest:
		elemTy := types.Idx(types.IdxError)
		if e.Pool.Tag(ty) == types.TagList {
			elemTy = e.Pool.Elem(ty)
		}
		for _, sub := range e.Arena.MatchPatternListOf(pat.Sub) {
			e.checkPattern(sub, elemTy, env)
		}
		if pat.HasRest && pat.RestBinder != name.Empty {
			env.Bind(pat.RestBinder, ty)
		}

	case ir.PatStructRest:
		typeName, _ := e.namedTypeOf(ty)
		subs := e.Arena.MatchPatternListOf(pat.Sub)
		for i, fieldName := range pat.FieldNames {
			fieldTy := types.Idx(types.IdxError)
			if typeName != name.Empty {
				if ft, _, ok := e.Types.Field(typeName, fieldName); ok {
					fieldTy = ft
				}
			}
			if i < len(subs) {
				e.checkPattern(subs[i], fieldTy, env)
			}
		}
		if pat.HasRest && pat.RestBinder != name.Empty {
			env.Bind(pat.RestBinder, ty)
		}

	case ir.PatRange:
		// Range patterns bind nothing; bounds are literal.

	case ir.PatOr:
		for _, alt := range e.Arena.MatchPatternListOf(pat.Sub) {
			e.checkPattern(alt, ty, env)
		}

	case ir.PatAt:
		subs := e.Arena.MatchPatternListOf(pat.Sub)
		if len(subs) > 0 {
			e.checkPattern(subs[0], ty, env)
		}
		env.Bind(pat.Name, ty)
	}
}

func (e *Engine) literalPatternType(pat ir.MatchPattern) types.Idx {
	switch {
	case pat.LitIsInt:
		return types.IdxInt
	case pat.LitIsFloat:
		return types.IdxFloat
	case pat.LitIsBool:
		return types.IdxBool
	case pat.LitIsStr:
		return types.IdxStr
	case pat.LitIsChar:
		return types.IdxChar
	default:
		return types.IdxError
	}
}

func (e *Engine) checkVariantPattern(patID ir.MatchPatternId, pat ir.MatchPattern, ty types.Idx, env *Env) {
	typeName, ok := e.namedTypeOf(ty)
	if !ok {
		return
	}
	variant, ok := e.Types.VariantOf(typeName, pat.Name)
	if !ok {
		e.Bag.Push(diagnostic.New(diagnostic.E2012PatternTypeMismatch, pat.Span,
			"no variant "+e.Interner.Lookup(pat.Name)+" on this type"))
		return
	}
	subs := e.Arena.MatchPatternListOf(pat.Sub)
	switch variant.Kind {
	case registry.VariantTuple:
		for i, sub := range subs {
			if i < len(variant.TupleTypes) {
				e.checkPattern(sub, variant.TupleTypes[i], env)
			}
		}
	case registry.VariantRecord:
		for i, sub := range subs {
			if i < len(pat.FieldNames) {
				for _, f := range variant.RecordFields {
					if f.Name == pat.FieldNames[i] {
						e.checkPattern(sub, f.Type, env)
						break
					}
				}
			}
		}
	}
}

// isIrrefutable reports whether pat matches every value of its type,
// resolving PatBinding via e.Patterns (a PatBinding resolved to
// ResUnitVariant is a constructor test, not a binding, so it is
// refutable like any other PatVariant).
func (e *Engine) isIrrefutable(patID ir.MatchPatternId) bool {
	pat := e.Arena.MatchPattern(patID)
	switch pat.Kind {
	case ir.PatWildcard:
		return true
	case ir.PatBinding:
		return e.Patterns[patID].Kind != ResUnitVariant
	case ir.PatAt:
		subs := e.Arena.MatchPatternListOf(pat.Sub)
		return len(subs) > 0 && e.isIrrefutable(subs[0])
	case ir.PatOr:
		for _, alt := range e.Arena.MatchPatternListOf(pat.Sub) {
			if !e.isIrrefutable(alt) {
				return false
			}
		}
		return true
	case ir.PatTuple:
		for _, sub := range e.Arena.MatchPatternListOf(pat.Sub) {
			if !e.isIrrefutable(sub) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// coveredConstructors collects every constructor name a (possibly
// Or-combined) pattern guarantees a match for — a bool literal's text
// or a variant/unit-variant's name — ignoring guards, since a guard
// can make even a full-coverage arm fail to match at runtime.
func (e *Engine) coveredConstructors(patID ir.MatchPatternId, out map[string]bool) {
	pat := e.Arena.MatchPattern(patID)
	switch pat.Kind {
	case ir.PatOr:
		for _, alt := range e.Arena.MatchPatternListOf(pat.Sub) {
			e.coveredConstructors(alt, out)
		}
	case ir.PatAt:
		subs := e.Arena.MatchPatternListOf(pat.Sub)
		if len(subs) > 0 {
			e.coveredConstructors(subs[0], out)
		}
	case ir.PatLiteral:
		if pat.LitIsBool {
			if pat.LitBool {
				out["true"] = true
			} else {
				out["false"] = true
			}
		}
	case ir.PatVariant:
		out[e.Interner.Lookup(pat.Name)] = true
	case ir.PatBinding:
		if res := e.Patterns[patID]; res.Kind == ResUnitVariant {
			out[e.Interner.Lookup(pat.Name)] = true
		}
	}
}

// checkExhaustiveness implements a simplified form of the §4.4.2
// constructor-decomposition algorithm: full coverage is verified for
// Bool and Enum scrutinees (where the constructor set is known and
// finite); for every other scrutinee shape, at least one irrefutable
// arm is required since an exhaustive literal/range covering can't be
// decided without a constraint solver this pass doesn't run. Arms
// reached only after an already-irrefutable (or already fully
// constructor-covering) earlier arm are flagged as redundant.
func (e *Engine) checkExhaustiveness(scrutineeTy types.Idx, arms []ir.MatchArm, matchSpan span.Span) {
	var required []string
	switch {
	case e.Pool.Tag(e.resolve(scrutineeTy)) == types.TagBool:
		required = []string{"true", "false"}
	default:
		if typeName, ok := e.namedTypeOf(e.resolve(scrutineeTy)); ok {
			if def, ok := e.Types.Lookup(typeName); ok && len(def.Variants) > 0 {
				for _, v := range def.Variants {
					required = append(required, e.Interner.Lookup(v.Name))
				}
			}
		}
	}

	covered := make(map[string]bool)
	coveredBy := make(map[string]span.Span) // ctor -> span of the arm that first covered it
	sawIrrefutable := false
	irrefutableSpan := span.Span{}
	for _, arm := range arms {
		if sawIrrefutable {
			e.Bag.Push(diagnostic.New(diagnostic.E3006RedundantPattern, arm.Span,
				"this arm is unreachable; a previous arm already matches every remaining case").
				WithLabel(irrefutableSpan, "every remaining case is already matched here"))
			continue
		}
		if arm.Guard.Valid() {
			// A guarded arm can fail at runtime, so it never
			// contributes to coverage and can never make a later
			// arm redundant.
			continue
		}
		armCovered := make(map[string]bool)
		e.coveredConstructors(arm.Pattern, armCovered)
		allAlreadyCovered := len(required) > 0 && len(armCovered) > 0
		var shadowedBy span.Span
		for ctor := range armCovered {
			if !covered[ctor] {
				allAlreadyCovered = false
			} else {
				shadowedBy = coveredBy[ctor]
			}
			covered[ctor] = true
			if _, seen := coveredBy[ctor]; !seen {
				coveredBy[ctor] = arm.Span
			}
		}
		if len(required) > 0 && len(armCovered) > 0 && allAlreadyCovered {
			e.Bag.Push(diagnostic.New(diagnostic.E3006RedundantPattern, arm.Span,
				"this pattern's constructor is already covered by an earlier arm").
				WithLabel(shadowedBy, "already covered by this arm"))
		}
		if e.isIrrefutable(arm.Pattern) {
			sawIrrefutable = true
			irrefutableSpan = arm.Span
		}
		if !sawIrrefutable && len(required) > 0 {
			full := true
			for _, ctor := range required {
				if !covered[ctor] {
					full = false
					break
				}
			}
			if full {
				sawIrrefutable = true
				irrefutableSpan = arm.Span
			}
		}
	}

	if sawIrrefutable {
		return
	}
	if len(required) > 0 {
		var missing []string
		for _, ctor := range required {
			if !covered[ctor] {
				missing = append(missing, ctor)
			}
		}
		if len(missing) == 0 {
			return
		}
		sort.Strings(missing)
		e.Bag.Push(diagnostic.New(diagnostic.E3001NonExhaustiveMatch, matchSpan,
			"match is not exhaustive; missing: "+strings.Join(missing, ", ")))
		return
	}
	e.Bag.Push(diagnostic.New(diagnostic.E3001NonExhaustiveMatch, matchSpan,
		"match is not exhaustive; add a wildcard or binding arm to cover the remaining cases"))
}
