package types

import "github.com/sigil-lang/ori/internal/name"

// AliasResolver lets Unify dereference a Named type through whatever
// registry owns type-alias definitions, without types depending on
// that package (mirrors the teacher's Resolver interface, adapted to
// operate over pool indices instead of pointer Types).
type AliasResolver interface {
	// ResolveAlias returns the Idx an alias name stands for, and
	// whether n actually names an alias (false for ordinary nominal
	// types, which unify by name alone).
	ResolveAlias(n name.Name) (Idx, bool)
}

// Unify attempts to make a and b equal, recording any new variable
// bindings in s. It mutates s in place; on failure s may already hold
// partial bindings from the portion of the structure that did unify.
func Unify(p *Pool, s *Subst, a, b Idx) error {
	return unify(p, s, a, b, nil)
}

// UnifyWithResolver is Unify, additionally dereferencing Named types
// that name an alias.
func UnifyWithResolver(p *Pool, s *Subst, a, b Idx, resolver AliasResolver) error {
	return unify(p, s, a, b, resolver)
}

func unify(p *Pool, s *Subst, a, b Idx, resolver AliasResolver) error {
	a = s.Resolve(p, a)
	b = s.Resolve(p, b)

	if a == b {
		return nil
	}
	if p.Tag(a) == TagError || p.Tag(b) == TagError {
		// ERROR is a universal fixpoint: prevents cascades (§3.3).
		return nil
	}

	if p.Tag(a) == TagVar {
		return bindVar(p, s, a, b)
	}
	if p.Tag(b) == TagVar {
		return bindVar(p, s, b, a)
	}

	if p.Tag(a) == TagScheme {
		return unify(p, s, Instantiate(p, a), b, resolver)
	}
	if p.Tag(b) == TagScheme {
		return unify(p, s, a, Instantiate(p, b), resolver)
	}

	if resolver != nil {
		if resolved, ok := dereferenceAlias(p, a, resolver); ok {
			return unify(p, s, resolved, b, resolver)
		}
		if resolved, ok := dereferenceAlias(p, b, resolver); ok {
			return unify(p, s, a, resolved, resolver)
		}
	}

	tagA, tagB := p.Tag(a), p.Tag(b)
	if tagA != tagB {
		return mismatch(a, b, "type tag mismatch: "+tagA.String()+" vs "+tagB.String())
	}

	switch tagA {
	case TagInt, TagFloat, TagBool, TagStr, TagChar, TagByte, TagUnit, TagNever,
		TagDuration, TagSize, TagOrdering:
		// Same tag, zero data: already equal in every way that matters.
		return nil

	case TagList, TagSet, TagRange, TagOption, TagChannel, TagIterator, TagDoubleEndedIterator:
		return withContext("element type", unify(p, s, p.Elem(a), p.Elem(b), resolver))

	case TagTuple:
		ea, eb := p.TupleElems(a), p.TupleElems(b)
		if len(ea) != len(eb) {
			return mismatch(a, b, "tuple arity mismatch")
		}
		for i := range ea {
			if err := unify(p, s, ea[i], eb[i], resolver); err != nil {
				return withContext("tuple element", err)
			}
		}
		return nil

	case TagFunction:
		pa, pb := p.FunctionParams(a), p.FunctionParams(b)
		if len(pa) != len(pb) {
			return mismatch(a, b, "function arity mismatch")
		}
		for i := range pa {
			if err := unify(p, s, pa[i], pb[i], resolver); err != nil {
				return withContext("function parameter", err)
			}
		}
		return withContext("function return type", unify(p, s, p.FunctionReturn(a), p.FunctionReturn(b), resolver))

	case TagMap:
		ka, va := p.MapKeyValue(a)
		kb, vb := p.MapKeyValue(b)
		if err := unify(p, s, ka, kb, resolver); err != nil {
			return withContext("map key", err)
		}
		return withContext("map value", unify(p, s, va, vb, resolver))

	case TagResult:
		oka, erra := p.ResultOkErr(a)
		okb, errb := p.ResultOkErr(b)
		if err := unify(p, s, oka, okb, resolver); err != nil {
			return withContext("result ok type", err)
		}
		return withContext("result err type", unify(p, s, erra, errb, resolver))

	case TagNamed:
		if p.NamedName(a) != p.NamedName(b) {
			return mismatch(a, b, "named type mismatch")
		}
		return nil

	case TagApplied:
		if p.AppliedName(a) != p.AppliedName(b) {
			return mismatch(a, b, "applied type constructor mismatch")
		}
		aa, ab := p.AppliedArgs(a), p.AppliedArgs(b)
		if len(aa) != len(ab) {
			return mismatch(a, b, "applied type argument count mismatch")
		}
		for i := range aa {
			if err := unify(p, s, aa[i], ab[i], resolver); err != nil {
				return withContext("applied type argument", err)
			}
		}
		return nil

	case TagProjection:
		baseA, traitA, assocA := p.ProjectionParts(a)
		baseB, traitB, assocB := p.ProjectionParts(b)
		if traitA != traitB || assocA != assocB {
			return mismatch(a, b, "projection mismatch")
		}
		return withContext("projection base", unify(p, s, baseA, baseB, resolver))

	default:
		return mismatch(a, b, "unknown type tag")
	}
}

func dereferenceAlias(p *Pool, idx Idx, resolver AliasResolver) (Idx, bool) {
	if p.Tag(idx) != TagNamed {
		return 0, false
	}
	return resolver.ResolveAlias(p.NamedName(idx))
}

// bindVar binds the unification variable v to target, after an
// occurs-check against target (§4.3).
func bindVar(p *Pool, s *Subst, v, target Idx) error {
	if p.Tag(target) == TagVar && p.VarID(target) == p.VarID(v) {
		return nil
	}
	if occursIn(p, s, v, target) {
		return &InfiniteTypeError{Var: v, Type: target}
	}
	s.Bind(v, target)
	return nil
}

// occursIn reports whether v appears free anywhere inside target,
// walking every compound tag's children (§4.3 occurs-check).
func occursIn(p *Pool, s *Subst, v, target Idx) bool {
	target = s.Resolve(p, target)
	if target == v {
		return true
	}
	switch p.Tag(target) {
	case TagList, TagSet, TagRange, TagOption, TagChannel, TagIterator, TagDoubleEndedIterator:
		return occursIn(p, s, v, p.Elem(target))
	case TagTuple:
		for _, e := range p.TupleElems(target) {
			if occursIn(p, s, v, e) {
				return true
			}
		}
		return false
	case TagFunction:
		for _, param := range p.FunctionParams(target) {
			if occursIn(p, s, v, param) {
				return true
			}
		}
		return occursIn(p, s, v, p.FunctionReturn(target))
	case TagMap:
		k, val := p.MapKeyValue(target)
		return occursIn(p, s, v, k) || occursIn(p, s, v, val)
	case TagResult:
		ok, err := p.ResultOkErr(target)
		return occursIn(p, s, v, ok) || occursIn(p, s, v, err)
	case TagApplied:
		for _, arg := range p.AppliedArgs(target) {
			if occursIn(p, s, v, arg) {
				return true
			}
		}
		return false
	case TagProjection:
		base, _, _ := p.ProjectionParts(target)
		return occursIn(p, s, v, base)
	case TagScheme:
		return occursIn(p, s, v, p.SchemeBody(target))
	default:
		return false
	}
}
