package types

// Instantiate takes a Scheme and substitutes a fresh variable for each
// of its quantifiers, producing a monotype fit for use at a particular
// call site (§4.3).
func Instantiate(p *Pool, scheme Idx) Idx {
	if p.Tag(scheme) != TagScheme {
		return scheme
	}
	quants := p.SchemeQuantifiers(scheme)
	fresh := NewSubst()
	for _, q := range quants {
		fresh.Bind(q, p.NewVar())
	}
	return substitute(p, fresh, p.SchemeBody(scheme))
}

// substitute materializes a fully-resolved copy of idx under s,
// without mutating the pool entries already allocated (unlike Resolve,
// which only chases Var -> Var bindings, this rebuilds any compound
// term that contains a substituted variable anywhere inside it).
func substitute(p *Pool, s *Subst, idx Idx) Idx {
	resolved := s.Resolve(p, idx)
	switch p.Tag(resolved) {
	case TagList:
		return p.NewList(substitute(p, s, p.Elem(resolved)))
	case TagSet:
		return p.NewSet(substitute(p, s, p.Elem(resolved)))
	case TagRange:
		return p.NewRange(substitute(p, s, p.Elem(resolved)))
	case TagOption:
		return p.NewOption(substitute(p, s, p.Elem(resolved)))
	case TagChannel:
		return p.NewChannel(substitute(p, s, p.Elem(resolved)))
	case TagIterator:
		return p.NewIterator(substitute(p, s, p.Elem(resolved)))
	case TagDoubleEndedIterator:
		return p.NewDoubleEndedIterator(substitute(p, s, p.Elem(resolved)))
	case TagTuple:
		elems := p.TupleElems(resolved)
		out := make([]Idx, len(elems))
		for i, e := range elems {
			out[i] = substitute(p, s, e)
		}
		return p.NewTuple(out)
	case TagFunction:
		params := p.FunctionParams(resolved)
		out := make([]Idx, len(params))
		for i, pr := range params {
			out[i] = substitute(p, s, pr)
		}
		return p.NewFunction(out, substitute(p, s, p.FunctionReturn(resolved)))
	case TagMap:
		k, v := p.MapKeyValue(resolved)
		return p.NewMap(substitute(p, s, k), substitute(p, s, v))
	case TagResult:
		ok, err := p.ResultOkErr(resolved)
		return p.NewResult(substitute(p, s, ok), substitute(p, s, err))
	case TagApplied:
		args := p.AppliedArgs(resolved)
		out := make([]Idx, len(args))
		for i, a := range args {
			out[i] = substitute(p, s, a)
		}
		return p.NewApplied(p.AppliedName(resolved), out)
	case TagProjection:
		base, trait, assoc := p.ProjectionParts(resolved)
		return p.NewProjection(substitute(p, s, base), trait, assoc)
	default:
		return resolved
	}
}

// FreeVars collects the unification variables that occur free in idx
// under the current substitution (i.e. still unbound), as a set keyed
// by Var id.
func FreeVars(p *Pool, s *Subst, idx Idx) map[uint32]Idx {
	out := make(map[uint32]Idx)
	collectFreeVars(p, s, idx, out)
	return out
}

func collectFreeVars(p *Pool, s *Subst, idx Idx, out map[uint32]Idx) {
	resolved := s.Resolve(p, idx)
	switch p.Tag(resolved) {
	case TagVar:
		out[p.VarID(resolved)] = resolved
	case TagList, TagSet, TagRange, TagOption, TagChannel, TagIterator, TagDoubleEndedIterator:
		collectFreeVars(p, s, p.Elem(resolved), out)
	case TagTuple:
		for _, e := range p.TupleElems(resolved) {
			collectFreeVars(p, s, e, out)
		}
	case TagFunction:
		for _, pr := range p.FunctionParams(resolved) {
			collectFreeVars(p, s, pr, out)
		}
		collectFreeVars(p, s, p.FunctionReturn(resolved), out)
	case TagMap:
		k, v := p.MapKeyValue(resolved)
		collectFreeVars(p, s, k, out)
		collectFreeVars(p, s, v, out)
	case TagResult:
		ok, err := p.ResultOkErr(resolved)
		collectFreeVars(p, s, ok, out)
		collectFreeVars(p, s, err, out)
	case TagApplied:
		for _, a := range p.AppliedArgs(resolved) {
			collectFreeVars(p, s, a, out)
		}
	case TagProjection:
		base, _, _ := p.ProjectionParts(resolved)
		collectFreeVars(p, s, base, out)
	case TagScheme:
		// A nested Scheme's own quantifiers are already bound; only its
		// body can still mention variables free at this level.
		collectFreeVars(p, s, p.SchemeBody(resolved), out)
	}
}

// Generalize quantifies every variable free in idx but not free in
// envFreeVars (the enclosing environment) into a Scheme (§4.3). If no
// variable qualifies, idx is returned unchanged rather than wrapped in
// a trivial zero-quantifier Scheme.
func Generalize(p *Pool, s *Subst, idx Idx, envFreeVars map[uint32]Idx) Idx {
	candidates := FreeVars(p, s, idx)
	var quantifiers []Idx
	for id, v := range candidates {
		if _, bound := envFreeVars[id]; !bound {
			quantifiers = append(quantifiers, v)
		}
	}
	if len(quantifiers) == 0 {
		return idx
	}
	return p.NewScheme(quantifiers, idx)
}
