package types

// Subst is the unification substitution table: a union-find-like map
// from a Var's pool Idx to the Idx it has been bound to, with path
// compression applied on lookup (§4.3).
type Subst struct {
	bindings map[Idx]Idx
}

// NewSubst returns an empty substitution table.
func NewSubst() *Subst { return &Subst{bindings: make(map[Idx]Idx)} }

// Resolve follows idx through the substitution table (compressing the
// path as it goes) and returns the representative Idx: either a bound
// non-Var type, or an unbound Var.
func (s *Subst) Resolve(p *Pool, idx Idx) Idx {
	for p.Tag(idx) == TagVar {
		next, ok := s.bindings[idx]
		if !ok {
			return idx
		}
		final := s.Resolve(p, next)
		if final != next {
			s.bindings[idx] = final // path compression
		}
		idx = final
	}
	return idx
}

// Bind records idx := target, assuming idx has already been confirmed
// to be an unbound Var and target has already passed the occurs check.
func (s *Subst) Bind(idx, target Idx) { s.bindings[idx] = target }
