package infer

import (
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/types"
)

// Env is a lexically-scoped chain of variable bindings, one per
// block/lambda/match-arm/for-loop scope. Lookups walk outward to the
// enclosing scope on a miss (§4.4 "final expression determines type",
// "guard ... binding variables into the arm's scope").
type Env struct {
	parent *Env
	vars   map[name.Name]types.Idx

	// caps is the set of capabilities available in this scope: the
	// enclosing function's declared capabilities plus anything brought
	// in by a `with ... in` acquisition (§4.5). nil means "inherit
	// parent's set unchanged" so child scopes don't allocate unless they
	// actually widen the set.
	caps map[name.Name]bool
}

// NewEnv returns a root environment with no bindings and no capabilities.
func NewEnv() *Env {
	return &Env{vars: make(map[name.Name]types.Idx)}
}

// Child returns a new scope nested under e.
func (e *Env) Child() *Env {
	return &Env{parent: e, vars: make(map[name.Name]types.Idx)}
}

// Bind introduces n with type ty into this scope, shadowing any outer
// binding of the same name.
func (e *Env) Bind(n name.Name, ty types.Idx) {
	e.vars[n] = ty
}

// Lookup resolves n to its bound type, searching outward through
// enclosing scopes.
func (e *Env) Lookup(n name.Name) (types.Idx, bool) {
	for s := e; s != nil; s = s.parent {
		if ty, ok := s.vars[n]; ok {
			return ty, true
		}
	}
	return 0, false
}

// WithCapabilities returns a child scope that additionally has cap
// available, as if acquired by a `with cap in { ... }` block (§4.5).
func (e *Env) WithCapabilities(caps []name.Name) *Env {
	child := e.Child()
	child.caps = make(map[name.Name]bool, len(caps))
	for n, ok := range e.allCapabilities() {
		if ok {
			child.caps[n] = true
		}
	}
	for _, c := range caps {
		child.caps[c] = true
	}
	return child
}

func (e *Env) allCapabilities() map[name.Name]bool {
	out := make(map[name.Name]bool)
	for s := e; s != nil; s = s.parent {
		for n, ok := range s.caps {
			if ok {
				if _, seen := out[n]; !seen {
					out[n] = true
				}
			}
		}
	}
	return out
}

// HasCapability reports whether cap is available anywhere in e's scope
// chain.
func (e *Env) HasCapability(cap name.Name) bool {
	for s := e; s != nil; s = s.parent {
		if s.caps != nil {
			if has, ok := s.caps[cap]; ok {
				return has
			}
		}
	}
	return false
}

// Capabilities returns every capability available in this scope, for
// use as a diagnostic help listing (§4.5).
func (e *Env) Capabilities() []name.Name {
	set := e.allCapabilities()
	out := make([]name.Name, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	return out
}
