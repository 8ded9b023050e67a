package registry

import (
	"fmt"
	"sync"

	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/types"
)

// AssocTypeDef is one associated-type slot a trait declares, with an
// optional default (types.Idx zero value IdxInt is a real type, so
// HasDefault distinguishes "no default" explicitly rather than relying
// on a sentinel Idx).
type AssocTypeDef struct {
	Name       name.Name
	Default    types.Idx
	HasDefault bool
}

// MethodSig is one method a trait declares, with its parameter and
// return types already resolved to pool indices and, if the trait
// supplies one, a default body.
type MethodSig struct {
	Name           name.Name
	Params         []types.Idx
	Return         types.Idx
	Uses           []name.Name // capability names this method's default body requires
	HasDefaultBody bool
	DefaultBody    ir.ExprId
}

// TraitDef is one trait declaration (§3.4).
type TraitDef struct {
	Name        name.Name
	Supertraits []name.Name
	AssocTypes  []AssocTypeDef
	Methods     []MethodSig
}

func (t *TraitDef) method(n name.Name) (*MethodSig, bool) {
	for i := range t.Methods {
		if t.Methods[i].Name == n {
			return &t.Methods[i], true
		}
	}
	return nil, false
}

// Impl is one `impl Trait for Receiver { ... }` block. AssocBindings
// holds the associated types this impl binds explicitly; trait
// defaults are not copied in at registration — AssocBinding falls back
// to them at lookup time.
type Impl struct {
	Trait         name.Name
	Receiver      types.Idx
	Methods       map[name.Name]ir.ExprId
	AssocBindings map[name.Name]types.Idx
}

// InherentImpl is one `impl Receiver { ... }` block (no trait).
type InherentImpl struct {
	Receiver types.Idx
	Methods  map[name.Name]ir.ExprId
}

type implKey struct {
	Trait    name.Name
	Receiver types.Idx
}

// TraitRegistry holds trait declarations and every impl block that
// targets them, plus inherent impls (§3.4).
type TraitRegistry struct {
	mu       sync.RWMutex
	traits   map[name.Name]*TraitDef
	impls    map[implKey]*Impl
	inherent map[types.Idx][]*InherentImpl
	// byReceiver indexes trait impls for fast method lookup without
	// scanning the whole impls map for every candidate trait.
	byReceiver map[types.Idx][]*Impl
}

// NewTraitRegistry returns an empty TraitRegistry.
func NewTraitRegistry() *TraitRegistry {
	return &TraitRegistry{
		traits:     make(map[name.Name]*TraitDef),
		impls:      make(map[implKey]*Impl),
		inherent:   make(map[types.Idx][]*InherentImpl),
		byReceiver: make(map[types.Idx][]*Impl),
	}
}

// RegisterTrait adds a trait declaration.
func (r *TraitRegistry) RegisterTrait(def *TraitDef) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.traits[def.Name]; exists {
		return fmt.Errorf("registry: trait %q already defined", def.Name)
	}
	r.traits[def.Name] = def
	return nil
}

// Trait returns the declaration for a trait name.
func (r *TraitRegistry) Trait(n name.Name) (*TraitDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.traits[n]
	return t, ok
}

// Supertraits returns a trait's declared supertraits.
func (r *TraitRegistry) Supertraits(n name.Name) []name.Name {
	if t, ok := r.Trait(n); ok {
		return t.Supertraits
	}
	return nil
}

// RegisterImpl adds an `impl Trait for Receiver` block.
func (r *TraitRegistry) RegisterImpl(impl *Impl) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := implKey{Trait: impl.Trait, Receiver: impl.Receiver}
	if _, exists := r.impls[key]; exists {
		return fmt.Errorf("registry: duplicate impl of trait %q for this receiver type", impl.Trait)
	}
	r.impls[key] = impl
	r.byReceiver[impl.Receiver] = append(r.byReceiver[impl.Receiver], impl)
	return nil
}

// RegisterInherentImpl adds an `impl Receiver` block.
func (r *TraitRegistry) RegisterInherentImpl(impl *InherentImpl) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inherent[impl.Receiver] = append(r.inherent[impl.Receiver], impl)
}

// Impl returns the impl of trait for receiver, if one is registered.
func (r *TraitRegistry) Impl(trait name.Name, receiver types.Idx) (*Impl, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	impl, ok := r.impls[implKey{Trait: trait, Receiver: receiver}]
	return impl, ok
}

// AssocBinding resolves a trait's associated type for a concrete
// receiver, falling back to the trait's default if the impl doesn't
// override it.
func (r *TraitRegistry) AssocBinding(trait name.Name, receiver types.Idx, assoc name.Name) (types.Idx, bool) {
	if impl, ok := r.Impl(trait, receiver); ok {
		if idx, ok := impl.AssocBindings[assoc]; ok {
			return idx, true
		}
	}
	if def, ok := r.Trait(trait); ok {
		for _, a := range def.AssocTypes {
			if a.Name == assoc && a.HasDefault {
				return a.Default, true
			}
		}
	}
	return 0, false
}

// MethodLookup is a resolved method found via an inherent or trait impl.
type MethodLookup struct {
	Trait    name.Name // name.Empty for an inherent method
	Receiver types.Idx
	Body     ir.ExprId
	Sig      *MethodSig // nil for inherent methods (no declared signature, only a body)
}

// AmbiguousMethodError reports that more than one trait impl on the
// same receiver supplies a method of the same name, with nothing to
// disambiguate by (§3.4).
type AmbiguousMethodError struct {
	Method     name.Name
	Candidates []name.Name
}

func (e *AmbiguousMethodError) Error() string {
	return fmt.Sprintf("ambiguous method %q: multiple trait impls provide it", e.Method)
}

// LookupMethod resolves method on receiver, checking inherent impls
// first, then trait impls (§3.4's inherent-then-trait ordering, one
// layer below MethodRegistry's built-in-first ordering).
func (r *TraitRegistry) LookupMethod(receiver types.Idx, method name.Name) (*MethodLookup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, inh := range r.inherent[receiver] {
		if body, ok := inh.Methods[method]; ok {
			return &MethodLookup{Receiver: receiver, Body: body}, nil
		}
	}

	var found []*MethodLookup
	for _, impl := range r.byReceiver[receiver] {
		if body, ok := impl.Methods[method]; ok {
			def := r.traits[impl.Trait]
			var sig *MethodSig
			if def != nil {
				sig, _ = def.method(method)
			}
			found = append(found, &MethodLookup{Trait: impl.Trait, Receiver: receiver, Body: body, Sig: sig})
			continue
		}
		// A trait default body satisfies the method even if this impl
		// doesn't override it.
		if def := r.traits[impl.Trait]; def != nil {
			if sig, ok := def.method(method); ok && sig.HasDefaultBody {
				found = append(found, &MethodLookup{Trait: impl.Trait, Receiver: receiver, Body: sig.DefaultBody, Sig: sig})
			}
		}
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		candidates := make([]name.Name, len(found))
		for i, f := range found {
			candidates[i] = f.Trait
		}
		return nil, &AmbiguousMethodError{Method: method, Candidates: candidates}
	}
}
