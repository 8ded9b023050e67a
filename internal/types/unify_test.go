package types

import (
	"testing"

	"github.com/sigil-lang/ori/internal/name"
)

func TestUnifyPrimitivesEqual(t *testing.T) {
	p := New()
	s := NewSubst()
	if err := Unify(p, s, IdxInt, IdxInt); err != nil {
		t.Fatalf("Unify(Int, Int) = %v, want nil", err)
	}
}

func TestUnifyPrimitivesMismatch(t *testing.T) {
	p := New()
	s := NewSubst()
	if err := Unify(p, s, IdxInt, IdxBool); err == nil {
		t.Fatal("Unify(Int, Bool) = nil, want error")
	}
}

func TestUnifyErrorIsUniversalFixpoint(t *testing.T) {
	p := New()
	s := NewSubst()
	if err := Unify(p, s, IdxError, IdxBool); err != nil {
		t.Fatalf("Unify(Error, Bool) = %v, want nil", err)
	}
	if err := Unify(p, s, IdxInt, IdxError); err != nil {
		t.Fatalf("Unify(Int, Error) = %v, want nil", err)
	}
}

func TestUnifyVarBindsAndResolves(t *testing.T) {
	p := New()
	s := NewSubst()
	v := p.NewVar()
	if err := Unify(p, s, v, IdxInt); err != nil {
		t.Fatalf("Unify(v, Int) = %v, want nil", err)
	}
	if got := s.Resolve(p, v); got != IdxInt {
		t.Fatalf("Resolve(v) = %v, want Int", got)
	}
}

func TestUnifyOccursCheckFails(t *testing.T) {
	p := New()
	s := NewSubst()
	v := p.NewVar()
	list := p.NewList(v)
	if err := Unify(p, s, v, list); err == nil {
		t.Fatal("Unify(v, List<v>) = nil, want infinite-type error")
	} else if _, ok := err.(*InfiniteTypeError); !ok {
		t.Fatalf("error type = %T, want *InfiniteTypeError", err)
	}
}

func TestUnifyListElementMismatch(t *testing.T) {
	p := New()
	s := NewSubst()
	a := p.NewList(IdxInt)
	b := p.NewList(IdxBool)
	if err := Unify(p, s, a, b); err == nil {
		t.Fatal("Unify(List<Int>, List<Bool>) = nil, want error")
	}
}

func TestUnifyListElementVariable(t *testing.T) {
	p := New()
	s := NewSubst()
	v := p.NewVar()
	a := p.NewList(v)
	b := p.NewList(IdxStr)
	if err := Unify(p, s, a, b); err != nil {
		t.Fatalf("Unify(List<v>, List<Str>) = %v, want nil", err)
	}
	if got := s.Resolve(p, v); got != IdxStr {
		t.Fatalf("Resolve(v) = %v, want Str", got)
	}
}

func TestUnifyFunctionArityMismatch(t *testing.T) {
	p := New()
	s := NewSubst()
	f1 := p.NewFunction([]Idx{IdxInt}, IdxBool)
	f2 := p.NewFunction([]Idx{IdxInt, IdxInt}, IdxBool)
	if err := Unify(p, s, f1, f2); err == nil {
		t.Fatal("Unify of differing-arity functions = nil, want error")
	}
}

func TestUnifyFunctionParamsAndReturn(t *testing.T) {
	p := New()
	s := NewSubst()
	v1, v2 := p.NewVar(), p.NewVar()
	f1 := p.NewFunction([]Idx{v1}, v2)
	f2 := p.NewFunction([]Idx{IdxInt}, IdxBool)
	if err := Unify(p, s, f1, f2); err != nil {
		t.Fatalf("Unify(functions) = %v, want nil", err)
	}
	if got := s.Resolve(p, v1); got != IdxInt {
		t.Fatalf("param var resolved to %v, want Int", got)
	}
	if got := s.Resolve(p, v2); got != IdxBool {
		t.Fatalf("return var resolved to %v, want Bool", got)
	}
}

func TestUnifyNamedByNameOnly(t *testing.T) {
	p := New()
	s := NewSubst()
	interner := name.New()
	circle := interner.Intern("Circle")
	square := interner.Intern("Square")

	a := p.NewNamed(circle)
	b := p.NewNamed(circle)
	if err := Unify(p, s, a, b); err != nil {
		t.Fatalf("Unify(Named(Circle), Named(Circle)) = %v, want nil", err)
	}

	c := p.NewNamed(square)
	if err := Unify(p, s, a, c); err == nil {
		t.Fatal("Unify(Named(Circle), Named(Square)) = nil, want error")
	}
}

func TestUnifyAppliedNameAndArgs(t *testing.T) {
	p := New()
	s := NewSubst()
	interner := name.New()
	box := interner.Intern("Box")

	a := p.NewApplied(box, []Idx{IdxInt})
	b := p.NewApplied(box, []Idx{IdxInt})
	if err := Unify(p, s, a, b); err != nil {
		t.Fatalf("Unify(Box<Int>, Box<Int>) = %v, want nil", err)
	}

	c := p.NewApplied(box, []Idx{IdxBool})
	if err := Unify(p, s, a, c); err == nil {
		t.Fatal("Unify(Box<Int>, Box<Bool>) = nil, want error")
	}
}

func TestInstantiateProducesFreshVars(t *testing.T) {
	p := New()
	q := p.NewVar()
	body := p.NewList(q)
	scheme := p.NewScheme([]Idx{q}, body)

	m1 := Instantiate(p, scheme)
	m2 := Instantiate(p, scheme)
	if m1 == m2 {
		t.Fatal("two instantiations of the same scheme produced the same Idx")
	}
	if p.Tag(m1) != TagList || p.Tag(m2) != TagList {
		t.Fatalf("instantiated types are not List: %v, %v", p.Tag(m1), p.Tag(m2))
	}
	if p.Elem(m1) == p.Elem(m2) {
		t.Fatal("instantiated element variables are not distinct")
	}
}

func TestGeneralizeQuantifiesOnlyUnboundEnvVars(t *testing.T) {
	p := New()
	s := NewSubst()
	a, b := p.NewVar(), p.NewVar()
	fn := p.NewFunction([]Idx{a}, b)

	env := FreeVars(p, s, a) // pretend `a` is bound in the enclosing environment
	scheme := Generalize(p, s, fn, env)

	if p.Tag(scheme) != TagScheme {
		t.Fatalf("Generalize did not produce a Scheme: tag=%v", p.Tag(scheme))
	}
	quants := p.SchemeQuantifiers(scheme)
	if len(quants) != 1 || quants[0] != b {
		t.Fatalf("quantifiers = %v, want [%v]", quants, b)
	}
}

func TestGeneralizeWithNoFreeVarsReturnsUnchanged(t *testing.T) {
	p := New()
	s := NewSubst()
	concrete := p.NewFunction([]Idx{IdxInt}, IdxBool)
	got := Generalize(p, s, concrete, nil)
	if got != concrete {
		t.Fatalf("Generalize(concrete type) = %v, want unchanged %v", got, concrete)
	}
}

func TestUnifyWithResolverDereferencesAlias(t *testing.T) {
	p := New()
	s := NewSubst()
	interner := name.New()
	myInt := interner.Intern("MyInt")
	aliasIdx := p.NewNamed(myInt)

	resolver := fakeResolver{myInt: IdxInt}
	if err := UnifyWithResolver(p, s, aliasIdx, IdxInt, resolver); err != nil {
		t.Fatalf("UnifyWithResolver(alias, Int) = %v, want nil", err)
	}
}

type fakeResolver map[name.Name]Idx

func (r fakeResolver) ResolveAlias(n name.Name) (Idx, bool) {
	idx, ok := r[n]
	return idx, ok
}
