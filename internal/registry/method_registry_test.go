package registry

import (
	"testing"

	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/types"
)

func TestBuiltinMethodsRegistered(t *testing.T) {
	in := name.New()
	r := NewMethodRegistry(in)

	cases := []struct {
		tag types.Tag
		m   string
	}{
		{types.TagList, "len"},
		{types.TagList, "map"},
		{types.TagOption, "unwrap"},
		{types.TagResult, "unwrap_err"},
		{types.TagMap, "keys"},
		{types.TagSet, "contains"},
		{types.TagStr, "to_upper"},
		{types.TagInt, "clamp"},
		{types.TagFloat, "sqrt"},
	}
	for _, c := range cases {
		if !r.HasBuiltin(c.tag, in.Intern(c.m)) {
			t.Errorf("HasBuiltin(%s, %q) = false, want true", c.tag, c.m)
		}
	}
}

func TestFixedReturnType(t *testing.T) {
	in := name.New()
	r := NewMethodRegistry(in)
	p := types.New()

	m, ok := r.GetBuiltin(types.TagList, in.Intern("len"))
	if !ok {
		t.Fatal("GetBuiltin(List, len) not found")
	}
	listTy := p.NewList(types.IdxInt)
	if got := r.BuiltinReturnType(p, listTy, m); got != types.IdxInt {
		t.Errorf("BuiltinReturnType(len) = %v, want IdxInt", got)
	}
}

func TestElementReturnType(t *testing.T) {
	in := name.New()
	r := NewMethodRegistry(in)
	p := types.New()

	m, ok := r.GetBuiltin(types.TagOption, in.Intern("unwrap"))
	if !ok {
		t.Fatal("GetBuiltin(Option, unwrap) not found")
	}
	optTy := p.NewOption(types.IdxStr)
	if got := r.BuiltinReturnType(p, optTy, m); got != types.IdxStr {
		t.Errorf("BuiltinReturnType(unwrap) = %v, want IdxStr", got)
	}
}

func TestWrapOptionTransform(t *testing.T) {
	in := name.New()
	r := NewMethodRegistry(in)
	p := types.New()

	m, ok := r.GetBuiltin(types.TagList, in.Intern("first"))
	if !ok {
		t.Fatal("GetBuiltin(List, first) not found")
	}
	listTy := p.NewList(types.IdxInt)
	got := r.BuiltinReturnType(p, listTy, m)
	if p.Tag(got) != types.TagOption {
		t.Fatalf("BuiltinReturnType(first) tag = %s, want Option", p.Tag(got))
	}
	if p.Elem(got) != types.IdxInt {
		t.Errorf("BuiltinReturnType(first) elem = %v, want IdxInt", p.Elem(got))
	}
}

func TestResultOkErrTransform(t *testing.T) {
	in := name.New()
	r := NewMethodRegistry(in)
	p := types.New()
	resultTy := p.NewResult(types.IdxInt, types.IdxStr)

	unwrap, _ := r.GetBuiltin(types.TagResult, in.Intern("unwrap"))
	if got := r.BuiltinReturnType(p, resultTy, unwrap); got != types.IdxInt {
		t.Errorf("unwrap return = %v, want IdxInt", got)
	}
	unwrapErr, _ := r.GetBuiltin(types.TagResult, in.Intern("unwrap_err"))
	if got := r.BuiltinReturnType(p, resultTy, unwrapErr); got != types.IdxStr {
		t.Errorf("unwrap_err return = %v, want IdxStr", got)
	}
	ok, _ := r.GetBuiltin(types.TagResult, in.Intern("ok"))
	gotOk := r.BuiltinReturnType(p, resultTy, ok)
	if p.Tag(gotOk) != types.TagOption || p.Elem(gotOk) != types.IdxInt {
		t.Errorf("ok return = %v, want Option<Int>", gotOk)
	}
}

func TestMapKeyValueTransform(t *testing.T) {
	in := name.New()
	r := NewMethodRegistry(in)
	p := types.New()
	mapTy := p.NewMap(types.IdxStr, types.IdxInt)

	keys, _ := r.GetBuiltin(types.TagMap, in.Intern("keys"))
	gotKeys := r.BuiltinReturnType(p, mapTy, keys)
	if p.Tag(gotKeys) != types.TagList || p.Elem(gotKeys) != types.IdxStr {
		t.Errorf("keys return = %v, want List<Str>", gotKeys)
	}

	values, _ := r.GetBuiltin(types.TagMap, in.Intern("values"))
	gotValues := r.BuiltinReturnType(p, mapTy, values)
	if p.Tag(gotValues) != types.TagList || p.Elem(gotValues) != types.IdxInt {
		t.Errorf("values return = %v, want List<Int>", gotValues)
	}
}

func TestBuiltinMethodsForTag(t *testing.T) {
	in := name.New()
	r := NewMethodRegistry(in)
	methods := r.BuiltinMethodsForTag(types.TagSet)
	if len(methods) == 0 {
		t.Fatal("BuiltinMethodsForTag(Set) returned nothing")
	}
	found := false
	for _, m := range methods {
		if m == in.Intern("contains") {
			found = true
		}
	}
	if !found {
		t.Error("BuiltinMethodsForTag(Set) missing \"contains\"")
	}
}

func TestMethodRegistryLookupPrefersBuiltinOverTrait(t *testing.T) {
	in := name.New()
	r := NewMethodRegistry(in)
	traits := NewTraitRegistry()
	p := types.New()
	listTy := p.NewList(types.IdxInt)

	res, err := r.Lookup(p, listTy, in.Intern("len"), traits)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !res.IsBuiltin {
		t.Fatal("Lookup should resolve to a builtin method")
	}
}

func TestMethodRegistryLookupFallsBackToTraits(t *testing.T) {
	in := name.New()
	r := NewMethodRegistry(in)
	traits := NewTraitRegistry()
	p := types.New()

	namedTy := p.NewNamed(in.Intern("Point"))
	method := in.Intern("distance")
	traits.RegisterInherentImpl(&InherentImpl{
		Receiver: namedTy,
		Methods:  map[name.Name]ir.ExprId{method: 1},
	})

	res, err := r.Lookup(p, namedTy, method, traits)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if res == nil || res.IsBuiltin || res.Impl == nil {
		t.Fatalf("Lookup = %+v, want a non-builtin inherent resolution", res)
	}
	if res.Impl.Body != 1 {
		t.Errorf("Impl.Body = %v, want 1", res.Impl.Body)
	}
}
