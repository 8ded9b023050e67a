package registry

import (
	"testing"

	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/types"
)

func TestTypeRegistryRegisterAndLookup(t *testing.T) {
	in := name.New()
	r := NewTypeRegistry()
	def := &TypeDef{
		Kind: KindStruct,
		Name: in.Intern("Point"),
		Fields: []StructField{
			{Name: in.Intern("x"), Type: types.IdxInt, Visibility: Public},
			{Name: in.Intern("y"), Type: types.IdxInt, Visibility: Public},
		},
	}
	if err := r.Register(def); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, ok := r.Lookup(in.Intern("Point"))
	if !ok {
		t.Fatal("Lookup: not found")
	}
	if got != def {
		t.Fatal("Lookup: returned a different def")
	}
}

func TestTypeRegistryDuplicateNameErrors(t *testing.T) {
	in := name.New()
	r := NewTypeRegistry()
	def := &TypeDef{Kind: KindStruct, Name: in.Intern("Point")}
	if err := r.Register(def); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(def); err == nil {
		t.Fatal("expected an error on duplicate registration")
	}
}

func TestTypeRegistryResolveAlias(t *testing.T) {
	in := name.New()
	r := NewTypeRegistry()
	alias := &TypeDef{Kind: KindAlias, Name: in.Intern("Id"), Target: types.IdxInt}
	if err := r.Register(alias); err != nil {
		t.Fatalf("Register: %v", err)
	}

	idx, ok := r.ResolveAlias(in.Intern("Id"))
	if !ok || idx != types.IdxInt {
		t.Fatalf("ResolveAlias(Id) = (%v, %v), want (IdxInt, true)", idx, ok)
	}

	// A struct name is not an alias.
	structDef := &TypeDef{Kind: KindStruct, Name: in.Intern("Point")}
	if err := r.Register(structDef); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, ok := r.ResolveAlias(in.Intern("Point")); ok {
		t.Fatal("ResolveAlias on a struct name should fail")
	}

	if _, ok := r.ResolveAlias(in.Intern("DoesNotExist")); ok {
		t.Fatal("ResolveAlias on an unregistered name should fail")
	}
}

func TestTypeRegistryField(t *testing.T) {
	in := name.New()
	r := NewTypeRegistry()
	xField := in.Intern("x")
	def := &TypeDef{
		Kind: KindStruct,
		Name: in.Intern("Point"),
		Fields: []StructField{
			{Name: xField, Type: types.IdxInt, Visibility: Private},
		},
	}
	if err := r.Register(def); err != nil {
		t.Fatalf("Register: %v", err)
	}

	ty, vis, ok := r.Field(in.Intern("Point"), xField)
	if !ok || ty != types.IdxInt || vis != Private {
		t.Fatalf("Field(Point, x) = (%v, %v, %v), want (IdxInt, Private, true)", ty, vis, ok)
	}

	if _, _, ok := r.Field(in.Intern("Point"), in.Intern("z")); ok {
		t.Fatal("Field on a non-existent field should fail")
	}
	if _, _, ok := r.Field(in.Intern("NotAType"), xField); ok {
		t.Fatal("Field on a non-existent type should fail")
	}
}

func TestTypeRegistryVariantOf(t *testing.T) {
	in := name.New()
	r := NewTypeRegistry()
	some := in.Intern("Some")
	none := in.Intern("None")
	def := &TypeDef{
		Kind: KindEnum,
		Name: in.Intern("Option"),
		Variants: []Variant{
			{Name: some, Kind: VariantTuple, TupleTypes: []types.Idx{types.IdxInt}},
			{Name: none, Kind: VariantUnit},
		},
	}
	if err := r.Register(def); err != nil {
		t.Fatalf("Register: %v", err)
	}

	v, ok := r.VariantOf(in.Intern("Option"), some)
	if !ok || v.Kind != VariantTuple || len(v.TupleTypes) != 1 {
		t.Fatalf("VariantOf(Option, Some) = (%+v, %v)", v, ok)
	}

	v, ok = r.VariantOf(in.Intern("Option"), none)
	if !ok || v.Kind != VariantUnit {
		t.Fatalf("VariantOf(Option, None) = (%+v, %v)", v, ok)
	}

	if _, ok := r.VariantOf(in.Intern("Option"), in.Intern("Err")); ok {
		t.Fatal("VariantOf on a non-existent variant should fail")
	}
}
