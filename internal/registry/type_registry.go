// Package registry implements the three per-module lookup tables
// described by spec §3.4: TypeRegistry (struct/enum/alias/newtype
// definitions), TraitRegistry (trait definitions and their impls), and
// MethodRegistry (the unified built-in -> inherent -> trait method
// lookup).
package registry

import (
	"fmt"
	"sync"

	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/types"
)

// TypeKind tags the variant of a TypeDef.
type TypeKind uint8

const (
	KindStruct TypeKind = iota
	KindEnum
	KindAlias
	KindNewtype
)

// Visibility marks a struct field's accessibility.
type Visibility uint8

const (
	Private Visibility = iota
	Public
)

// StructField is one field of a Struct definition, or one field of a
// Record-shaped enum variant.
type StructField struct {
	Name       name.Name
	Type       types.Idx
	Visibility Visibility
}

// VariantKind tags the shape of an enum variant's payload.
type VariantKind uint8

const (
	VariantUnit VariantKind = iota
	VariantTuple
	VariantRecord
)

// Variant is one constructor of an Enum definition.
type Variant struct {
	Name         name.Name
	Kind         VariantKind
	TupleTypes   []types.Idx   // VariantTuple
	RecordFields []StructField // VariantRecord
}

// TypeDef is one entry of the TypeRegistry — a Struct, Enum, Alias, or
// Newtype definition (§3.4). Like ir.Expr and types' pool entry, a
// single struct carries every kind's data, reinterpreted by Kind,
// since a TypeDef is built once at declaration time and never needs
// the extra indirection an interface would add.
type TypeDef struct {
	Kind   TypeKind
	Name   name.Name
	Params []name.Name // generic type parameters, in declaration order

	Fields   []StructField // KindStruct
	Variants []Variant     // KindEnum
	Target   types.Idx     // KindAlias: the aliased type
	Base     types.Idx     // KindNewtype: the wrapped type
}

// TypeRegistry maps a type name to its definition.
type TypeRegistry struct {
	mu   sync.RWMutex
	defs map[name.Name]*TypeDef
}

// NewTypeRegistry returns an empty TypeRegistry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{defs: make(map[name.Name]*TypeDef)}
}

// Register adds def under its own name. It returns an error if a type
// of that name is already registered — redeclaration is a caller-level
// diagnostic, not a silent overwrite.
func (r *TypeRegistry) Register(def *TypeDef) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("registry: type %q already defined", def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// Lookup returns the definition registered under n, if any.
func (r *TypeRegistry) Lookup(n name.Name) (*TypeDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[n]
	return def, ok
}

// ResolveAlias implements types.AliasResolver: n resolves to def.Target
// only when n names a KindAlias definition.
func (r *TypeRegistry) ResolveAlias(n name.Name) (types.Idx, bool) {
	def, ok := r.Lookup(n)
	if !ok || def.Kind != KindAlias {
		return 0, false
	}
	return def.Target, true
}

// Field looks up a named field on a struct type, returning its type,
// visibility, and whether the field exists at all.
func (r *TypeRegistry) Field(structName, fieldName name.Name) (types.Idx, Visibility, bool) {
	def, ok := r.Lookup(structName)
	if !ok || def.Kind != KindStruct {
		return 0, Private, false
	}
	for _, f := range def.Fields {
		if f.Name == fieldName {
			return f.Type, f.Visibility, true
		}
	}
	return 0, Private, false
}

// VariantOf looks up a named variant on an enum type.
func (r *TypeRegistry) VariantOf(enumName, variantName name.Name) (*Variant, bool) {
	def, ok := r.Lookup(enumName)
	if !ok || def.Kind != KindEnum {
		return nil, false
	}
	for i := range def.Variants {
		if def.Variants[i].Name == variantName {
			return &def.Variants[i], true
		}
	}
	return nil, false
}
