package ir

import "github.com/sigil-lang/ori/internal/span"

// ParsedTypeKind tags the variant of a ParsedType — a type as written in
// source, before the inference engine resolves it to a pool Idx (§3.2).
type ParsedTypeKind uint8

const (
	PTPrimitive ParsedTypeKind = iota // Int, Bool, Str, ...
	PTNamed                           // a user type or generic parameter name
	PTList
	PTSet
	PTOption
	PTResult // Result<Ok, Err>
	PTMap
	PTTuple
	PTFunction
	PTAssociated // `Self.Item`-style associated-type projection
	PTSelf
)

// ParsedType is one entry of the parsed-type vector.
type ParsedType struct {
	Kind ParsedTypeKind
	Span span.Span
	Name ident // primitive/named type name; for PTAssociated, the associated-type name

	// Children holds this type's argument types, reinterpreted per Kind:
	//   PTList, PTSet, PTOption: Children[0] is the element type
	//   PTResult, PTMap:         Children[0]/[1] are key/ok and value/err
	//   PTTuple:                 every element
	//   PTFunction:              every parameter type; Return holds the result type
	//   PTAssociated:            Children[0] is the base type (e.g. `Self`)
	Children ParsedTypeRange
	Return   ParsedTypeId // only meaningful for PTFunction
}
