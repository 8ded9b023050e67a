// Package types implements the type pool: a flat, index-addressed store
// of type terms shared by inference and canonicalization (§3.3, §4.3).
// Like the ir package's expression arena, a type is never a pointer —
// every reference between type terms is a 32-bit Idx into the pool.
package types

// Tag discriminates the kind of term an Idx addresses.
type Tag uint8

const (
	// Zero-data primitives: nothing beyond the tag distinguishes them.
	TagInt Tag = iota
	TagFloat
	TagBool
	TagStr
	TagChar
	TagByte
	TagUnit
	TagNever
	TagError
	TagDuration
	TagSize
	TagOrdering

	TagVar // unification variable; entry.VarID is the unique id

	// Single element-type wrappers.
	TagList
	TagSet
	TagRange
	TagOption
	TagChannel
	TagIterator
	TagDoubleEndedIterator

	TagTuple    // entry.Start/Len index the shared tuple-elems vector
	TagFunction // entry.Start/Len index function-params; entry.Ret is the result

	TagMap    // entry.Elem = key, entry.Elem2 = value
	TagResult // entry.Elem = ok, entry.Elem2 = err

	TagNamed // entry.Name: a user-defined nullary type or generic parameter

	TagApplied // entry.Name + entry.Start/Len index applied-args

	TagScheme // entry.Start/Len index scheme-quantifiers; entry.Elem = body

	TagProjection // entry.Elem = base; entry.Name = trait name; entry.Name2 = associated-type name
)

func (t Tag) String() string {
	switch t {
	case TagInt:
		return "Int"
	case TagFloat:
		return "Float"
	case TagBool:
		return "Bool"
	case TagStr:
		return "Str"
	case TagChar:
		return "Char"
	case TagByte:
		return "Byte"
	case TagUnit:
		return "Unit"
	case TagNever:
		return "Never"
	case TagError:
		return "Error"
	case TagDuration:
		return "Duration"
	case TagSize:
		return "Size"
	case TagOrdering:
		return "Ordering"
	case TagVar:
		return "Var"
	case TagList:
		return "List"
	case TagSet:
		return "Set"
	case TagRange:
		return "Range"
	case TagOption:
		return "Option"
	case TagChannel:
		return "Channel"
	case TagIterator:
		return "Iterator"
	case TagDoubleEndedIterator:
		return "DoubleEndedIterator"
	case TagTuple:
		return "Tuple"
	case TagFunction:
		return "Function"
	case TagMap:
		return "Map"
	case TagResult:
		return "Result"
	case TagNamed:
		return "Named"
	case TagApplied:
		return "Applied"
	case TagScheme:
		return "Scheme"
	case TagProjection:
		return "Projection"
	default:
		return "Unknown"
	}
}

// isPrimitive reports whether tag carries no data at all.
func isPrimitive(t Tag) bool { return t <= TagOrdering }
