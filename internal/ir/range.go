package ir

import "fmt"

// maxRangeLen is the hard limit on any single arena list's length,
// imposed by storing the length in 16 bits (§3.2, §4.2).
const maxRangeLen = 0xFFFF

// Range describes a contiguous run of Len elements starting at Start in
// some side-table vector. Id is a phantom type parameter identifying
// which kind of index the range yields, so ExprRange and StmtRange are
// distinct types even though their representation is identical.
type Range[Id ~uint32] struct {
	Start uint32
	Len   uint16
}

// Empty reports whether the range has no elements.
func (r Range[Id]) Empty() bool { return r.Len == 0 }

// End returns the exclusive end offset into the backing vector.
func (r Range[Id]) End() uint32 { return r.Start + uint32(r.Len) }

func newRange[Id ~uint32](start, count int) Range[Id] {
	if count > maxRangeLen {
		panic(fmt.Sprintf("ir: list length %d exceeds the %d-element encoding limit", count, maxRangeLen))
	}
	return Range[Id]{Start: uint32(start), Len: uint16(count)}
}

// ExprRange is a range of ExprId into ExprArena's flattened expr-list storage.
type ExprRange = Range[ExprId]

// StmtRange is a range of StmtId into the statement vector.
type StmtRange = Range[StmtId]

// ParamRange is a range of ParamId into the parameter vector.
type ParamRange = Range[ParamId]

// ArmRange is a range of MatchArmId into the match-arm vector.
type ArmRange = Range[MatchArmId]

// MapEntryRange is a range of MapEntryId into the map-entry vector.
type MapEntryRange = Range[MapEntryId]

// FieldInitRange is a range of FieldInitId into the field-initializer vector.
type FieldInitRange = Range[FieldInitId]

// CallArgRange is a range of CallArgId into the call-argument vector.
type CallArgRange = Range[CallArgId]

// GenericParamRange is a range of GenericParamId into the generic-parameter vector.
type GenericParamRange = Range[GenericParamId]

// ParsedTypeRange is a range of ParsedTypeId into the parsed-type vector.
type ParsedTypeRange = Range[ParsedTypeId]

// MatchPatternRange is a range of MatchPatternId into the match-pattern vector.
type MatchPatternRange = Range[MatchPatternId]
