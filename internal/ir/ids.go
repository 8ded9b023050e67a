// Package ir implements the flat arena representation of surface syntax
// (§3 of the core specification): a single owner of all syntax nodes for
// one module, addressed exclusively by 32-bit indices. No node in this
// package ever holds a pointer to another node.
package ir

import "github.com/sigil-lang/ori/internal/name"

// sentinel is the index value meaning "absent" for any *Id type below —
// e.g. an if-expression with no else branch, or a call argument with no
// explicit name.
const sentinel = ^uint32(0)

// ExprId addresses one entry in ExprArena's flat expression vector.
type ExprId uint32

// NoExpr is the sentinel ExprId meaning "this optional child is absent".
const NoExpr ExprId = ExprId(sentinel)

// Valid reports whether id refers to an actual expression.
func (id ExprId) Valid() bool { return id != NoExpr }

// StmtId addresses one entry in the statement vector.
type StmtId uint32

// ParamId addresses one entry in the parameter vector.
type ParamId uint32

// MatchArmId addresses one entry in the match-arm vector.
type MatchArmId uint32

// MapEntryId addresses one entry in the map-entry vector.
type MapEntryId uint32

// FieldInitId addresses one entry in the field-initializer vector.
type FieldInitId uint32

// CallArgId addresses one entry in the call-argument vector.
type CallArgId uint32

// GenericParamId addresses one entry in the generic-parameter vector.
type GenericParamId uint32

// ParsedTypeId addresses one entry in the parsed-type vector.
type ParsedTypeId uint32

// NoParsedType is the sentinel for "no type annotation given".
const NoParsedType ParsedTypeId = ParsedTypeId(sentinel)

// Valid reports whether id refers to an actual parsed type.
func (id ParsedTypeId) Valid() bool { return id != NoParsedType }

// MatchPatternId addresses one entry in the match-pattern vector.
type MatchPatternId uint32

// NoPattern is the sentinel for "no pattern" (used where a binder slot
// may be a bare name rather than a destructuring pattern: a simple
// `let x = ...` keeps its name in LetData.Binder and sets
// LetData.Pattern to NoPattern).
const NoPattern MatchPatternId = MatchPatternId(sentinel)

// ident is a convenience alias used throughout this package for the
// interned-name handle, to avoid importing name.Name everywhere under a
// different local name.
type ident = name.Name
