package ir

import (
	"math/big"

	"github.com/sigil-lang/ori/internal/span"
)

// MatchPatternKind tags the variant of a match pattern (§3.2).
type MatchPatternKind uint8

const (
	PatWildcard MatchPatternKind = iota // `_`
	PatBinding                          // `x` — ambiguous until resolved, see §4.4.3
	PatLiteral                          // an int/float/bool/string/char literal pattern
	PatVariant                          // `Some(p)`, `Circle { radius: r }`, or a bare unit variant
	PatTuple                            // `(p1, p2, ...)`
	PatListRest                         // `[p1, p2, ...rest]`
	PatStructRest                       // `{ field: p, ...rest }`
	PatRange                            // `1..10`
	PatOr                               // `p1 | p2`
	PatAt                               // `name @ p`
)

// MatchPattern is one entry of the pattern vector.
type MatchPattern struct {
	Kind MatchPatternKind
	Span span.Span
	Name ident // binding/variant/field name, per Kind

	// Sub holds this pattern's sub-patterns, reinterpreted per Kind:
	//   PatVariant:    the constructor's positional or record sub-patterns
	//   PatTuple:      every element pattern
	//   PatListRest:   the fixed leading element patterns (HasRest indicates
	//                  whether a `...rest` tail binder follows)
	//   PatStructRest: field sub-patterns (paired with FieldNames)
	//   PatOr:         every alternative
	//   PatAt:         Sub[0] is the sub-pattern bound alongside Name
	Sub MatchPatternRange

	// FieldNames, parallel to Sub, names each field for PatStructRest
	// and for a record-variant PatVariant (e.g. `{ x: a, y: b }` pairs
	// FieldNames=[x,y] with Sub=[a,b]). Left nil for every other Kind.
	FieldNames []ident

	RestBinder ident // PatListRest/PatStructRest: name bound to the rest, name.Empty if `...` is unnamed or absent
	HasRest    bool   // PatListRest/PatStructRest: whether a `...rest` tail was written at all

	// Literal payload (PatLiteral):
	LitInt    int64
	LitFloat  float64
	LitBool   bool
	LitStr    ident
	LitChar   rune
	LitIsInt  bool
	LitIsFloat bool
	LitIsBool bool
	LitIsStr  bool
	LitIsChar bool

	// Range payload (PatRange): bounds are literal ints or chars, stored
	// as big.Int to keep the representation uniform regardless of width.
	RangeLo, RangeHi *big.Int
	RangeInclusive   bool
}
