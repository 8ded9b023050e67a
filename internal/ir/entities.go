package ir

import "github.com/sigil-lang/ori/internal/span"

// StmtKind distinguishes a bare expression statement from a let-binding
// statement; the let's actual binder/value live on the referenced
// ExprLet node (LetData) so the semantics are defined in exactly one
// place (§3.2).
type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtLet
)

// Stmt is one entry of a block's statement list.
type Stmt struct {
	Kind StmtKind
	Expr ExprId // for StmtLet, Expr.Kind == ExprLet
	Span span.Span
}

// Param is one function/lambda parameter.
type Param struct {
	Name       ident
	Annotation ParsedTypeId // NoParsedType if unannotated
	Default    ExprId       // NoExpr if the parameter has no default
	Span       span.Span
}

// HasDefault reports whether this parameter declares a default expression.
func (p Param) HasDefault() bool { return p.Default.Valid() }

// MatchArm is one `pattern [if guard] => body` arm of a match expression.
type MatchArm struct {
	Pattern MatchPatternId
	Guard   ExprId // NoExpr if the arm has no guard
	Body    ExprId
	Span    span.Span
}

// MapEntry is one `key => value` pair of a map literal, or — when Key is
// NoExpr — a spread entry (`...base`) inserted among the pairs, whose
// Value is the spread base expression (§3.2, §4.7 MapWithSpread).
type MapEntry struct {
	Key   ExprId // NoExpr marks this entry as a spread
	Value ExprId
}

// IsSpread reports whether this entry is a `...base` spread rather than
// an explicit key/value pair.
func (e MapEntry) IsSpread() bool { return e.Key == NoExpr }

// FieldInit is one entry of a struct literal's field list, in source
// order. When Name is name.Empty the entry is a spread (`...base`) and
// Value holds the spread base expression; the canonicalizer walks the
// field list left to right per §4.7, so a spread's effect is determined
// by its position relative to explicit fields around it.
type FieldInit struct {
	Name  ident
	Value ExprId
	Span  span.Span
}

// IsSpread reports whether this field entry is a `...base` spread.
func (f FieldInit) IsSpread() bool { return f.Name == 0 }

// CallArg is one call argument (positional or named), or one element of
// a list-with-spread sequence (Name is always name.Empty there). The
// three uses it models — plain args, named args, spread elements — share
// a shape: an optional name, a value, a spread flag (§3.2).
type CallArg struct {
	Name     ident // name.Empty for a positional argument or list element
	Value    ExprId
	IsSpread bool
	Span     span.Span
}

// IsNamed reports whether this argument was passed by name.
func (a CallArg) IsNamed() bool { return a.Name != 0 }

// GenericParam is one type parameter of a generic function or type
// (`<T: Show>`).
type GenericParam struct {
	Name   ident
	Bounds []ident // trait names this parameter is bound by; nil if unbounded
	Span   span.Span
}
