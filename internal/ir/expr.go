package ir

import "github.com/sigil-lang/ori/internal/span"

// ExprKind tags the variant stored in an Expr slot (§3.2).
type ExprKind uint8

const (
	ExprIntLit ExprKind = iota
	ExprFloatLit
	ExprBoolLit
	ExprStringLit
	ExprCharLit
	ExprDurationLit
	ExprSizeLit
	ExprUnitLit
	ExprNilLit

	ExprIdent
	ExprFuncRef
	ExprConfigRef
	ExprSelfRef

	ExprUnary
	ExprBinary

	ExprIf
	ExprMatch
	ExprBlock
	ExprForIn
	ExprLoop
	ExprBreak
	ExprContinue
	ExprLet
	ExprAssign

	ExprCall
	ExprCallNamed
	ExprMethodCall
	ExprMethodCallNamed
	ExprField
	ExprIndex

	ExprRangeLit
	ExprListLit
	ExprMapLit
	ExprSetLit
	ExprTupleLit
	ExprStructLit
	ExprListSpread
	ExprMapSpread
	ExprStructSpread

	ExprTemplateLit
	ExprTemplateComplete

	ExprTry
	ExprLambda
)

// UnaryOp names a prefix operator.
type UnaryOp uint16

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryBitNot
)

// BinaryOp names an infix operator.
type BinaryOp uint16

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
	BinSpaceship // `<=>`, producing an Ordering (SPEC_FULL §C.5)
)

// Expr is one node of the flat, arena-addressed expression representation.
//
// Go has no sum-type, so the "tagged union" the spec calls for is
// implemented as a fixed-width row of generic operand slots whose
// meaning is reinterpreted per Kind — the same discipline a bytecode
// instruction set uses. Kinds that need more than three operand slots
// spill into a dedicated side-table vector on Arena (e.g. ForIn,
// Lambda, Let), addressed by A. Every field is a value (index, small
// int, or Span) — never a pointer — so Expr is naturally comparable and
// hashable by value (§3.2 "Arenas are Eq + Hash").
type Expr struct {
	Kind ExprKind
	Span span.Span
	Name ident  // identifier / field name / method name / struct type name, per Kind
	A    uint32 // primary operand (see per-Kind doc below)
	B    uint32 // secondary operand
	C    uint32 // tertiary operand
	Op   uint16 // operator code (Unary/Binary) or literal sub-payload
	Len  uint16 // element count when A is a list-range start
}

// ForInData is the ExprForIn side-table payload (A indexes into
// Arena.forIns).
type ForInData struct {
	Binder   ident
	Iterable ExprId
	Guard    ExprId // NoExpr if the for-loop has no guard clause
	Body     ExprId
	Yield    bool // true for `for .. yield`, false for `for .. do`
}

// LambdaData is the ExprLambda side-table payload (A indexes into
// Arena.lambdas).
type LambdaData struct {
	Params       ParamRange
	Body         ExprId
	ReturnAnnot  ParsedTypeId // NoParsedType if unannotated
}

// LetData is the ExprLet side-table payload (A indexes into
// Arena.lets). A plain `let x = ...` stores its name in Binder and
// leaves Pattern as NoPattern; a destructuring let stores its
// MatchPatternId in Pattern instead.
type LetData struct {
	Binder ident
	// Pattern is used instead of Binder when the let destructures a
	// tuple/struct (mutually exclusive with Binder; Binder == name.Empty
	// when Pattern.Valid()).
	Pattern    MatchPatternId
	Annotation ParsedTypeId // NoParsedType if unannotated
	Value      ExprId
}

func validPattern(id MatchPatternId) bool { return id != NoPattern }

// HasPattern reports whether a LetData uses a destructuring Pattern rather
// than a simple Binder name.
func (l LetData) HasPattern() bool { return validPattern(l.Pattern) }
