// Package canon implements the canonicalizer/lowering pass (§4.7):
// CallNamed/MethodCallNamed reordering, spread and template-literal
// desugaring, constant folding, dead-branch elimination, and constant
// deduplication, all applied bottom-up over a typed ExprArena to
// produce a flat, primitive-only CanArena.
package canon

import (
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/span"
	"github.com/sigil-lang/ori/internal/types"
)

// CanId addresses one entry in CanArena's expression vector.
type CanId uint32

// NoCan is the sentinel meaning "no child expression" (e.g. a block
// with no trailing result, or a bare break).
const NoCan CanId = CanId(1<<32 - 1)

// Valid reports whether id refers to a real CanArena entry.
func (id CanId) Valid() bool { return id != NoCan }

// CanExprKind tags the variant of a lowered expression (§3.5): every
// surface-level named/spread/template variant has already been
// rewritten away by the time a node reaches this enum.
type CanExprKind uint8

const (
	CanConstant CanExprKind = iota
	CanIdent

	CanUnary
	CanBinary

	CanIf
	CanMatch
	CanBlock
	CanForIn
	CanLoop
	CanBreak
	CanContinue
	CanLet
	CanAssign

	CanCall
	CanMethodCall
	CanField
	CanIndex

	CanListLit
	CanSetLit
	CanMapLit
	CanTupleLit
	CanStructLit

	CanLambda
)

// CanExpr is one node of the canonical expression arena, shaped the
// same way ir.Expr is: a fixed row of generic operand slots
// reinterpreted per Kind, with side tables for anything that doesn't
// fit (§3.2's "Arenas are Eq + Hash" discipline, carried over
// unchanged into the post-lowering representation).
type CanExpr struct {
	Kind CanExprKind
	Span span.Span
	Name name.Name // identifier / field / method name, per Kind
	A    uint32
	B    uint32
	C    uint32
	Op   uint16
	Len  uint16
}

// CanRange is a contiguous run of CanId in CanArena's shared
// expr-list storage.
type CanRange struct {
	Start uint32
	Len   uint16
}

func (r CanRange) End() uint32 { return r.Start + uint32(r.Len) }

// CanStmtKind distinguishes a bare expression statement from a
// let-binding statement, mirroring ir.StmtKind.
type CanStmtKind uint8

const (
	CanStmtExpr CanStmtKind = iota
	CanStmtLet
)

// CanStmt is one entry of a lowered block's statement list.
type CanStmt struct {
	Kind CanStmtKind
	Expr CanId
	Span span.Span
}

// CanStmtRange is a contiguous run of CanStmt.
type CanStmtRange struct {
	Start uint32
	Len   uint16
}

func (r CanStmtRange) End() uint32 { return r.Start + uint32(r.Len) }

// CanPatKind distinguishes the pattern shapes that survive lowering:
// pattern disambiguation already happened in internal/infer, so a
// canonical match arm only needs to know whether it tests a variant
// tag, binds unconditionally, or falls through to a nested pattern.
type CanPatKind uint8

const (
	CanPatWildcard CanPatKind = iota
	CanPatBinding
	CanPatTag // a resolved unit-variant tag test (§4.4.3 PatternResolution)
	CanPatTuple
	CanPatStruct
	CanPatOr
	CanPatLiteral // an int/float/bool/string/char literal test, Const indexes ConstValueTable
	CanPatAt      // `name @ sub`: binds Name alongside Sub[0]
)

// CanPat is one lowered match pattern.
type CanPat struct {
	Kind         CanPatKind
	Name         name.Name // binding name (CanPatBinding/CanPatAt) or variant/field name (CanPatTag)
	VariantIndex int
	Sub          CanPatRange
	FieldNames   []name.Name
	Const        ConstId // CanPatLiteral
}

// CanPatRange is a contiguous run of CanPat.
type CanPatRange struct {
	Start uint32
	Len   uint16
}

func (r CanPatRange) End() uint32 { return r.Start + uint32(r.Len) }

// CanArm is one lowered match arm.
type CanArm struct {
	Pattern CanPatId
	Guard   CanId // NoCan if no guard
	Body    CanId
	Span    span.Span
}

// CanPatId addresses one entry in CanArena's pattern vector.
type CanPatId uint32

// CanArmRange is a contiguous run of CanArm.
type CanArmRange struct {
	Start uint32
	Len   uint16
}

func (r CanArmRange) End() uint32 { return r.Start + uint32(r.Len) }

// CanForInData is the side-table payload for CanForIn.
type CanForInData struct {
	Binder   name.Name
	Iterable CanId
	Guard    CanId // NoCan if absent
	Body     CanId
	Yield    bool
}

// CanLetData is the side-table payload for CanLet; every canonical
// let is a simple binder — a destructuring let is lowered to a
// `$let` temporary binding followed by a single-arm match on that
// temporary, so the canonical let itself never needs a pattern.
type CanLetData struct {
	Binder name.Name
	Value  CanId
}

// CanParam is one lowered lambda parameter.
type CanParam struct {
	Name name.Name
}

// CanParamRange is a contiguous run of CanParam.
type CanParamRange struct {
	Start uint32
	Len   uint16
}

func (r CanParamRange) End() uint32 { return r.Start + uint32(r.Len) }

// CanLambdaData is the side-table payload for CanLambda.
type CanLambdaData struct {
	Params CanParamRange
	Body   CanId
}

// CanFieldInit is one resolved field slot of a lowered struct literal
// (every spread has already been flattened away, §4.7 StructWithSpread).
type CanFieldInit struct {
	Name  name.Name
	Value CanId
}

// CanFieldInitRange is a contiguous run of CanFieldInit.
type CanFieldInitRange struct {
	Start uint32
	Len   uint16
}

func (r CanFieldInitRange) End() uint32 { return r.Start + uint32(r.Len) }

// CanMapEntry is one key/value pair of a lowered map literal (no
// spread variant survives lowering, §4.7 MapWithSpread).
type CanMapEntry struct {
	Key   CanId
	Value CanId
}

// CanMapEntryRange is a contiguous run of CanMapEntry.
type CanMapEntryRange struct {
	Start uint32
	Len   uint16
}

func (r CanMapEntryRange) End() uint32 { return r.Start + uint32(r.Len) }

// ConstKind tags the variant stored in ConstValueTable (§3.5).
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstBool
	ConstFloat // stored as raw bits so equal floats (including -0.0 vs 0.0 distinctions) hash/compare exactly
	ConstStr
	ConstChar
	ConstDuration
	ConstSize
	ConstUnit
)

// ConstValue is one constant folded/interned during canonicalization.
type ConstValue struct {
	Kind     ConstKind
	Int      int64
	Bool     bool
	FloatBits uint64
	Str      name.Name
	Char     rune
	DurValue int64
	DurUnit  uint8
	SizeValue int64
	SizeUnit  uint8
}

// ConstId addresses one entry in ConstValueTable.
type ConstId uint32

// ConstValueTable deduplicates folded constants: equal constants share
// one ConstId (§3.5 "Equal constants share an index").
type ConstValueTable struct {
	values []ConstValue
	index  map[ConstValue]ConstId
}

// NewConstValueTable returns an empty table.
func NewConstValueTable() *ConstValueTable {
	return &ConstValueTable{index: make(map[ConstValue]ConstId)}
}

// Intern returns v's ConstId, reusing an existing entry if v was
// already interned.
func (t *ConstValueTable) Intern(v ConstValue) ConstId {
	if id, ok := t.index[v]; ok {
		return id
	}
	id := ConstId(len(t.values))
	t.values = append(t.values, v)
	t.index[v] = id
	return id
}

// Value returns the constant addressed by id.
func (t *ConstValueTable) Value(id ConstId) ConstValue { return t.values[id] }

// CanArena owns every lowered node belonging to one canonicalized
// module (§3.5), indices-only exactly like ir.Arena.
type CanArena struct {
	exprs     []CanExpr
	exprLists []CanId
	exprTypes []types.Idx // parallel to exprs: every CanId's resolved type

	stmts []CanStmt

	pats     []CanPat
	patLists []CanPatId

	arms []CanArm

	params []CanParam

	fieldInits []CanFieldInit
	mapEntries []CanMapEntry

	forIns  []CanForInData
	lambdas []CanLambdaData
	lets    []CanLetData
}

// NewCanArena returns an empty CanArena.
func NewCanArena() *CanArena { return &CanArena{} }

func (a *CanArena) allocExpr(e CanExpr, ty types.Idx) CanId {
	id := CanId(len(a.exprs))
	a.exprs = append(a.exprs, e)
	a.exprTypes = append(a.exprTypes, ty)
	return id
}

// Expr returns the lowered node addressed by id.
func (a *CanArena) Expr(id CanId) CanExpr { return a.exprs[id] }

// TypeOf returns id's resolved type.
func (a *CanArena) TypeOf(id CanId) types.Idx { return a.exprTypes[id] }

// ExprCount reports how many lowered nodes the arena holds.
func (a *CanArena) ExprCount() int { return len(a.exprs) }

func (a *CanArena) allocExprList(ids []CanId) CanRange {
	start := len(a.exprLists)
	a.exprLists = append(a.exprLists, ids...)
	return CanRange{Start: uint32(start), Len: uint16(len(ids))}
}

// ExprListOf returns the elements of r.
func (a *CanArena) ExprListOf(r CanRange) []CanId { return a.exprLists[r.Start:r.End()] }

func (a *CanArena) allocStmts(stmts []CanStmt) CanStmtRange {
	start := len(a.stmts)
	a.stmts = append(a.stmts, stmts...)
	return CanStmtRange{Start: uint32(start), Len: uint16(len(stmts))}
}

// StmtsOf returns the statements of r.
func (a *CanArena) StmtsOf(r CanStmtRange) []CanStmt { return a.stmts[r.Start:r.End()] }

func (a *CanArena) allocPat(p CanPat) CanPatId {
	id := CanPatId(len(a.pats))
	a.pats = append(a.pats, p)
	return id
}

// Pat returns the lowered pattern addressed by id.
func (a *CanArena) Pat(id CanPatId) CanPat { return a.pats[id] }

func (a *CanArena) allocPatList(ids []CanPatId) CanPatRange {
	start := len(a.patLists)
	a.patLists = append(a.patLists, ids...)
	return CanPatRange{Start: uint32(start), Len: uint16(len(ids))}
}

// PatListOf returns the patterns of r.
func (a *CanArena) PatListOf(r CanPatRange) []CanPatId { return a.patLists[r.Start:r.End()] }

func (a *CanArena) allocArms(arms []CanArm) CanArmRange {
	start := len(a.arms)
	a.arms = append(a.arms, arms...)
	return CanArmRange{Start: uint32(start), Len: uint16(len(arms))}
}

// ArmsOf returns the arms of r.
func (a *CanArena) ArmsOf(r CanArmRange) []CanArm { return a.arms[r.Start:r.End()] }

func (a *CanArena) allocParams(params []CanParam) CanParamRange {
	start := len(a.params)
	a.params = append(a.params, params...)
	return CanParamRange{Start: uint32(start), Len: uint16(len(params))}
}

// ParamsOf returns the params of r.
func (a *CanArena) ParamsOf(r CanParamRange) []CanParam { return a.params[r.Start:r.End()] }

func (a *CanArena) allocFieldInits(fields []CanFieldInit) CanFieldInitRange {
	start := len(a.fieldInits)
	a.fieldInits = append(a.fieldInits, fields...)
	return CanFieldInitRange{Start: uint32(start), Len: uint16(len(fields))}
}

// FieldInitsOf returns the field initializers of r.
func (a *CanArena) FieldInitsOf(r CanFieldInitRange) []CanFieldInit {
	return a.fieldInits[r.Start:r.End()]
}

func (a *CanArena) allocMapEntries(entries []CanMapEntry) CanMapEntryRange {
	start := len(a.mapEntries)
	a.mapEntries = append(a.mapEntries, entries...)
	return CanMapEntryRange{Start: uint32(start), Len: uint16(len(entries))}
}

// MapEntriesOf returns the map entries of r.
func (a *CanArena) MapEntriesOf(r CanMapEntryRange) []CanMapEntry {
	return a.mapEntries[r.Start:r.End()]
}

func (a *CanArena) addForIn(v CanForInData) uint32 {
	a.forIns = append(a.forIns, v)
	return uint32(len(a.forIns) - 1)
}

// ForIn returns the for-in side-table entry at idx.
func (a *CanArena) ForIn(idx uint32) CanForInData { return a.forIns[idx] }

func (a *CanArena) addLambda(v CanLambdaData) uint32 {
	a.lambdas = append(a.lambdas, v)
	return uint32(len(a.lambdas) - 1)
}

// Lambda returns the lambda side-table entry at idx.
func (a *CanArena) Lambda(idx uint32) CanLambdaData { return a.lambdas[idx] }

func (a *CanArena) addLet(v CanLetData) uint32 {
	a.lets = append(a.lets, v)
	return uint32(len(a.lets) - 1)
}

// Let returns the let side-table entry at idx.
func (a *CanArena) Let(idx uint32) CanLetData { return a.lets[idx] }
