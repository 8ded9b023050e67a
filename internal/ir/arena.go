package ir

import (
	"fmt"
	"reflect"
)

// maxArenaLen is the hard limit on any single arena vector's length,
// imposed by 32-bit indices (§3.2, §4.2).
const maxArenaLen = 1<<32 - 1

// Arena is the single owner of every syntax node belonging to one
// module (§2, §3.2). Every cross-reference between its vectors is a
// typed 32-bit index; nothing in Arena holds a pointer to anything else
// in Arena, so the whole structure is trivially value-equal and
// hashable once its vectors are.
type Arena struct {
	exprs     []Expr
	exprLists []ExprId

	stmts []Stmt

	params []Param

	arms []MatchArm

	mapEntries []MapEntry

	fieldInits []FieldInit

	callArgs []CallArg

	genericParams []GenericParam

	parsedTypes     []ParsedType
	parsedTypeLists []ParsedTypeId

	matchPatterns     []MatchPattern
	matchPatternLists []MatchPatternId

	// Side tables for Expr kinds whose payload doesn't fit the generic
	// operand slots (see Expr's doc comment).
	ints     []int64
	floats   []float64
	durations []DurationLit
	sizes    []SizeLit
	forIns   []ForInData
	lambdas  []LambdaData
	lets     []LetData
}

// New returns an empty Arena.
func New() *Arena { return &Arena{} }

// Reset empties every vector while retaining their allocated capacity,
// so a long-running driver can reuse one Arena across modules (§3.2).
func (a *Arena) Reset() {
	a.exprs = a.exprs[:0]
	a.exprLists = a.exprLists[:0]
	a.stmts = a.stmts[:0]
	a.params = a.params[:0]
	a.arms = a.arms[:0]
	a.mapEntries = a.mapEntries[:0]
	a.fieldInits = a.fieldInits[:0]
	a.callArgs = a.callArgs[:0]
	a.genericParams = a.genericParams[:0]
	a.parsedTypes = a.parsedTypes[:0]
	a.parsedTypeLists = a.parsedTypeLists[:0]
	a.matchPatterns = a.matchPatterns[:0]
	a.matchPatternLists = a.matchPatternLists[:0]
	a.ints = a.ints[:0]
	a.floats = a.floats[:0]
	a.durations = a.durations[:0]
	a.sizes = a.sizes[:0]
	a.forIns = a.forIns[:0]
	a.lambdas = a.lambdas[:0]
	a.lets = a.lets[:0]
}

func checkCapacity(n int, what string) uint32 {
	if n < 0 || uint64(n) > maxArenaLen {
		panic(fmt.Sprintf("ir: arena capacity exceeded allocating %s: %d elements", what, n))
	}
	return uint32(n)
}

// -- Expr --

// AllocExpr appends e and returns its id.
func (a *Arena) AllocExpr(e Expr) ExprId {
	id := ExprId(checkCapacity(len(a.exprs), "expressions"))
	a.exprs = append(a.exprs, e)
	return id
}

// Expr returns the expression addressed by id.
//
// Panics if id is out of bounds — an out-of-range index can only be
// arena corruption, never a recoverable condition (§3.2).
func (a *Arena) Expr(id ExprId) Expr { return a.exprs[id] }

// ExprCount reports how many expressions the arena holds.
func (a *Arena) ExprCount() int { return len(a.exprs) }

// AllocExprList appends ids to the shared expr-list storage and returns
// a range over them.
func (a *Arena) AllocExprList(ids []ExprId) ExprRange {
	start := len(a.exprLists)
	a.exprLists = append(a.exprLists, ids...)
	return newRange[ExprId](start, len(ids))
}

// ExprListOf returns the elements of r.
func (a *Arena) ExprListOf(r ExprRange) []ExprId {
	return a.exprLists[r.Start:r.End()]
}

// -- Stmt --

func (a *Arena) AllocStmt(s Stmt) StmtId {
	id := StmtId(checkCapacity(len(a.stmts), "statements"))
	a.stmts = append(a.stmts, s)
	return id
}

func (a *Arena) Stmt(id StmtId) Stmt { return a.stmts[id] }

// AllocStmts appends a contiguous run of statements (blocks build their
// statement list in one shot, so no separate overflow vector is needed —
// the statement vector itself is the backing storage).
func (a *Arena) AllocStmts(stmts []Stmt) StmtRange {
	start := len(a.stmts)
	a.stmts = append(a.stmts, stmts...)
	return newRange[StmtId](start, len(stmts))
}

func (a *Arena) StmtsOf(r StmtRange) []Stmt { return a.stmts[r.Start:r.End()] }

// -- Param --

func (a *Arena) AllocParams(params []Param) ParamRange {
	start := len(a.params)
	a.params = append(a.params, params...)
	return newRange[ParamId](start, len(params))
}

func (a *Arena) Param(id ParamId) Param   { return a.params[id] }
func (a *Arena) ParamsOf(r ParamRange) []Param { return a.params[r.Start:r.End()] }

// -- MatchArm --

func (a *Arena) AllocArms(arms []MatchArm) ArmRange {
	start := len(a.arms)
	a.arms = append(a.arms, arms...)
	return newRange[MatchArmId](start, len(arms))
}

func (a *Arena) Arm(id MatchArmId) MatchArm { return a.arms[id] }
func (a *Arena) ArmsOf(r ArmRange) []MatchArm { return a.arms[r.Start:r.End()] }

// -- MapEntry --

func (a *Arena) AllocMapEntries(entries []MapEntry) MapEntryRange {
	start := len(a.mapEntries)
	a.mapEntries = append(a.mapEntries, entries...)
	return newRange[MapEntryId](start, len(entries))
}

func (a *Arena) MapEntry(id MapEntryId) MapEntry { return a.mapEntries[id] }
func (a *Arena) MapEntriesOf(r MapEntryRange) []MapEntry {
	return a.mapEntries[r.Start:r.End()]
}

// -- FieldInit --

func (a *Arena) AllocFieldInits(fields []FieldInit) FieldInitRange {
	start := len(a.fieldInits)
	a.fieldInits = append(a.fieldInits, fields...)
	return newRange[FieldInitId](start, len(fields))
}

func (a *Arena) FieldInit(id FieldInitId) FieldInit { return a.fieldInits[id] }
func (a *Arena) FieldInitsOf(r FieldInitRange) []FieldInit {
	return a.fieldInits[r.Start:r.End()]
}

// -- CallArg --

func (a *Arena) AllocCallArgs(args []CallArg) CallArgRange {
	start := len(a.callArgs)
	a.callArgs = append(a.callArgs, args...)
	return newRange[CallArgId](start, len(args))
}

func (a *Arena) CallArg(id CallArgId) CallArg { return a.callArgs[id] }
func (a *Arena) CallArgsOf(r CallArgRange) []CallArg {
	return a.callArgs[r.Start:r.End()]
}

// -- GenericParam --

func (a *Arena) AllocGenericParams(params []GenericParam) GenericParamRange {
	start := len(a.genericParams)
	a.genericParams = append(a.genericParams, params...)
	return newRange[GenericParamId](start, len(params))
}

func (a *Arena) GenericParam(id GenericParamId) GenericParam { return a.genericParams[id] }
func (a *Arena) GenericParamsOf(r GenericParamRange) []GenericParam {
	return a.genericParams[r.Start:r.End()]
}

// -- ParsedType --

func (a *Arena) AllocParsedType(t ParsedType) ParsedTypeId {
	id := ParsedTypeId(checkCapacity(len(a.parsedTypes), "parsed types"))
	a.parsedTypes = append(a.parsedTypes, t)
	return id
}

func (a *Arena) ParsedType(id ParsedTypeId) ParsedType { return a.parsedTypes[id] }

func (a *Arena) AllocParsedTypeList(ids []ParsedTypeId) ParsedTypeRange {
	start := len(a.parsedTypeLists)
	a.parsedTypeLists = append(a.parsedTypeLists, ids...)
	return newRange[ParsedTypeId](start, len(ids))
}

func (a *Arena) ParsedTypeListOf(r ParsedTypeRange) []ParsedTypeId {
	return a.parsedTypeLists[r.Start:r.End()]
}

// -- MatchPattern --

func (a *Arena) AllocMatchPattern(p MatchPattern) MatchPatternId {
	id := MatchPatternId(checkCapacity(len(a.matchPatterns), "match patterns"))
	a.matchPatterns = append(a.matchPatterns, p)
	return id
}

func (a *Arena) MatchPattern(id MatchPatternId) MatchPattern { return a.matchPatterns[id] }

func (a *Arena) AllocMatchPatternList(ids []MatchPatternId) MatchPatternRange {
	start := len(a.matchPatternLists)
	a.matchPatternLists = append(a.matchPatternLists, ids...)
	return newRange[MatchPatternId](start, len(ids))
}

func (a *Arena) MatchPatternListOf(r MatchPatternRange) []MatchPatternId {
	return a.matchPatternLists[r.Start:r.End()]
}

// -- Side tables --

func (a *Arena) addInt(v int64) uint32 {
	a.ints = append(a.ints, v)
	return uint32(len(a.ints) - 1)
}
func (a *Arena) Int(idx uint32) int64 { return a.ints[idx] }

func (a *Arena) addFloat(v float64) uint32 {
	a.floats = append(a.floats, v)
	return uint32(len(a.floats) - 1)
}
func (a *Arena) Float(idx uint32) float64 { return a.floats[idx] }

func (a *Arena) addDuration(v DurationLit) uint32 {
	a.durations = append(a.durations, v)
	return uint32(len(a.durations) - 1)
}
func (a *Arena) Duration(idx uint32) DurationLit { return a.durations[idx] }

func (a *Arena) addSize(v SizeLit) uint32 {
	a.sizes = append(a.sizes, v)
	return uint32(len(a.sizes) - 1)
}
func (a *Arena) Size(idx uint32) SizeLit { return a.sizes[idx] }

func (a *Arena) addForIn(v ForInData) uint32 {
	a.forIns = append(a.forIns, v)
	return uint32(len(a.forIns) - 1)
}
func (a *Arena) ForIn(idx uint32) ForInData { return a.forIns[idx] }

func (a *Arena) addLambda(v LambdaData) uint32 {
	a.lambdas = append(a.lambdas, v)
	return uint32(len(a.lambdas) - 1)
}
func (a *Arena) Lambda(idx uint32) LambdaData { return a.lambdas[idx] }

func (a *Arena) addLet(v LetData) uint32 {
	a.lets = append(a.lets, v)
	return uint32(len(a.lets) - 1)
}
func (a *Arena) Let(idx uint32) LetData { return a.lets[idx] }

// Equal reports whether two arenas are value-equal — every vector holds
// pairwise-equal elements — which is what makes arenas usable as
// memoization keys for incremental compilation (§3.2, §5).
func (a *Arena) Equal(other *Arena) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil {
		return false
	}
	return reflect.DeepEqual(a, other)
}
