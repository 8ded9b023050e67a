package infer

import (
	"testing"

	"github.com/sigil-lang/ori/internal/config"
	"github.com/sigil-lang/ori/internal/diagnostic"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/registry"
	"github.com/sigil-lang/ori/internal/span"
	"github.com/sigil-lang/ori/internal/types"
)

func newTestEngine() (*Engine, *ir.Arena, *name.Interner) {
	in := name.New()
	arena := ir.New()
	pool := types.New()
	typeReg := registry.NewTypeRegistry()
	traitReg := registry.NewTraitRegistry()
	methodReg := registry.NewMethodRegistry(in)
	bag := diagnostic.NewBag(config.DefaultLimits())
	e := New(arena, pool, in, typeReg, traitReg, methodReg, bag)
	return e, arena, in
}

func sp(n uint32) span.Span { return span.Span{Start: n, End: n + 1} }

func TestInferLiteralTypes(t *testing.T) {
	e, arena, _ := newTestEngine()
	env := NewEnv()

	intID := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(0)))
	if ty := e.Infer(intID, env); e.Pool.Tag(ty) != types.TagInt {
		t.Errorf("int literal: got tag %s, want Int", e.Pool.Tag(ty))
	}

	boolID := arena.AllocExpr(ir.NewBoolLit(true, sp(1)))
	if ty := e.Infer(boolID, env); e.Pool.Tag(ty) != types.TagBool {
		t.Errorf("bool literal: got tag %s, want Bool", e.Pool.Tag(ty))
	}
}

func TestInferBinaryArithmetic(t *testing.T) {
	e, arena, _ := newTestEngine()
	env := NewEnv()

	left := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(0)))
	right := arena.AllocExpr(ir.NewIntLit(arena, 2, sp(1)))
	addID := arena.AllocExpr(ir.NewBinary(ir.BinAdd, left, right, sp(2)))

	ty := e.Infer(addID, env)
	if e.Pool.Tag(ty) != types.TagInt {
		t.Errorf("Int + Int: got tag %s, want Int", e.Pool.Tag(ty))
	}
	if e.Bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", e.Bag.All())
	}
}

func TestInferBinaryMismatchReportsDiagnostic(t *testing.T) {
	e, arena, _ := newTestEngine()
	env := NewEnv()

	left := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(0)))
	right := arena.AllocExpr(ir.NewBoolLit(true, sp(1)))
	addID := arena.AllocExpr(ir.NewBinary(ir.BinAdd, left, right, sp(2)))

	e.Infer(addID, env)
	if !e.Bag.HasErrors() {
		t.Error("expected a type-mismatch diagnostic for Int + Bool")
	}
}

func TestInferIfBranchesUnify(t *testing.T) {
	e, arena, _ := newTestEngine()
	env := NewEnv()

	cond := arena.AllocExpr(ir.NewBoolLit(true, sp(0)))
	then := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(1)))
	els := arena.AllocExpr(ir.NewIntLit(arena, 2, sp(2)))
	ifID := arena.AllocExpr(ir.NewIf(cond, then, els, sp(3)))

	ty := e.Infer(ifID, env)
	if e.Pool.Tag(ty) != types.TagInt {
		t.Errorf("if/else of two Ints: got tag %s, want Int", e.Pool.Tag(ty))
	}
	if e.Bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", e.Bag.All())
	}
}

func TestInferLetBindsIntoEnv(t *testing.T) {
	e, arena, in := newTestEngine()
	env := NewEnv()

	value := arena.AllocExpr(ir.NewIntLit(arena, 42, sp(0)))
	x := in.Intern("x")
	letID := arena.AllocExpr(ir.NewLet(arena, x, ir.NoParsedType, value, sp(1)))
	e.Infer(letID, env)

	ty, ok := env.Lookup(x)
	if !ok {
		t.Fatal("expected `x` to be bound after let")
	}
	if e.Pool.Tag(ty) != types.TagInt {
		t.Errorf("let x = 42: got tag %s, want Int", e.Pool.Tag(ty))
	}
}

func TestInferListLitUnifiesElements(t *testing.T) {
	e, arena, _ := newTestEngine()
	env := NewEnv()

	a := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(0)))
	b := arena.AllocExpr(ir.NewIntLit(arena, 2, sp(1)))
	elems := arena.AllocExprList([]ir.ExprId{a, b})
	listID := arena.AllocExpr(ir.NewListLit(elems, sp(2)))

	ty := e.Infer(listID, env)
	if e.Pool.Tag(ty) != types.TagList {
		t.Fatalf("got tag %s, want List", e.Pool.Tag(ty))
	}
	if e.Pool.Tag(e.Pool.Elem(ty)) != types.TagInt {
		t.Errorf("list element: got tag %s, want Int", e.Pool.Tag(e.Pool.Elem(ty)))
	}
}

func TestCheckExhaustivenessBoolRequiresBothArms(t *testing.T) {
	e, arena, in := newTestEngine()

	truePat := arena.AllocMatchPattern(ir.MatchPattern{Kind: ir.PatLiteral, LitIsBool: true, LitBool: true})
	body1 := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(0)))
	arms := arena.AllocArms([]ir.MatchArm{
		{Pattern: truePat, Guard: ir.NoExpr, Body: body1, Span: sp(1)},
	})

	e.checkExhaustiveness(types.IdxBool, arena.ArmsOf(arms), sp(2))
	if !e.Bag.HasErrors() {
		t.Error("expected a non-exhaustive-match diagnostic when only `true` is covered")
	}
	_ = in
}

func TestCheckExhaustivenessWildcardSatisfies(t *testing.T) {
	e, arena, _ := newTestEngine()

	wildcard := arena.AllocMatchPattern(ir.MatchPattern{Kind: ir.PatWildcard})
	body := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(0)))
	arms := arena.AllocArms([]ir.MatchArm{
		{Pattern: wildcard, Guard: ir.NoExpr, Body: body, Span: sp(1)},
	})

	e.checkExhaustiveness(types.IdxBool, arena.ArmsOf(arms), sp(2))
	if e.Bag.HasErrors() {
		t.Errorf("unexpected diagnostics for a wildcard-only match: %v", e.Bag.All())
	}
}

func TestCheckExhaustivenessRedundantArmAfterWildcard(t *testing.T) {
	e, arena, _ := newTestEngine()

	wildcard := arena.AllocMatchPattern(ir.MatchPattern{Kind: ir.PatWildcard})
	truePat := arena.AllocMatchPattern(ir.MatchPattern{Kind: ir.PatLiteral, LitIsBool: true, LitBool: true})
	body1 := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(0)))
	body2 := arena.AllocExpr(ir.NewIntLit(arena, 2, sp(1)))
	arms := arena.AllocArms([]ir.MatchArm{
		{Pattern: wildcard, Guard: ir.NoExpr, Body: body1, Span: sp(2)},
		{Pattern: truePat, Guard: ir.NoExpr, Body: body2, Span: sp(3)},
	})

	e.checkExhaustiveness(types.IdxBool, arena.ArmsOf(arms), sp(4))

	foundRedundant := false
	for _, d := range e.Bag.All() {
		if d.Code == diagnostic.E3006RedundantPattern {
			foundRedundant = true
		}
	}
	if !foundRedundant {
		t.Error("expected the arm after a wildcard to be flagged redundant")
	}
}

func TestInferLambdaProducesFunctionType(t *testing.T) {
	e, arena, in := newTestEngine()
	env := NewEnv()

	x := in.Intern("x")
	params := arena.AllocParams([]ir.Param{{Name: x, Annotation: ir.NoParsedType, Default: ir.NoExpr, Span: sp(0)}})
	body := arena.AllocExpr(ir.NewIdent(x, sp(1)))
	lambdaID := arena.AllocExpr(ir.NewLambda(arena, params, body, ir.NoParsedType, sp(2)))

	ty := e.Infer(lambdaID, env)
	if e.Pool.Tag(ty) != types.TagFunction {
		t.Fatalf("got tag %s, want Function", e.Pool.Tag(ty))
	}
}

// TestDoubleEndedOnlyMethodRejectedOnPlainIterator covers §4.6: calling
// `.rev()` on a plain Iterator (not DoubleEndedIterator) is diagnosed.
func TestDoubleEndedOnlyMethodRejectedOnPlainIterator(t *testing.T) {
	e, arena, in := newTestEngine()
	env := NewEnv()

	it := in.Intern("it")
	env.Bind(it, e.Pool.NewIterator(types.IdxInt))
	receiver := arena.AllocExpr(ir.NewIdent(it, sp(0)))
	args := arena.AllocExprList(nil)
	call := arena.AllocExpr(ir.NewMethodCall(receiver, in.Intern("rev"), args, sp(1)))

	e.Infer(call, env)
	found := false
	for _, d := range e.Bag.All() {
		if d.Code == diagnostic.E2019DoubleEndedOnly {
			found = true
		}
	}
	if !found {
		t.Errorf("expected E2019DoubleEndedOnly, got diagnostics: %v", e.Bag.All())
	}
}

// TestDoubleEndedMethodAllowedOnDoubleEndedIterator covers the
// complementary case: the same call on a DoubleEndedIterator receiver
// is not diagnosed.
func TestDoubleEndedMethodAllowedOnDoubleEndedIterator(t *testing.T) {
	e, arena, in := newTestEngine()
	env := NewEnv()

	it := in.Intern("it")
	env.Bind(it, e.Pool.NewDoubleEndedIterator(types.IdxInt))
	receiver := arena.AllocExpr(ir.NewIdent(it, sp(0)))
	args := arena.AllocExprList(nil)
	call := arena.AllocExpr(ir.NewMethodCall(receiver, in.Intern("rev"), args, sp(1)))

	e.Infer(call, env)
	for _, d := range e.Bag.All() {
		if d.Code == diagnostic.E2019DoubleEndedOnly {
			t.Errorf("unexpected E2019DoubleEndedOnly on a DoubleEndedIterator receiver")
		}
	}
}

// TestInfiniteIteratorConsumptionWarns covers §4.4.4: `repeat(1).map(f)
// .collect()` walks back through the transparent `map` adapter to the
// unbounded `repeat` source and warns.
func TestInfiniteIteratorConsumptionWarns(t *testing.T) {
	e, arena, in := newTestEngine()
	env := NewEnv()

	repeatName := in.Intern("repeat")
	env.Bind(repeatName, e.Pool.NewFunction([]types.Idx{types.IdxInt}, e.Pool.NewIterator(types.IdxInt)))
	repeatIdent := arena.AllocExpr(ir.NewIdent(repeatName, sp(0)))
	one := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(1)))
	repeatArgs := arena.AllocExprList([]ir.ExprId{one})
	repeatCall := arena.AllocExpr(ir.NewCall(repeatIdent, repeatArgs, sp(2)))

	x := in.Intern("x")
	params := arena.AllocParams([]ir.Param{{Name: x, Annotation: ir.NoParsedType, Default: ir.NoExpr, Span: sp(3)}})
	body := arena.AllocExpr(ir.NewIdent(x, sp(4)))
	mapFn := arena.AllocExpr(ir.NewLambda(arena, params, body, ir.NoParsedType, sp(5)))
	mapArgs := arena.AllocExprList([]ir.ExprId{mapFn})
	mapCall := arena.AllocExpr(ir.NewMethodCall(repeatCall, in.Intern("map"), mapArgs, sp(6)))

	collectArgs := arena.AllocExprList(nil)
	collectCall := arena.AllocExpr(ir.NewMethodCall(mapCall, in.Intern("collect"), collectArgs, sp(7)))

	e.Infer(collectCall, env)
	found := false
	for _, d := range e.Bag.All() {
		if d.Code == diagnostic.W2004InfiniteIteratorUsed {
			found = true
		}
	}
	if !found {
		t.Errorf("expected W2004InfiniteIteratorUsed, got diagnostics: %v", e.Bag.All())
	}
}

// TestBoundedIteratorConsumptionDoesNotWarn covers the `.take` case:
// `repeat(1).take(3).collect()` is bounded, so no warning fires.
func TestBoundedIteratorConsumptionDoesNotWarn(t *testing.T) {
	e, arena, in := newTestEngine()
	env := NewEnv()

	repeatName := in.Intern("repeat")
	env.Bind(repeatName, e.Pool.NewFunction([]types.Idx{types.IdxInt}, e.Pool.NewIterator(types.IdxInt)))
	repeatIdent := arena.AllocExpr(ir.NewIdent(repeatName, sp(0)))
	one := arena.AllocExpr(ir.NewIntLit(arena, 1, sp(1)))
	repeatArgs := arena.AllocExprList([]ir.ExprId{one})
	repeatCall := arena.AllocExpr(ir.NewCall(repeatIdent, repeatArgs, sp(2)))

	three := arena.AllocExpr(ir.NewIntLit(arena, 3, sp(3)))
	takeArgs := arena.AllocExprList([]ir.ExprId{three})
	takeCall := arena.AllocExpr(ir.NewMethodCall(repeatCall, in.Intern("take"), takeArgs, sp(4)))

	collectArgs := arena.AllocExprList(nil)
	collectCall := arena.AllocExpr(ir.NewMethodCall(takeCall, in.Intern("collect"), collectArgs, sp(5)))

	e.Infer(collectCall, env)
	for _, d := range e.Bag.All() {
		if d.Code == diagnostic.W2004InfiniteIteratorUsed {
			t.Errorf("unexpected W2004InfiniteIteratorUsed after an intervening .take")
		}
	}
}

// TestFloatRangeRejectedInForIn covers §4.6: iterating a Range<Float>
// directly is diagnosed rather than silently accepted.
func TestFloatRangeRejectedInForIn(t *testing.T) {
	e, arena, in := newTestEngine()
	env := NewEnv()

	lo := arena.AllocExpr(ir.NewFloatLit(arena, 0.0, sp(0)))
	hi := arena.AllocExpr(ir.NewFloatLit(arena, 1.0, sp(1)))
	rangeLit := arena.AllocExpr(ir.NewRangeLit(lo, hi, false, sp(2)))
	binder := in.Intern("f")
	body := arena.AllocExpr(ir.NewUnitLit(sp(3)))
	forIn := arena.AllocExpr(ir.NewForIn(arena, binder, rangeLit, ir.NoExpr, body, false, sp(4)))

	e.Infer(forIn, env)
	found := false
	for _, d := range e.Bag.All() {
		if d.Code == diagnostic.E2020FloatRangeNotIterable {
			found = true
		}
	}
	if !found {
		t.Errorf("expected E2020FloatRangeNotIterable, got diagnostics: %v", e.Bag.All())
	}
}

func hasCode(e *Engine, code diagnostic.Code) bool {
	for _, d := range e.Bag.All() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// TestCapabilityCheckRejectsMissingUses verifies §4.5: calling a
// function declared with a `uses` capability the current scope doesn't
// have is diagnosed as E2014MissingCapability.
func TestCapabilityCheckRejectsMissingUses(t *testing.T) {
	e, arena, in := newTestEngine()
	fsName, ioCap := in.Intern("readFile"), in.Intern("FileSystem")
	e.FuncUses = map[name.Name][]name.Name{fsName: {ioCap}}

	env := NewEnv() // no capabilities granted
	callee := arena.AllocExpr(ir.NewIdent(fsName, sp(0)))
	env.Bind(fsName, e.Pool.NewFunction(nil, types.IdxStr))
	args := arena.AllocExprList(nil)
	callID := arena.AllocExpr(ir.NewCall(callee, args, sp(1)))

	e.Infer(callID, env)
	if !hasCode(e, diagnostic.E2014MissingCapability) {
		t.Errorf("expected E2014MissingCapability calling a capability-requiring function with no capabilities granted, got: %v", e.Bag.All())
	}
}

// TestCapabilityCheckAllowsGrantedUses verifies the positive case: the
// same call under a scope that has acquired the required capability
// (as if nested in a `with FileSystem in { ... }` block) is clean.
func TestCapabilityCheckAllowsGrantedUses(t *testing.T) {
	e, arena, in := newTestEngine()
	fsName, ioCap := in.Intern("readFile"), in.Intern("FileSystem")
	e.FuncUses = map[name.Name][]name.Name{fsName: {ioCap}}

	env := NewEnv().WithCapabilities([]name.Name{ioCap})
	callee := arena.AllocExpr(ir.NewIdent(fsName, sp(0)))
	env.Bind(fsName, e.Pool.NewFunction(nil, types.IdxStr))
	args := arena.AllocExprList(nil)
	callID := arena.AllocExpr(ir.NewCall(callee, args, sp(1)))

	e.Infer(callID, env)
	if hasCode(e, diagnostic.E2014MissingCapability) {
		t.Errorf("expected no E2014MissingCapability once the capability is granted, got: %v", e.Bag.All())
	}
}

// TestGenericBoundRejectsUnsatisfiedTraitBound covers §4.4.1 phases
// 2-3: calling a function whose declared `where` clause binds its
// first parameter to a trait with no registered impl for the concrete
// argument type is diagnosed as E2013UnsatisfiedBound.
func TestGenericBoundRejectsUnsatisfiedTraitBound(t *testing.T) {
	e, arena, in := newTestEngine()
	env := NewEnv()

	fn, show, widget := in.Intern("describe"), in.Intern("Show"), in.Intern("Widget")
	receiverTy := e.Pool.NewNamed(widget)
	e.FuncBounds = map[name.Name][]GenericBound{fn: {{Trait: show, ParamIndex: 0}}}

	callee := arena.AllocExpr(ir.NewIdent(fn, sp(0)))
	env.Bind(fn, e.Pool.NewFunction([]types.Idx{receiverTy}, types.IdxUnit))
	w := in.Intern("w")
	env.Bind(w, receiverTy)
	arg := arena.AllocExpr(ir.NewIdent(w, sp(1)))
	args := arena.AllocExprList([]ir.ExprId{arg})
	callID := arena.AllocExpr(ir.NewCall(callee, args, sp(2)))

	e.Infer(callID, env)
	if !hasCode(e, diagnostic.E2013UnsatisfiedBound) {
		t.Errorf("expected E2013UnsatisfiedBound calling describe(w) with no Show impl for Widget, got: %v", e.Bag.All())
	}
}

// TestGenericBoundAllowsSatisfiedTraitBound covers the complementary
// case: the same call against a receiver type with a registered impl
// of the required trait is clean.
func TestGenericBoundAllowsSatisfiedTraitBound(t *testing.T) {
	e, arena, in := newTestEngine()
	env := NewEnv()

	fn, show, widget := in.Intern("describe"), in.Intern("Show"), in.Intern("Widget")
	receiverTy := e.Pool.NewNamed(widget)
	e.FuncBounds = map[name.Name][]GenericBound{fn: {{Trait: show, ParamIndex: 0}}}

	if err := e.Traits.RegisterTrait(&registry.TraitDef{Name: show}); err != nil {
		t.Fatalf("RegisterTrait: %v", err)
	}
	if err := e.Traits.RegisterImpl(&registry.Impl{Trait: show, Receiver: receiverTy, Methods: map[name.Name]ir.ExprId{}}); err != nil {
		t.Fatalf("RegisterImpl: %v", err)
	}

	callee := arena.AllocExpr(ir.NewIdent(fn, sp(0)))
	env.Bind(fn, e.Pool.NewFunction([]types.Idx{receiverTy}, types.IdxUnit))
	w := in.Intern("w")
	env.Bind(w, receiverTy)
	arg := arena.AllocExpr(ir.NewIdent(w, sp(1)))
	args := arena.AllocExprList([]ir.ExprId{arg})
	callID := arena.AllocExpr(ir.NewCall(callee, args, sp(2)))

	e.Infer(callID, env)
	if hasCode(e, diagnostic.E2013UnsatisfiedBound) {
		t.Errorf("expected no E2013UnsatisfiedBound once Widget implements Show, got: %v", e.Bag.All())
	}
}
