package infer

import (
	"github.com/sigil-lang/ori/internal/diagnostic"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/registry"
	"github.com/sigil-lang/ori/internal/span"
	"github.com/sigil-lang/ori/internal/types"
)

// calleeName returns the plain name a callee/method-receiver expression
// resolves to, if it is a bare reference rather than a computed
// expression — the only shape FuncUses can key a capability lookup on
// (mirrors internal/canon's identically-named helper for the same
// name.Name-keyed-table reason).
func (e *Engine) calleeName(id ir.ExprId) (name.Name, bool) {
	expr := e.Arena.Expr(id)
	switch expr.Kind {
	case ir.ExprIdent, ir.ExprFuncRef:
		return expr.Name, true
	default:
		return 0, false
	}
}

// GenericBound is one `where T: Trait` constraint resolved against a
// declared function's parameter list (§4.4.1 phases 2-3): ParamIndex
// names which declared parameter's type is exactly the bound generic
// parameter, so a call site can read the concrete type substituted
// there back out of its own already-inferred argument types. A bound
// whose subject isn't a bare parameter's own declared type (e.g. a
// bound on a type nested inside a parameter, or on an associated type
// projection) has no ParamIndex to anchor on and is not represented
// here — see Module.GenericBounds for the exact carve-out.
type GenericBound struct {
	Trait      name.Name
	ParamIndex int
}

// checkGenericBounds implements §4.4.1 phases 2-3: phase 1 (ordinary
// unification between declared parameter types and argument types) has
// already run by the time this is called; this phase re-reads the
// concrete type unification left for each bound parameter and verifies
// a real impl exists in e.Traits, pushing E2013UnsatisfiedBound at
// callSpan for every bound the concrete argument type doesn't satisfy.
func (e *Engine) checkGenericBounds(callee name.Name, argTypes []types.Idx, callSpan span.Span) {
	for _, b := range e.FuncBounds[callee] {
		if b.ParamIndex < 0 || b.ParamIndex >= len(argTypes) {
			continue
		}
		concrete := e.resolve(argTypes[b.ParamIndex])
		if _, ok := e.Traits.Impl(b.Trait, concrete); !ok {
			e.Bag.Push(diagnostic.New(diagnostic.E2013UnsatisfiedBound, callSpan,
				"this argument's type does not implement "+e.Interner.Lookup(b.Trait)))
		}
	}
}

// checkCapabilities implements §4.5: callee is checked against
// e.FuncUses for a declared `uses` set, and every capability not
// present anywhere in env's scope chain is diagnosed as E2014 at
// callSpan. A callee this pass can't resolve a FuncUses entry for
// (anonymous/computed callee, or a name with no declared `uses`)
// requires nothing.
func (e *Engine) checkCapabilities(callee name.Name, callSpan span.Span, env *Env) {
	required, ok := e.FuncUses[callee]
	if !ok {
		return
	}
	for _, cap := range required {
		if !env.HasCapability(cap) {
			e.Bag.Push(diagnostic.New(diagnostic.E2014MissingCapability, callSpan,
				"this call requires capability "+e.Interner.Lookup(cap)+", not available in this scope"))
		}
	}
}

// inferCall implements positional call application (§4.4): the callee
// must resolve to a Function type; each argument is checked against
// the corresponding parameter, and the result is the function's return
// type.
func (e *Engine) inferCall(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	callee := ir.ExprId(expr.A)
	calleeTy := e.resolve(e.Infer(callee, env))
	args := e.Arena.ExprListOf(ir.ExprRange{Start: expr.B, Len: expr.Len})

	if e.Pool.Tag(calleeTy) != types.TagFunction {
		e.Bag.Push(diagnostic.New(diagnostic.E2006NotCallable, expr.Span, "this expression is not callable"))
		for _, a := range args {
			e.Infer(a, env)
		}
		return types.IdxError
	}

	calleeName, hasCalleeName := e.calleeName(callee)
	if hasCalleeName {
		e.checkCapabilities(calleeName, expr.Span, env)
	}

	params := e.Pool.FunctionParams(calleeTy)
	if len(args) != len(params) {
		e.Bag.Push(diagnostic.New(diagnostic.E2002ArityMismatch, expr.Span,
			"wrong number of arguments to this call"))
	}
	argTypes := make([]types.Idx, len(args))
	for i, a := range args {
		if i >= len(params) {
			e.Infer(a, env)
			continue
		}
		argTypes[i] = e.checkArgument(a, params[i], i, env)
	}
	if hasCalleeName {
		e.checkGenericBounds(calleeName, argTypes, expr.Span)
	}
	return e.Pool.FunctionReturn(calleeTy)
}

// checkArgument infers arg's type and unifies it against expected,
// silently widening a bare integer literal to a Float/Byte parameter
// first (§4.4). Returns the argument's own resolved type (expected,
// for a widened literal) so a caller checking generic where-clause
// bounds can read back the concrete type substituted for a bound
// parameter without inferring arg a second time.
func (e *Engine) checkArgument(arg ir.ExprId, expected types.Idx, index int, env *Env) types.Idx {
	if e.widenIntLiteral(arg, expected) {
		return expected
	}
	argTy := e.Infer(arg, env)
	e.CheckType(argTy, expected, e.Arena.Expr(arg).Span, ExpectedOrigin{Kind: OriginArgument, Index: index})
	return argTy
}

// inferCallNamed implements a call whose arguments carry names (§4.4,
// §4.7 CallNamed reordering is a canonicalization-time concern; here
// each named argument is matched against the callee's declared
// parameter names directly since the callee's Function type alone
// doesn't carry parameter names — name resolution against the actual
// declaration happens through the registry-backed scheme the callee
// identifier resolved from).
func (e *Engine) inferCallNamed(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	callee := ir.ExprId(expr.A)
	calleeTy := e.resolve(e.Infer(callee, env))
	args := e.Arena.CallArgsOf(ir.CallArgRange{Start: expr.B, Len: expr.Len})

	if e.Pool.Tag(calleeTy) != types.TagFunction {
		e.Bag.Push(diagnostic.New(diagnostic.E2006NotCallable, expr.Span, "this expression is not callable"))
		for _, a := range args {
			e.Infer(a.Value, env)
		}
		return types.IdxError
	}

	calleeName, hasCalleeName := e.calleeName(callee)
	if hasCalleeName {
		e.checkCapabilities(calleeName, expr.Span, env)
	}

	params := e.Pool.FunctionParams(calleeTy)
	seen := make(map[name.Name]bool, len(args))
	argTypes := make([]types.Idx, len(args))
	for i, a := range args {
		if a.Name != name.Empty {
			if seen[a.Name] {
				e.Bag.Push(diagnostic.New(diagnostic.E2016DuplicateNamedArg, a.Span,
					"duplicate named argument"))
			}
			seen[a.Name] = true
		}
		if i < len(params) {
			argTypes[i] = e.checkArgument(a.Value, params[i], i, env)
		} else {
			e.Infer(a.Value, env)
		}
	}
	if hasCalleeName {
		e.checkGenericBounds(calleeName, argTypes, expr.Span)
	}
	return e.Pool.FunctionReturn(calleeTy)
}

// inferField implements field access (§4.4): the receiver must resolve
// to a Named/Applied struct type with the requested field, whose
// declared type (with generic parameters substituted, for Applied
// receivers) is the expression's type.
func (e *Engine) inferField(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	receiver := ir.ExprId(expr.A)
	receiverTy := e.resolve(e.Infer(receiver, env))
	typeName, ok := e.namedTypeOf(receiverTy)
	if !ok {
		e.Bag.Push(diagnostic.New(diagnostic.E2004UnknownField, expr.Span, "this type has no fields"))
		return types.IdxError
	}
	fieldTy, _, ok := e.Types.Field(typeName, expr.Name)
	if !ok {
		e.Bag.Push(diagnostic.New(diagnostic.E2004UnknownField, expr.Span,
			"no field "+e.Interner.Lookup(expr.Name)+" on this type"))
		return types.IdxError
	}
	return fieldTy
}

// inferIndex implements indexing (§4.4): List/Map/Tuple receivers each
// have their own index-key/result-type rule.
func (e *Engine) inferIndex(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	receiver, index := ir.ExprId(expr.A), ir.ExprId(expr.B)
	receiverTy := e.resolve(e.Infer(receiver, env))
	indexTy := e.Infer(index, env)

	switch e.Pool.Tag(receiverTy) {
	case types.TagList:
		e.CheckType(indexTy, types.IdxInt, e.Arena.Expr(index).Span, ExpectedOrigin{Kind: OriginArgument})
		return e.Pool.Elem(receiverTy)
	case types.TagMap:
		key, value := e.Pool.MapKeyValue(receiverTy)
		e.CheckType(indexTy, key, e.Arena.Expr(index).Span, ExpectedOrigin{Kind: OriginArgument})
		return value
	case types.TagTuple:
		return e.Pool.NewVar()
	default:
		e.Bag.Push(diagnostic.New(diagnostic.E2007NotIndexable, expr.Span, "this type cannot be indexed"))
		return types.IdxError
	}
}

// inferMethodCall implements positional method-call resolution (§3.4,
// §4.6): built-in methods resolve through the MethodRegistry first,
// falling back to inherent-then-trait impls; higher-order methods
// (map/filter/fold/find/any/all) additionally type their closure
// argument against the receiver's element type.
func (e *Engine) inferMethodCall(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	receiver := ir.ExprId(expr.A)
	receiverTy := e.resolve(e.Infer(receiver, env))
	args := e.Arena.ExprListOf(ir.ExprRange{Start: expr.B, Len: expr.Len})

	resolution, err := e.Methods.Lookup(e.Pool, receiverTy, expr.Name, e.Traits)
	if err != nil {
		if ambiguous, ok := err.(*registry.AmbiguousMethodError); ok {
			e.Bag.Push(diagnostic.New(diagnostic.E2015AmbiguousMethod, expr.Span,
				"multiple trait implementations provide method "+e.Interner.Lookup(ambiguous.Method)))
		}
		for _, a := range args {
			e.Infer(a, env)
		}
		return types.IdxError
	}
	if resolution == nil {
		e.Bag.Push(diagnostic.New(diagnostic.E2005UnknownMethod, expr.Span,
			"no method "+e.Interner.Lookup(expr.Name)+" on this type"))
		for _, a := range args {
			e.Infer(a, env)
		}
		return types.IdxError
	}

	if resolution.IsBuiltin {
		e.checkDoubleEndedOnly(receiverTy, expr)
		e.checkInfiniteIteratorConsumption(receiver, expr)
	}
	e.checkCapabilities(expr.Name, expr.Span, env)
	if resolution.IsBuiltin && resolution.Builtin.Transform == registry.TransformHigherOrder {
		return e.inferHigherOrderMethod(expr, receiverTy, resolution.Builtin, args, env)
	}
	if resolution.IsBuiltin {
		for _, a := range args {
			e.Infer(a, env)
		}
		return e.Methods.BuiltinReturnType(e.Pool, receiverTy, resolution.Builtin)
	}

	// Inherent/trait method: the arguments are inferred but not checked
	// against the method's declared parameters, and the call's type is
	// a fresh variable rather than the method's declared return type.
	for _, a := range args {
		e.Infer(a, env)
	}
	return e.Pool.NewVar()
}

// inferMethodCallNamed mirrors inferMethodCall for a named-argument
// method call (§4.6); built-ins never take named arguments in
// practice, so this only matters for user-defined trait/inherent
// methods, whose argument names are reconciled against the
// declaration during canonicalization (§4.7).
func (e *Engine) inferMethodCallNamed(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	receiver := ir.ExprId(expr.A)
	receiverTy := e.resolve(e.Infer(receiver, env))
	args := e.Arena.CallArgsOf(ir.CallArgRange{Start: expr.B, Len: expr.Len})

	resolution, err := e.Methods.Lookup(e.Pool, receiverTy, expr.Name, e.Traits)
	if err != nil {
		if ambiguous, ok := err.(*registry.AmbiguousMethodError); ok {
			e.Bag.Push(diagnostic.New(diagnostic.E2015AmbiguousMethod, expr.Span,
				"multiple trait implementations provide method "+e.Interner.Lookup(ambiguous.Method)))
		}
		for _, a := range args {
			e.Infer(a.Value, env)
		}
		return types.IdxError
	}
	if resolution == nil {
		e.Bag.Push(diagnostic.New(diagnostic.E2005UnknownMethod, expr.Span,
			"no method "+e.Interner.Lookup(expr.Name)+" on this type"))
		for _, a := range args {
			e.Infer(a.Value, env)
		}
		return types.IdxError
	}
	e.checkCapabilities(expr.Name, expr.Span, env)
	for _, a := range args {
		e.Infer(a.Value, env)
	}
	if resolution.IsBuiltin {
		return e.Methods.BuiltinReturnType(e.Pool, receiverTy, resolution.Builtin)
	}
	return e.Pool.NewVar()
}

// inferHigherOrderMethod types the single-closure-argument methods
// (§3.4 HigherOrderMethod): the closure's parameter(s) are bound
// against the receiver's element type before its body is checked, and
// the method's own return type is derived from the closure's result.
func (e *Engine) inferHigherOrderMethod(expr ir.Expr, receiverTy types.Idx, m registry.BuiltinMethod, args []ir.ExprId, env *Env) types.Idx {
	receiverTag := e.Pool.Tag(receiverTy)
	isIterator := receiverTag == types.TagIterator || receiverTag == types.TagDoubleEndedIterator
	elemTy := types.Idx(types.IdxError)
	if receiverTag == types.TagList || receiverTag == types.TagSet || receiverTag == types.TagOption || isIterator {
		elemTy = e.Pool.Elem(receiverTy)
	}
	if len(args) == 0 {
		return types.IdxError
	}

	switch m.HigherOrder {
	case registry.HOMap:
		resultTy := e.inferClosureArg(args[0], []types.Idx{elemTy}, env)
		// An Iterator's map stays lazy (§4.4.4 transparent adapters);
		// a List's map eagerly produces another List.
		if isIterator {
			return e.Pool.NewIterator(resultTy)
		}
		return e.Pool.NewList(resultTy)

	case registry.HOFilter:
		predTy := e.inferClosureArg(args[0], []types.Idx{elemTy}, env)
		e.CheckType(predTy, types.IdxBool, e.Arena.Expr(args[0]).Span, ExpectedOrigin{Kind: OriginArgument})
		return receiverTy

	case registry.HOFold:
		if len(args) < 2 {
			return types.IdxError
		}
		initTy := e.Infer(args[0], env)
		resultTy := e.inferClosureArg(args[1], []types.Idx{initTy, elemTy}, env)
		e.CheckType(resultTy, initTy, e.Arena.Expr(args[1]).Span, ExpectedOrigin{Kind: OriginArgument})
		return initTy

	case registry.HOFind:
		predTy := e.inferClosureArg(args[0], []types.Idx{elemTy}, env)
		e.CheckType(predTy, types.IdxBool, e.Arena.Expr(args[0]).Span, ExpectedOrigin{Kind: OriginArgument})
		return e.Pool.NewOption(elemTy)

	case registry.HOPredicate:
		predTy := e.inferClosureArg(args[0], []types.Idx{elemTy}, env)
		e.CheckType(predTy, types.IdxBool, e.Arena.Expr(args[0]).Span, ExpectedOrigin{Kind: OriginArgument})
		return types.IdxBool

	default:
		return types.IdxError
	}
}

// inferClosureArg checks a higher-order method's closure argument: a
// lambda literal has its parameters bound directly to paramTypes
// (a parameter annotation, if present, is checked against the bound
// type); any other
// expression (a bound function value) is inferred normally and must
// resolve to a matching Function type.
func (e *Engine) inferClosureArg(arg ir.ExprId, paramTypes []types.Idx, env *Env) types.Idx {
	expr := e.Arena.Expr(arg)
	if expr.Kind != ir.ExprLambda {
		fnTy := e.resolve(e.Infer(arg, env))
		if e.Pool.Tag(fnTy) == types.TagFunction {
			return e.Pool.FunctionReturn(fnTy)
		}
		return e.Pool.NewVar()
	}

	data := e.Arena.Lambda(expr.A)
	params := e.Arena.ParamsOf(data.Params)
	lambdaEnv := env.Child()
	for i, p := range params {
		paramTy := e.Pool.NewVar()
		if i < len(paramTypes) {
			paramTy = paramTypes[i]
		}
		if p.Annotation.Valid() {
			annotTy := e.resolveParsedType(p.Annotation, nil)
			e.CheckType(paramTy, annotTy, p.Span, ExpectedOrigin{Kind: OriginAnnotation})
		}
		lambdaEnv.Bind(p.Name, paramTy)
	}
	bodyTy := e.Infer(data.Body, lambdaEnv)
	e.record(arg, e.Pool.NewFunction(paramTypes, bodyTy))
	return bodyTy
}
