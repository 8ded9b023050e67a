package infer

import (
	"github.com/sigil-lang/ori/internal/diagnostic"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/types"
)

// inferRange implements `lo..hi`/`lo..=hi` range literals (§4.4): both
// bounds must agree on one type, which becomes the range's element
// type. Iterating a Range<Float> is rejected separately, at the for-in
// call site, since a range literal standing alone (e.g. passed to
// `.contains`) is perfectly well-typed.
func (e *Engine) inferRange(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	lo, hi := ir.ExprId(expr.A), ir.ExprId(expr.B)
	loTy := e.Infer(lo, env)
	if hi.Valid() {
		hiTy := e.Infer(hi, env)
		e.CheckType(hiTy, loTy, e.Arena.Expr(hi).Span, ExpectedOrigin{Kind: OriginSequenceElement})
	}
	return e.Pool.NewRange(loTy)
}

// inferListLit implements list literals (§4.4): every element unifies
// to the first element's type (or a fresh var for an empty list).
func (e *Engine) inferListLit(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	elems := e.Arena.ExprListOf(ir.ExprRange{Start: expr.A, Len: expr.Len})
	elemTy := e.Pool.NewVar()
	for _, el := range elems {
		ty := e.Infer(el, env)
		e.CheckType(ty, elemTy, e.Arena.Expr(el).Span, ExpectedOrigin{Kind: OriginSequenceElement})
	}
	return e.Pool.NewList(elemTy)
}

// inferSetLit mirrors inferListLit for `{...}` set literals (§4.4).
func (e *Engine) inferSetLit(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	elems := e.Arena.ExprListOf(ir.ExprRange{Start: expr.A, Len: expr.Len})
	elemTy := e.Pool.NewVar()
	for _, el := range elems {
		ty := e.Infer(el, env)
		e.CheckType(ty, elemTy, e.Arena.Expr(el).Span, ExpectedOrigin{Kind: OriginSequenceElement})
	}
	return e.Pool.NewSet(elemTy)
}

// inferTupleLit implements tuple literals (§4.4): each element's type
// is inferred independently and the result is a Tuple of them, in order.
func (e *Engine) inferTupleLit(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	elems := e.Arena.ExprListOf(ir.ExprRange{Start: expr.A, Len: expr.Len})
	tys := make([]types.Idx, len(elems))
	for i, el := range elems {
		tys[i] = e.Infer(el, env)
	}
	return e.Pool.NewTuple(tys)
}

// inferMapLit implements map literals (§4.4): every key unifies to a
// common key type and every value to a common value type; a spread
// entry (`...base`) must itself be a Map of that same key/value pair
// (§4.7 MapWithSpread).
func (e *Engine) inferMapLit(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	entries := e.Arena.MapEntriesOf(ir.MapEntryRange{Start: expr.A, Len: expr.Len})
	keyTy, valueTy := e.Pool.NewVar(), e.Pool.NewVar()
	for _, entry := range entries {
		if entry.IsSpread() {
			baseTy := e.resolve(e.Infer(entry.Value, env))
			if e.Pool.Tag(baseTy) == types.TagMap {
				k, v := e.Pool.MapKeyValue(baseTy)
				e.CheckType(k, keyTy, e.Arena.Expr(entry.Value).Span, ExpectedOrigin{Kind: OriginSequenceElement})
				e.CheckType(v, valueTy, e.Arena.Expr(entry.Value).Span, ExpectedOrigin{Kind: OriginSequenceElement})
			} else {
				e.Bag.Push(diagnostic.New(diagnostic.E2001TypeMismatch, e.Arena.Expr(entry.Value).Span,
					"spread entry in a map literal must be a Map"))
			}
			continue
		}
		kTy := e.Infer(entry.Key, env)
		vTy := e.Infer(entry.Value, env)
		e.CheckType(kTy, keyTy, e.Arena.Expr(entry.Key).Span, ExpectedOrigin{Kind: OriginSequenceElement})
		e.CheckType(vTy, valueTy, e.Arena.Expr(entry.Value).Span, ExpectedOrigin{Kind: OriginSequenceElement})
	}
	return e.Pool.NewMap(keyTy, valueTy)
}

// inferStructLit implements struct literals, including spread entries
// (§4.4, §4.7 StructWithSpread): every named field is checked against
// the registry's declared field type, and a spread entry's base must
// be the same struct type.
func (e *Engine) inferStructLit(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	fields := e.Arena.FieldInitsOf(ir.FieldInitRange{Start: expr.A, Len: expr.Len})
	typeName := expr.Name
	for _, f := range fields {
		if f.IsSpread() {
			baseTy := e.resolve(e.Infer(f.Value, env))
			if baseName, ok := e.namedTypeOf(baseTy); !ok || baseName != typeName {
				e.Bag.Push(diagnostic.New(diagnostic.E2001TypeMismatch, f.Span,
					"spread entry must be the same struct type"))
			}
			continue
		}
		fieldTy, _, ok := e.Types.Field(typeName, f.Name)
		if !ok {
			e.Bag.Push(diagnostic.New(diagnostic.E2004UnknownField, f.Span,
				"no field "+e.Interner.Lookup(f.Name)+" on this type"))
			e.Infer(f.Value, env)
			continue
		}
		e.checkArgument(f.Value, fieldTy, 0, env)
	}
	return e.Pool.NewNamed(typeName)
}

// inferListSpread implements `[a, b, ...c, d]` list construction with
// interior spreads (§4.7 ListWithSpread): plain items unify to the
// element type directly, spread items must themselves be a List of it.
func (e *Engine) inferListSpread(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	items := e.Arena.CallArgsOf(ir.CallArgRange{Start: expr.A, Len: expr.Len})
	elemTy := e.Pool.NewVar()
	for _, item := range items {
		if item.IsSpread {
			baseTy := e.resolve(e.Infer(item.Value, env))
			if e.Pool.Tag(baseTy) == types.TagList {
				e.CheckType(e.Pool.Elem(baseTy), elemTy, item.Span, ExpectedOrigin{Kind: OriginSequenceElement})
			} else {
				e.Bag.Push(diagnostic.New(diagnostic.E2001TypeMismatch, item.Span,
					"spread entry in a list literal must be a List"))
			}
			continue
		}
		ty := e.Infer(item.Value, env)
		e.CheckType(ty, elemTy, item.Span, ExpectedOrigin{Kind: OriginSequenceElement})
	}
	return e.Pool.NewList(elemTy)
}

// inferMapSpread implements `%{...a, "k" => v}` (§4.7 MapWithSpread),
// sharing its key/value unification with inferMapLit's spread case.
func (e *Engine) inferMapSpread(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	return e.inferMapLit(id, expr, env)
}

// inferTemplateParts checks every interpolated expression inside a
// template literal (§4.4); text chunks are plain string constants and
// need no further checking. Interpolated values accept any type — the
// canonicalizer lowers each part through a stringification call
// (§4.7) — so this only needs to populate ExprTypes for later passes.
func (e *Engine) inferTemplateParts(expr ir.Expr, env *Env) {
	parts := e.Arena.ExprListOf(ir.ExprRange{Start: expr.A, Len: expr.Len})
	for _, p := range parts {
		e.Infer(p, env)
	}
}

// inferTry implements the `?` operator (§4.4): the operand must be an
// Option or a Result, unwrapping to its Some/Ok payload; a Result's Err
// case must additionally be compatible with the enclosing function's
// declared return type's error arm.
func (e *Engine) inferTry(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	operand := ir.ExprId(expr.A)
	operandTy := e.resolve(e.Infer(operand, env))

	switch e.Pool.Tag(operandTy) {
	case types.TagOption:
		return e.Pool.Elem(operandTy)
	case types.TagResult:
		ok, errTy := e.Pool.ResultOkErr(operandTy)
		if e.Pool.Tag(e.resolve(e.returnType)) == types.TagResult {
			_, enclosingErr := e.Pool.ResultOkErr(e.resolve(e.returnType))
			e.CheckType(errTy, enclosingErr, expr.Span, ExpectedOrigin{Kind: OriginReturnType})
		}
		return ok
	default:
		e.Bag.Push(diagnostic.New(diagnostic.E2018InvalidTryOperand, expr.Span,
			"`?` requires an Option or Result operand"))
		return types.IdxError
	}
}

// inferLambda implements anonymous function literals (§4.4): each
// parameter's type is its annotation if present, otherwise a fresh
// var solved from how the body (or an enclosing expected-type context,
// e.g. a higher-order method argument) uses it.
func (e *Engine) inferLambda(id ir.ExprId, expr ir.Expr, env *Env) types.Idx {
	data := e.Arena.Lambda(expr.A)
	params := e.Arena.ParamsOf(data.Params)
	lambdaEnv := env.Child()
	paramTys := make([]types.Idx, len(params))
	for i, p := range params {
		ty := e.Pool.NewVar()
		if p.Annotation.Valid() {
			ty = e.resolveParsedType(p.Annotation, nil)
		}
		paramTys[i] = ty
		lambdaEnv.Bind(p.Name, ty)
	}
	bodyTy := e.Infer(data.Body, lambdaEnv)
	if data.ReturnAnnot.Valid() {
		retTy := e.resolveParsedType(data.ReturnAnnot, nil)
		e.CheckType(bodyTy, retTy, e.Arena.Expr(data.Body).Span, ExpectedOrigin{Kind: OriginReturnType})
		bodyTy = retTy
	}
	return e.Pool.NewFunction(paramTys, bodyTy)
}
