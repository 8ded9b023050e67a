package infer

import (
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/types"
)

// CheckFunction type-checks one top-level function/test/config body:
// it binds params (resolving their annotations, or a fresh Var for an
// unannotated one) into a fresh root scope seeded with uses (§4.5 — the
// capabilities this function itself is declared to need, and so the
// only ones its own body is allowed to call into without a `with ...
// in` acquisition), resolves the declared return type, infers the body
// against that scope, and checks the body's type against the declared
// return type when one was given. generics carries the function's own
// generic parameters already resolved to pool Vars, keyed by name, for
// resolveParsedType to consult (§4.4.1); pass nil for a non-generic
// function.
func (e *Engine) CheckFunction(params ir.ParamRange, returnType ir.ParsedTypeId, body ir.ExprId, generics TypeParams, uses []name.Name) types.Idx {
	if generics == nil {
		generics = TypeParams{}
	}
	env := NewEnv().WithCapabilities(uses)
	for _, p := range e.Arena.ParamsOf(params) {
		env.Bind(p.Name, e.resolveParsedType(p.Annotation, generics))
	}

	prevReturn := e.returnType
	e.returnType = e.resolveParsedType(returnType, generics)
	defer func() { e.returnType = prevReturn }()

	bodyTy := e.Infer(body, env)
	if returnType.Valid() {
		e.CheckType(bodyTy, e.returnType, e.Arena.Expr(body).Span, ExpectedOrigin{Kind: OriginReturnType})
	}
	return bodyTy
}
