// Package infer implements the bidirectional type inference engine
// (§4.4-§4.6): expression-directed type synthesis, expectation
// checking, generic/where-clause resolution, capability checking, and
// method resolution, all layered on the types.Pool/Subst unification
// engine and the registry package's lookup tables.
package infer

import (
	"github.com/sigil-lang/ori/internal/diagnostic"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/registry"
	"github.com/sigil-lang/ori/internal/span"
	"github.com/sigil-lang/ori/internal/types"
)

// Engine holds every piece of shared state one inference pass over a
// module threads through: the syntax arena being checked, the type
// pool/substitution it allocates into, the module's registries, and
// the diagnostic bag every check reports into. One Engine is built per
// module and discarded after canonicalization reads its result maps.
type Engine struct {
	Arena    *ir.Arena
	Pool     *types.Pool
	Subst    *types.Subst
	Interner *name.Interner
	Types    *registry.TypeRegistry
	Traits   *registry.TraitRegistry
	Methods  *registry.MethodRegistry
	Bag      *diagnostic.Bag

	// ExprTypes records every expression's inferred type, keyed by id —
	// the "expression types" half of the TypeCheckResult the
	// canonicalizer consumes (§4.7).
	ExprTypes map[ir.ExprId]types.Idx

	// Patterns records the ambiguity resolution for every
	// PatBinding pattern (§4.4.3).
	Patterns map[ir.MatchPatternId]PatternResolution

	selfName name.Name

	loopBreak []types.Idx // stack of fresh break-type vars, one per enclosing Loop

	returnType types.Idx // the enclosing function's declared/inferred return type, IdxError if none

	// FuncUses maps a function or method name to its declared capability
	// set (§4.5's `uses` clauses), populated by internal/module from
	// every FunctionDecl (top-level functions/tests/configs, plus trait/
	// impl/extend methods) before a Check pass runs. A name absent from
	// this map requires no capability at all. Methods are keyed by plain
	// method name rather than (receiver, name) — the same name-keyed
	// shape and collision caveat as Module.Signatures.
	FuncUses map[name.Name][]name.Name

	// FuncBounds maps a function or method name to its declared `where`
	// bounds (§4.4.1 phases 2-3), populated by internal/module from the
	// same FunctionDecl set as FuncUses. A name absent from this map has
	// no bound to check at a call site.
	FuncBounds map[name.Name][]GenericBound
}

// New returns an Engine ready to check expressions out of arena.
func New(arena *ir.Arena, pool *types.Pool, interner *name.Interner, typeReg *registry.TypeRegistry, traitReg *registry.TraitRegistry, methodReg *registry.MethodRegistry, bag *diagnostic.Bag) *Engine {
	return &Engine{
		Arena:     arena,
		Pool:      pool,
		Subst:     types.NewSubst(),
		Interner:  interner,
		Types:     typeReg,
		Traits:    traitReg,
		Methods:   methodReg,
		Bag:       bag,
		ExprTypes: make(map[ir.ExprId]types.Idx),
		Patterns:  make(map[ir.MatchPatternId]PatternResolution),
		selfName:  interner.Intern("Self"),
		returnType: types.IdxError,
	}
}

// resolve follows id through the substitution table to its current
// representative.
func (e *Engine) resolve(idx types.Idx) types.Idx {
	return e.Subst.Resolve(e.Pool, idx)
}

// record stores ty as id's inferred type and returns ty, so callers can
// write `return e.record(id, ty)`.
func (e *Engine) record(id ir.ExprId, ty types.Idx) types.Idx {
	e.ExprTypes[id] = ty
	return ty
}

// Finish resolves every recorded expression type through Subst in
// place, one final time, so the canonicalizer can read ExprTypes
// directly without needing its own substitution table. Call this once
// after a module's last Infer call and before handing ExprTypes to
// canon.New.
func (e *Engine) Finish() {
	for id, ty := range e.ExprTypes {
		e.ExprTypes[id] = e.resolve(ty)
	}
}

// Infer infers the type of the expression at id, dispatching on its
// kind per the §4.4 table, recording the result in ExprTypes.
func (e *Engine) Infer(id ir.ExprId, env *Env) types.Idx {
	if !id.Valid() {
		return types.IdxUnit
	}
	expr := e.Arena.Expr(id)
	var ty types.Idx
	switch expr.Kind {
	case ir.ExprIntLit, ir.ExprFloatLit, ir.ExprBoolLit, ir.ExprStringLit,
		ir.ExprCharLit, ir.ExprDurationLit, ir.ExprSizeLit, ir.ExprUnitLit, ir.ExprNilLit:
		ty = e.inferLiteral(id, expr)

	case ir.ExprIdent:
		ty = e.inferIdent(id, expr, env)
	case ir.ExprFuncRef:
		ty = e.inferIdent(id, expr, env)
	case ir.ExprConfigRef:
		ty = e.inferIdent(id, expr, env)
	case ir.ExprSelfRef:
		if selfTy, ok := env.Lookup(e.selfName); ok {
			ty = selfTy
		} else {
			ty = e.Pool.NewVar()
		}

	case ir.ExprUnary:
		ty = e.inferUnary(id, expr, env)
	case ir.ExprBinary:
		ty = e.inferBinary(id, expr, env)

	case ir.ExprIf:
		ty = e.inferIf(id, expr, env)
	case ir.ExprMatch:
		ty = e.inferMatch(id, expr, env)
	case ir.ExprBlock:
		ty = e.inferBlock(id, expr, env)
	case ir.ExprForIn:
		ty = e.inferForIn(id, expr, env)
	case ir.ExprLoop:
		ty = e.inferLoop(id, expr, env)
	case ir.ExprBreak:
		ty = e.inferBreak(id, expr, env)
	case ir.ExprContinue:
		ty = types.IdxNever
	case ir.ExprLet:
		ty = e.inferLet(id, expr, env)
	case ir.ExprAssign:
		ty = e.inferAssign(id, expr, env)

	case ir.ExprCall:
		ty = e.inferCall(id, expr, env)
	case ir.ExprCallNamed:
		ty = e.inferCallNamed(id, expr, env)
	case ir.ExprMethodCall:
		ty = e.inferMethodCall(id, expr, env)
	case ir.ExprMethodCallNamed:
		ty = e.inferMethodCallNamed(id, expr, env)
	case ir.ExprField:
		ty = e.inferField(id, expr, env)
	case ir.ExprIndex:
		ty = e.inferIndex(id, expr, env)

	case ir.ExprRangeLit:
		ty = e.inferRange(id, expr, env)
	case ir.ExprListLit:
		ty = e.inferListLit(id, expr, env)
	case ir.ExprSetLit:
		ty = e.inferSetLit(id, expr, env)
	case ir.ExprTupleLit:
		ty = e.inferTupleLit(id, expr, env)
	case ir.ExprMapLit:
		ty = e.inferMapLit(id, expr, env)
	case ir.ExprStructLit, ir.ExprStructSpread:
		ty = e.inferStructLit(id, expr, env)
	case ir.ExprListSpread:
		ty = e.inferListSpread(id, expr, env)
	case ir.ExprMapSpread:
		ty = e.inferMapSpread(id, expr, env)

	case ir.ExprTemplateLit, ir.ExprTemplateComplete:
		ty = types.IdxStr
		if expr.Kind == ir.ExprTemplateLit {
			e.inferTemplateParts(expr, env)
		}

	case ir.ExprTry:
		ty = e.inferTry(id, expr, env)
	case ir.ExprLambda:
		ty = e.inferLambda(id, expr, env)

	default:
		ty = types.IdxError
	}
	return e.record(id, ty)
}

// CheckType unifies actual against expected and, on failure, pushes a
// diagnostic carrying origin's explanation (§4.4).
func (e *Engine) CheckType(actual, expected types.Idx, sp span.Span, origin ExpectedOrigin) {
	if err := types.UnifyWithResolver(e.Pool, e.Subst, actual, expected, e.Types); err != nil {
		d := diagnostic.New(diagnosticCodeFor(err), sp, e.describeTypeError(err))
		if reason := origin.describe(); reason != "" {
			d.WithNote(reason)
		}
		e.Bag.Push(d)
	}
}

// describeTypeError renders a unification failure using this engine's
// pool/interner, so the message names the offending types instead of
// their raw indices.
func (e *Engine) describeTypeError(err error) string {
	switch te := err.(type) {
	case *types.MismatchError:
		return te.Describe(e.Pool, e.Interner)
	case *types.InfiniteTypeError:
		return te.Describe(e.Pool, e.Interner)
	default:
		return err.Error()
	}
}

// diagnosticCodeFor maps a unification failure to its stable code
// (§7: infinite type vs. a plain mismatch are distinct E2xxx codes).
func diagnosticCodeFor(err error) diagnostic.Code {
	if _, ok := err.(*types.InfiniteTypeError); ok {
		return diagnostic.E2009InfiniteType
	}
	return diagnostic.E2001TypeMismatch
}
