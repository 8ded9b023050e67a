package infer

import (
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/types"
)

// TypeParams maps a generic parameter's interned name (and the
// reserved "Self" name inside a trait method body) to the pool index
// standing in for it within the current declaration: a fresh Var
// during inference, concretized at call sites via unification
// side-effects (§4.4.1).
type TypeParams map[name.Name]types.Idx

// resolveParsedType converts a syntactic type (as written in source)
// to a pool index, consulting tp for generic parameters / Self and
// falling back to a plain Named reference otherwise — aliases are
// dereferenced later, by Unify consulting the type registry, not here.
func (e *Engine) resolveParsedType(id ir.ParsedTypeId, tp TypeParams) types.Idx {
	if !id.Valid() {
		return e.Pool.NewVar()
	}
	t := e.Arena.ParsedType(id)
	switch t.Kind {
	case ir.PTPrimitive:
		return e.resolvePrimitiveName(t.Name)

	case ir.PTNamed:
		if idx, ok := tp[t.Name]; ok {
			return idx
		}
		return e.Pool.NewNamed(t.Name)

	case ir.PTList:
		children := e.Arena.ParsedTypeListOf(t.Children)
		return e.Pool.NewList(e.resolveParsedType(children[0], tp))

	case ir.PTSet:
		children := e.Arena.ParsedTypeListOf(t.Children)
		return e.Pool.NewSet(e.resolveParsedType(children[0], tp))

	case ir.PTOption:
		children := e.Arena.ParsedTypeListOf(t.Children)
		return e.Pool.NewOption(e.resolveParsedType(children[0], tp))

	case ir.PTResult:
		children := e.Arena.ParsedTypeListOf(t.Children)
		ok := e.resolveParsedType(children[0], tp)
		errTy := e.resolveParsedType(children[1], tp)
		return e.Pool.NewResult(ok, errTy)

	case ir.PTMap:
		children := e.Arena.ParsedTypeListOf(t.Children)
		key := e.resolveParsedType(children[0], tp)
		value := e.resolveParsedType(children[1], tp)
		return e.Pool.NewMap(key, value)

	case ir.PTTuple:
		children := e.Arena.ParsedTypeListOf(t.Children)
		elems := make([]types.Idx, len(children))
		for i, c := range children {
			elems[i] = e.resolveParsedType(c, tp)
		}
		return e.Pool.NewTuple(elems)

	case ir.PTFunction:
		children := e.Arena.ParsedTypeListOf(t.Children)
		params := make([]types.Idx, len(children))
		for i, c := range children {
			params[i] = e.resolveParsedType(c, tp)
		}
		ret := e.resolveParsedType(t.Return, tp)
		return e.Pool.NewFunction(params, ret)

	case ir.PTAssociated:
		children := e.Arena.ParsedTypeListOf(t.Children)
		base := e.resolveParsedType(children[0], tp)
		// The owning trait isn't known syntactically, so the projection
		// is built with an empty trait name. No pass calls
		// Pool.SetProjectionTrait afterwards, so it stays empty (see the
		// Projection placeholder note in DESIGN.md).
		return e.Pool.NewProjection(base, name.Empty, t.Name)

	case ir.PTSelf:
		if idx, ok := tp[e.selfName]; ok {
			return idx
		}
		return e.Pool.NewVar()

	default:
		return types.IdxError
	}
}

func (e *Engine) resolvePrimitiveName(n name.Name) types.Idx {
	switch e.Interner.Lookup(n) {
	case "Int":
		return types.IdxInt
	case "Float":
		return types.IdxFloat
	case "Bool":
		return types.IdxBool
	case "Str":
		return types.IdxStr
	case "Char":
		return types.IdxChar
	case "Byte":
		return types.IdxByte
	case "Unit":
		return types.IdxUnit
	case "Never":
		return types.IdxNever
	case "Duration":
		return types.IdxDuration
	case "Size":
		return types.IdxSize
	case "Ordering":
		return types.IdxOrdering
	default:
		return types.IdxError
	}
}
