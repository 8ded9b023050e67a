package registry

import (
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/types"
)

// MethodTransform names how a built-in method derives its return type
// from its receiver's type (§3.4).
type MethodTransform uint8

const (
	TransformIdentity   MethodTransform = iota // receiver type, unchanged
	TransformWrapOption                        // wrap element type in Option
	TransformMapKey                            // List<key> of a Map
	TransformMapValue                          // List<value> of a Map
	TransformResultOk                          // Result's ok type
	TransformResultErr                         // Result's err type
	TransformWrapList                          // wrap element type in List
	TransformHigherOrder
)

// HigherOrderMethod names one of the closure-taking method shapes
// (§3.4); their return types depend on the closure argument's own
// inferred type, so the inference engine computes these rather than
// the registry.
type HigherOrderMethod uint8

const (
	HOMap HigherOrderMethod = iota
	HOFilter
	HOFold
	HOFind
	HOPredicate
)

// BuiltinMethodKind determines how BuiltinReturnType computes a
// built-in method's result.
type BuiltinMethodKind uint8

const (
	KindFixed BuiltinMethodKind = iota
	KindElement
	KindTransform
)

// BuiltinMethod is one compiler-defined method (§3.4).
type BuiltinMethod struct {
	Name         name.Name
	ReceiverTag  types.Tag
	Doc          string
	Kind         BuiltinMethodKind
	Fixed        types.Idx // KindFixed
	Transform    MethodTransform
	HigherOrder  HigherOrderMethod
}

type builtinKey struct {
	Tag  types.Tag
	Name name.Name
}

// MethodRegistry is the unified method lookup layered as
// built-in -> inherent -> trait (§3.4).
type MethodRegistry struct {
	builtin      map[builtinKey]BuiltinMethod
	builtinByTag map[types.Tag][]name.Name
}

// NewMethodRegistry returns a MethodRegistry with every built-in
// method pre-registered, interning their names with in.
func NewMethodRegistry(in *name.Interner) *MethodRegistry {
	r := &MethodRegistry{
		builtin:      make(map[builtinKey]BuiltinMethod),
		builtinByTag: make(map[types.Tag][]name.Name),
	}
	r.registerBuiltins(in)
	return r
}

func (r *MethodRegistry) register(m BuiltinMethod) {
	key := builtinKey{Tag: m.ReceiverTag, Name: m.Name}
	r.builtinByTag[m.ReceiverTag] = append(r.builtinByTag[m.ReceiverTag], m.Name)
	r.builtin[key] = m
}

// HasBuiltin reports whether tag has a built-in method named n.
func (r *MethodRegistry) HasBuiltin(tag types.Tag, n name.Name) bool {
	_, ok := r.builtin[builtinKey{Tag: tag, Name: n}]
	return ok
}

// GetBuiltin returns the built-in method registered for (tag, n).
func (r *MethodRegistry) GetBuiltin(tag types.Tag, n name.Name) (BuiltinMethod, bool) {
	m, ok := r.builtin[builtinKey{Tag: tag, Name: n}]
	return m, ok
}

// BuiltinMethodsForTag lists every built-in method registered for tag,
// for completion/documentation purposes.
func (r *MethodRegistry) BuiltinMethodsForTag(tag types.Tag) []name.Name {
	return r.builtinByTag[tag]
}

// MethodResolution is the result of a full built-in/inherent/trait
// method lookup.
type MethodResolution struct {
	IsBuiltin bool
	Builtin   BuiltinMethod
	Impl      *MethodLookup
}

// Lookup resolves method on receiverTy, checking built-ins first, then
// delegating to traits for inherent/trait impls (§3.4).
func (r *MethodRegistry) Lookup(pool *types.Pool, receiverTy types.Idx, methodName name.Name, traits *TraitRegistry) (*MethodResolution, error) {
	tag := pool.Tag(receiverTy)
	if m, ok := r.GetBuiltin(tag, methodName); ok {
		return &MethodResolution{IsBuiltin: true, Builtin: m}, nil
	}
	lookup, err := traits.LookupMethod(receiverTy, methodName)
	if err != nil {
		return nil, err
	}
	if lookup == nil {
		return nil, nil
	}
	return &MethodResolution{Impl: lookup}, nil
}

// BuiltinReturnType computes a built-in method's result type for a
// concrete receiver (§3.4).
func (r *MethodRegistry) BuiltinReturnType(pool *types.Pool, receiverTy types.Idx, m BuiltinMethod) types.Idx {
	switch m.Kind {
	case KindFixed:
		return m.Fixed
	case KindElement:
		switch pool.Tag(receiverTy) {
		case types.TagList, types.TagOption, types.TagSet, types.TagChannel, types.TagRange,
			types.TagIterator, types.TagDoubleEndedIterator:
			return pool.Elem(receiverTy)
		default:
			return types.IdxError
		}
	case KindTransform:
		return r.applyTransform(pool, receiverTy, m.Transform)
	default:
		return types.IdxError
	}
}

func (r *MethodRegistry) applyTransform(pool *types.Pool, receiverTy types.Idx, transform MethodTransform) types.Idx {
	tag := pool.Tag(receiverTy)
	switch transform {
	case TransformIdentity:
		return receiverTy

	case TransformWrapOption:
		switch tag {
		case types.TagList, types.TagOption, types.TagSet, types.TagChannel, types.TagRange,
			types.TagIterator, types.TagDoubleEndedIterator:
			return pool.NewOption(pool.Elem(receiverTy))
		case types.TagResult:
			ok, _ := pool.ResultOkErr(receiverTy)
			return pool.NewOption(ok)
		default:
			return pool.NewOption(receiverTy)
		}

	case TransformMapKey:
		if tag != types.TagMap {
			return types.IdxError
		}
		key, _ := pool.MapKeyValue(receiverTy)
		return pool.NewList(key)

	case TransformMapValue:
		if tag != types.TagMap {
			return types.IdxError
		}
		_, value := pool.MapKeyValue(receiverTy)
		return pool.NewList(value)

	case TransformResultOk:
		if tag != types.TagResult {
			return types.IdxError
		}
		ok, _ := pool.ResultOkErr(receiverTy)
		return ok

	case TransformResultErr:
		if tag != types.TagResult {
			return types.IdxError
		}
		_, err := pool.ResultOkErr(receiverTy)
		return err

	case TransformWrapList:
		switch tag {
		case types.TagList, types.TagSet, types.TagRange, types.TagOption, types.TagChannel,
			types.TagIterator, types.TagDoubleEndedIterator:
			return pool.NewList(pool.Elem(receiverTy))
		default:
			return types.IdxError
		}

	case TransformHigherOrder:
		// Higher-order methods (map/filter/fold/find/any/all) depend on
		// the closure argument's inferred type; the inference engine
		// computes their signature at the call site rather than here.
		return types.IdxError

	default:
		return types.IdxError
	}
}
