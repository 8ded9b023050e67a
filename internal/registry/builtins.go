package registry

import (
	"github.com/sigil-lang/ori/internal/name"
	"github.com/sigil-lang/ori/internal/types"
)

// registerBuiltins installs the compiler-defined method catalogue
// (§3.4). The list mirrors the original implementation's builtin
// method tables one collection/primitive at a time.
func (r *MethodRegistry) registerBuiltins(in *name.Interner) {
	r.registerListMethods(in)
	r.registerOptionMethods(in)
	r.registerResultMethods(in)
	r.registerMapMethods(in)
	r.registerSetMethods(in)
	r.registerStringMethods(in)
	r.registerIntMethods(in)
	r.registerFloatMethods(in)
	r.registerIteratorMethods(in)
}

// registerIteratorMethods installs the lazy-adapter and consuming
// methods shared by Iterator and DoubleEndedIterator (§3.4, §4.4.4,
// §4.6). Transparent adapters (map/filter/enumerate/skip/zip/chain/
// flatten/flat_map) stay lazy, returning another Iterator; consuming
// methods (collect/count/fold/for_each/to_list) force it. rev/rposition
// are DoubleEndedIterator-only; calling them on a plain Iterator is
// rejected separately by the inference engine (§4.6), not by omitting
// them from the plain-Iterator registration below, since both tags
// otherwise share an identical catalogue.
func (r *MethodRegistry) registerIteratorMethods(in *name.Interner) {
	for _, tag := range [...]types.Tag{types.TagIterator, types.TagDoubleEndedIterator} {
		r.register(BuiltinMethod{Name: in.Intern("map"), ReceiverTag: tag, Doc: "Lazily transforms each element with a closure", Kind: KindTransform, Transform: TransformHigherOrder, HigherOrder: HOMap})
		r.register(BuiltinMethod{Name: in.Intern("filter"), ReceiverTag: tag, Doc: "Lazily keeps elements for which a closure returns true", Kind: KindTransform, Transform: TransformHigherOrder, HigherOrder: HOFilter})
		r.register(BuiltinMethod{Name: in.Intern("enumerate"), ReceiverTag: tag, Doc: "Pairs each element with its index", Kind: KindTransform, Transform: TransformIdentity})
		r.register(BuiltinMethod{Name: in.Intern("skip"), ReceiverTag: tag, Doc: "Skips the first n elements", Kind: KindTransform, Transform: TransformIdentity})
		r.register(BuiltinMethod{Name: in.Intern("zip"), ReceiverTag: tag, Doc: "Pairs elements with another iterator's", Kind: KindTransform, Transform: TransformIdentity})
		r.register(BuiltinMethod{Name: in.Intern("chain"), ReceiverTag: tag, Doc: "Appends another iterator's elements", Kind: KindTransform, Transform: TransformIdentity})
		r.register(BuiltinMethod{Name: in.Intern("flatten"), ReceiverTag: tag, Doc: "Flattens one level of nested iterables", Kind: KindTransform, Transform: TransformIdentity})
		r.register(BuiltinMethod{Name: in.Intern("flat_map"), ReceiverTag: tag, Doc: "Maps then flattens one level", Kind: KindTransform, Transform: TransformHigherOrder, HigherOrder: HOMap})
		r.register(BuiltinMethod{Name: in.Intern("iter"), ReceiverTag: tag, Doc: "Returns self, unchanged", Kind: KindTransform, Transform: TransformIdentity})
		r.register(BuiltinMethod{Name: in.Intern("take"), ReceiverTag: tag, Doc: "Bounds the iterator to its first n elements", Kind: KindTransform, Transform: TransformIdentity})
		r.register(BuiltinMethod{Name: in.Intern("cycle"), ReceiverTag: tag, Doc: "Repeats the iterator's elements forever", Kind: KindTransform, Transform: TransformIdentity})

		r.register(BuiltinMethod{Name: in.Intern("collect"), ReceiverTag: tag, Doc: "Consumes the iterator into a List", Kind: KindTransform, Transform: TransformWrapList})
		r.register(BuiltinMethod{Name: in.Intern("to_list"), ReceiverTag: tag, Doc: "Consumes the iterator into a List", Kind: KindTransform, Transform: TransformWrapList})
		r.register(BuiltinMethod{Name: in.Intern("count"), ReceiverTag: tag, Doc: "Consumes the iterator, returning the number of elements", Kind: KindFixed, Fixed: types.IdxInt})
		r.register(BuiltinMethod{Name: in.Intern("fold"), ReceiverTag: tag, Doc: "Consumes the iterator, reducing to a single value via a closure", Kind: KindTransform, Transform: TransformHigherOrder, HigherOrder: HOFold})
		r.register(BuiltinMethod{Name: in.Intern("for_each"), ReceiverTag: tag, Doc: "Consumes the iterator, calling a closure on each element", Kind: KindFixed, Fixed: types.IdxUnit})

		r.register(BuiltinMethod{Name: in.Intern("rev"), ReceiverTag: tag, Doc: "Reverses the iteration direction (DoubleEndedIterator only)", Kind: KindTransform, Transform: TransformIdentity})
		r.register(BuiltinMethod{Name: in.Intern("rposition"), ReceiverTag: tag, Doc: "Consumes the iterator, searching from the back (DoubleEndedIterator only)", Kind: KindTransform, Transform: TransformWrapOption})
	}
}

// ConsumingIteratorMethods lists the Iterator methods that force full
// evaluation (§4.4.4); a call to one of these on a chain traced back to
// an unbounded source with no intervening `.take` triggers
// W2004InfiniteIteratorUsed.
func ConsumingIteratorMethods(in *name.Interner) map[name.Name]bool {
	return map[name.Name]bool{
		in.Intern("collect"):  true,
		in.Intern("count"):    true,
		in.Intern("fold"):     true,
		in.Intern("for_each"): true,
		in.Intern("to_list"):  true,
	}
}

// TransparentIteratorAdapters lists the methods §4.4.4's chain walk
// passes through without stopping: the receiver below one of these is
// still "the same chain" for infinite-source purposes.
func TransparentIteratorAdapters(in *name.Interner) map[name.Name]bool {
	return map[name.Name]bool{
		in.Intern("map"):       true,
		in.Intern("filter"):    true,
		in.Intern("enumerate"): true,
		in.Intern("skip"):      true,
		in.Intern("zip"):       true,
		in.Intern("chain"):     true,
		in.Intern("flatten"):   true,
		in.Intern("flat_map"):  true,
		in.Intern("rev"):       true,
		in.Intern("iter"):      true,
	}
}

// DoubleEndedOnlyMethods lists the methods §4.6 reserves for
// DoubleEndedIterator receivers; calling one on a plain Iterator is
// rejected with E2019DoubleEndedOnly.
func DoubleEndedOnlyMethods(in *name.Interner) map[name.Name]bool {
	return map[name.Name]bool{
		in.Intern("rev"):       true,
		in.Intern("rposition"): true,
	}
}

func (r *MethodRegistry) registerListMethods(in *name.Interner) {
	tag := types.TagList
	r.register(BuiltinMethod{Name: in.Intern("len"), ReceiverTag: tag, Doc: "Returns the number of elements in the list", Kind: KindFixed, Fixed: types.IdxInt})
	r.register(BuiltinMethod{Name: in.Intern("is_empty"), ReceiverTag: tag, Doc: "Returns true if the list has no elements", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("first"), ReceiverTag: tag, Doc: "Returns the first element, or None if empty", Kind: KindTransform, Transform: TransformWrapOption})
	r.register(BuiltinMethod{Name: in.Intern("last"), ReceiverTag: tag, Doc: "Returns the last element, or None if empty", Kind: KindTransform, Transform: TransformWrapOption})
	r.register(BuiltinMethod{Name: in.Intern("reverse"), ReceiverTag: tag, Doc: "Returns a new list with elements in reverse order", Kind: KindTransform, Transform: TransformIdentity})
	r.register(BuiltinMethod{Name: in.Intern("contains"), ReceiverTag: tag, Doc: "Returns true if the list contains the element", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("map"), ReceiverTag: tag, Doc: "Transforms each element with a closure", Kind: KindTransform, Transform: TransformHigherOrder, HigherOrder: HOMap})
	r.register(BuiltinMethod{Name: in.Intern("filter"), ReceiverTag: tag, Doc: "Keeps elements for which a closure returns true", Kind: KindTransform, Transform: TransformHigherOrder, HigherOrder: HOFilter})
	r.register(BuiltinMethod{Name: in.Intern("fold"), ReceiverTag: tag, Doc: "Reduces the list to a single value via a closure", Kind: KindTransform, Transform: TransformHigherOrder, HigherOrder: HOFold})
	r.register(BuiltinMethod{Name: in.Intern("find"), ReceiverTag: tag, Doc: "Returns the first element matching a closure, or None", Kind: KindTransform, Transform: TransformHigherOrder, HigherOrder: HOFind})
	r.register(BuiltinMethod{Name: in.Intern("any"), ReceiverTag: tag, Doc: "Returns true if any element matches a closure", Kind: KindTransform, Transform: TransformHigherOrder, HigherOrder: HOPredicate})
	r.register(BuiltinMethod{Name: in.Intern("all"), ReceiverTag: tag, Doc: "Returns true if every element matches a closure", Kind: KindTransform, Transform: TransformHigherOrder, HigherOrder: HOPredicate})
}

func (r *MethodRegistry) registerOptionMethods(in *name.Interner) {
	tag := types.TagOption
	r.register(BuiltinMethod{Name: in.Intern("is_some"), ReceiverTag: tag, Doc: "Returns true if this is Some", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("is_none"), ReceiverTag: tag, Doc: "Returns true if this is None", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("unwrap"), ReceiverTag: tag, Doc: "Returns the inner value, panics if None", Kind: KindElement})
	r.register(BuiltinMethod{Name: in.Intern("expect"), ReceiverTag: tag, Doc: "Returns the inner value, panics with a message if None", Kind: KindElement})
}

func (r *MethodRegistry) registerResultMethods(in *name.Interner) {
	tag := types.TagResult
	r.register(BuiltinMethod{Name: in.Intern("is_ok"), ReceiverTag: tag, Doc: "Returns true if this is Ok", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("is_err"), ReceiverTag: tag, Doc: "Returns true if this is Err", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("unwrap"), ReceiverTag: tag, Doc: "Returns the Ok value, panics if Err", Kind: KindTransform, Transform: TransformResultOk})
	r.register(BuiltinMethod{Name: in.Intern("unwrap_err"), ReceiverTag: tag, Doc: "Returns the Err value, panics if Ok", Kind: KindTransform, Transform: TransformResultErr})
	r.register(BuiltinMethod{Name: in.Intern("ok"), ReceiverTag: tag, Doc: "Converts to Option<T>, discarding the error", Kind: KindTransform, Transform: TransformWrapOption})
}

func (r *MethodRegistry) registerMapMethods(in *name.Interner) {
	tag := types.TagMap
	r.register(BuiltinMethod{Name: in.Intern("len"), ReceiverTag: tag, Doc: "Returns the number of key-value pairs", Kind: KindFixed, Fixed: types.IdxInt})
	r.register(BuiltinMethod{Name: in.Intern("is_empty"), ReceiverTag: tag, Doc: "Returns true if the map has no entries", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("contains_key"), ReceiverTag: tag, Doc: "Returns true if the map contains the key", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("get"), ReceiverTag: tag, Doc: "Returns the value for a key, or None if not found", Kind: KindTransform, Transform: TransformWrapOption})
	r.register(BuiltinMethod{Name: in.Intern("keys"), ReceiverTag: tag, Doc: "Returns a list of all keys", Kind: KindTransform, Transform: TransformMapKey})
	r.register(BuiltinMethod{Name: in.Intern("values"), ReceiverTag: tag, Doc: "Returns a list of all values", Kind: KindTransform, Transform: TransformMapValue})
}

func (r *MethodRegistry) registerSetMethods(in *name.Interner) {
	tag := types.TagSet
	r.register(BuiltinMethod{Name: in.Intern("len"), ReceiverTag: tag, Doc: "Returns the number of elements", Kind: KindFixed, Fixed: types.IdxInt})
	r.register(BuiltinMethod{Name: in.Intern("is_empty"), ReceiverTag: tag, Doc: "Returns true if the set has no elements", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("contains"), ReceiverTag: tag, Doc: "Returns true if the set contains the element", Kind: KindFixed, Fixed: types.IdxBool})
}

func (r *MethodRegistry) registerStringMethods(in *name.Interner) {
	tag := types.TagStr
	r.register(BuiltinMethod{Name: in.Intern("len"), ReceiverTag: tag, Doc: "Returns the length in bytes", Kind: KindFixed, Fixed: types.IdxInt})
	r.register(BuiltinMethod{Name: in.Intern("is_empty"), ReceiverTag: tag, Doc: "Returns true if the string is empty", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("to_upper"), ReceiverTag: tag, Doc: "Returns the uppercase version", Kind: KindFixed, Fixed: types.IdxStr})
	r.register(BuiltinMethod{Name: in.Intern("to_lower"), ReceiverTag: tag, Doc: "Returns the lowercase version", Kind: KindFixed, Fixed: types.IdxStr})
	r.register(BuiltinMethod{Name: in.Intern("trim"), ReceiverTag: tag, Doc: "Returns the string with whitespace trimmed from both ends", Kind: KindFixed, Fixed: types.IdxStr})
	r.register(BuiltinMethod{Name: in.Intern("trim_start"), ReceiverTag: tag, Doc: "Returns the string with leading whitespace trimmed", Kind: KindFixed, Fixed: types.IdxStr})
	r.register(BuiltinMethod{Name: in.Intern("trim_end"), ReceiverTag: tag, Doc: "Returns the string with trailing whitespace trimmed", Kind: KindFixed, Fixed: types.IdxStr})
	r.register(BuiltinMethod{Name: in.Intern("starts_with"), ReceiverTag: tag, Doc: "Returns true if the string starts with a prefix", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("ends_with"), ReceiverTag: tag, Doc: "Returns true if the string ends with a suffix", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("contains"), ReceiverTag: tag, Doc: "Returns true if the string contains a substring", Kind: KindFixed, Fixed: types.IdxBool})
}

func (r *MethodRegistry) registerIntMethods(in *name.Interner) {
	tag := types.TagInt
	r.register(BuiltinMethod{Name: in.Intern("abs"), ReceiverTag: tag, Doc: "Returns the absolute value", Kind: KindFixed, Fixed: types.IdxInt})
	r.register(BuiltinMethod{Name: in.Intern("to_float"), ReceiverTag: tag, Doc: "Converts to a float", Kind: KindFixed, Fixed: types.IdxFloat})
	r.register(BuiltinMethod{Name: in.Intern("to_str"), ReceiverTag: tag, Doc: "Converts to a string representation", Kind: KindFixed, Fixed: types.IdxStr})
	r.register(BuiltinMethod{Name: in.Intern("min"), ReceiverTag: tag, Doc: "Returns the smaller of two integers", Kind: KindFixed, Fixed: types.IdxInt})
	r.register(BuiltinMethod{Name: in.Intern("max"), ReceiverTag: tag, Doc: "Returns the larger of two integers", Kind: KindFixed, Fixed: types.IdxInt})
	r.register(BuiltinMethod{Name: in.Intern("clamp"), ReceiverTag: tag, Doc: "Clamps the value to a range", Kind: KindFixed, Fixed: types.IdxInt})
}

func (r *MethodRegistry) registerFloatMethods(in *name.Interner) {
	tag := types.TagFloat
	r.register(BuiltinMethod{Name: in.Intern("abs"), ReceiverTag: tag, Doc: "Returns the absolute value", Kind: KindFixed, Fixed: types.IdxFloat})
	r.register(BuiltinMethod{Name: in.Intern("floor"), ReceiverTag: tag, Doc: "Rounds down to the nearest integer", Kind: KindFixed, Fixed: types.IdxInt})
	r.register(BuiltinMethod{Name: in.Intern("ceil"), ReceiverTag: tag, Doc: "Rounds up to the nearest integer", Kind: KindFixed, Fixed: types.IdxInt})
	r.register(BuiltinMethod{Name: in.Intern("round"), ReceiverTag: tag, Doc: "Rounds to the nearest integer", Kind: KindFixed, Fixed: types.IdxInt})
	r.register(BuiltinMethod{Name: in.Intern("trunc"), ReceiverTag: tag, Doc: "Truncates toward zero", Kind: KindFixed, Fixed: types.IdxInt})
	r.register(BuiltinMethod{Name: in.Intern("is_nan"), ReceiverTag: tag, Doc: "Returns true if NaN", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("is_infinite"), ReceiverTag: tag, Doc: "Returns true if infinite", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("is_finite"), ReceiverTag: tag, Doc: "Returns true if finite (not NaN or infinite)", Kind: KindFixed, Fixed: types.IdxBool})
	r.register(BuiltinMethod{Name: in.Intern("sqrt"), ReceiverTag: tag, Doc: "Returns the square root", Kind: KindFixed, Fixed: types.IdxFloat})
	r.register(BuiltinMethod{Name: in.Intern("min"), ReceiverTag: tag, Doc: "Returns the smaller of two floats", Kind: KindFixed, Fixed: types.IdxFloat})
	r.register(BuiltinMethod{Name: in.Intern("max"), ReceiverTag: tag, Doc: "Returns the larger of two floats", Kind: KindFixed, Fixed: types.IdxFloat})
}
