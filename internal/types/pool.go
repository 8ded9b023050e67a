package types

import (
	"fmt"

	"github.com/sigil-lang/ori/internal/name"
)

// Idx addresses one entry in a Pool.
type Idx uint32

// entry is one term of the pool, laid out the same way ir.Expr is: a
// fixed row of generic slots reinterpreted per Tag, so the pool never
// holds a pointer to another entry.
type entry struct {
	Tag   Tag
	Name  name.Name // Named/Applied name, or Projection's trait name
	Name2 name.Name // Projection's associated-type name
	Elem  Idx       // element/key/ok/base idx, per Tag
	Elem2 Idx       // value/err idx, per Tag
	Start uint32    // offset into a shared list vector, per Tag
	Len   uint16
	Ret   Idx    // Function's return type
	VarID uint32 // Var's unique id
}

// Reserved indices, established once at pool construction and never
// reassigned (§3.3).
const (
	IdxInt Idx = iota
	IdxFloat
	IdxBool
	IdxStr
	IdxChar
	IdxByte
	IdxUnit
	IdxNever
	IdxError
	IdxDuration
	IdxSize
	IdxOrdering
	numReserved
)

// Pool owns every type term for one module.
type Pool struct {
	entries []entry

	tupleElems   []Idx
	funcParams   []Idx
	appliedArgs  []Idx
	schemeQuants []Idx

	nextVarID uint32
}

// New returns a Pool with every primitive tag pre-registered at its
// reserved index.
func New() *Pool {
	p := &Pool{entries: make([]entry, numReserved, 256)}
	p.entries[IdxInt] = entry{Tag: TagInt}
	p.entries[IdxFloat] = entry{Tag: TagFloat}
	p.entries[IdxBool] = entry{Tag: TagBool}
	p.entries[IdxStr] = entry{Tag: TagStr}
	p.entries[IdxChar] = entry{Tag: TagChar}
	p.entries[IdxByte] = entry{Tag: TagByte}
	p.entries[IdxUnit] = entry{Tag: TagUnit}
	p.entries[IdxNever] = entry{Tag: TagNever}
	p.entries[IdxError] = entry{Tag: TagError}
	p.entries[IdxDuration] = entry{Tag: TagDuration}
	p.entries[IdxSize] = entry{Tag: TagSize}
	p.entries[IdxOrdering] = entry{Tag: TagOrdering}
	return p
}

func (p *Pool) push(e entry) Idx {
	if uint64(len(p.entries)) >= 1<<32-1 {
		panic("types: pool capacity exceeded")
	}
	id := Idx(len(p.entries))
	p.entries = append(p.entries, e)
	return id
}

// Tag reports the tag of idx.
func (p *Pool) Tag(idx Idx) Tag { return p.entries[idx].Tag }

// NewVar allocates a fresh, strictly-monotonic unification variable.
func (p *Pool) NewVar() Idx {
	id := p.nextVarID
	p.nextVarID++
	return p.push(entry{Tag: TagVar, VarID: id})
}

// VarID returns the unique id of a Var entry.
func (p *Pool) VarID(idx Idx) uint32 {
	e := p.entries[idx]
	if e.Tag != TagVar {
		panic(fmt.Sprintf("types: VarID of non-Var tag %v", e.Tag))
	}
	return e.VarID
}

func (p *Pool) newWrapper(tag Tag, elem Idx) Idx {
	return p.push(entry{Tag: tag, Elem: elem})
}

func (p *Pool) NewList(elem Idx) Idx                { return p.newWrapper(TagList, elem) }
func (p *Pool) NewSet(elem Idx) Idx                 { return p.newWrapper(TagSet, elem) }
func (p *Pool) NewRange(elem Idx) Idx               { return p.newWrapper(TagRange, elem) }
func (p *Pool) NewOption(elem Idx) Idx              { return p.newWrapper(TagOption, elem) }
func (p *Pool) NewChannel(elem Idx) Idx             { return p.newWrapper(TagChannel, elem) }
func (p *Pool) NewIterator(elem Idx) Idx            { return p.newWrapper(TagIterator, elem) }
func (p *Pool) NewDoubleEndedIterator(elem Idx) Idx { return p.newWrapper(TagDoubleEndedIterator, elem) }

// Elem returns the element type of a single-wrapper tag (List, Set,
// Range, Option, Channel, Iterator, DoubleEndedIterator).
func (p *Pool) Elem(idx Idx) Idx { return p.entries[idx].Elem }

// NewMap allocates Map<key, value>.
func (p *Pool) NewMap(key, value Idx) Idx {
	return p.push(entry{Tag: TagMap, Elem: key, Elem2: value})
}

// MapKeyValue returns a Map entry's key and value types.
func (p *Pool) MapKeyValue(idx Idx) (key, value Idx) {
	e := p.entries[idx]
	return e.Elem, e.Elem2
}

// NewResult allocates Result<ok, err>.
func (p *Pool) NewResult(ok, err Idx) Idx {
	return p.push(entry{Tag: TagResult, Elem: ok, Elem2: err})
}

// ResultOkErr returns a Result entry's ok and err types.
func (p *Pool) ResultOkErr(idx Idx) (ok, err Idx) {
	e := p.entries[idx]
	return e.Elem, e.Elem2
}

// NewTuple allocates a tuple of elems (len(elems) == 0 is Unit in
// practice, but callers use IdxUnit directly for that case).
func (p *Pool) NewTuple(elems []Idx) Idx {
	start := checkListCap(len(p.tupleElems), "tuple elements")
	p.tupleElems = append(p.tupleElems, elems...)
	return p.push(entry{Tag: TagTuple, Start: start, Len: checkLen(len(elems))})
}

// TupleElems returns a tuple entry's element types.
func (p *Pool) TupleElems(idx Idx) []Idx {
	e := p.entries[idx]
	return p.tupleElems[e.Start : e.Start+uint32(e.Len)]
}

// NewFunction allocates a function type over params and ret.
func (p *Pool) NewFunction(params []Idx, ret Idx) Idx {
	start := checkListCap(len(p.funcParams), "function parameters")
	p.funcParams = append(p.funcParams, params...)
	return p.push(entry{Tag: TagFunction, Start: start, Len: checkLen(len(params)), Ret: ret})
}

// FunctionParams returns a function entry's parameter types.
func (p *Pool) FunctionParams(idx Idx) []Idx {
	e := p.entries[idx]
	return p.funcParams[e.Start : e.Start+uint32(e.Len)]
}

// FunctionReturn returns a function entry's return type.
func (p *Pool) FunctionReturn(idx Idx) Idx { return p.entries[idx].Ret }

// NewNamed allocates a reference to a user-defined nullary type or a
// generic parameter, identified by name.
func (p *Pool) NewNamed(n name.Name) Idx {
	return p.push(entry{Tag: TagNamed, Name: n})
}

// NamedName returns a Named entry's name.
func (p *Pool) NamedName(idx Idx) name.Name { return p.entries[idx].Name }

// NewApplied allocates a named type constructor applied to args (e.g.
// a user struct/enum with generic parameters instantiated).
func (p *Pool) NewApplied(n name.Name, args []Idx) Idx {
	start := checkListCap(len(p.appliedArgs), "applied type arguments")
	p.appliedArgs = append(p.appliedArgs, args...)
	return p.push(entry{Tag: TagApplied, Name: n, Start: start, Len: checkLen(len(args))})
}

// AppliedName returns an Applied entry's constructor name.
func (p *Pool) AppliedName(idx Idx) name.Name { return p.entries[idx].Name }

// AppliedArgs returns an Applied entry's argument types.
func (p *Pool) AppliedArgs(idx Idx) []Idx {
	e := p.entries[idx]
	return p.appliedArgs[e.Start : e.Start+uint32(e.Len)]
}

// NewScheme allocates a polymorphic type: quantifiers over body.
func (p *Pool) NewScheme(quantifiers []Idx, body Idx) Idx {
	start := checkListCap(len(p.schemeQuants), "scheme quantifiers")
	p.schemeQuants = append(p.schemeQuants, quantifiers...)
	return p.push(entry{Tag: TagScheme, Start: start, Len: checkLen(len(quantifiers)), Elem: body})
}

// SchemeQuantifiers returns a Scheme entry's quantified variables.
func (p *Pool) SchemeQuantifiers(idx Idx) []Idx {
	e := p.entries[idx]
	return p.schemeQuants[e.Start : e.Start+uint32(e.Len)]
}

// SchemeBody returns a Scheme entry's quantified body type.
func (p *Pool) SchemeBody(idx Idx) Idx { return p.entries[idx].Elem }

// NewProjection allocates an associated-type projection `base.assoc`
// resolved through trait (the trait name may be name.Empty when it is
// not known at construction; no pass fills it in afterwards — see the
// Open Question decision in DESIGN.md).
func (p *Pool) NewProjection(base Idx, trait, assoc name.Name) Idx {
	return p.push(entry{Tag: TagProjection, Elem: base, Name: trait, Name2: assoc})
}

// ProjectionParts returns a Projection entry's base type, trait name,
// and associated-type name.
func (p *Pool) ProjectionParts(idx Idx) (base Idx, trait, assoc name.Name) {
	e := p.entries[idx]
	return e.Elem, e.Name, e.Name2
}

// SetProjectionTrait fills in a previously-unresolved projection's
// trait name. No pass in this repository calls it.
func (p *Pool) SetProjectionTrait(idx Idx, trait name.Name) {
	if p.entries[idx].Tag != TagProjection {
		panic("types: SetProjectionTrait on a non-Projection entry")
	}
	p.entries[idx].Name = trait
}

func checkListCap(n int, what string) uint32 {
	if uint64(n) > 1<<32-1 {
		panic(fmt.Sprintf("types: %s storage exceeded 32-bit capacity", what))
	}
	return uint32(n)
}

func checkLen(n int) uint16 {
	if n > 0xFFFF {
		panic(fmt.Sprintf("types: list of %d elements exceeds the 16-bit encoding limit", n))
	}
	return uint16(n)
}
