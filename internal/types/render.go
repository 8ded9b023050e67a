package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sigil-lang/ori/internal/config"
	"github.com/sigil-lang/ori/internal/name"
)

// Render produces a human-readable rendering of idx, the way a
// diagnostic or a golden test wants a type to print: primitives by
// name, wrappers as `Name<elem>`, Function as `(p1, p2) -> ret`.
//
// Unification variables print as `?<id>` by default — their VarID is
// monotonic within one compile, so two runs over identical source
// produce identical ids, but a diagnostic emitted before vs. after an
// unrelated earlier allocation would not. When config.IsTestMode is
// set, Render instead assigns each distinct variable a short
// first-seen-order name (`t0`, `t1`, ...) local to this call, so two
// otherwise-equivalent types compare equal in a golden file regardless
// of which raw ids their variables happened to land on.
func Render(p *Pool, in *name.Interner, idx Idx) string {
	r := &renderer{pool: p, interner: in}
	if config.IsTestMode {
		r.varNames = make(map[uint32]string)
	}
	return r.render(idx)
}

type renderer struct {
	pool     *Pool
	interner *name.Interner
	varNames map[uint32]string // nil unless config.IsTestMode
}

func (r *renderer) render(idx Idx) string {
	switch r.pool.Tag(idx) {
	case TagInt, TagFloat, TagBool, TagStr, TagChar, TagByte, TagUnit,
		TagNever, TagError, TagDuration, TagSize, TagOrdering:
		return r.pool.Tag(idx).String()

	case TagVar:
		return r.renderVar(r.pool.VarID(idx))

	case TagList, TagSet, TagRange, TagOption, TagChannel, TagIterator, TagDoubleEndedIterator:
		return fmt.Sprintf("%s<%s>", r.pool.Tag(idx).String(), r.render(r.pool.Elem(idx)))

	case TagMap:
		k, v := r.pool.MapKeyValue(idx)
		return fmt.Sprintf("Map<%s, %s>", r.render(k), r.render(v))

	case TagResult:
		ok, err := r.pool.ResultOkErr(idx)
		return fmt.Sprintf("Result<%s, %s>", r.render(ok), r.render(err))

	case TagTuple:
		elems := r.pool.TupleElems(idx)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = r.render(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"

	case TagFunction:
		params := r.pool.FunctionParams(idx)
		parts := make([]string, len(params))
		for i, p := range params {
			parts[i] = r.render(p)
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), r.render(r.pool.FunctionReturn(idx)))

	case TagNamed:
		return r.interner.Lookup(r.pool.NamedName(idx))

	case TagApplied:
		args := r.pool.AppliedArgs(idx)
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = r.render(a)
		}
		return fmt.Sprintf("%s<%s>", r.interner.Lookup(r.pool.AppliedName(idx)), strings.Join(parts, ", "))

	case TagScheme:
		quant := r.pool.SchemeQuantifiers(idx)
		names := make([]string, len(quant))
		for i, q := range quant {
			names[i] = r.render(q)
		}
		return fmt.Sprintf("forall %s. %s", strings.Join(names, " "), r.render(r.pool.SchemeBody(idx)))

	case TagProjection:
		base, trait, assoc := r.pool.ProjectionParts(idx)
		return fmt.Sprintf("%s::<%s>::%s", r.render(base), r.interner.Lookup(trait), r.interner.Lookup(assoc))

	default:
		return "?"
	}
}

func (r *renderer) renderVar(id uint32) string {
	if r.varNames == nil {
		return "?" + strconv.FormatUint(uint64(id), 10)
	}
	if n, ok := r.varNames[id]; ok {
		return n
	}
	n := "t" + strconv.Itoa(len(r.varNames))
	r.varNames[id] = n
	return n
}
