package diagnostic

import (
	"fmt"
	"sort"

	"github.com/sigil-lang/ori/internal/config"
)

// Bag collects diagnostics for one compilation unit, deduplicating by
// (primary span, code) the way the teacher's analyzer walker
// deduplicates by "line:col:code" (§6.3's "every check pushes a
// diagnostic into the engine's collector and continues").
type Bag struct {
	limits    config.Limits
	byKey     map[string]*Diagnostic
	order     []string // insertion order of byKey, for stable iteration before sort
	suppressed int
}

// NewBag returns an empty Bag using lim to cap retained diagnostics.
func NewBag(lim config.Limits) *Bag {
	return &Bag{limits: lim, byKey: make(map[string]*Diagnostic)}
}

func dedupeKey(d *Diagnostic) string {
	sp := d.PrimarySpan()
	return fmt.Sprintf("%d:%d:%s", sp.Start, sp.End, d.Code)
}

// Push records d, replacing any earlier diagnostic with the same
// (span, code) key. Once the bag is at its limit overall, or at its
// per-severity limit for d's own severity, new keys are counted in
// Suppressed and dropped; an update to an existing key always succeeds
// since it doesn't grow the bag.
func (b *Bag) Push(d *Diagnostic) {
	key := dedupeKey(d)
	if _, exists := b.byKey[key]; !exists {
		if b.limits.MaxDiagnostics > 0 && len(b.byKey) >= b.limits.MaxDiagnostics {
			b.suppressed++
			return
		}
		if sevLimit := b.severityLimit(d.Severity); sevLimit > 0 && b.Count(d.Severity) >= sevLimit {
			b.suppressed++
			return
		}
		b.order = append(b.order, key)
	}
	b.byKey[key] = d
}

func (b *Bag) severityLimit(sev Severity) int {
	switch sev {
	case Error:
		return b.limits.MaxErrors
	case Warning:
		return b.limits.MaxWarnings
	default:
		return 0
	}
}

// PushAll records every diagnostic in ds.
func (b *Bag) PushAll(ds []*Diagnostic) {
	for _, d := range ds {
		b.Push(d)
	}
}

// DiscardSoft removes every diagnostic marked Soft — used when a
// speculative inference path succeeded and its provisional
// diagnostics should never surface (§6.3).
func (b *Bag) DiscardSoft() {
	kept := b.order[:0]
	for _, key := range b.order {
		if d := b.byKey[key]; d.Soft {
			delete(b.byKey, key)
			continue
		}
		kept = append(kept, key)
	}
	b.order = kept
}

// Suppressed reports how many diagnostics were dropped after the bag
// reached its limit.
func (b *Bag) Suppressed() int { return b.suppressed }

// HasErrors reports whether any retained diagnostic is Error severity
// — a pass succeeds iff this is false (§6.3).
func (b *Bag) HasErrors() bool {
	for _, d := range b.byKey {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Count returns how many retained diagnostics have the given severity.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for _, d := range b.byKey {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// All returns every retained diagnostic sorted by primary span start,
// then by code, for deterministic output.
func (b *Bag) All() []*Diagnostic {
	out := make([]*Diagnostic, 0, len(b.byKey))
	for _, key := range b.order {
		out = append(out, b.byKey[key])
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].PrimarySpan(), out[j].PrimarySpan()
		if si.Start != sj.Start {
			return si.Start < sj.Start
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// Len returns how many diagnostics are currently retained.
func (b *Bag) Len() int { return len(b.byKey) }
