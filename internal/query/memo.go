// Package query provides the memoization primitive an incremental
// driver needs to avoid rechecking a module whose source text hasn't
// changed (spec §5: "memoized on the hash of its source text"). It
// implements only the cache itself, matching
// sigilc-v3/src/query.rs's salsa-style query system without pulling in
// salsa or reimplementing its dependency tracking — this repo's core
// is stateless per call, so a flat hash-keyed table is all a driver
// sitting above it needs.
package query

import (
	"hash/fnv"
	"io"
	"sync"

	"github.com/sigil-lang/ori/internal/module"
	"github.com/sigil-lang/ori/internal/name"
)

// Key is a content-addressed cache key: the hash of a module's source
// text. Two source strings that hash equal are assumed byte-equal;
// FNV-128a is not cryptographically strong, but a compiler cache only
// needs to detect "this text again," not resist an adversary crafting
// a collision.
type Key [32]byte

// HashSource computes the Key for src. It runs two independent
// FNV-128a passes, one over src directly and one over src with its
// length prepended, and concatenates their 16-byte digests into a
// single 32-byte key — cheap insurance against the (already
// vanishingly unlikely) case where both halves would otherwise collide
// on the exact same input, at the cost of one extra pass over a
// compilation unit's text, not a hot loop.
func HashSource(src string) Key {
	var out Key

	h1 := fnv.New128a()
	h1.Write([]byte(src))
	copy(out[:16], h1.Sum(nil))

	h2 := fnv.New128a()
	writeLen(h2, len(src))
	h2.Write([]byte(src))
	copy(out[16:], h2.Sum(nil))

	return out
}

func writeLen(h io.Writer, n int) {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(n >> (8 * uint(i)))
	}
	h.Write(b[:])
}

// Entry is everything one compiled module produces, cached together
// under one Key so a hit restores the whole pipeline's output in one
// lookup rather than forcing a driver to re-derive the typed module or
// canonical IR from a partially-cached state.
type Entry struct {
	Module    *module.Module
	Context   *module.Context
	Typed     *module.TypedModule
	Canonical map[name.Name]*module.CanonicalIR
}

// Table is a concurrency-safe content-hash-keyed memoization table.
// The zero value is not usable; construct with NewTable.
type Table struct {
	mu      sync.RWMutex
	entries map[Key]*Entry
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{entries: make(map[Key]*Entry)}
}

// Get returns the cached Entry for src's hash, if any.
func (t *Table) Get(src string) (*Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[HashSource(src)]
	return e, ok
}

// GetKey returns the cached Entry for an already-computed Key.
func (t *Table) GetKey(k Key) (*Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[k]
	return e, ok
}

// Store caches e under src's hash, returning the Key used so a caller
// can invalidate or re-fetch it without rehashing.
func (t *Table) Store(src string, e *Entry) Key {
	k := HashSource(src)
	t.mu.Lock()
	t.entries[k] = e
	t.mu.Unlock()
	return k
}

// Invalidate drops the cached entry for src's hash, forcing the next
// Get to miss. A driver calls this when a module's source text changes
// (the salsa equivalent of `file.set_text`).
func (t *Table) Invalidate(src string) {
	k := HashSource(src)
	t.mu.Lock()
	delete(t.entries, k)
	t.mu.Unlock()
}

// Len reports how many modules are currently cached.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
