// Package name provides a process-wide string interner producing stable
// 32-bit handles for identifiers.
package name

import "sync"

// Name is an opaque handle into an Interner. Two names are equal iff the
// original strings were byte-equal.
type Name uint32

// Empty is the reserved handle denoting "no name".
const Empty Name = 0

// Interner deduplicates strings into Name handles. It is safe for
// concurrent use: multiple goroutines interning the same string observe
// the same handle.
type Interner struct {
	mu      sync.RWMutex
	byStr   map[string]Name
	strings []string // index 0 is the empty sentinel
}

// New creates an Interner with Empty already reserved for "".
func New() *Interner {
	in := &Interner{
		byStr:   make(map[string]Name, 256),
		strings: make([]string, 1, 256),
	}
	in.strings[0] = ""
	in.byStr[""] = Empty
	return in
}

// Intern returns the stable handle for s, allocating one if this is the
// first time s has been seen by this interner.
func (in *Interner) Intern(s string) Name {
	in.mu.RLock()
	if n, ok := in.byStr[s]; ok {
		in.mu.RUnlock()
		return n
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	// Re-check under the write lock: another goroutine may have won the race.
	if n, ok := in.byStr[s]; ok {
		return n
	}
	n := Name(len(in.strings))
	in.strings = append(in.strings, s)
	in.byStr[s] = n
	return n
}

// Lookup returns the original string for n. It panics if n was never
// returned by Intern on this interner — callers own a Name only after
// interning it, so an unknown handle means arena corruption.
func (in *Interner) Lookup(n Name) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(n) >= len(in.strings) {
		panic("name: lookup of unknown handle")
	}
	return in.strings[n]
}

// TryLookup is the non-panicking form of Lookup, for diagnostic contexts
// that would rather show a sentinel than crash the process.
func (in *Interner) TryLookup(n Name) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(n) >= len(in.strings) {
		return "", false
	}
	return in.strings[n], true
}

// Len reports how many distinct strings (including the empty sentinel)
// have been interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.strings)
}
