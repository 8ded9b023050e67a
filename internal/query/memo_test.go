package query

import "testing"

func TestHashSourceStableAndDistinguishing(t *testing.T) {
	a := HashSource("fn main() { 1 }")
	b := HashSource("fn main() { 1 }")
	if a != b {
		t.Fatalf("expected identical source to hash identically")
	}

	c := HashSource("fn main() { 2 }")
	if a == c {
		t.Fatalf("expected different source to hash differently")
	}
}

func TestTableStoreGetInvalidate(t *testing.T) {
	tab := NewTable()
	src := "fn main() { 1 }"

	if _, ok := tab.Get(src); ok {
		t.Fatalf("expected miss on empty table")
	}

	entry := &Entry{}
	tab.Store(src, entry)

	got, ok := tab.Get(src)
	if !ok || got != entry {
		t.Fatalf("expected to retrieve the stored entry")
	}
	if tab.Len() != 1 {
		t.Fatalf("expected one cached entry, got %d", tab.Len())
	}

	tab.Invalidate(src)
	if _, ok := tab.Get(src); ok {
		t.Fatalf("expected miss after invalidation")
	}
	if tab.Len() != 0 {
		t.Fatalf("expected zero cached entries after invalidation, got %d", tab.Len())
	}
}

func TestTableGetKeyMatchesGet(t *testing.T) {
	tab := NewTable()
	src := "fn main() { 1 }"
	entry := &Entry{}
	k := tab.Store(src, entry)

	got, ok := tab.GetKey(k)
	if !ok || got != entry {
		t.Fatalf("expected GetKey to retrieve the stored entry")
	}
}
