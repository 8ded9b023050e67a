package name

import (
	"sync"
	"testing"
)

func TestInternIdempotent(t *testing.T) {
	in := New()
	a := in.Intern("foo")
	b := in.Intern("foo")
	if a != b {
		t.Errorf("Intern(\"foo\") = %d, then %d; want equal handles", a, b)
	}
	c := in.Intern("bar")
	if a == c {
		t.Errorf("Intern(\"foo\") and Intern(\"bar\") collided on handle %d", a)
	}
}

func TestInternEmpty(t *testing.T) {
	in := New()
	if got := in.Intern(""); got != Empty {
		t.Errorf("Intern(\"\") = %d, want Empty (%d)", got, Empty)
	}
}

func TestLookupRoundTrip(t *testing.T) {
	in := New()
	n := in.Intern("hello")
	if got := in.Lookup(n); got != "hello" {
		t.Errorf("Lookup(%d) = %q, want %q", n, got, "hello")
	}
}

func TestLookupUnknownPanics(t *testing.T) {
	in := New()
	defer func() {
		if recover() == nil {
			t.Errorf("Lookup of unknown handle did not panic")
		}
	}()
	in.Lookup(Name(999))
}

func TestInternConcurrent(t *testing.T) {
	in := New()
	var wg sync.WaitGroup
	results := make([]Name, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = in.Intern("shared")
		}(i)
	}
	wg.Wait()
	first := results[0]
	for i, r := range results {
		if r != first {
			t.Errorf("result[%d] = %d, want %d (all concurrent interns of the same string must agree)", i, r, first)
		}
	}
}
