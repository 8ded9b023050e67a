package diagnostic

import (
	"testing"

	"github.com/sigil-lang/ori/internal/config"
	"github.com/sigil-lang/ori/internal/span"
)

func TestBagDedupesBySpanAndCode(t *testing.T) {
	b := NewBag(config.DefaultLimits())
	sp := span.Span{Start: 10, End: 15}
	b.Push(New(E2001TypeMismatch, sp, "first"))
	b.Push(New(E2001TypeMismatch, sp, "second"))

	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
	all := b.All()
	if all[0].Message != "second" {
		t.Errorf("Message = %q, want %q (later push should win)", all[0].Message, "second")
	}
}

func TestBagDistinguishesByCodeAtSameSpan(t *testing.T) {
	b := NewBag(config.DefaultLimits())
	sp := span.Span{Start: 10, End: 15}
	b.Push(New(E2001TypeMismatch, sp, "mismatch"))
	b.Push(New(E2006NotCallable, sp, "not callable"))

	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(config.DefaultLimits())
	if b.HasErrors() {
		t.Fatal("empty bag should have no errors")
	}
	b.Push(New(W2001UnusedVariable, span.Zero, "unused"))
	if b.HasErrors() {
		t.Fatal("a warning-only bag should have no errors")
	}
	b.Push(New(E2001TypeMismatch, span.Zero, "mismatch"))
	if !b.HasErrors() {
		t.Fatal("bag with an error diagnostic should report HasErrors")
	}
}

func TestBagDiscardSoft(t *testing.T) {
	b := NewBag(config.DefaultLimits())
	b.Push(New(E2001TypeMismatch, span.Span{Start: 1}, "speculative").MarkSoft())
	b.Push(New(E2001TypeMismatch, span.Span{Start: 2}, "real"))

	b.DiscardSoft()

	all := b.All()
	if len(all) != 1 || all[0].Message != "real" {
		t.Fatalf("All() after DiscardSoft = %+v, want only the non-soft diagnostic", all)
	}
}

func TestBagSuppressesPastLimit(t *testing.T) {
	b := NewBag(config.Limits{MaxDiagnostics: 1})
	b.Push(New(E2001TypeMismatch, span.Span{Start: 1}, "a"))
	b.Push(New(E2001TypeMismatch, span.Span{Start: 2}, "b"))

	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (capped)", b.Len())
	}
	if b.Suppressed() != 1 {
		t.Fatalf("Suppressed() = %d, want 1", b.Suppressed())
	}
}

func TestBagAllSortedByPosition(t *testing.T) {
	b := NewBag(config.DefaultLimits())
	b.Push(New(E2001TypeMismatch, span.Span{Start: 30}, "third"))
	b.Push(New(E2001TypeMismatch, span.Span{Start: 10}, "first"))
	b.Push(New(E2001TypeMismatch, span.Span{Start: 20}, "second"))

	all := b.All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d diagnostics, want 3", len(all))
	}
	for i, want := range []string{"first", "second", "third"} {
		if all[i].Message != want {
			t.Errorf("All()[%d].Message = %q, want %q", i, all[i].Message, want)
		}
	}
}

func TestDefaultSeverityByCodeRange(t *testing.T) {
	if E2001TypeMismatch.DefaultSeverity() != Error {
		t.Error("E2xxx should default to Error")
	}
	if W2001UnusedVariable.DefaultSeverity() != Warning {
		t.Error("W2xxx should default to Warning")
	}
	if E3006RedundantPattern.DefaultSeverity() != Warning {
		t.Error("E3006 should default to Warning despite the E-prefix")
	}
}

func TestDiagnosticBuilderChain(t *testing.T) {
	sp := span.Span{Start: 5, End: 8}
	d := New(E2001TypeMismatch, sp, "expected Int, found Str").
		WithLabel(span.Span{Start: 20, End: 25}, "expected because of this").
		WithNote("Int and Str are not unifiable").
		WithSuggestion(sp, "convert with .to_str()")

	if len(d.Labels) != 2 {
		t.Fatalf("Labels = %d, want 2", len(d.Labels))
	}
	if !d.Labels[0].Primary || d.Labels[1].Primary {
		t.Error("only the first label should be primary")
	}
	if len(d.Notes) != 1 || len(d.Suggestions) != 1 {
		t.Errorf("Notes/Suggestions not appended correctly: %+v", d)
	}
	if d.PrimarySpan() != sp {
		t.Errorf("PrimarySpan() = %v, want %v", d.PrimarySpan(), sp)
	}
}
