package types

import (
	"fmt"

	"github.com/sigil-lang/ori/internal/name"
)

// MismatchError reports two type indices that could not be unified,
// along with a human-readable trail of what went wrong (§4.3: "a
// mismatch error carrying the two offending indices and a resolved
// trail of names").
type MismatchError struct {
	A, B    Idx
	Reason  string
	Context string // e.g. "function parameter", set by callers wrapping a nested failure
}

func (e *MismatchError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("cannot unify %s: %s", e.Context, e.Reason)
	}
	return fmt.Sprintf("cannot unify type %d and type %d: %s", e.A, e.B, e.Reason)
}

// Describe renders e using p/in to name the two offending types
// instead of their raw pool indices — the message a diagnostic should
// actually show a developer (Error() stays index-based for contexts,
// like an internal log, that don't have a Pool/Interner on hand).
func (e *MismatchError) Describe(p *Pool, in *name.Interner) string {
	if e.Context != "" {
		return fmt.Sprintf("cannot unify %s: %s", e.Context, e.Reason)
	}
	return fmt.Sprintf("cannot unify %s and %s: %s", Render(p, in, e.A), Render(p, in, e.B), e.Reason)
}

func mismatch(a, b Idx, reason string) error {
	return &MismatchError{A: a, B: b, Reason: reason}
}

// withContext wraps err, naming the position at which the nested
// unification failed (a field, parameter, or tuple slot).
func withContext(context string, err error) error {
	if me, ok := err.(*MismatchError); ok {
		wrapped := *me
		if wrapped.Context == "" {
			wrapped.Context = context
		} else {
			wrapped.Context = context + " -> " + wrapped.Context
		}
		return &wrapped
	}
	return err
}

// InfiniteTypeError reports an occurs-check failure: a variable would
// have to unify with a type that contains itself.
type InfiniteTypeError struct {
	Var  Idx
	Type Idx
}

func (e *InfiniteTypeError) Error() string {
	return fmt.Sprintf("infinite type: variable %d occurs in type %d", e.Var, e.Type)
}

// Describe renders e using p/in, the same way MismatchError.Describe does.
func (e *InfiniteTypeError) Describe(p *Pool, in *name.Interner) string {
	return fmt.Sprintf("infinite type: %s occurs in %s", Render(p, in, e.Var), Render(p, in, e.Type))
}
