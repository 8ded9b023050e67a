package diagnostic

import "github.com/sigil-lang/ori/internal/span"

// Label attaches a message to a span. Primary labels point at the
// offending construct; secondary labels add context elsewhere (e.g.
// "expected because of this return type" pointing at a different
// function). File is empty for the diagnostic's own source file and
// set only for a cross-file secondary label.
type Label struct {
	Span    span.Span
	File    string
	Message string
	Primary bool
}

// Suggestion is a proposed fix: either free-text guidance or a
// structured rewrite (Span + Replacement non-empty).
type Suggestion struct {
	Span        span.Span
	File        string
	Text        string
	Replacement string
	HasRewrite  bool
}

// Diagnostic is one structured diagnostic record (§6.3). The core
// never renders one to text; a collaborator (terminal emitter, LSP
// server) does that.
type Diagnostic struct {
	Severity    Severity
	Code        Code
	Message     string
	Labels      []Label
	Notes       []string
	Suggestions []Suggestion

	// Soft marks a diagnostic produced speculatively during inference
	// (e.g. while trying an overload) that is discarded if a later
	// branch succeeds without it (§6.3).
	Soft bool
}

// New builds a diagnostic at code's default severity (see
// Code.DefaultSeverity), with a single primary label.
func New(code Code, primary span.Span, message string) *Diagnostic {
	return &Diagnostic{
		Severity: code.DefaultSeverity(),
		Code:     code,
		Message:  message,
		Labels:   []Label{{Span: primary, Message: message, Primary: true}},
	}
}

// WithLabel appends a secondary label and returns d for chaining.
func (d *Diagnostic) WithLabel(sp span.Span, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Span: sp, Message: message})
	return d
}

// WithNote appends a note and returns d for chaining.
func (d *Diagnostic) WithNote(note string) *Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithSuggestion appends free-text guidance and returns d for chaining.
func (d *Diagnostic) WithSuggestion(sp span.Span, text string) *Diagnostic {
	d.Suggestions = append(d.Suggestions, Suggestion{Span: sp, Text: text})
	return d
}

// WithRewrite appends a structured replacement suggestion and returns
// d for chaining.
func (d *Diagnostic) WithRewrite(sp span.Span, text, replacement string) *Diagnostic {
	d.Suggestions = append(d.Suggestions, Suggestion{Span: sp, Text: text, Replacement: replacement, HasRewrite: true})
	return d
}

// MarkSoft marks d as a speculative diagnostic and returns d for
// chaining.
func (d *Diagnostic) MarkSoft() *Diagnostic {
	d.Soft = true
	return d
}

// PrimarySpan returns the span of d's first primary label, or the zero
// span if none was set.
func (d *Diagnostic) PrimarySpan() span.Span {
	for _, l := range d.Labels {
		if l.Primary {
			return l.Span
		}
	}
	return span.Zero
}

func (d *Diagnostic) Error() string {
	return string(d.Code) + ": " + d.Message
}
