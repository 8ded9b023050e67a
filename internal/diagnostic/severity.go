// Package diagnostic implements the structured diagnostic model shared
// by every pass: severities, stable error codes, labeled spans,
// suggestions, and a deduplicating collector. The core never formats
// a diagnostic for display — that is a driver/collaborator concern
// (terminal, LSP) layered on top (§6.3).
package diagnostic

// Severity ranks how serious a diagnostic is. Only Error severity
// prevents a pass from producing output (§6.3: "succeeds iff no error
// diagnostics remain").
type Severity uint8

const (
	Error Severity = iota
	Warning
	Note
	Help
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	case Help:
		return "help"
	default:
		return "unknown"
	}
}
