package config

// Version is the current core version.
var Version = "0.1.0"

const SourceFileExt = ".ori"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".ori", ".sigil", ".sg"}

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// NoneLiteralName is the identifier the canonicalizer synthesizes when
// it lowers a nil literal to a reference rather than a constant, since
// None carries no payload of its own to intern (internal/canon).
const NoneLiteralName = "None"

// IsTestMode normalizes otherwise-nondeterministic display output —
// currently, the fresh unification-variable ids types.Render prints —
// so golden tests compare stable text instead of raw monotonic
// counters. Analogous to the teacher's IsTestMode/IsLSPMode display
// toggles, narrowed to the one thing this core's own output needs
// normalized; set once at test setup, never during a real compile.
var IsTestMode = false
