package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Limits bounds how much work or output a single compilation performs,
// so a pathological input can't exhaust memory or produce an unbounded
// diagnostic stream.
type Limits struct {
	// MaxDiagnostics caps how many diagnostics a Bag retains; 0 means
	// unbounded. Diagnostics pushed past the cap are counted but
	// dropped, not silently ignored.
	MaxDiagnostics int `yaml:"max_diagnostics"`

	// MaxErrors and MaxWarnings, if set, additionally cap each severity
	// independently of MaxDiagnostics, so a flood of one severity can't
	// starve the other out of the retained set. 0 means unbounded.
	MaxErrors   int `yaml:"max_errors"`
	MaxWarnings int `yaml:"max_warnings"`
}

// DefaultLimits returns the limits applied when a driver doesn't
// configure its own.
func DefaultLimits() Limits {
	return Limits{MaxDiagnostics: 1000, MaxErrors: 20, MaxWarnings: 10}
}

// LoadLimits reads a YAML document of the shape DefaultLimits produces
// (§7: emission caps), so an embedding driver can tune them without a
// recompile. Fields absent from the document keep their Go zero value,
// not DefaultLimits' values — callers that want defaults layered under
// a partial override should start from DefaultLimits() and call
// yaml.Unmarshal against it themselves; LoadLimits is for a complete,
// driver-owned config file.
func LoadLimits(path string) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("reading limits config: %w", err)
	}
	var lim Limits
	if err := yaml.Unmarshal(data, &lim); err != nil {
		return Limits{}, fmt.Errorf("parsing limits config: %w", err)
	}
	return lim, nil
}
