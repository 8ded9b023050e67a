package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLimitsParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "limits.yaml")
	doc := "max_diagnostics: 50\nmax_errors: 10\nmax_warnings: 20\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	lim, err := LoadLimits(path)
	if err != nil {
		t.Fatalf("LoadLimits: %v", err)
	}
	if lim.MaxDiagnostics != 50 || lim.MaxErrors != 10 || lim.MaxWarnings != 20 {
		t.Fatalf("got %+v", lim)
	}
}

func TestLoadLimitsMissingFile(t *testing.T) {
	if _, err := LoadLimits(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestTrimAndHasSourceExt(t *testing.T) {
	if !HasSourceExt("main.ori") {
		t.Fatalf("expected main.ori to be recognized")
	}
	if HasSourceExt("main.txt") {
		t.Fatalf("did not expect main.txt to be recognized")
	}
	if got := TrimSourceExt("main.ori"); got != "main" {
		t.Fatalf("TrimSourceExt(main.ori) = %q, want main", got)
	}
	if got := TrimSourceExt("main"); got != "main" {
		t.Fatalf("TrimSourceExt(main) = %q, want main unchanged", got)
	}
}
