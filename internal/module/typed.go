package module

import (
	"github.com/sigil-lang/ori/internal/canon"
	"github.com/sigil-lang/ori/internal/diagnostic"
	"github.com/sigil-lang/ori/internal/infer"
	"github.com/sigil-lang/ori/internal/ir"
	"github.com/sigil-lang/ori/internal/types"
)

// TypedModule is the core's first output (§6.2): every checked
// expression's type, every pattern's disambiguation, and the
// diagnostics the check pass produced, split by severity the way a
// driver needs them (errors gate further processing, warnings don't).
type TypedModule struct {
	ExprTypes          map[ir.ExprId]types.Idx
	PatternResolutions map[ir.MatchPatternId]infer.PatternResolution
	Errors             []*diagnostic.Diagnostic
	Warnings           []*diagnostic.Diagnostic
}

// Succeeded reports whether tm's module compiled with no error
// diagnostics (§7: "Compilation succeeds iff no error diagnostics
// remain").
func (tm *TypedModule) Succeeded() bool { return len(tm.Errors) == 0 }

// CanonicalIR is the core's second output (§6.2): one lowered function
// body's canonical tree. A Context.Lower call returns one of these per
// top-level function rather than a single module-wide tree, since each
// function's body lowers to its own independent CanArena root — the
// per-CanId types a backend needs are already queryable straight off
// Arena via TypeOf, so no separate types map is carried here.
type CanonicalIR struct {
	Arena     *canon.CanArena
	Root      canon.CanId
	Constants *canon.ConstValueTable
}

// TypeOf returns the resolved type of id within this function's
// canonical tree.
func (c *CanonicalIR) TypeOf(id canon.CanId) types.Idx { return c.Arena.TypeOf(id) }
