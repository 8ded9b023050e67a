// Package pipeline sequences a module.Context through its checking and
// lowering stages. A driver wiring this repo's core into a build tool
// or LSP server composes its own Processor list here rather than
// calling Context.Check/Lower directly, the same way the teacher's own
// pipeline decouples "what stages run" from "what each stage does."
package pipeline

import (
	"github.com/sigil-lang/ori/internal/module"
	"github.com/sigil-lang/ori/internal/name"
)

// Result threads one module's state through the pipeline: the Context
// every stage reads/writes, plus the TypedModule and per-function
// CanonicalIR set later stages populate as they run.
type Result struct {
	Ctx       *module.Context
	Typed     *module.TypedModule
	Canonical map[name.Name]*module.CanonicalIR
}

// Processor is one pipeline stage.
type Processor interface {
	Process(r *Result) *Result
}

// Pipeline is a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

// New returns a Pipeline running processors in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, threading its Result through.
func (p *Pipeline) Run(initial *Result) *Result {
	r := initial
	for _, processor := range p.processors {
		r = processor.Process(r)
		// Continue on errors to collect diagnostics from every stage
		// that can still run — a driver wants both type errors and,
		// where lowering still makes sense, lowering's own output.
	}
	return r
}
