// Package instrument implements the coverage instrumenter (spec §4.2):
// four ordered passes that number traceable statements, persist a
// reversible id -> statement map, and splice in the trace-emission code
// that makes an instrumented program self-report which statements it
// executed.
package instrument

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/visitor"
)

// Options configures a single instrumentation run. It is the in-process
// form of the CLI surface in spec §6.
type Options struct {
	// Calls enables the call-splitting pass (--calls).
	Calls bool
	// CallTargets names the functions call-splitting isolates. Ignored
	// unless Calls is set.
	CallTargets []string
	// Loc enables location-map production and location-tagged trace
	// records (--loc).
	Loc bool
}

// Result is everything one instrumentation run produces: the
// instrumented AST (ready for an external C pretty-printer) and the
// three artifacts named in spec §6.
type Result struct {
	Instrumented cast.TranslationUnit
	Counter      *cast.Counter
	Map          *cast.StatementMap
	LocMap       cast.LocationMap // nil unless Options.Loc was set
	Pristine     cast.TranslationUnit // numbered but not yet instrumented; this is what WriteAST persists
}

// Run executes all four passes over tu and returns the instrumented
// tree plus its artifacts. srcPath is used only to name the runtime
// trace file (`<srcPath>.path`).
func Run(logger hclog.Logger, tu cast.TranslationUnit, srcPath string, opts Options) (*Result, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	work := tu
	if opts.Calls {
		logger.Debug("call-splitting pass", "targets", opts.CallTargets)
		work = splitCalls(work, opts.CallTargets)
	}

	logger.Debug("numbering pass")
	numbered, err := Number(work, ReservedLabelPrefix, opts.Loc)
	if err != nil {
		return nil, fmt.Errorf("instrument: numbering failed: %w", err)
	}
	logger.Info("numbered statements", "count", numbered.Map.Len())

	logger.Debug("instrumentation pass")
	instrumented, err := Instrument(numbered.Unit, srcPath, InjectOptions{Loc: opts.Loc})
	if err != nil {
		return nil, fmt.Errorf("instrument: instrumentation failed: %w", err)
	}

	return &Result{
		Instrumented: instrumented,
		Counter:      numbered.Counter,
		Map:          numbered.Map,
		LocMap:       numbered.LocMap,
		Pristine:     numbered.Unit,
	}, nil
}

// splitCalls applies the call-splitting pass (pass 1) to every function
// body in tu.
func splitCalls(tu cast.TranslationUnit, targets []string) cast.TranslationUnit {
	cs := NewCallSplitter(targets)
	out := cast.TranslationUnit{Decls: make([]cast.Decl, len(tu.Decls))}
	for i, d := range tu.Decls {
		fd, ok := d.(cast.FuncDecl)
		if !ok {
			out.Decls[i] = d
			continue
		}
		fd.Body = visitor.WalkList(cs, fd.Body)
		out.Decls[i] = fd
	}
	return out
}
