// Package genprogctx defines the Context value bundling a logger, a
// statement counter and map, the cross-cutting option flags and the
// harness configuration, plus the YAML harness configuration loader.
// Only cmd/instrument builds a Context, and it passes only the Logger
// on (to instrument.Run); no subsystem entry point takes a Context, and
// instrumentation numbering keeps its own counter and statement map.
package genprogctx

import (
	"github.com/hashicorp/go-hclog"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
)

// Options are the option flags of spec §5–§6 that are not already
// captured by a more specific Options struct (instrument.Options,
// etc.) — the cross-cutting ones every subsystem may consult.
type Options struct {
	UseSubdirs       bool
	KeepSource       bool
	AlwaysKeepSource bool
	AllowSanityFail  bool
}

// Context bundles state that would otherwise be package-level. It is
// not itself passed to any subsystem entry point.
type Context struct {
	Logger  hclog.Logger
	Counter *cast.Counter
	Map     *cast.StatementMap
	Options Options
	Config  *HarnessConfig
}

// New builds a Context with a fresh counter and statement map and the
// given logger and config (either of which may be nil; callers get
// sane defaults — Logger falls back to hclog.NewNullLogger, Config to
// DefaultHarnessConfig).
func New(logger hclog.Logger, config *HarnessConfig) *Context {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if config == nil {
		config = DefaultHarnessConfig()
	}
	return &Context{
		Logger:  logger,
		Counter: cast.NewCounter(),
		Map:     cast.NewStatementMap(),
		Config:  config,
	}
}
