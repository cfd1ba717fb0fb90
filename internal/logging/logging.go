// Package logging wires hclog.Logger construction the way every
// subsystem entrypoint in this module expects it: one named logger per
// subsystem, level controlled by an environment variable so the CLI
// binaries share a single convention.
package logging

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// New builds a named logger for one of the subsystem entrypoints
// ("instrument", "analyze", "variant"). Level is read from
// GENPROG_LOG_LEVEL, defaulting to Info.
func New(name string) hclog.Logger {
	level := hclog.LevelFromString(os.Getenv("GENPROG_LOG_LEVEL"))
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:  name,
		Level: level,
	})
}
