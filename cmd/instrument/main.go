// Command instrument drives the coverage instrumenter (spec §4.2,
// §6): given a translation unit, it numbers every traceable statement,
// persists the id-to-statement artifacts, and emits the instrumented
// program.
//
// C parsing and pretty-printing are out of scope (spec.md Non-goals):
// the positional input is the gob-encoded cast.TranslationUnit a C
// frontend would hand back, in the same artifact format WriteAST
// produces, and the "instrumented C source" this tool writes to
// stdout is the gob-encoded instrumented TranslationUnit rather than
// printed C text — the same source-as-encoded-tree substitution
// internal/variant uses for its own from_source/output_source
// contract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagCalls       bool
	flagCallTargets []string
	flagLoc         bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "instrument <translation-unit-artifact>",
	Short: "Number and instrument a C translation unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstrument,
}

func init() {
	rootCmd.Flags().BoolVar(&flagCalls, "calls", false, "enable the call-splitting pass")
	rootCmd.Flags().StringSliceVar(&flagCallTargets, "call-target", nil, "function name to call-split (repeatable); ignored unless --calls")
	rootCmd.Flags().BoolVar(&flagLoc, "loc", false, "emit the location-map artifact and location-tagged trace records")
}
