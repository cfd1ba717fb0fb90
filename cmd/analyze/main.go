// Command analyze drives the dynamic-predicate fault-localization
// engine end to end: it ingests a runs-listing of processed traces,
// builds the dynamic execution graph, and ranks candidate predicates
// by CBI importance against a target (by default, run failure).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Ingest traces, build the execution graph, and rank predicates",
}
