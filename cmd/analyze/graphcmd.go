package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/graph"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/logging"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/trace"
)

var graphRunsListing string

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the dynamic execution graph built from a runs-listing",
	RunE:  runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphRunsListing, "runs", "", "runs-listing file (path <passed|failed> per line)")
	_ = graphCmd.MarkFlagRequired("runs")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	logger := logging.New("analyze")

	listing, err := os.Open(graphRunsListing)
	if err != nil {
		return fmt.Errorf("analyze: opening runs-listing %s: %w", graphRunsListing, err)
	}
	defer listing.Close()

	entries, err := trace.ParseRunsListing(listing)
	if err != nil {
		return err
	}

	runs, err := trace.IngestAll(logger, entries, trace.MapClassifier{})
	if err != nil {
		return err
	}

	g := graph.Build(runs)
	graph.PrintGraph(cmd.OutOrStdout(), g)
	return nil
}
