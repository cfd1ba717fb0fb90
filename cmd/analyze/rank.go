package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/graph"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/logging"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/predicate"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/trace"
)

var (
	rankRunsListing string
	rankJSON        bool
	rankTarget      string
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidate predicates by CBI importance against run failure",
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().StringVar(&rankRunsListing, "runs", "", "runs-listing file (path <passed|failed> per line)")
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "emit newline-delimited JSON ranking records")
	rankCmd.Flags().StringVar(&rankTarget, "target", "failed", "ranking target: \"failed\" or \"succeeded\"")
	_ = rankCmd.MarkFlagRequired("runs")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	logger := logging.New("analyze")

	listing, err := os.Open(rankRunsListing)
	if err != nil {
		return fmt.Errorf("analyze: opening runs-listing %s: %w", rankRunsListing, err)
	}
	defer listing.Close()

	entries, err := trace.ParseRunsListing(listing)
	if err != nil {
		return err
	}
	logger.Info("parsed runs-listing", "entries", len(entries))

	runs, err := trace.IngestAll(logger, entries, trace.MapClassifier{})
	if err != nil {
		return err
	}

	g := graph.Build(runs)

	sentinel, err := sentinelFor(rankTarget)
	if err != nil {
		return err
	}
	target, err := predicate.NewSentinelTarget(g.Runs, sentinel)
	if err != nil {
		return err
	}

	records := predicate.Rank(g, target)
	logger.Info("ranked predicates", "count", len(records))

	if rankJSON {
		return predicate.WriteJSONLines(cmd.OutOrStdout(), records)
	}
	predicate.PrintRanking(cmd.OutOrStdout(), records)
	return nil
}

func sentinelFor(name string) (predicate.Predicate, error) {
	switch name {
	case "failed":
		return predicate.RunFailed{}, nil
	case "succeeded":
		return predicate.RunSucceeded{}, nil
	default:
		return nil, fmt.Errorf("analyze: unknown target %q, want \"failed\" or \"succeeded\"", name)
	}
}
