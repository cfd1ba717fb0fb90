package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/logging"
)

var (
	sanityPositive  []string
	sanityNegative  []string
	sanityAllowFail bool
	sanityWorkDir   string
)

var sanityCmd = &cobra.Command{
	Use:   "sanity-check <source>",
	Short: "Compile the variant and require positive tests to pass, negative tests to fail",
	Args:  cobra.ExactArgs(1),
	RunE:  runSanityCheck,
}

func init() {
	sanityCmd.Flags().StringSliceVar(&sanityPositive, "positive", nil, "positive test names (must pass)")
	sanityCmd.Flags().StringSliceVar(&sanityNegative, "negative", nil, "negative test names (must fail)")
	sanityCmd.Flags().BoolVar(&sanityAllowFail, "allow-sanity-fail", false, "do not fail the command on a sanity violation")
	sanityCmd.Flags().StringVar(&sanityWorkDir, "work-dir", ".", "directory compile/test commands run in")
	rootCmd.AddCommand(sanityCmd)
}

func runSanityCheck(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]
	logger := logging.New("variant")

	v, err := loadVariant(sourcePath)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	deps, closeCache, err := buildDeps(cfg, sanityWorkDir, sourcePath)
	if err != nil {
		return err
	}
	defer closeCache()

	if _, err := v.OutputSource(sourcePath); err != nil {
		return err
	}

	if err := v.SanityCheck(context.Background(), sanityPositive, sanityNegative, deps, sanityAllowFail); err != nil {
		return fmt.Errorf("variant: sanity check failed: %w", err)
	}
	logger.Info("sanity check passed", "positive", len(sanityPositive), "negative", len(sanityNegative))
	fmt.Fprintln(cmd.OutOrStdout(), "sanity check passed")
	return nil
}
