package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/instrument"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/logging"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/variant"
)

var (
	localizeScheme   string
	localizeFlatten  string
	localizeRunsPath string
	localizeRecords  string
	localizeLocPath  string
	localizeOut      string
)

var localizeCmd = &cobra.Command{
	Use:   "localize <source>",
	Short: "Compute a fault/fix localization and write it to a binary artifact",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocalize,
}

func init() {
	localizeCmd.Flags().StringVar(&localizeScheme, "scheme", "default", "one of: path, uniform, line, weight, oracle, default")
	localizeCmd.Flags().StringVar(&localizeFlatten, "flatten", "sum", "duplicate-sid flatten policy: sum, min, max")
	localizeCmd.Flags().StringVar(&localizeRunsPath, "runs", "", "path localization: JSON run-paths file ([{\"sids\":[...],\"failed\":bool}, ...])")
	localizeCmd.Flags().StringVar(&localizeRecords, "records", "", "line/weight schemes: file,sid[,weight] records")
	localizeCmd.Flags().StringVar(&localizeLocPath, "loc", "", "line scheme: _loc.ht location-map artifact")
	localizeCmd.Flags().StringVar(&localizeOut, "out", "", "output path for save_binary")
	_ = localizeCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(localizeCmd)
}

func runLocalize(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]
	logger := logging.New("variant")

	v, err := loadVariant(sourcePath)
	if err != nil {
		return err
	}

	scheme, err := parseScheme(localizeScheme)
	if err != nil {
		return err
	}
	flatten, err := parseFlatten(localizeFlatten)
	if err != nil {
		return err
	}

	deps := variant.LocalizationDeps{Flatten: flatten}
	if localizeRunsPath != "" {
		deps.Runs, err = readRunPaths(localizeRunsPath)
		if err != nil {
			return err
		}
	}
	if localizeRecords != "" {
		f, err := os.Open(localizeRecords)
		if err != nil {
			return fmt.Errorf("variant: opening %s: %w", localizeRecords, err)
		}
		deps.Records, err = variant.ParseWeightRecords(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	if localizeLocPath != "" {
		deps.Locations, err = readLocationMap(localizeLocPath)
		if err != nil {
			return err
		}
	}

	if err := v.ComputeLocalization(scheme, deps); err != nil {
		return err
	}
	if err := v.SaveBinary(localizeOut); err != nil {
		return err
	}
	logger.Info("computed localization", "scheme", localizeScheme, "fault_entries", len(v.GetFaultLocalization()), "fix_entries", len(v.GetFixLocalization()))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", localizeOut)
	return nil
}

func parseScheme(name string) (variant.Scheme, error) {
	switch name {
	case "default":
		return variant.SchemeDefault, nil
	case "path":
		return variant.SchemePath, nil
	case "uniform":
		return variant.SchemeUniform, nil
	case "line":
		return variant.SchemeLine, nil
	case "weight":
		return variant.SchemeWeight, nil
	case "oracle":
		return variant.SchemeOracle, nil
	default:
		return 0, fmt.Errorf("variant: unknown scheme %q", name)
	}
}

func parseFlatten(name string) (variant.FlattenPolicy, error) {
	switch name {
	case "sum":
		return variant.FlattenSum, nil
	case "min":
		return variant.FlattenMin, nil
	case "max":
		return variant.FlattenMax, nil
	default:
		return 0, fmt.Errorf("variant: unknown flatten policy %q", name)
	}
}

func readRunPaths(path string) ([]variant.RunPath, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("variant: reading %s: %w", path, err)
	}
	var raw []struct {
		Sids   []uint64 `json:"sids"`
		Failed bool     `json:"failed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("variant: parsing %s: %w", path, err)
	}
	runs := make([]variant.RunPath, len(raw))
	for i, r := range raw {
		sids := make([]cast.Sid, len(r.Sids))
		for j, s := range r.Sids {
			sids[j] = cast.Sid(s)
		}
		runs[i] = variant.RunPath{Sids: sids, Failed: r.Failed}
	}
	return runs, nil
}

func readLocationMap(path string) (cast.LocationMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("variant: opening %s: %w", path, err)
	}
	defer f.Close()
	lm, err := instrument.ReadLocMap(f)
	if err != nil {
		return nil, fmt.Errorf("variant: reading %s: %w", path, err)
	}
	return lm, nil
}
