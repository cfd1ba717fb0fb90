package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load <source>",
	Short: "Load a variant and report its atom count",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func init() { rootCmd.AddCommand(loadCmd) }

func runLoad(cmd *cobra.Command, args []string) error {
	logger := logging.New("variant")
	v, err := loadVariant(args[0])
	if err != nil {
		return err
	}
	logger.Info("loaded variant", "atoms", v.MaxAtom())
	fmt.Fprintf(cmd.OutOrStdout(), "max_atom: %d\n", v.MaxAtom())
	return nil
}
