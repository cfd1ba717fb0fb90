package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/logging"
)

var (
	mutateOp        string
	mutateA         int
	mutateB         int
	mutateSourceSid uint64
	mutateSub       string
	mutateOut       string
)

var mutateCmd = &cobra.Command{
	Use:   "mutate <source>",
	Short: "Apply one mutation operator and write the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runMutate,
}

func init() {
	mutateCmd.Flags().StringVar(&mutateOp, "op", "", "one of: delete, append, swap, replace-subatom")
	mutateCmd.Flags().IntVar(&mutateA, "a", 0, "first atom position (1-indexed); append's insertion point")
	mutateCmd.Flags().IntVar(&mutateB, "b", 0, "second atom position (1-indexed), for swap")
	mutateCmd.Flags().Uint64Var(&mutateSourceSid, "source-sid", 0, "code-bank sid, for append/replace-subatom")
	mutateCmd.Flags().StringVar(&mutateSub, "sub", "", "substring to replace, for replace-subatom")
	mutateCmd.Flags().StringVar(&mutateOut, "out", "", "output path for output_source")
	_ = mutateCmd.MarkFlagRequired("op")
	_ = mutateCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(mutateCmd)
}

func runMutate(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]
	logger := logging.New("variant")

	v, err := loadVariant(sourcePath)
	if err != nil {
		return err
	}

	switch mutateOp {
	case "delete":
		err = v.Delete(mutateA)
	case "append":
		err = v.Append(mutateA, cast.Sid(mutateSourceSid))
	case "swap":
		err = v.Swap(mutateA, mutateB)
	case "replace-subatom":
		err = v.ReplaceSubatom(mutateA, mutateSub, cast.Sid(mutateSourceSid))
	default:
		err = fmt.Errorf("variant: unknown mutation op %q", mutateOp)
	}
	if err != nil {
		return err
	}

	if _, err := v.OutputSource(mutateOut); err != nil {
		return err
	}
	logger.Info("applied mutation", "op", mutateOp, "max_atom", v.MaxAtom())
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", mutateOut)
	return nil
}
