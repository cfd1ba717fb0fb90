package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/genprogctx"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/instrument"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/logging"
)

func runInstrument(cmd *cobra.Command, args []string) error {
	srcPath := args[0]
	ctx := genprogctx.New(logging.New("instrument"), nil)

	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("instrument: opening %s: %w", srcPath, err)
	}
	tu, err := instrument.ReadAST(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("instrument: reading %s: %w", srcPath, err)
	}

	result, err := instrument.Run(ctx.Logger, tu, srcPath, instrument.Options{
		Calls:       flagCalls,
		CallTargets: flagCallTargets,
		Loc:         flagLoc,
	})
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(srcPath, ".ast")
	if err := writeArtifact(base+".ast", func(f *os.File) error {
		return instrument.WriteAST(f, result.Pristine)
	}); err != nil {
		return err
	}
	if err := writeArtifact(base+".ht", func(f *os.File) error {
		return instrument.WriteHt(f, result.Counter, result.Map)
	}); err != nil {
		return err
	}
	if flagLoc {
		if err := writeArtifact(base+"_loc.ht", func(f *os.File) error {
			return instrument.WriteLocMap(f, result.LocMap)
		}); err != nil {
			return err
		}
	}

	if err := instrument.WriteAST(cmd.OutOrStdout(), result.Instrumented); err != nil {
		return fmt.Errorf("instrument: writing instrumented output: %w", err)
	}
	ctx.Logger.Info("instrumentation complete", "statements", result.Map.Len())
	return nil
}

func writeArtifact(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("instrument: creating %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("instrument: writing %s: %w", path, err)
	}
	return nil
}
