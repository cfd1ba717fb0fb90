package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/genprogctx"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/harness"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/instrument"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/variant"
)

func loadCodeBank(path string) (variant.CodeBank, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("variant: opening code bank %s: %w", path, err)
	}
	defer f.Close()

	_, smap, err := instrument.ReadHt(f)
	if err != nil {
		return nil, fmt.Errorf("variant: reading code bank %s: %w", path, err)
	}
	return variant.NewCodeBank(smap), nil
}

func loadVariant(sourcePath string) (*variant.Variant, error) {
	bank, err := loadCodeBank(flagBankPath)
	if err != nil {
		return nil, err
	}
	return variant.FromSource(sourcePath, bank)
}

func loadConfig() (*genprogctx.HarnessConfig, error) {
	return genprogctx.LoadHarnessConfig(flagConfigPath)
}

// buildDeps assembles the process-global collaborators a TestCase or
// SanityCheck call needs: the persistent cache, a real process runner,
// the port allocator, and the compile/test command templates resolved
// from the harness config.
func buildDeps(cfg *genprogctx.HarnessConfig, workDir, sourcePath string) (variant.TestCaseDeps, func() error, error) {
	cache, err := variant.OpenTestCache(cfg.TestCachePath, cfg.TestCacheVersion)
	if err != nil {
		return variant.TestCaseDeps{}, nil, err
	}

	exeName := filepath.Join(workDir, "a.out")
	deps := variant.TestCaseDeps{
		Cache:  cache,
		Runner: harness.ExecRunner{},
		Ports:  harness.NewPortAllocator(),
		CompileTpl: harness.CompileTemplate{
			Command:         cfg.CompileCommand,
			CompilerName:    cfg.CompilerName,
			ExeName:         exeName,
			SourceName:      sourcePath,
			CompilerOptions: cfg.CompilerOptions,
		},
		TestTpl: harness.TestTemplate{
			Command:     cfg.TestCommand,
			TestScript:  cfg.TestScript,
			ExeName:     exeName,
			SourceName:  sourcePath,
			FitnessFile: cfg.FitnessFile,
		},
		SourcePath: sourcePath,
		WorkDir:    workDir,
	}
	return deps, cache.Close, nil
}
