package genprogctx

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HarnessConfig is the optional YAML-loaded configuration for the
// compile/test command templates of spec §4.6 and §6. Values in the
// YAML file override the defaults; no CLI flag overrides an individual
// field. Every field has a usable default so the core
// behaves identically to a hand-invoked instrumenter/analyzer when no
// file is supplied.
type HarnessConfig struct {
	CompileCommand  string `yaml:"compile_command"`
	CompilerName    string `yaml:"compiler_name"`
	CompilerOptions string `yaml:"compiler_options"`

	TestCommand string `yaml:"test_command"`
	TestScript  string `yaml:"test_script"`
	FitnessFile string `yaml:"fitness_file"`

	TestCacheVersion string `yaml:"test_cache_version"`
	TestCachePath    string `yaml:"test_cache_path"`

	ReservedLabelPrefix string `yaml:"reserved_label_prefix"`
}

// DefaultHarnessConfig matches the core's behavior with no config file
// at all: gcc, a conventional `./test.sh` harness, and the reserved
// label prefix named in spec §6.
func DefaultHarnessConfig() *HarnessConfig {
	return &HarnessConfig{
		CompileCommand:      "__COMPILER_NAME__ -o __EXE_NAME__ __SOURCE_NAME__ __COMPILER_OPTIONS__",
		CompilerName:        "gcc",
		CompilerOptions:     "",
		TestCommand:         "__TEST_SCRIPT__ __EXE_NAME__ __TEST_NAME__ __PORT__ __SOURCE_NAME__ __FITNESS_FILE__",
		TestScript:          "./test.sh",
		FitnessFile:         "fitness.txt",
		TestCacheVersion:    "2",
		TestCachePath:       "genprog-test-cache.bolt",
		ReservedLabelPrefix: "claire",
	}
}

// LoadHarnessConfig reads a YAML config file and overlays it onto the
// defaults; fields absent from the file keep their default value.
func LoadHarnessConfig(path string) (*HarnessConfig, error) {
	cfg := DefaultHarnessConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("genprogctx: reading harness config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("genprogctx: parsing harness config %s: %w", path, err)
	}
	return cfg, nil
}
