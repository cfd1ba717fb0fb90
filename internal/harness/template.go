package harness

import (
	"strconv"
	"strings"
)

// CompileTemplate holds the compile-command substitution values of
// spec §4.6: `__COMPILER_NAME__`, `__EXE_NAME__`, `__SOURCE_NAME__`,
// `__COMPILER_OPTIONS__`.
type CompileTemplate struct {
	Command         string
	CompilerName    string
	ExeName         string
	SourceName      string
	CompilerOptions string
}

// Render performs the literal placeholder substitution spec §4.6
// describes; no shell quoting or escaping is applied, since the
// template is the caller's own compile-command string.
func (c CompileTemplate) Render() string {
	r := strings.NewReplacer(
		"__COMPILER_NAME__", c.CompilerName,
		"__EXE_NAME__", c.ExeName,
		"__SOURCE_NAME__", c.SourceName,
		"__COMPILER_OPTIONS__", c.CompilerOptions,
	)
	return r.Replace(c.Command)
}

// TestTemplate holds the test-command substitution values of spec
// §4.6: `__TEST_SCRIPT__`, `__EXE_NAME__`, `__TEST_NAME__`, `__PORT__`,
// `__SOURCE_NAME__`, `__FITNESS_FILE__`.
type TestTemplate struct {
	Command     string
	TestScript  string
	ExeName     string
	TestName    string
	Port        int
	SourceName  string
	FitnessFile string
}

func (t TestTemplate) Render() string {
	r := strings.NewReplacer(
		"__TEST_SCRIPT__", t.TestScript,
		"__EXE_NAME__", t.ExeName,
		"__TEST_NAME__", t.TestName,
		"__PORT__", strconv.Itoa(t.Port),
		"__SOURCE_NAME__", t.SourceName,
		"__FITNESS_FILE__", t.FitnessFile,
	)
	return r.Replace(t.Command)
}
