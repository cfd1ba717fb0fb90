package variant

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/harness"
)

// Test names one test case by the name the test-command template
// substitutes as __TEST_NAME__.
type Test struct {
	Name string
}

// TestCaseDeps bundles the collaborators TestCase needs: the
// persistent cache, a process runner, and the command templates and
// filesystem locations to drive compile/test with.
type TestCaseDeps struct {
	Cache       *TestCache
	Runner      harness.Runner
	Ports       *harness.PortAllocator
	CompileTpl  harness.CompileTemplate
	TestTpl     harness.TestTemplate // ExeName, TestName and Port are filled in per call
	SourcePath  string
	WorkDir     string
}

// TestCase resolves (passed, fitness[]) for t against v, following the
// exact order of spec §4.6:
//
//	(i) snapshot + persistent cache hit -> return it
//	(ii) else ensure snapshot
//	(iii) ensure compile
//	(iv) compile failed -> (false, [0.0])
//	(v) else invoke the harness and parse its fitness file
//
// Every resolution that is not a cache hit increments v's
// unique-evaluation counter; the count is held per Variant and is not
// shared with other variants or with copies.
func (v *Variant) TestCase(ctx context.Context, t Test, deps TestCaseDeps) (bool, []float64, error) {
	if snap, ok := v.Snapshot(); ok {
		if result, hit, err := deps.Cache.Get(snap.Digest, t.Name); err != nil {
			return false, nil, err
		} else if hit {
			return result.Passed, result.Fitness, nil
		}
	}

	snap, err := v.EnsureSnapshot(deps.SourcePath)
	if err != nil {
		return false, nil, err
	}

	compile, err := v.EnsureCompiled(ctx, deps.Runner, deps.CompileTpl, deps.WorkDir)
	if err != nil {
		return false, nil, err
	}

	var result TestResult
	if compile.State == Failed {
		result = TestResult{Passed: false, Fitness: []float64{0.0}}
	} else {
		result, err = v.runTest(ctx, t, compile, deps)
		if err != nil {
			return false, nil, err
		}
	}

	v.evaluations++
	if err := deps.Cache.Put(snap.Digest, t.Name, result); err != nil {
		return false, nil, err
	}
	return result.Passed, result.Fitness, nil
}

func (v *Variant) runTest(ctx context.Context, t Test, compile CompileResult, deps TestCaseDeps) (TestResult, error) {
	tpl := deps.TestTpl
	tpl.ExeName = compile.Exe
	tpl.TestName = t.Name
	tpl.Port = deps.Ports.Next()

	code, _, _, err := deps.Runner.Run(ctx, deps.WorkDir, tpl.Render())
	if err != nil {
		return TestResult{}, fmt.Errorf("variant: spawning test harness: %w", err)
	}
	if code != 0 {
		return TestResult{Passed: false, Fitness: []float64{0.0}}, nil
	}

	fitness, err := readFitnessFile(tpl.FitnessFile)
	if err != nil {
		return TestResult{Passed: true, Fitness: []float64{1.0}}, nil
	}
	return TestResult{Passed: true, Fitness: fitness}, nil
}

// readFitnessFile parses a comma/whitespace-separated list of floats
// (spec §4.6). A missing file is not an error to the caller — it just
// means "no fitness file", handled by the caller's default.
func readFitnessFile(path string) ([]float64, error) {
	if path == "" {
		return nil, fmt.Errorf("variant: no fitness file configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		val, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("variant: malformed fitness value %q: %w", f, err)
		}
		out = append(out, val)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("variant: fitness file %s had no values", path)
	}
	return out, nil
}

// EvaluationCount is this Variant's count of unique (digest, test)
// evaluations, distinct from cache hits; a Copy starts again at zero.
func (v *Variant) EvaluationCount() int { return v.evaluations }
