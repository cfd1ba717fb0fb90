package variant

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/harness"
)

type scriptedRunner struct {
	calls       int
	compileExit int
	testExit    int
	fitness     string
	fitnessPath string
}

func (r *scriptedRunner) Run(ctx context.Context, dir, command string) (int, string, string, error) {
	r.calls++
	if strings.Contains(command, "COMPILE") {
		return r.compileExit, "", "", nil
	}
	if r.fitness != "" {
		_ = os.WriteFile(r.fitnessPath, []byte(r.fitness), 0o644)
	}
	return r.testExit, "", "", nil
}

func newTestDeps(t *testing.T, runner harness.Runner) TestCaseDeps {
	t.Helper()
	dir := t.TempDir()
	cache, err := OpenTestCache(filepath.Join(dir, "cache.bolt"), "1")
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	return TestCaseDeps{
		Cache:      cache,
		Runner:     runner,
		Ports:      harness.NewPortAllocator(),
		CompileTpl: harness.CompileTemplate{Command: "COMPILE __SOURCE_NAME__ -o __EXE_NAME__", ExeName: "a.out", SourceName: "a.c"},
		TestTpl:    harness.TestTemplate{Command: "TEST __EXE_NAME__ __TEST_NAME__ __PORT__ __FITNESS_FILE__", FitnessFile: filepath.Join(dir, "fitness.txt")},
		SourcePath: filepath.Join(dir, "a.c"),
		WorkDir:    dir,
	}
}

func TestCaseReturnsPassAndFitnessOnSuccess(t *testing.T) {
	runner := &scriptedRunner{compileExit: 0, testExit: 0, fitness: "0.75\n"}
	deps := newTestDeps(t, runner)
	runner.fitnessPath = deps.TestTpl.FitnessFile

	v := New([]Atom{instrAtom(1, "a")}, nil)
	passed, fitness, err := v.TestCase(context.Background(), Test{Name: "t1"}, deps)
	require.NoError(t, err)
	require.True(t, passed)
	require.Equal(t, []float64{0.75}, fitness)
	require.Equal(t, 1, v.EvaluationCount())
}

func TestCaseReturnsZeroFitnessOnCompileFailure(t *testing.T) {
	runner := &scriptedRunner{compileExit: 1}
	deps := newTestDeps(t, runner)

	v := New([]Atom{instrAtom(1, "a")}, nil)
	passed, fitness, err := v.TestCase(context.Background(), Test{Name: "t1"}, deps)
	require.NoError(t, err)
	require.False(t, passed)
	require.Equal(t, []float64{0.0}, fitness)
}

func TestCaseDefaultsFitnessWhenNoFileWritten(t *testing.T) {
	runner := &scriptedRunner{compileExit: 0, testExit: 0}
	deps := newTestDeps(t, runner)

	v := New([]Atom{instrAtom(1, "a")}, nil)
	passed, fitness, err := v.TestCase(context.Background(), Test{Name: "t1"}, deps)
	require.NoError(t, err)
	require.True(t, passed)
	require.Equal(t, []float64{1.0}, fitness)
}

func TestCaseSecondCallHitsCacheWithoutRespawning(t *testing.T) {
	runner := &scriptedRunner{compileExit: 0, testExit: 0}
	deps := newTestDeps(t, runner)

	v := New([]Atom{instrAtom(1, "a")}, nil)
	_, _, err := v.TestCase(context.Background(), Test{Name: "t1"}, deps)
	require.NoError(t, err)
	firstCalls := runner.calls
	require.Positive(t, firstCalls)

	passed, fitness, err := v.TestCase(context.Background(), Test{Name: "t1"}, deps)
	require.NoError(t, err)
	require.True(t, passed)
	require.Equal(t, []float64{1.0}, fitness)
	require.Equal(t, firstCalls, runner.calls, "second identical test_case must be a cache hit")
	require.Equal(t, 1, v.EvaluationCount(), "cache hits do not increment the evaluation counter")
}

func TestCaseMutationInvalidatesCacheBeforeNextCall(t *testing.T) {
	runner := &scriptedRunner{compileExit: 0, testExit: 0}
	deps := newTestDeps(t, runner)

	v := New([]Atom{instrAtom(1, "a"), instrAtom(2, "b")}, nil)
	_, _, err := v.TestCase(context.Background(), Test{Name: "t1"}, deps)
	require.NoError(t, err)
	firstCalls := runner.calls

	require.NoError(t, v.Delete(1))
	_, ok := v.Snapshot()
	require.False(t, ok, "mutation must drop the source snapshot cache slot")
	require.Equal(t, NotCompiled, v.CompileState().State)

	_, _, err = v.TestCase(context.Background(), Test{Name: "t1"}, deps)
	require.NoError(t, err)
	require.Greater(t, runner.calls, firstCalls, "mutated variant must re-drive compile/test")
	require.Equal(t, 2, v.EvaluationCount())
}
