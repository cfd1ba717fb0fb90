package variant

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/harness"
)

func TestEnsureCompiledSucceeds(t *testing.T) {
	v := New([]Atom{instrAtom(1, "a")}, nil)
	snap := SourceSnapshot{Filename: "a.c", Digest: "x"}
	v.snapshot = &snap

	runner := &scriptedRunner{compileExit: 0}
	tpl := harness.CompileTemplate{Command: "COMPILE", ExeName: "a.out"}
	result, err := v.EnsureCompiled(context.Background(), runner, tpl, t.TempDir())
	require.NoError(t, err)
	require.Equal(t, Succeeded, result.State)
	require.Equal(t, "a.out", result.Exe)
}

func TestEnsureCompiledRecordsFailureWithoutError(t *testing.T) {
	v := New([]Atom{instrAtom(1, "a")}, nil)
	snap := SourceSnapshot{Filename: "a.c", Digest: "x"}
	v.snapshot = &snap

	runner := &scriptedRunner{compileExit: 1}
	tpl := harness.CompileTemplate{Command: "COMPILE", ExeName: "a.out"}
	result, err := v.EnsureCompiled(context.Background(), runner, tpl, t.TempDir())
	require.NoError(t, err)
	require.Equal(t, Failed, result.State)
}

func TestEnsureCompiledIsIdempotent(t *testing.T) {
	v := New([]Atom{instrAtom(1, "a")}, nil)
	snap := SourceSnapshot{Filename: "a.c", Digest: "x"}
	v.snapshot = &snap

	runner := &scriptedRunner{compileExit: 0}
	tpl := harness.CompileTemplate{Command: "COMPILE", ExeName: "a.out"}
	_, err := v.EnsureCompiled(context.Background(), runner, tpl, t.TempDir())
	require.NoError(t, err)
	calls := runner.calls

	_, err = v.EnsureCompiled(context.Background(), runner, tpl, t.TempDir())
	require.NoError(t, err)
	require.Equal(t, calls, runner.calls, "already-compiled variant must not re-invoke the compiler")
}

func TestEnsureCompiledRequiresSnapshot(t *testing.T) {
	v := New([]Atom{instrAtom(1, "a")}, nil)
	runner := &scriptedRunner{compileExit: 0}
	tpl := harness.CompileTemplate{Command: "COMPILE", ExeName: filepath.Join(t.TempDir(), "a.out")}
	_, err := v.EnsureCompiled(context.Background(), runner, tpl, t.TempDir())
	require.Error(t, err)
}
