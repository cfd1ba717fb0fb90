package variant

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type namedExitRunner struct {
	failOn map[string]bool
}

func (r *namedExitRunner) Run(ctx context.Context, dir, command string) (int, string, string, error) {
	if strings.Contains(command, "COMPILE") {
		return 0, "", "", nil
	}
	for name, fail := range r.failOn {
		if strings.Contains(command, name) && fail {
			return 1, "", "", nil
		}
	}
	return 0, "", "", nil
}

func TestSanityCheckPassesWhenExpectationsMet(t *testing.T) {
	runner := &namedExitRunner{failOn: map[string]bool{"neg1": true}}
	deps := newTestDeps(t, runner)

	v := New([]Atom{instrAtom(1, "a")}, nil)
	err := v.SanityCheck(context.Background(), []string{"pos1"}, []string{"neg1"}, deps, false)
	require.NoError(t, err)
}

func TestSanityCheckFailsOnViolationAndAggregatesNames(t *testing.T) {
	runner := &namedExitRunner{failOn: map[string]bool{"pos1": true}}
	deps := newTestDeps(t, runner)

	v := New([]Atom{instrAtom(1, "a")}, nil)
	err := v.SanityCheck(context.Background(), []string{"pos1"}, []string{"neg1"}, deps, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "pos1")
}

func TestSanityCheckAllowFailSuppressesError(t *testing.T) {
	runner := &namedExitRunner{failOn: map[string]bool{"pos1": true}}
	deps := newTestDeps(t, runner)

	v := New([]Atom{instrAtom(1, "a")}, nil)
	err := v.SanityCheck(context.Background(), []string{"pos1"}, []string{"neg1"}, deps, true)
	require.NoError(t, err)
}
