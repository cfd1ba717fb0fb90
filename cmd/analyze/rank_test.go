package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/predicate"
)

func TestSentinelForFailed(t *testing.T) {
	p, err := sentinelFor("failed")
	require.NoError(t, err)
	require.IsType(t, predicate.RunFailed{}, p)
}

func TestSentinelForSucceeded(t *testing.T) {
	p, err := sentinelFor("succeeded")
	require.NoError(t, err)
	require.IsType(t, predicate.RunSucceeded{}, p)
}

func TestSentinelForRejectsUnknownTarget(t *testing.T) {
	_, err := sentinelFor("bogus")
	require.Error(t, err)
}
