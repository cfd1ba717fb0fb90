package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandDeclaresExpectedFlags(t *testing.T) {
	for _, name := range []string{"calls", "call-target", "loc"} {
		flag := rootCmd.Flags().Lookup(name)
		require.NotNilf(t, flag, "flag %q not registered", name)
	}
}

func TestRootCommandRequiresExactlyOneArg(t *testing.T) {
	require.Error(t, rootCmd.Args(rootCmd, nil))
	require.Error(t, rootCmd.Args(rootCmd, []string{"a", "b"}))
	require.NoError(t, rootCmd.Args(rootCmd, []string{"a"}))
}
