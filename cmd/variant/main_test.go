package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandDeclaresPersistentFlags(t *testing.T) {
	for _, name := range []string{"bank", "config"} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		require.NotNilf(t, flag, "persistent flag %q not registered", name)
	}
}

func TestRootCommandRegistersEverySubcommand(t *testing.T) {
	want := []string{"load", "sanity-check", "localize", "mutate"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, cmd.Name())
	}
}
