package logging

import (
	"os"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToInfoLevel(t *testing.T) {
	os.Unsetenv("GENPROG_LOG_LEVEL")
	l := New("instrument")
	require.Equal(t, hclog.Info, l.GetLevel())
	require.Equal(t, "instrument", l.Name())
}

func TestNewHonorsLogLevelEnvVar(t *testing.T) {
	os.Setenv("GENPROG_LOG_LEVEL", "debug")
	defer os.Unsetenv("GENPROG_LOG_LEVEL")
	l := New("analyze")
	require.Equal(t, hclog.Debug, l.GetLevel())
}
