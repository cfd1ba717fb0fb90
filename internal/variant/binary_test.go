package variant

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadBinaryRoundTrips(t *testing.T) {
	v := New(nil, nil)
	v.FaultWeights = []WeightedSid{{Sid: 1, Weight: 1.0}, {Sid: 2, Weight: 0.1}}
	v.FixWeights = []WeightedSid{{Sid: 3, Weight: 0.5}}

	path := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, v.SaveBinary(path))

	loaded := New(nil, nil)
	require.NoError(t, loaded.LoadBinary(path))
	require.Equal(t, v.FaultWeights, loaded.FaultWeights)
	require.Equal(t, v.FixWeights, loaded.FixWeights)
}

func TestLoadBinaryRejectsVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x47, 0x50, 0x52, 0x56, 0x00, 0x00, 0x00, 0x01}, 0o644))

	v := New(nil, nil)
	err := v.LoadBinary(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "version")
}

func TestLoadBinaryRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, os.WriteFile(path, []byte{0, 0, 0, 0, 0, 0, 0, 2}, 0o644))

	v := New(nil, nil)
	err := v.LoadBinary(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "magic")
}
