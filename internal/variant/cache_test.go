package variant

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTestCacheGetMissThenPutThenHit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.bolt")
	tc, err := OpenTestCache(path, "1")
	require.NoError(t, err)
	defer tc.Close()

	_, hit, err := tc.Get("digest1", "t1")
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, tc.Put("digest1", "t1", TestResult{Passed: true, Fitness: []float64{1.0}}))

	result, hit, err := tc.Get("digest1", "t1")
	require.NoError(t, err)
	require.True(t, hit)
	require.True(t, result.Passed)
	require.Equal(t, []float64{1.0}, result.Fitness)
}

func TestTestCacheVersionMismatchDiscardsContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.bolt")
	tc, err := OpenTestCache(path, "1")
	require.NoError(t, err)
	require.NoError(t, tc.Put("digest1", "t1", TestResult{Passed: true, Fitness: []float64{1.0}}))
	require.NoError(t, tc.Close())

	tc2, err := OpenTestCache(path, "2")
	require.NoError(t, err)
	defer tc2.Close()

	_, hit, err := tc2.Get("digest1", "t1")
	require.NoError(t, err)
	require.False(t, hit, "version mismatch must discard the previous cache contents")
}

func TestTestCacheSameVersionReopenPreservesContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.bolt")
	tc, err := OpenTestCache(path, "1")
	require.NoError(t, err)
	require.NoError(t, tc.Put("digest1", "t1", TestResult{Passed: true, Fitness: []float64{1.0}}))
	require.NoError(t, tc.Close())

	tc2, err := OpenTestCache(path, "1")
	require.NoError(t, err)
	defer tc2.Close()

	_, hit, err := tc2.Get("digest1", "t1")
	require.NoError(t, err)
	require.True(t, hit)
}

func TestDigestIsStableAndContentAddressed(t *testing.T) {
	require.Equal(t, digest([]byte("same")), digest([]byte("same")))
	require.NotEqual(t, digest([]byte("a")), digest([]byte("b")))
}
