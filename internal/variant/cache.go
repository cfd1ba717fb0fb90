package variant

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"go.etcd.io/bbolt"
)

// digest hashes raw source bytes. crypto/sha256 is used directly here
// rather than a reflection-based value hasher (copystructure's sibling
// hashstructure, say): those hash Go values, and this needs to hash
// file content exactly as an external compiler will see it.
func digest(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// TestResult is the cached outcome of one (digest, test) evaluation.
type TestResult struct {
	Passed  bool
	Fitness []float64
}

// TestCache is the process-wide persistent test cache of spec §4.6:
// `digest -> test -> (passed, fitness)`, stored in a single bbolt file
// under a version-tagged top-level bucket.
type TestCache struct {
	db      *bbolt.DB
	version string
}

var rootBucket = []byte("genprog_test_cache")

const versionKey = "__version__"

// OpenTestCache opens (or creates) the persistent cache at path. A
// version mismatch against an existing file discards its contents and
// starts fresh (spec §7: "for the test cache, discard and proceed";
// §9: "test_cache_version ... no migration path").
func OpenTestCache(path, version string) (*TestCache, error) {
	db, err := bbolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, fmt.Errorf("variant: opening test cache %s: %w", path, err)
	}
	tc := &TestCache{db: db, version: version}
	if err := tc.ensureVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return tc, nil
}

func (tc *TestCache) ensureVersion() error {
	return tc.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(rootBucket)
		if err != nil {
			return err
		}
		stored := b.Get([]byte(versionKey))
		if stored != nil && string(stored) == tc.version {
			return nil
		}
		// Version mismatch (or first-ever open): discard whatever was
		// there and start clean under the new version tag.
		if err := tx.DeleteBucket(rootBucket); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		b, err = tx.CreateBucket(rootBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(versionKey), []byte(tc.version))
	})
}

func (tc *TestCache) Close() error { return tc.db.Close() }

func cacheKey(dig, test string) []byte {
	return []byte(dig + "\x00" + test)
}

// Get looks up a cached (digest, test) evaluation.
func (tc *TestCache) Get(dig, test string) (TestResult, bool, error) {
	var result TestResult
	found := false
	err := tc.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(rootBucket)
		if b == nil {
			return nil
		}
		raw := b.Get(cacheKey(dig, test))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &result)
	})
	if err != nil {
		return TestResult{}, false, fmt.Errorf("variant: reading test cache: %w", err)
	}
	return result, found, nil
}

// Put stores a (digest, test) evaluation.
func (tc *TestCache) Put(dig, test string, result TestResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("variant: encoding test result: %w", err)
	}
	return tc.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(rootBucket)
		if err != nil {
			return err
		}
		return b.Put(cacheKey(dig, test), raw)
	})
}

// writeSnapshot writes source to path and returns the resulting
// snapshot. I/O failure here is fatal (spec §7).
func writeSnapshot(path string, source []byte) (SourceSnapshot, error) {
	if err := os.WriteFile(path, source, 0o644); err != nil {
		return SourceSnapshot{}, fmt.Errorf("variant: writing source snapshot %s: %w", path, err)
	}
	return SourceSnapshot{Filename: path, Digest: digest(source)}, nil
}
