package variant

import (
	"context"

	"github.com/hashicorp/go-multierror"
)

// SanityCheck compiles v and requires every positive test to pass and
// every negative test to fail (spec §4.6: "execute all positive tests
// (must pass) and negative tests (must fail); on violation raise
// unless --allow-sanity-fail"). All violating test names are
// aggregated into the returned error rather than stopping at the
// first one, mirroring how trace ingest surfaces per-record warnings.
func (v *Variant) SanityCheck(ctx context.Context, positive, negative []string, deps TestCaseDeps, allowFail bool) error {
	var result *multierror.Error

	for _, name := range positive {
		passed, _, err := v.TestCase(ctx, Test{Name: name}, deps)
		if err != nil {
			return err
		}
		if !passed {
			result = multierror.Append(result, &sanityViolation{test: name, wantPass: true})
		}
	}
	for _, name := range negative {
		passed, _, err := v.TestCase(ctx, Test{Name: name}, deps)
		if err != nil {
			return err
		}
		if passed {
			result = multierror.Append(result, &sanityViolation{test: name, wantPass: false})
		}
	}

	if result == nil || allowFail {
		return nil
	}
	return result.ErrorOrNil()
}

type sanityViolation struct {
	test     string
	wantPass bool
}

func (e *sanityViolation) Error() string {
	if e.wantPass {
		return "sanity check: positive test " + e.test + " failed"
	}
	return "sanity check: negative test " + e.test + " passed"
}
