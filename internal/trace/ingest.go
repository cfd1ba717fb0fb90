package trace

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Ingest reads and processes one run file. A run-id is always freshly
// minted (rather than derived from path) so that re-ingesting the same
// trace file twice — e.g. once per generation of a search loop that
// reuses a scratch filename — never collides in the execution graph's
// per-run bitsets.
func Ingest(logger hclog.Logger, r io.Reader, entry RunEntry, classifier Classifier) (*ProcessedRun, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	raw, warnings := parseRaw(r)
	if warnings != nil {
		logger.Warn("trace parse warnings", "path", entry.Path, "error", warnings)
	}
	p := process(raw, classifier)
	p.RunID = uuid.NewString()
	p.Passed = entry.Passed
	logger.Debug("ingested run", "path", entry.Path, "run_id", p.RunID, "passed", p.Passed, "other_sites", len(p.OtherSites))
	return &p, nil
}

// IngestFile opens path and ingests it.
func IngestFile(logger hclog.Logger, entry RunEntry, classifier Classifier) (*ProcessedRun, error) {
	f, err := os.Open(entry.Path)
	if err != nil {
		return nil, fmt.Errorf("trace: opening run file %s: %w", entry.Path, err)
	}
	defer f.Close()
	return Ingest(logger, f, entry, classifier)
}

// IngestAll ingests every entry in a runs-listing, in order. An I/O
// failure on any one file is fatal (spec §7: "I/O failure ... fatal;
// surfaced with path"); per-record parse errors within a file are not.
func IngestAll(logger hclog.Logger, entries []RunEntry, classifier Classifier) ([]*ProcessedRun, error) {
	runs := make([]*ProcessedRun, 0, len(entries))
	for _, e := range entries {
		p, err := IngestFile(logger, e, classifier)
		if err != nil {
			return nil, err
		}
		runs = append(runs, p)
	}
	return runs, nil
}
