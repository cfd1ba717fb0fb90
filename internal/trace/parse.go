package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// parseRaw reads a run file into its ordered sequence of raw records.
// A malformed site-visit line is skipped, not fatal (spec §7: "the
// offending record is skipped; counters are unaffected; a warning is
// surfaced") — every skip is accumulated into the returned error so the
// caller can log it, but parsing continues to EOF regardless.
func parseRaw(r io.Reader) ([]rawRecord, error) {
	var records []rawRecord
	var warnings *multierror.Error

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "*") {
			records = append(records, rawRecord{header: true, text: line})
			continue
		}
		visit, err := parseSiteVisit(line)
		if err != nil {
			warnings = multierror.Append(warnings, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		records = append(records, rawRecord{visit: visit})
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("trace: reading run file: %w", err)
	}
	return records, warnings.ErrorOrNil()
}

func parseSiteVisit(line string) (SiteVisit, error) {
	fields := strings.Split(line, ",")
	site, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return SiteVisit{}, fmt.Errorf("trace: malformed site-visit record %q: %w", line, err)
	}
	info := make([]string, 0, len(fields)-1)
	for _, f := range fields[1:] {
		info = append(info, strings.TrimSpace(f))
	}
	return SiteVisit{Site: site, Info: info}, nil
}
