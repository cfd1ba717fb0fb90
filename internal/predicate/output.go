package predicate

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsonRecord is the wire shape of one ranking-record line in the
// --json output mode (SPEC_FULL.md §4 item 4): the analyzer's
// machine-readable sibling to PrintRanking's debug text.
type jsonRecord struct {
	Predicate  string  `json:"predicate"`
	Site       int     `json:"site"`
	FP         int     `json:"f_p"`
	SP         int     `json:"s_p"`
	FPObs      int     `json:"f_p_obs"`
	SPObs      int     `json:"s_p_obs"`
	FailureP   float64 `json:"failure_p"`
	Context    float64 `json:"context"`
	Increase   float64 `json:"increase"`
	Importance float64 `json:"importance"`
}

// WriteJSONLines renders records as newline-delimited JSON, one ranking
// record per line, preserving the order Rank already sorted them in.
func WriteJSONLines(w io.Writer, records []RankingRecord) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(toJSONRecord(r)); err != nil {
			return fmt.Errorf("predicate: encoding ranking record: %w", err)
		}
	}
	return nil
}

func toJSONRecord(r RankingRecord) jsonRecord {
	return jsonRecord{
		Predicate:  r.Predicate.Print(),
		Site:       r.Site,
		FP:         r.FP,
		SP:         r.SP,
		FPObs:      r.FPObs,
		SPObs:      r.SPObs,
		FailureP:   r.FailureP,
		Context:    r.Context,
		Increase:   r.Increase,
		Importance: r.Importance,
	}
}

// PrintRanking renders records as the human-readable debug dump
// (mirrors internal/graph.PrintGraph's style).
func PrintRanking(w io.Writer, records []RankingRecord) {
	for _, r := range records {
		fmt.Fprintf(w, "site=%d pred=%s importance=%.6f increase=%.6f failure_p=%.6f context=%.6f\n",
			r.Site, r.Predicate.Print(), r.Importance, r.Increase, r.FailureP, r.Context)
	}
}
