package predicate

import (
	"fmt"
	"math"
	"sort"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/graph"
)

// RankingRecord is the per-(predicate, site) statistics of spec §3.
type RankingRecord struct {
	Predicate Predicate
	Site      int

	FP, SP       int // runs (marked, unmarked) on which the predicate was observed true
	FPObs, SPObs int // runs (marked, unmarked) on which the site was reached at all

	FailureP   float64
	Context    float64
	Increase   float64
	Importance float64
}

// divOrZero implements the §3 convention "0/0 := 0" (and, by extension,
// any division by zero evaluates to 0, per §4.5's statistical
// conventions).
func divOrZero(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func computeRecord(pred Predicate, site int, fp, sp, fpObs, spObs, totalMarked int) RankingRecord {
	r := RankingRecord{
		Predicate: pred, Site: site,
		FP: fp, SP: sp, FPObs: fpObs, SPObs: spObs,
	}
	r.FailureP = divOrZero(fp, fp+sp)
	r.Context = divOrZero(fpObs, fpObs+spObs)
	r.Increase = r.FailureP - r.Context

	logFP := math.Log(float64(fp) + 1)
	logF := math.Log(float64(totalMarked) + 1)
	if r.Increase <= 0 || logF == 0 {
		r.Importance = 0
		return r
	}
	evidence := logFP / logF
	if evidence <= 0 {
		r.Importance = 0
		return r
	}
	r.Importance = 2 / (1/r.Increase + 1/evidence)
	return r
}

// Target is the boolean outcome candidate predicates are ranked
// against: initially a sentinel (RunFailed, RunSucceeded) or a user
// predicate anchored at a site, and monotonically extended by
// Propagate (spec §4.5: "propagation is monotone — marking is added,
// never removed").
type Target struct {
	Marked *graph.BitSet
	Runs   *graph.RunIndex
}

// NewSentinelTarget builds a Target from one of the two built-in
// sentinel predicates. Any other predicate is a programmer error here
// (spec §7: "unknown predicate kind ... fatal").
func NewSentinelTarget(runs *graph.RunIndex, sentinel Predicate) (*Target, error) {
	marked := &graph.BitSet{}
	switch sentinel.(type) {
	case RunFailed:
		for i := 0; i < runs.Len(); i++ {
			if !runs.Passed(i) {
				marked.Set(i)
			}
		}
	case RunSucceeded:
		for i := 0; i < runs.Len(); i++ {
			if runs.Passed(i) {
				marked.Set(i)
			}
		}
	default:
		return nil, fmt.Errorf("predicate: unknown target sentinel %T", sentinel)
	}
	return &Target{Marked: marked, Runs: runs}, nil
}

// NewSitePredicateTarget builds a Target from a user predicate
// evaluated against every state observed at site — the "or a user
// predicate" half of spec §4.5's target definition.
func NewSitePredicateTarget(g *graph.Graph, site int, pred Predicate, runs *graph.RunIndex) *Target {
	marked := &graph.BitSet{}
	for _, node := range g.StatesAt(site) {
		if pred.Evaluate(node.Key.State) {
			marked = marked.Union(node.Runs)
		}
	}
	return &Target{Marked: marked, Runs: runs}
}

// TotalMarked is F in the importance formula: the number of runs
// currently counted as the target outcome.
func (t *Target) TotalMarked() int { return t.Marked.Count() }

// Propagate marks every run on which pred evaluates true at site,
// adding those runs to the target's marked set without ever removing
// one (spec §4.5's monotonicity invariant).
func (t *Target) Propagate(g *graph.Graph, site int, pred Predicate) {
	for _, node := range g.StatesAt(site) {
		if pred.Evaluate(node.Key.State) {
			t.Marked = t.Marked.Union(node.Runs)
		}
	}
}

// Candidates enumerates one StateEquals predicate per distinct
// (site, state) node in g (spec §4.5: "enumerate candidate predicates
// drawn from the states attached to each site"). Scalar-pair sites
// never reach the graph's OtherSites-derived nodes (internal/trace
// routes them separately), so they are implicitly excluded here —
// the Open Question resolution of "no ranking contribution" for
// scalar pairs.
func Candidates(g *graph.Graph) map[int][]Predicate {
	out := make(map[int][]Predicate)
	for _, site := range g.SiteNumbers() {
		for _, node := range g.StatesAt(site) {
			out[site] = append(out[site], StateEquals{State: node.Key.State})
		}
	}
	return out
}

// Rank computes and sorts the ranking records for every candidate
// predicate in g against target: descending by importance, then by
// increase, then by lexicographic predicate text (spec §4.5).
func Rank(g *graph.Graph, target *Target) []RankingRecord {
	var out []RankingRecord
	total := target.TotalMarked()

	for _, site := range g.SiteNumbers() {
		siteRuns := g.Sites[site]
		fpObs := siteRuns.Intersect(target.Marked).Count()
		spObs := siteRuns.Count() - fpObs

		for _, node := range g.StatesAt(site) {
			fp := node.Runs.Intersect(target.Marked).Count()
			sp := node.Runs.Count() - fp
			pred := StateEquals{State: node.Key.State}
			out = append(out, computeRecord(pred, site, fp, sp, fpObs, spObs, total))
		}
	}

	sortRecords(out)
	return out
}

func sortRecords(records []RankingRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Importance != records[j].Importance {
			return records[i].Importance > records[j].Importance
		}
		if records[i].Increase != records[j].Increase {
			return records[i].Increase > records[j].Increase
		}
		return records[i].Predicate.Print() < records[j].Predicate.Print()
	})
}
