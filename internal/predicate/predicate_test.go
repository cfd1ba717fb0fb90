package predicate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/graph"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/trace"
)

// scenario6Graph builds the fixture from spec §8 scenario 6: a predicate
// true on all 2 failing runs and 0 passing runs, where the site is
// reached on all 2 failing runs and 1 passing run.
func scenario6Graph() *graph.Graph {
	runs := []*trace.ProcessedRun{
		{RunID: "f1", Passed: false, OtherSites: []trace.Aggregated{
			{Visit: trace.SiteVisit{Site: 1, Info: []string{"true"}}, Count: 1},
		}},
		{RunID: "f2", Passed: false, OtherSites: []trace.Aggregated{
			{Visit: trace.SiteVisit{Site: 1, Info: []string{"true"}}, Count: 1},
		}},
		{RunID: "p1", Passed: true, OtherSites: []trace.Aggregated{
			{Visit: trace.SiteVisit{Site: 1, Info: []string{"false"}}, Count: 1},
		}},
	}
	return graph.Build(runs)
}

func TestRankingConvention(t *testing.T) {
	g := scenario6Graph()
	target, err := NewSentinelTarget(g.Runs, RunFailed{})
	require.NoError(t, err)

	records := Rank(g, target)
	require.NotEmpty(t, records)

	want := StateEquals{State: "true"}.Print()
	var found *RankingRecord
	for i := range records {
		if records[i].Predicate.Print() == want {
			found = &records[i]
		}
	}
	require.NotNil(t, found)
	require.InDelta(t, 1.0, found.FailureP, 1e-9)
	require.InDelta(t, 2.0/3.0, found.Context, 1e-9)
	require.InDelta(t, 1.0/3.0, found.Increase, 1e-9)
	require.Greater(t, found.Importance, 0.0)
}

func TestZeroDivisionConventions(t *testing.T) {
	r := computeRecord(StateEquals{State: "x"}, 1, 0, 0, 0, 0, 0)
	require.Equal(t, 0.0, r.FailureP)
	require.Equal(t, 0.0, r.Context)
	require.Equal(t, 0.0, r.Importance)
}

func TestImportanceZeroOnNonPositiveComponents(t *testing.T) {
	// increase <= 0: failure_P equals context.
	r := computeRecord(StateEquals{State: "x"}, 1, 1, 1, 2, 2, 5)
	require.LessOrEqual(t, r.Increase, 0.0)
	require.Equal(t, 0.0, r.Importance)
}

func TestRankIsDeterministicAndSorted(t *testing.T) {
	g := scenario6Graph()
	target, err := NewSentinelTarget(g.Runs, RunFailed{})
	require.NoError(t, err)

	r1 := Rank(g, target)
	r2 := Rank(g, target)
	require.Equal(t, len(r1), len(r2))
	for i := range r1 {
		require.Equal(t, r1[i].Predicate.Print(), r2[i].Predicate.Print())
	}
	for i := 1; i < len(r1); i++ {
		require.False(t, r1[i].Importance > r1[i-1].Importance)
	}
}

func TestPropagateIsMonotone(t *testing.T) {
	g := scenario6Graph()
	target, err := NewSentinelTarget(g.Runs, RunFailed{})
	require.NoError(t, err)
	before := target.TotalMarked()

	target.Propagate(g, 1, StateEquals{State: "false"})
	require.GreaterOrEqual(t, target.TotalMarked(), before)

	marked := target.Marked
	target.Propagate(g, 1, StateEquals{State: "false"})
	require.Equal(t, marked.Count(), target.Marked.Count())
}

func TestSentinelTargetRejectsUnknownPredicate(t *testing.T) {
	g := scenario6Graph()
	_, err := NewSentinelTarget(g.Runs, StateEquals{State: "x"})
	require.Error(t, err)
}

func TestLogConventionMatchesSpec(t *testing.T) {
	require.Equal(t, 0.0, math.Log(0+1))
}
