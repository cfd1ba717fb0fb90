package graph

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/trace"
)

func runFixture(id string, passed bool, sites []int) *trace.ProcessedRun {
	p := &trace.ProcessedRun{RunID: id, Passed: passed}
	var prev *int
	for _, s := range sites {
		site := s
		p.OtherSites = append(p.OtherSites, trace.Aggregated{
			Visit: trace.SiteVisit{Site: site},
			Count: 1,
		})
		if prev != nil {
			p.Transitions = append(p.Transitions, trace.Transition{From: *prev, To: site})
		}
		prev = &site
	}
	return p
}

func TestBuildGraphCountsRunsNotOccurrences(t *testing.T) {
	runs := []*trace.ProcessedRun{
		runFixture("f1", false, []int{1, 1, 2}),
		runFixture("p1", true, []int{1}),
	}
	g := Build(runs)

	node := g.Nodes[StateKey{Site: 1, State: ""}]
	require.NotNil(t, node)
	require.Equal(t, 1, node.VisitsFailed)
	require.Equal(t, 1, node.VisitsPassed)
}

func TestBuildGraphIsDeterministic(t *testing.T) {
	runs := []*trace.ProcessedRun{
		{RunID: "r1", Passed: false, Transitions: []trace.Transition{{From: 1, To: 2}}},
		{RunID: "r2", Passed: true, Transitions: []trace.Transition{{From: 1, To: 2}}},
	}
	g1 := Build(runs)
	g2 := Build(runs)
	if diff := cmp.Diff(g1, g2); diff != "" {
		t.Fatalf("Build is not deterministic (-g1 +g2):\n%s", diff)
	}
}

func TestPrintGraphDoesNotPanicOnEmptyGraph(t *testing.T) {
	g := Build(nil)
	var buf bytes.Buffer
	require.NotPanics(t, func() { PrintGraph(&buf, g) })
}

func TestBitSetUnionAndIntersect(t *testing.T) {
	a := &BitSet{}
	a.Set(1)
	a.Set(3)
	b := &BitSet{}
	b.Set(3)
	b.Set(5)

	u := a.Union(b)
	require.True(t, u.Has(1))
	require.True(t, u.Has(3))
	require.True(t, u.Has(5))
	require.Equal(t, 3, u.Count())

	inter := a.Intersect(b)
	require.True(t, inter.Has(3))
	require.False(t, inter.Has(1))
	require.Equal(t, 1, inter.Count())
}

func TestRunIndexAssignsDenseIndices(t *testing.T) {
	ri := NewRunIndex()
	i0 := ri.Index("a", false)
	i1 := ri.Index("b", true)
	i0Again := ri.Index("a", false)
	require.Equal(t, 0, i0)
	require.Equal(t, 1, i1)
	require.Equal(t, i0, i0Again)
	require.Equal(t, 1, ri.TotalFailing())
}
