package graph

import (
	"fmt"
	"io"
	"sort"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
)

// PrintGraph emits a human-readable adjacency dump of g (spec §4.4
// debug output): one line per state-node with its visit counts, then
// one line per edge with the runs it fired on.
func PrintGraph(w io.Writer, g *Graph) {
	for _, site := range g.SiteNumbers() {
		for _, node := range g.StatesAt(site) {
			fmt.Fprintf(w, "site=%d state=%q failed=%d passed=%d\n",
				node.Key.Site, node.Key.State, node.VisitsFailed, node.VisitsPassed)
		}
	}
	edges := make([]*Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i].Transition, edges[j].Transition
		if a.From != b.From {
			return a.From < b.From
		}
		return a.To < b.To
	})
	for _, e := range edges {
		fmt.Fprintf(w, "edge %d -> %d runs=%d\n", e.Transition.From, e.Transition.To, e.Runs.Count())
	}
}

// PrintFaultLocalization emits one line per sid with its fault weight
// and, when baseline is non-nil, the intersection-baseline weight from
// a supplied good-path weighting (spec §4.4).
func PrintFaultLocalization(w io.Writer, fault map[cast.Sid]float64, baseline map[cast.Sid]float64) {
	sids := make([]cast.Sid, 0, len(fault))
	for s := range fault {
		sids = append(sids, s)
	}
	sort.Slice(sids, func(i, j int) bool { return sids[i] < sids[j] })
	for _, s := range sids {
		if baseline == nil {
			fmt.Fprintf(w, "%d %g\n", s, fault[s])
			continue
		}
		fmt.Fprintf(w, "%d %g %g\n", s, fault[s], baseline[s])
	}
}
