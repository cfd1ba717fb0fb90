package graph

import (
	"sort"
	"strings"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/trace"
)

// StateKey identifies a state-node: a site plus the observed state
// vector collapsed to a single comparable string.
type StateKey struct {
	Site  int
	State string
}

func stateOf(info []string) string {
	return strings.Join(info, "\x1f")
}

// StateNode is one (site, state) node of the execution graph (spec
// §4.4). VisitsFailed/VisitsPassed count distinct *runs* on which this
// exact state was observed at this site, not raw occurrences within a
// run — the ranking formulas of §3 are run-counting statistics.
type StateNode struct {
	Key          StateKey
	VisitsFailed int
	VisitsPassed int
	Runs         *BitSet
}

// Edge is a directed transition observed between two sites.
type Edge struct {
	Transition trace.Transition
	Runs       *BitSet
}

// Graph is the dynamic execution graph built from a batch of processed
// runs: state-nodes, transition edges, and per-site reachability sets
// (the latter needed for the predicate engine's f_P_obs/s_P_obs, which
// are about the site being reached at all, not any particular state).
type Graph struct {
	Runs  *RunIndex
	Nodes map[StateKey]*StateNode
	Edges map[trace.Transition]*Edge
	Sites map[int]*BitSet // site -> runs on which the site was reached
}

// Build constructs a Graph from a batch of processed runs (spec §4.4).
// Trace -> graph determinism (§8): for a fixed input slice in a fixed
// order, Build always emits a structurally identical graph, since every
// map key is deterministic (site, state, transition) and the only
// order-sensitive data (RunIndex assignment) is driven by runs' input
// order, not iteration over a map.
func Build(runs []*trace.ProcessedRun) *Graph {
	g := &Graph{
		Runs:  NewRunIndex(),
		Nodes: make(map[StateKey]*StateNode),
		Edges: make(map[trace.Transition]*Edge),
		Sites: make(map[int]*BitSet),
	}
	for _, run := range runs {
		idx := g.Runs.Index(run.RunID, run.Passed)
		g.absorbOtherSites(run, idx)
		g.absorbTransitions(run, idx)
	}
	return g
}

func (g *Graph) absorbOtherSites(run *trace.ProcessedRun, idx int) {
	for _, a := range run.OtherSites {
		key := StateKey{Site: a.Visit.Site, State: stateOf(a.Visit.Info)}
		node, ok := g.Nodes[key]
		if !ok {
			node = &StateNode{Key: key, Runs: &BitSet{}}
			g.Nodes[key] = node
		}
		if !node.Runs.Has(idx) {
			node.Runs.Set(idx)
			if run.Passed {
				node.VisitsPassed++
			} else {
				node.VisitsFailed++
			}
		}

		siteRuns, ok := g.Sites[a.Visit.Site]
		if !ok {
			siteRuns = &BitSet{}
			g.Sites[a.Visit.Site] = siteRuns
		}
		siteRuns.Set(idx)
	}
}

func (g *Graph) absorbTransitions(run *trace.ProcessedRun, idx int) {
	for _, t := range run.Transitions {
		e, ok := g.Edges[t]
		if !ok {
			e = &Edge{Transition: t, Runs: &BitSet{}}
			g.Edges[t] = e
		}
		e.Runs.Set(idx)
	}
}

// StatesAt returns every state-node recorded for site, sorted by state
// text for deterministic iteration.
func (g *Graph) StatesAt(site int) []*StateNode {
	var out []*StateNode
	for key, node := range g.Nodes {
		if key.Site == site {
			out = append(out, node)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.State < out[j].Key.State })
	return out
}

// SiteNumbers returns every site number with at least one recorded node,
// sorted ascending.
func (g *Graph) SiteNumbers() []int {
	out := make([]int, 0, len(g.Sites))
	for s := range g.Sites {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}
