package variant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
)

func instrAtom(sid cast.Sid, text string) Atom {
	return Atom{OriginSid: sid, Kind: cast.Instr{Instrs: []cast.Expr{{Text: text}}}}
}

func TestPathLocalizationMatchesScenario4(t *testing.T) {
	runs := []RunPath{
		{Sids: []cast.Sid{1, 2, 3}, Failed: true},
		{Sids: []cast.Sid{1, 2, 3}, Failed: true},
		{Sids: []cast.Sid{1, 4}, Failed: false},
	}
	v := New(nil, nil)
	require.NoError(t, v.ComputeLocalization(SchemePath, LocalizationDeps{Runs: runs}))

	fault := map[cast.Sid]float64{}
	for _, w := range v.GetFaultLocalization() {
		fault[w.Sid] = w.Weight
	}
	require.Equal(t, map[cast.Sid]float64{1: 0.1, 2: 1.0, 3: 1.0, 4: 0}, fault)

	fix := map[cast.Sid]float64{}
	for _, w := range v.GetFixLocalization() {
		fix[w.Sid] = w.Weight
	}
	require.Equal(t, map[cast.Sid]float64{1: 0.5, 4: 0.5}, fix)
}

func TestUniformLocalizationWeightsEveryAtomOne(t *testing.T) {
	v := New([]Atom{instrAtom(1, "a"), instrAtom(2, "b")}, nil)
	require.NoError(t, v.ComputeLocalization(SchemeUniform, LocalizationDeps{}))
	for _, w := range v.GetFaultLocalization() {
		require.Equal(t, 1.0, w.Weight)
	}
	require.Len(t, v.GetFaultLocalization(), 2)
}

func TestWeightLocalizationDefaultsMissingWeightToOne(t *testing.T) {
	v := New(nil, nil)
	records, err := ParseWeightRecords(strings.NewReader(",5,2.5\n,6\n"))
	require.NoError(t, err)
	require.NoError(t, v.ComputeLocalization(SchemeWeight, LocalizationDeps{Records: records}))

	got := map[cast.Sid]float64{}
	for _, w := range v.GetFaultLocalization() {
		got[w.Sid] = w.Weight
	}
	require.Equal(t, map[cast.Sid]float64{5: 2.5, 6: 1.0}, got)
}

func TestWeightLocalizationPreservesExplicitZero(t *testing.T) {
	v := New(nil, nil)
	records, err := ParseWeightRecords(strings.NewReader(",7,0\n"))
	require.NoError(t, err)
	require.NoError(t, v.ComputeLocalization(SchemeWeight, LocalizationDeps{Records: records}))
	require.Equal(t, []WeightedSid{{Sid: 7, Weight: 0}}, v.GetFaultLocalization())
}

func TestLineLocalizationResolvesThroughLocationMap(t *testing.T) {
	locations := cast.LocationMap{
		10: cast.Pos{File: "a.c", Line: 42},
		11: cast.Pos{File: "a.c", Line: 43},
	}
	records, err := ParseWeightRecords(strings.NewReader("a.c,43,3.0\n"))
	require.NoError(t, err)

	v := New(nil, nil)
	require.NoError(t, v.ComputeLocalization(SchemeLine, LocalizationDeps{Records: records, Locations: locations}))
	require.Equal(t, []WeightedSid{{Sid: 11, Weight: 3.0}}, v.GetFaultLocalization())
}

func TestLineLocalizationErrorsOnUnresolvedLine(t *testing.T) {
	v := New(nil, nil)
	records := []WeightRecord{{File: "a.c", Line: 99}}
	err := v.ComputeLocalization(SchemeLine, LocalizationDeps{Records: records})
	require.Error(t, err)
}

func TestFlattenPolicies(t *testing.T) {
	path := []WeightedSid{{Sid: 1, Weight: 1.0}, {Sid: 1, Weight: 2.0}, {Sid: 2, Weight: 5.0}}

	sum := flatten(path, FlattenSum)
	require.Equal(t, 3.0, valueOf(t, sum, 1))

	min := flatten(path, FlattenMin)
	require.Equal(t, 1.0, valueOf(t, min, 1))

	max := flatten(path, FlattenMax)
	require.Equal(t, 2.0, valueOf(t, max, 1))
}

func TestReverseWeightedReversesOrder(t *testing.T) {
	path := []WeightedSid{{Sid: 1}, {Sid: 2}, {Sid: 3}}
	reverseWeighted(path)
	require.Equal(t, []cast.Sid{3, 2, 1}, []cast.Sid{path[0].Sid, path[1].Sid, path[2].Sid})
}

func valueOf(t *testing.T, path []WeightedSid, sid cast.Sid) float64 {
	t.Helper()
	for _, w := range path {
		if w.Sid == sid {
			return w.Weight
		}
	}
	t.Fatalf("sid %d not found in %v", sid, path)
	return 0
}
