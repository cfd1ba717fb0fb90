package variant

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
)

// WeightedSid is one entry of a weighted path (Glossary: "Weighted
// path ... ordered sequence of (sid, weight) pairs").
type WeightedSid struct {
	Sid    cast.Sid
	Weight float64
}

// FlattenPolicy names how duplicate sids in a weighted path are
// combined during post-processing (spec §4.6).
type FlattenPolicy int

const (
	FlattenSum FlattenPolicy = iota
	FlattenMin
	FlattenMax
)

// Scheme names one of the fault/fix localization strategies of spec
// §4.6.
type Scheme int

const (
	SchemeDefault Scheme = iota
	SchemePath
	SchemeUniform
	SchemeLine
	SchemeWeight
	SchemeOracle
)

// RunPath is one run's sequence of visited sids and its outcome, the
// input path localization operates on. It mirrors what a coverage
// trace file records: which statements executed, and whether the run
// that produced them failed.
type RunPath struct {
	Sids   []cast.Sid
	Failed bool
}

// WeightRecord is one `file,sid,weight` record consumed by the line
// and weight schemes. File is only meaningful for the line scheme's
// lookups through a LocationMap; the weight scheme ignores it. Weight
// is nil when the record omitted it, so a defaulting caller can tell
// "omitted" apart from an explicit weight of 0.
type WeightRecord struct {
	File   string
	Sid    cast.Sid
	Line   int
	Weight *float64
}

// LocalizationDeps bundles the scheme-specific inputs to
// ComputeLocalization. Only the fields a chosen scheme actually reads
// need to be populated.
type LocalizationDeps struct {
	Runs      []RunPath        // path
	Locations cast.LocationMap // line (sid -> source line, for resolving `file,line` records)
	Records   []WeightRecord   // line, weight
	Flatten   FlattenPolicy
}

// ComputeLocalization runs the given scheme over deps and stores the
// resulting fault/fix weighted paths on v (spec §4.6's
// compute_localization/get_fault_localization/get_fix_localization
// trio, collapsed into one call plus two accessors).
func (v *Variant) ComputeLocalization(scheme Scheme, deps LocalizationDeps) error {
	var fault, fix []WeightedSid
	var err error

	switch scheme {
	case SchemeDefault, SchemePath:
		fault, fix = pathLocalization(deps.Runs)
	case SchemeUniform:
		fault = uniformLocalization(v.Atoms)
		fix = uniformLocalization(v.Atoms)
	case SchemeLine:
		fault, err = lineLocalization(deps.Records, deps.Locations)
		fix = fault
	case SchemeWeight:
		fault = weightLocalization(deps.Records)
		fix = fault
	case SchemeOracle:
		// Reserved hook; the core is a no-op unless overridden.
	default:
		return fmt.Errorf("variant: unknown localization scheme %d", scheme)
	}
	if err != nil {
		return err
	}

	v.FaultWeights = flatten(fault, deps.Flatten)
	v.FixWeights = flatten(fix, deps.Flatten)
	reverseWeighted(v.FaultWeights)
	reverseWeighted(v.FixWeights)
	return nil
}

// GetFaultLocalization returns the weighted fault path last computed.
func (v *Variant) GetFaultLocalization() []WeightedSid { return v.FaultWeights }

// GetFixLocalization returns the weighted fix path last computed.
func (v *Variant) GetFixLocalization() []WeightedSid { return v.FixWeights }

// pathLocalization implements spec §4.6's path scheme: a sid appearing
// only in negative (failing) runs gets fault weight 1.0; a sid
// appearing in both positive and negative runs gets fault weight 0.1
// and, since it is also on the positive path, fix weight 0.5; a sid on
// the positive path only gets fix weight 0.5 and fault weight 0. Fix
// weight 0.5 applies to every sid on any positive run, independent of
// its fault weight. Matches §8 scenario 4 exactly.
func pathLocalization(runs []RunPath) (fault, fix []WeightedSid) {
	neg := make(map[cast.Sid]bool)
	pos := make(map[cast.Sid]bool)
	for _, r := range runs {
		dst := pos
		if r.Failed {
			dst = neg
		}
		for _, sid := range r.Sids {
			dst[sid] = true
		}
	}

	seen := make(map[cast.Sid]bool)
	var order []cast.Sid
	for _, r := range runs {
		for _, sid := range r.Sids {
			if !seen[sid] {
				seen[sid] = true
				order = append(order, sid)
			}
		}
	}

	for _, sid := range order {
		inNeg, inPos := neg[sid], pos[sid]
		switch {
		case inNeg && inPos:
			fault = append(fault, WeightedSid{Sid: sid, Weight: 0.1})
		case inNeg:
			fault = append(fault, WeightedSid{Sid: sid, Weight: 1.0})
		case inPos:
			fault = append(fault, WeightedSid{Sid: sid, Weight: 0})
		}
		if inPos {
			fix = append(fix, WeightedSid{Sid: sid, Weight: 0.5})
		}
	}
	return fault, fix
}

// uniformLocalization assigns every atom a weight of 1.0.
func uniformLocalization(atoms []Atom) []WeightedSid {
	out := make([]WeightedSid, len(atoms))
	for i, a := range atoms {
		out[i] = WeightedSid{Sid: a.OriginSid, Weight: 1.0}
	}
	return out
}

// weightLocalization reads `file,sid,weight` records directly: weight
// defaults to 1.0 when omitted, file is ignored (spec §4.6 "weight").
func weightLocalization(records []WeightRecord) []WeightedSid {
	out := make([]WeightedSid, 0, len(records))
	for _, r := range records {
		out = append(out, WeightedSid{Sid: r.Sid, Weight: weightOrDefault(r.Weight)})
	}
	return out
}

// weightOrDefault returns 1.0 for an omitted weight and the explicit
// value otherwise, so a record that genuinely specifies 0 is not
// silently promoted to 1.0.
func weightOrDefault(w *float64) float64 {
	if w == nil {
		return 1.0
	}
	return *w
}

// lineLocalization resolves each record's source line to a sid via
// locations before falling back to weightLocalization's defaulting
// (spec §4.6 "line ... resolves it to a sid via
// atom_id_of_source_line").
func lineLocalization(records []WeightRecord, locations cast.LocationMap) ([]WeightedSid, error) {
	out := make([]WeightedSid, 0, len(records))
	for _, r := range records {
		sid := r.Sid
		if r.Line != 0 {
			resolved, err := atomIDOfSourceLine(locations, r.File, r.Line)
			if err != nil {
				return nil, err
			}
			sid = resolved
		}
		out = append(out, WeightedSid{Sid: sid, Weight: weightOrDefault(r.Weight)})
	}
	return out, nil
}

// atomIDOfSourceLine resolves a (file, line) pair to the sid whose
// recorded position matches, using the instrumenter's --loc output
// (spec §4.6, §3 "Location map").
func atomIDOfSourceLine(locations cast.LocationMap, file string, line int) (cast.Sid, error) {
	for sid, pos := range locations {
		if pos.Line == line && (file == "" || pos.File == file) {
			return sid, nil
		}
	}
	return cast.NoSid, fmt.Errorf("variant: no atom at %s:%d", file, line)
}

// flatten combines duplicate sids in path under policy, preserving the
// order of first occurrence (spec §4.6 "optionally flatten duplicate
// sids ... under policy {sum, min, max}").
func flatten(path []WeightedSid, policy FlattenPolicy) []WeightedSid {
	if len(path) == 0 {
		return nil
	}
	index := make(map[cast.Sid]int)
	var out []WeightedSid
	for _, w := range path {
		if i, ok := index[w.Sid]; ok {
			switch policy {
			case FlattenMin:
				if w.Weight < out[i].Weight {
					out[i].Weight = w.Weight
				}
			case FlattenMax:
				if w.Weight > out[i].Weight {
					out[i].Weight = w.Weight
				}
			default:
				out[i].Weight += w.Weight
			}
			continue
		}
		index[w.Sid] = len(out)
		out = append(out, w)
	}
	return out
}

// reverseWeighted reverses path into source order in place (spec
// §4.6's final post-processing step).
func reverseWeighted(path []WeightedSid) {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
}

// ParseWeightRecords reads `file,sid,weight` lines (weight and file
// both optional) in the textual form the line/weight schemes consume.
func ParseWeightRecords(r io.Reader) ([]WeightRecord, error) {
	scanner := bufio.NewScanner(r)
	var records []WeightRecord
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			return nil, fmt.Errorf("variant: malformed weight record %q", line)
		}
		rec := WeightRecord{File: strings.TrimSpace(fields[0])}
		idField := strings.TrimSpace(fields[1])
		id, err := strconv.ParseUint(idField, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("variant: malformed sid/line %q: %w", idField, err)
		}
		// The same numeric field doubles as a sid (weight scheme) or a
		// source line (line scheme); lineLocalization only consults Line
		// when it is nonzero, so populating both is harmless.
		rec.Sid = cast.Sid(id)
		rec.Line = int(id)
		if len(fields) >= 3 {
			w, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("variant: malformed weight %q: %w", fields[2], err)
			}
			rec.Weight = &w
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
