package variant

import (
	"fmt"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
)

// CompileState is the three-way state of Variant.CompileResult (spec
// §4.6).
type CompileState int

const (
	NotCompiled CompileState = iota
	Failed
	Succeeded
)

// CompileResult is the second cache slot of spec §4.6.
type CompileResult struct {
	State CompileState
	Exe   string // valid only when State == Succeeded
}

// SourceSnapshot is the first cache slot of spec §4.6: the filename and
// content digest recorded the last time OutputSource ran.
type SourceSnapshot struct {
	Filename string
	Digest   string
}

// Variant is a program representation plus its mutation history and
// two invalidate-on-mutation cache slots (spec §3, §4.6). It shares no
// mutable state with any Variant produced by Copy.
type Variant struct {
	Atoms   []Atom
	Bank    CodeBank
	History []MutationRecord

	snapshot *SourceSnapshot
	compile  CompileResult

	FaultWeights []WeightedSid
	FixWeights   []WeightedSid

	evaluations int // unique (digest, test) evaluations, spec §4.6
}

// New builds a variant from the program's current atom sequence and
// the code bank mutations draw from.
func New(atoms []Atom, bank CodeBank) *Variant {
	return &Variant{Atoms: append([]Atom(nil), atoms...), Bank: bank}
}

// MaxAtom is the count of atoms, 1-indexed inclusive (spec §4.6).
func (v *Variant) MaxAtom() int { return len(v.Atoms) }

// Copy returns a structural copy sharing no mutable state with v
// (spec §4.6's copy() contract): history, caches, and atoms are all
// duplicated. The code bank is shared read-only, since it is never
// itself mutated.
func (v *Variant) Copy() (*Variant, error) {
	atoms := make([]Atom, len(v.Atoms))
	for i, a := range v.Atoms {
		cloned, err := cast.CloneStmt(cast.Stmt{Kind: a.Kind})
		if err != nil {
			return nil, fmt.Errorf("variant: copying atom %d: %w", i+1, err)
		}
		atoms[i] = Atom{OriginSid: a.OriginSid, Kind: cloned.Kind}
	}
	out := &Variant{
		Atoms:        atoms,
		Bank:         v.Bank,
		History:      append([]MutationRecord(nil), v.History...),
		FaultWeights: append([]WeightedSid(nil), v.FaultWeights...),
		FixWeights:   append([]WeightedSid(nil), v.FixWeights...),
	}
	if v.snapshot != nil {
		snap := *v.snapshot
		out.snapshot = &snap
	}
	out.compile = v.compile
	return out, nil
}

// invalidateCaches drops both cache slots — every mutation does this
// (spec §3's Variant invariant).
func (v *Variant) invalidateCaches() {
	v.snapshot = nil
	v.compile = CompileResult{State: NotCompiled}
}

// Snapshot reports the current source_snapshot cache slot, if any.
func (v *Variant) Snapshot() (SourceSnapshot, bool) {
	if v.snapshot == nil {
		return SourceSnapshot{}, false
	}
	return *v.snapshot, true
}

// CompileState reports the current compile_result cache slot.
func (v *Variant) CompileState() CompileResult { return v.compile }
