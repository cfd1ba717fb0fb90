package variant

import (
	"fmt"
	"strings"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
)

// MutationKind names one of the four mutation operators of spec §4.6.
type MutationKind int

const (
	MutationDelete MutationKind = iota
	MutationAppend
	MutationSwap
	MutationReplaceSubatom
)

// MutationRecord is one entry in a Variant's history.
type MutationRecord struct {
	Kind    MutationKind
	A, B    int      // 1-indexed atom positions; B unused by Delete/Append's target
	Source  cast.Sid // code-bank sid, for Append/ReplaceSubatom
	SubText string   // substituted expression text, for ReplaceSubatom
}

func (v *Variant) checkAtom(a int) error {
	if a < 1 || a > len(v.Atoms) {
		return fmt.Errorf("variant: atom %d out of range [1, %d]", a, len(v.Atoms))
	}
	return nil
}

// Delete removes atom a (spec §4.6).
func (v *Variant) Delete(a int) error {
	if err := v.checkAtom(a); err != nil {
		return err
	}
	v.Atoms = append(v.Atoms[:a-1], v.Atoms[a:]...)
	v.History = append(v.History, MutationRecord{Kind: MutationDelete, A: a})
	v.invalidateCaches()
	return nil
}

// Append inserts a code-bank atom after position `after` (0 inserts at
// the head). The source atom is drawn from the code bank, not from
// v's own current atoms (spec §4.6: "decouples source space from
// target space").
func (v *Variant) Append(after int, sourceSid cast.Sid) error {
	if after < 0 || after > len(v.Atoms) {
		return fmt.Errorf("variant: append position %d out of range [0, %d]", after, len(v.Atoms))
	}
	atom, ok := v.Bank.Get(sourceSid)
	if !ok {
		return fmt.Errorf("variant: code bank has no sid %d", sourceSid)
	}
	kind, err := cast.DeepCopyKind(atom.Kind)
	if err != nil {
		return fmt.Errorf("variant: appending sid %d: %w", sourceSid, err)
	}
	inserted := Atom{OriginSid: atom.OriginSid, Kind: kind}

	v.Atoms = append(v.Atoms, Atom{})
	copy(v.Atoms[after+1:], v.Atoms[after:])
	v.Atoms[after] = inserted

	v.History = append(v.History, MutationRecord{Kind: MutationAppend, A: after, Source: sourceSid})
	v.invalidateCaches()
	return nil
}

// Swap exchanges the atoms at positions a and b.
func (v *Variant) Swap(a, b int) error {
	if err := v.checkAtom(a); err != nil {
		return err
	}
	if err := v.checkAtom(b); err != nil {
		return err
	}
	v.Atoms[a-1], v.Atoms[b-1] = v.Atoms[b-1], v.Atoms[a-1]
	v.History = append(v.History, MutationRecord{Kind: MutationSwap, A: a, B: b})
	v.invalidateCaches()
	return nil
}

// ReplaceSubatom replaces occurrences of sub within atom a's
// expression text with the text of the code-bank atom named by
// sourceSid. Since expression parsing is out of scope, this operates
// textually, the same granularity internal/instrument's call splitter
// uses for call detection.
func (v *Variant) ReplaceSubatom(a int, sub string, sourceSid cast.Sid) error {
	if err := v.checkAtom(a); err != nil {
		return err
	}
	replacement, ok := v.Bank.Get(sourceSid)
	if !ok {
		return fmt.Errorf("variant: code bank has no sid %d", sourceSid)
	}
	replacementText, err := exprTextOf(replacement.Kind)
	if err != nil {
		return fmt.Errorf("variant: replace_subatom source sid %d: %w", sourceSid, err)
	}

	instr, ok := v.Atoms[a-1].Kind.(cast.Instr)
	if !ok {
		return fmt.Errorf("variant: atom %d is not an instruction list, cannot replace subatom", a)
	}
	newInstrs := make([]cast.Expr, len(instr.Instrs))
	for i, e := range instr.Instrs {
		newInstrs[i] = cast.Expr{Text: strings.ReplaceAll(e.Text, sub, replacementText)}
	}
	v.Atoms[a-1].Kind = cast.Instr{Instrs: newInstrs}

	v.History = append(v.History, MutationRecord{Kind: MutationReplaceSubatom, A: a, Source: sourceSid, SubText: sub})
	v.invalidateCaches()
	return nil
}

func exprTextOf(k cast.StmtKind) (string, error) {
	instr, ok := k.(cast.Instr)
	if !ok || len(instr.Instrs) == 0 {
		return "", fmt.Errorf("code-bank atom is not a single-expression instruction")
	}
	return instr.Instrs[0].Text, nil
}
