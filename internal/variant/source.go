package variant

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
)

func init() {
	gob.Register(cast.Instr{})
	gob.Register(cast.Return{})
	gob.Register(cast.If{})
	gob.Register(cast.Loop{})
	gob.Register(cast.Goto{})
	gob.Register(cast.Break{})
	gob.Register(cast.Continue{})
	gob.Register(cast.Switch{})
	gob.Register(cast.Block{})
	gob.Register(cast.TryFinally{})
	gob.Register(cast.TryExcept{})
}

// encodeSource serializes v's current atom sequence to bytes. A real
// deployment would hand the atoms to the external C pretty-printer
// named in spec §1's Non-goals and write its text output; this core
// has no such printer, so it persists the atom sequence itself with
// the same encoding/gob mechanism the coverage instrumenter's own
// artifacts use (internal/instrument/serialize.go) — the public
// from_source/output_source contract (load/store the underlying
// program, invalidate on mutation, digest what was written) is
// unaffected by which byte representation "the program" is.
func encodeSource(atoms []Atom) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(atoms); err != nil {
		return nil, fmt.Errorf("variant: encoding source: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeSource(data []byte) ([]Atom, error) {
	var atoms []Atom
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&atoms); err != nil {
		return nil, fmt.Errorf("variant: decoding source: %w", err)
	}
	return atoms, nil
}

// FromSource loads a variant's atom sequence from path.
func FromSource(path string, bank CodeBank) (*Variant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("variant: reading source %s: %w", path, err)
	}
	atoms, err := decodeSource(data)
	if err != nil {
		return nil, err
	}
	return New(atoms, bank), nil
}

// OutputSource writes v's current atom sequence to path and refreshes
// the source_snapshot cache slot.
func (v *Variant) OutputSource(path string) (SourceSnapshot, error) {
	data, err := encodeSource(v.Atoms)
	if err != nil {
		return SourceSnapshot{}, err
	}
	snap, err := writeSnapshot(path, data)
	if err != nil {
		return SourceSnapshot{}, err
	}
	v.snapshot = &snap
	return snap, nil
}

// EnsureSnapshot returns the current source_snapshot cache slot,
// writing it via OutputSource only when no snapshot is held (never
// written, or dropped by a mutation since the last write) — the
// source-side counterpart to EnsureCompiled
// (spec §4.6 resolution step (ii)).
func (v *Variant) EnsureSnapshot(path string) (SourceSnapshot, error) {
	if snap, ok := v.Snapshot(); ok {
		return snap, nil
	}
	return v.OutputSource(path)
}
