// serialize.go implements pass 3 of the coverage instrumenter: persisting
// the numbered-but-not-instrumented AST to a binary artifact, and the
// companion `.ht` (id -> statement kind) and `_loc.ht` (id -> location)
// artifacts named in spec §6. Every artifact carries an explicit
// magic+version header (Design Notes §9: "replace opaque binary
// serialization with a defined on-disk layout ... reject on version
// mismatch"); the payload itself is encoding/gob, since the shape being
// persisted (a small Go-only id-keyed map, or a tree of Go structs) has
// no ecosystem schema-serialization library in the retrieval pack that
// fits it better.
package instrument

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"sort"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
)

const (
	astMagic   uint32 = 0x47505331 // "GPS1"
	astVersion uint32 = 1

	htMagic   uint32 = 0x47504854 // "GPHT"
	htVersion uint32 = 1

	locMagic   uint32 = 0x47504C43 // "GPLC"
	locVersion uint32 = 1
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
	gob.Register(cast.VarDecl{})
	gob.Register(cast.FuncDecl{})
}

func writeHeader(w io.Writer, magic, version uint32) error {
	if err := binary.Write(w, binary.BigEndian, magic); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, version)
}

func readHeader(r io.Reader, wantMagic, wantVersion uint32) error {
	var magic, version uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return fmt.Errorf("instrument: reading artifact header: %w", err)
	}
	if magic != wantMagic {
		return fmt.Errorf("instrument: bad artifact magic %#x, want %#x", magic, wantMagic)
	}
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return fmt.Errorf("instrument: reading artifact version: %w", err)
	}
	if version != wantVersion {
		return fmt.Errorf("instrument: artifact version %d, want %d", version, wantVersion)
	}
	return nil
}

// WriteAST persists the numbered-but-not-instrumented translation unit
// to w (the `<src>.ast` artifact).
func WriteAST(w io.Writer, tu cast.TranslationUnit) error {
	if err := writeHeader(w, astMagic, astVersion); err != nil {
		return err
	}
	return gob.NewEncoder(w).Encode(tu)
}

// ReadAST loads a translation unit previously written by WriteAST.
// Version mismatch is fatal, per spec §7.
func ReadAST(r io.Reader) (cast.TranslationUnit, error) {
	var tu cast.TranslationUnit
	if err := readHeader(r, astMagic, astVersion); err != nil {
		return tu, err
	}
	if err := gob.NewDecoder(r).Decode(&tu); err != nil {
		return tu, fmt.Errorf("instrument: decoding AST artifact: %w", err)
	}
	return tu, nil
}

// htEntry is one (sid, kind) pair in the `.ht` artifact, kept in a
// sorted slice (not a gob map) so the serialized byte stream is
// deterministic across runs with identical input — see SPEC_FULL.md §5
// for why field order inside the entry is not itself load-bearing.
type htEntry struct {
	Sid  cast.Sid
	Kind cast.StmtKind
}

type htFile struct {
	NextSid cast.Sid
	Entries []htEntry
}

// WriteHt persists (next_sid, sid -> StatementKind) to w — the `<src>.ht`
// artifact of spec §6.
func WriteHt(w io.Writer, counter *cast.Counter, smap *cast.StatementMap) error {
	sids := smap.Sids()
	file := htFile{NextSid: counter.Peek(), Entries: make([]htEntry, len(sids))}
	for i, s := range sids {
		kind, _ := smap.Get(s)
		file.Entries[i] = htEntry{Sid: s, Kind: kind}
	}
	if err := writeHeader(w, htMagic, htVersion); err != nil {
		return err
	}
	return gob.NewEncoder(w).Encode(file)
}

// ReadHt loads a `.ht` artifact back into a fresh Counter and
// StatementMap.
func ReadHt(r io.Reader) (*cast.Counter, *cast.StatementMap, error) {
	if err := readHeader(r, htMagic, htVersion); err != nil {
		return nil, nil, err
	}
	var file htFile
	if err := gob.NewDecoder(r).Decode(&file); err != nil {
		return nil, nil, fmt.Errorf("instrument: decoding ht artifact: %w", err)
	}
	sort.Slice(file.Entries, func(i, j int) bool { return file.Entries[i].Sid < file.Entries[j].Sid })

	smap := cast.NewStatementMap()
	for _, e := range file.Entries {
		smap.Install(e.Sid, e.Kind)
	}
	counter := cast.NewCounter()
	for counter.Peek() < file.NextSid {
		counter.Next()
	}
	return counter, smap, nil
}

// WriteLocMap persists sid -> (file, line, byte) to w — the
// `<src>_loc.ht` artifact, produced only when --loc is requested.
func WriteLocMap(w io.Writer, lm cast.LocationMap) error {
	sids := make([]cast.Sid, 0, len(lm))
	for s := range lm {
		sids = append(sids, s)
	}
	sort.Slice(sids, func(i, j int) bool { return sids[i] < sids[j] })

	type entry struct {
		Sid cast.Sid
		Pos cast.Pos
	}
	entries := make([]entry, len(sids))
	for i, s := range sids {
		entries[i] = entry{Sid: s, Pos: lm[s]}
	}
	if err := writeHeader(w, locMagic, locVersion); err != nil {
		return err
	}
	return gob.NewEncoder(w).Encode(entries)
}

// ReadLocMap loads a `_loc.ht` artifact.
func ReadLocMap(r io.Reader) (cast.LocationMap, error) {
	if err := readHeader(r, locMagic, locVersion); err != nil {
		return nil, err
	}
	type entry struct {
		Sid cast.Sid
		Pos cast.Pos
	}
	var entries []entry
	if err := gob.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("instrument: decoding loc map artifact: %w", err)
	}
	lm := cast.NewLocationMap()
	for _, e := range entries {
		lm[e.Sid] = e.Pos
	}
	return lm, nil
}

// RoundTripKind gob round-trips a single StmtKind value — used by tests
// asserting the "map round-trip" invariant of spec §8 (a statement kind
// pulled from the map parses/pretty-prints/re-parses to a structurally
// identical tree; since this core has no C pretty-printer, the analogous
// check here is a serialize/deserialize round trip).
func RoundTripKind(k cast.StmtKind) (cast.StmtKind, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&k); err != nil {
		return nil, err
	}
	var out cast.StmtKind
	if err := gob.NewDecoder(&buf).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
