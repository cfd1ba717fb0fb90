// Package variant implements the representation layer that mediates
// between an external search driver and the underlying C program
// (spec §4.6): the atomic-unit model, compile/test caching keyed by
// content digest, sanity checks, and fault/fix localization.
package variant

import "github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"

// Atom is one mutable unit of a variant: exactly one C statement
// (Glossary: "Atom ... one C statement in this system"). OriginSid
// names the sid the atom's kind was copied from at instrumentation
// time — preserved through mutation so path-based localization
// (weights keyed by sid from coverage traces) can still be projected
// onto a mutated variant's current atom sequence.
type Atom struct {
	OriginSid cast.Sid
	Kind      cast.StmtKind
}

// CodeBank is the read-only pool of originally-numbered atoms that the
// Append and ReplaceSubatom mutations draw their source material from
// (Glossary: "Code bank"); Swap exchanges two of the variant's own
// atoms and does not consult it. It is never itself mutated by a Variant.
type CodeBank []Atom

// NewCodeBank builds a CodeBank from a frozen statement map, in
// sid-ascending order.
func NewCodeBank(smap *cast.StatementMap) CodeBank {
	sids := smap.Sids()
	bank := make(CodeBank, len(sids))
	for i, sid := range sids {
		kind, _ := smap.Get(sid)
		bank[i] = Atom{OriginSid: sid, Kind: kind}
	}
	return bank
}

// Get returns the atom contributed by sid, if present.
func (b CodeBank) Get(sid cast.Sid) (Atom, bool) {
	for _, a := range b {
		if a.OriginSid == sid {
			return a, true
		}
	}
	return Atom{}, false
}
