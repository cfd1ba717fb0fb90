// Package graph builds the dynamic execution graph (spec §4.4) from the
// processed runs produced by internal/trace, and prints the debug dumps
// the predicate engine and variant layer consult.
package graph

import "math/bits"

// BitSet is a compact, append-only set of small non-negative integers
// (run indices, per spec §4.4 "per-run observation sets ... retained as
// compact bitsets keyed by run-id"). The zero value is an empty set.
type BitSet struct {
	words []uint64
}

func (b *BitSet) Set(i int) {
	word, bit := i/64, uint(i%64)
	for len(b.words) <= word {
		b.words = append(b.words, 0)
	}
	b.words[word] |= 1 << bit
}

func (b *BitSet) Has(i int) bool {
	word, bit := i/64, uint(i%64)
	if word >= len(b.words) {
		return false
	}
	return b.words[word]&(1<<bit) != 0
}

// Count returns the number of set bits.
func (b *BitSet) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Union returns a new BitSet containing the bits of b and other.
func (b *BitSet) Union(other *BitSet) *BitSet {
	out := &BitSet{}
	n := len(b.words)
	if len(other.words) > n {
		n = len(other.words)
	}
	out.words = make([]uint64, n)
	for i := range out.words {
		var w1, w2 uint64
		if i < len(b.words) {
			w1 = b.words[i]
		}
		if i < len(other.words) {
			w2 = other.words[i]
		}
		out.words[i] = w1 | w2
	}
	return out
}

// Equal reports whether b and other have the same set bits, ignoring
// any trailing all-zero words go-cmp would otherwise treat as a
// structural difference.
func (b *BitSet) Equal(other *BitSet) bool {
	n := len(b.words)
	if len(other.words) > n {
		n = len(other.words)
	}
	for i := 0; i < n; i++ {
		var w1, w2 uint64
		if i < len(b.words) {
			w1 = b.words[i]
		}
		if i < len(other.words) {
			w2 = other.words[i]
		}
		if w1 != w2 {
			return false
		}
	}
	return true
}

// Intersect returns a new BitSet containing bits set in both b and
// other.
func (b *BitSet) Intersect(other *BitSet) *BitSet {
	out := &BitSet{}
	n := len(b.words)
	if len(other.words) < n {
		n = len(other.words)
	}
	out.words = make([]uint64, n)
	for i := 0; i < n; i++ {
		out.words[i] = b.words[i] & other.words[i]
	}
	return out
}
