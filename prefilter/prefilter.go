// Package prefilter scans ahead in the haystack for the literal byte
// sequence a compiled pattern requires at the start of any match,
// letting the caller skip positions the DFA walk would reject on its
// first byte anyway. A prefilter hit is only a candidate: the DFA still
// verifies it (spec.md §4.5's matcher is the source of truth).
package prefilter

import (
	"github.com/coregx/ahocorasick"
	"github.com/coregx/rebyte/simd"
)

// Prefilter finds candidate start positions for a required literal.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start,
	// or -1 if none remains.
	Find(haystack []byte, start int) int

	// IsTrivial reports whether this prefilter matches everywhere (an
	// empty required literal), in which case callers should skip
	// straight to the DFA walk rather than pay the filtering overhead.
	IsTrivial() bool
}

// Build returns the most specific Prefilter for prefix: the trivial
// prefilter for an empty literal, a single-byte scanner for one byte, and
// an Aho-Corasick automaton holding prefix as its only pattern for longer
// literals (falling back to the trivial prefilter if that automaton fails
// to build).
func Build(prefix []byte) Prefilter {
	switch len(prefix) {
	case 0:
		return trivial{}
	case 1:
		return byteFilter{b: prefix[0]}
	default:
		builder := ahocorasick.NewBuilder()
		builder.AddPattern(prefix)
		automaton, err := builder.Build()
		if err != nil {
			return trivial{}
		}
		return acFilter{automaton: automaton}
	}
}

// trivial matches at every position; used when no literal could be
// extracted, so the caller falls back to running the DFA directly.
type trivial struct{}

func (trivial) Find(_ []byte, start int) int { return start }
func (trivial) IsTrivial() bool              { return true }

// byteFilter finds a single required byte via simd.Memchr.
type byteFilter struct{ b byte }

func (f byteFilter) Find(haystack []byte, start int) int {
	idx := simd.Memchr(haystack[start:], f.b)
	if idx < 0 {
		return -1
	}
	return start + idx
}

func (byteFilter) IsTrivial() bool { return false }

// acFilter finds a required multi-byte literal via an Aho-Corasick
// automaton built from that one pattern.
type acFilter struct{ automaton *ahocorasick.Automaton }

func (f acFilter) Find(haystack []byte, start int) int {
	m := f.automaton.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (acFilter) IsTrivial() bool { return false }
