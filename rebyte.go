// Package rebyte compiles a byte-oriented regex pattern into a
// deterministic finite automaton and matches it against byte strings
// (spec.md §1). The pipeline is bytes -> Lexer -> Tokens -> NFA-uncooked
// -> NFA -> DFA -> Regex, each stage driven to completion before the next
// begins (spec.md §2).
package rebyte

import (
	"github.com/coregx/rebyte/config"
	"github.com/coregx/rebyte/dfa"
	"github.com/coregx/rebyte/lexer"
	"github.com/coregx/rebyte/literal"
	"github.com/coregx/rebyte/nfa"
	"github.com/coregx/rebyte/prefilter"
)

// Regex is the compiled artifact of Compile: an immutable DFA plus the
// prefilter derived from its required literals. It may be shared
// read-only across goroutines (spec.md §5).
type Regex struct {
	dfa       *dfa.DFA
	groups    uint32
	prefilter prefilter.Prefilter
}

// Compile lexes, builds, cooks, and determinizes pattern under cfg, built
// from opts via config.Build. It returns the first error kind raised by
// any stage (spec.md §7).
func Compile(pattern string, opts ...config.Option) (*Regex, error) {
	cfg := config.Build(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := lexer.New([]byte(pattern), cfg)
	uncooked, err := nfa.Compile(l)
	if err != nil {
		return nil, err
	}

	cooked := nfa.Cook(uncooked)
	d := dfa.Build(cooked)

	prefix := literal.RequiredPrefix(d)
	pf := prefilter.Build(prefix)

	return &Regex{dfa: d, groups: cooked.Groups, prefilter: pf}, nil
}

// Groups returns the number of capture groups the pattern defines,
// including the implicit group 0 (the whole match).
func (r *Regex) Groups() uint32 {
	return r.groups
}

// Match reports whether pattern matches anywhere in input.
func (r *Regex) Match(input []byte) bool {
	_, ok := r.find(input)
	return ok
}

// Find returns the [start, end) span of the leftmost-longest match, or
// false if input does not match anywhere.
func (r *Regex) Find(input []byte) (start, end int, ok bool) {
	m, ok := r.find(input)
	if !ok {
		return 0, 0, false
	}
	return m.Groups[0].Start, m.Groups[0].End, true
}

// FindSubmatchIndex returns one [start, end) span per capture group for
// the leftmost-longest match, group 0 first. A group that never
// participated in the match reports start == end == -1. Returns nil if
// input does not match anywhere.
func (r *Regex) FindSubmatchIndex(input []byte) []int {
	m, ok := r.find(input)
	if !ok {
		return nil
	}
	out := make([]int, 2*int(r.groups))
	for g := uint32(0); g < r.groups; g++ {
		if int(g) < len(m.Groups) && m.Matched[g] {
			out[2*g] = m.Groups[g].Start
			out[2*g+1] = m.Groups[g].End
		} else {
			out[2*g] = -1
			out[2*g+1] = -1
		}
	}
	return out
}

// find locates the leftmost-longest match, consulting the prefilter to
// skip ahead to plausible start positions before falling back to the DFA
// walk at each candidate (spec.md §4.5; the prefilter never changes the
// match result, only how quickly a non-match is discarded).
func (r *Regex) find(input []byte) (dfa.Match, bool) {
	if r.prefilter == nil || r.prefilter.IsTrivial() {
		return r.dfa.Find(input)
	}

	for pos := 0; pos <= len(input); {
		cand := r.prefilter.Find(input, pos)
		if cand < 0 {
			return dfa.Match{}, false
		}
		if m, ok := r.dfa.FindAt(input, cand); ok {
			return m, true
		}
		pos = cand + 1
	}
	return dfa.Match{}, false
}
