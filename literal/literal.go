// Package literal extracts a required literal prefix from a compiled DFA,
// for use as a prefilter (spec.md §1, "matching engine" — the DFA itself
// is definitive; this package only helps skip ahead faster).
package literal

import "github.com/coregx/rebyte/dfa"

// MaxPrefixLen bounds how long an extracted prefix can grow, so a pattern
// like "a{200}" doesn't produce an unreasonably large literal to scan for.
const MaxPrefixLen = 64

// RequiredPrefix walks d from its start state, following the unique
// forced transition out of each state for as long as exactly one byte
// leads anywhere. The walk stops at the first state with zero or more
// than one live transition, or once group 0 might already have closed,
// since after that point a match's next byte is no longer forced. The
// returned slice is empty if no byte is forced even at the start state.
func RequiredPrefix(d *dfa.DFA) []byte {
	var prefix []byte
	state := dfa.StartState

	for len(prefix) < MaxPrefixLen {
		if d.Accepts(state) {
			break
		}
		b, next, ok := soleTransition(d, state)
		if !ok {
			break
		}
		prefix = append(prefix, b)
		state = next
	}

	return prefix
}

// soleTransition reports the single byte and destination state that state
// transitions on, if and only if state has exactly one live transition.
func soleTransition(d *dfa.DFA, state dfa.StateID) (b byte, next dfa.StateID, ok bool) {
	trans := d.Transitions[state]
	found := false
	for c := 0; c < 256; c++ {
		if trans[c] == dfa.NoTransition {
			continue
		}
		if found {
			return 0, 0, false
		}
		b, next, found = byte(c), trans[c], true
	}
	return b, next, found
}
