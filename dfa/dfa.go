// Package dfa subset-constructs a deterministic automaton from a cooked
// nfa.NFA (spec.md §4.5) and walks it against input bytes. Construction is
// eager and total: given a well-formed NFA it always terminates with a
// finite DFA, never an error.
package dfa

import (
	"sort"

	"github.com/coregx/rebyte/internal/sparse"
	"github.com/coregx/rebyte/nfa"
)

// StateID indexes a State within a DFA's Transitions/Head/Tail arrays.
type StateID uint32

// StartState is always the DFA's entry state.
const StartState StateID = 0

// NoTransition marks a missing byte transition: the trap state.
const NoTransition StateID = 0xFFFFFFFF

// DFA is the compiled artifact of subset construction: three parallel
// arrays indexed by StateID (spec.md §6). State 0 is the start; there is
// no explicit accept flag, since acceptance is observed via group 0's tail
// in Head/Tail.
type DFA struct {
	Transitions [][256]StateID
	Head        []map[uint32]bool
	Tail        []map[uint32]bool
}

// nodeSet is a slice of nfa.Node forming one DFA state's identity. Two DFA
// states are the same iff their nodeSets are equal as sets (spec.md §4.5:
// "state identity uses set equality on the underlying NFA-node set").
type nodeSet []nfa.Node

// key returns a canonical, order-independent encoding of s, so that two
// nodeSets built by visiting the same members in different orders compare
// equal.
func (s nodeSet) key() string {
	sorted := make([]nfa.Node, len(s))
	copy(sorted, s)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	b := make([]byte, 0, len(sorted)*4)
	for _, n := range sorted {
		b = append(b, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
	}
	return string(b)
}

// Build runs subset construction over n, producing a DFA whose states are
// allocated in BFS order from the start set and whose transitions are
// computed by scanning the byte alphabet 0..255 in ascending order
// (spec.md §4.5, §5 — both required for deterministic state numbering).
func Build(n *nfa.NFA) *DFA {
	d := &DFA{}
	seen := make(map[string]StateID)
	var worklist []nodeSet

	alloc := func(set nodeSet) StateID {
		id := StateID(len(d.Transitions))
		trans := [256]StateID{}
		for i := range trans {
			trans[i] = NoTransition
		}
		head := make(map[uint32]bool)
		tail := make(map[uint32]bool)
		for _, node := range set {
			for g := range n.Head[node] {
				head[g] = true
			}
			for g := range n.Tail[node] {
				tail[g] = true
			}
		}
		d.Transitions = append(d.Transitions, trans)
		d.Head = append(d.Head, head)
		d.Tail = append(d.Tail, tail)
		seen[set.key()] = id
		worklist = append(worklist, set)
		return id
	}

	start := nodeSet{n.Begin}
	alloc(start)

	dedup := sparse.New(len(n.Edges))
	for i := 0; i < len(worklist); i++ {
		s := worklist[i]
		sid := StateID(i)

		for c := 0; c < 256; c++ {
			dedup.Clear()
			var target nodeSet
			for _, node := range s {
				for _, dst := range n.Edges[node][byte(c)] {
					if dedup.Insert(uint32(dst)) {
						target = append(target, dst)
					}
				}
			}
			if len(target) == 0 {
				continue
			}

			key := target.key()
			id, ok := seen[key]
			if !ok {
				id = alloc(target)
			}
			d.Transitions[sid][c] = id
		}
	}

	return d
}

// Step advances state on byte c, returning the next state and whether a
// transition existed. A false result means the trap: no further progress
// is possible from state on this input.
func (d *DFA) Step(state StateID, c byte) (StateID, bool) {
	next := d.Transitions[state][c]
	return next, next != NoTransition
}

// Accepts reports whether state signals a complete match of group 0
// (spec.md §4.5: "treats group 0 as the whole match").
func (d *DFA) Accepts(state StateID) bool {
	return d.Tail[state][0]
}
