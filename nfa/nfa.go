// Package nfa builds the Thompson-construction NFA from a lexer.Token
// stream (spec.md §4.3) and cooks it into an epsilon-closed, adjacency-map
// form annotated with capture group boundaries (spec.md §4.4).
package nfa

import "github.com/coregx/rebyte/charset"

// Node is a dense node index into an Uncooked or cooked NFA.
type Node uint32

// Edge is a single consuming transition of the uncooked NFA: from Src, on
// any byte in Set, to Dst.
type Edge struct {
	Src, Dst Node
	Set      charset.Set
}

// EpsEdge is a single epsilon transition of the uncooked NFA.
type EpsEdge struct {
	Src, Dst Node
}

// Uncooked is the edge-list Thompson-construction output (spec.md §3,
// "NFA-uncooked"): a flat node arena plus consuming and epsilon edge lists,
// and per-node group-boundary annotations.
type Uncooked struct {
	Nodes  uint32
	Groups uint32
	Begin  Node

	Edges    []Edge
	EpsEdges []EpsEdge

	Head map[Node]uint32 // node -> group it opens
	Tail map[Node]uint32 // node -> group it closes
}

func newUncooked() *Uncooked {
	return &Uncooked{
		Head: make(map[Node]uint32),
		Tail: make(map[Node]uint32),
	}
}

// alloc appends n fresh nodes to the arena and returns the first one's
// index; the rest follow contiguously.
func (u *Uncooked) alloc(n uint32) Node {
	first := Node(u.Nodes)
	u.Nodes += n
	return first
}

// NFA is the cooked, epsilon-closed automaton (spec.md §3, "NFA (cooked)"):
// for each node, a byte-indexed adjacency map to successor nodes, plus the
// head/tail group sets accumulated through epsilon closure.
type NFA struct {
	Begin   Node
	Groups  uint32
	Edges   []map[byte][]Node // Edges[n][c] = successors of n on byte c
	Head    []map[uint32]bool // Head[n] = group indices opening at n
	Tail    []map[uint32]bool // Tail[n] = group indices closing at n
}
