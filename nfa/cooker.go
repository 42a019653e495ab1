package nfa

import "github.com/coregx/rebyte/internal/sparse"

// Cook closes u's epsilon edges and flattens it into the adjacency-map form
// described by NFA (spec.md §4.4): every node's outgoing epsilon edges are
// replaced by a direct byte-consuming transition to the closure of its
// epsilon successors, and the closure's group annotations are unioned in
// along the way so that, for example, a node reachable only through an
// optional group's epsilon bypass still reports that group's boundary.
func Cook(u *Uncooked) *NFA {
	adj := make(map[Node][]EpsEdge, u.Nodes)
	for _, e := range u.EpsEdges {
		adj[e.Src] = append(adj[e.Src], e)
	}
	consuming := make(map[Node][]Edge, u.Nodes)
	for _, e := range u.Edges {
		consuming[e.Src] = append(consuming[e.Src], e)
	}

	n := &NFA{
		Begin:  u.Begin,
		Groups: u.Groups,
		Edges:  make([]map[byte][]Node, u.Nodes),
		Head:   make([]map[uint32]bool, u.Nodes),
		Tail:   make([]map[uint32]bool, u.Nodes),
	}

	visited := sparse.New(int(u.Nodes))
	for start := Node(0); start < Node(u.Nodes); start++ {
		closure, head, tail := epsilonClosure(u, adj, visited, start)

		edges := make(map[byte][]Node)
		for _, member := range closure {
			for _, e := range consuming[member] {
				for _, b := range e.Set.Members() {
					edges[b] = append(edges[b], e.Dst)
				}
			}
		}
		if len(edges) > 0 {
			n.Edges[start] = edges
		}
		if len(head) > 0 {
			n.Head[start] = head
		}
		if len(tail) > 0 {
			n.Tail[start] = tail
		}
	}

	return n
}

// epsilonClosure performs a depth-first walk of start's epsilon successors,
// returning every node reached (including start itself) along with the
// union of all head/tail group annotations found along the way.
func epsilonClosure(u *Uncooked, adj map[Node][]EpsEdge, visited *sparse.Set, start Node) ([]Node, map[uint32]bool, map[uint32]bool) {
	visited.Clear()
	var closure []Node
	head := make(map[uint32]bool)
	tail := make(map[uint32]bool)

	var stack []Node
	stack = append(stack, start)
	visited.Insert(uint32(start))

	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		closure = append(closure, cur)

		if g, ok := u.Head[cur]; ok {
			head[g] = true
		}
		if g, ok := u.Tail[cur]; ok {
			tail[g] = true
		}

		for _, e := range adj[cur] {
			if visited.Insert(uint32(e.Dst)) {
				stack = append(stack, e.Dst)
			}
		}
	}

	return closure, head, tail
}
