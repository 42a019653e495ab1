package nfa

import (
	"github.com/coregx/rebyte/internal/conv"
	"github.com/coregx/rebyte/lexer"
	"github.com/coregx/rebyte/rerr"
)

// fragment is a sub-automaton with a single entry and single exit, carried
// on the build stack as (entry, exit, size) per spec.md §4.3/§9.
type fragment struct {
	entry, exit Node
	size        uint32
}

// scopeKind identifies what closing token ends a compileScope call.
type scopeKind int

const (
	scopeTop   scopeKind = iota // ends at Close(eof=true)
	scopeParen                  // ends at Close(eof=false), opened by '('
	scopeGroup                  // ends at EndGroup, opened by StartGroup
)

// Builder runs Thompson construction over a lexer.Lexer's token stream,
// maintaining the node arena and edge lists of the Uncooked NFA it builds.
type Builder struct {
	u      *Uncooked
	groups uint32
}

// Compile drives l to completion and returns the resulting Uncooked NFA.
// Group 0 is reserved: it always wraps the entire compiled pattern,
// regardless of auto_groups or any explicit \A/\Z the caller wrote, so
// that group 0's tail is always available as the accept signal (spec.md
// §4.5, §9). User-written groups are numbered from 1.
func Compile(l *lexer.Lexer) (*Uncooked, error) {
	b := &Builder{u: newUncooked(), groups: 1}
	top, err := b.compileScope(l, scopeTop)
	if err != nil {
		return nil, err
	}

	n := b.u.alloc(2)
	a, c := n, n+1
	b.u.Head[a] = 0
	b.u.Tail[c] = 0
	b.u.EpsEdges = append(b.u.EpsEdges, EpsEdge{a, top.entry}, EpsEdge{top.exit, c})
	b.u.Begin = a
	b.u.Groups = b.groups
	return b.u, nil
}

// compileScope reads tokens until the token that closes kind's scope,
// driving the fragment stack described in spec.md §4.3. Open and
// StartGroup recurse into a fresh scope for their own contents.
func (b *Builder) compileScope(l *lexer.Lexer, kind scopeKind) (fragment, error) {
	var stack []fragment
	lastUnion := 0
	// stacked tracks whether the fragment currently on top of stack already
	// had a Repeat applied directly to it, so a second consecutive Repeat
	// token (e.g. "a++", "a**") raises Postfix instead of silently repeating
	// the repeat (spec.md §9: "postfix stacking is not a supported
	// feature"). applyRepeat can leave more than one fragment above the
	// watermark (the copies it duplicated), so the watermark check alone
	// can't tell "a fresh single operand" from "an already-repeated one" —
	// this flag can.
	stacked := false

	finish := func() (fragment, error) {
		stack = b.join(stack, lastUnion)
		if len(stack) == lastUnion {
			// Nothing sits above the last '|' (or above the scope's start,
			// if it never saw one) — a dangling alternation operand, e.g.
			// "a|", "|a", or even a bare empty scope like "()".
			if kind == scopeGroup {
				return fragment{}, rerr.NewError(rerr.KindGroup)
			}
			return fragment{}, rerr.NewError(rerr.KindUnion)
		}
		stack = b.union(stack)
		return stack[0], nil
	}

	for {
		tok, err := l.Token()
		if err != nil {
			return fragment{}, err
		}

		switch tok.Kind {
		case lexer.Char:
			n := b.u.alloc(2)
			a, c := n, n+1
			b.u.Edges = append(b.u.Edges, Edge{Src: a, Dst: c, Set: tok.Set})
			stack = append(stack, fragment{a, c, 2})
			stacked = false

		case lexer.Open:
			inner, err := b.compileScope(l, scopeParen)
			if err != nil {
				return fragment{}, err
			}
			stack = append(stack, inner)
			stacked = false

		case lexer.Close:
			if kind == scopeGroup {
				return fragment{}, rerr.NewError(rerr.KindBalance)
			}
			wantEOF := kind == scopeTop
			if tok.EOF != wantEOF {
				return fragment{}, rerr.NewError(rerr.KindBalance)
			}
			return finish()

		case lexer.StartGroup:
			g := b.groups
			b.groups++
			body, err := b.compileScope(l, scopeGroup)
			if err != nil {
				return fragment{}, err
			}
			n := b.u.alloc(2)
			a, c := n, n+1
			b.u.Head[a] = g
			b.u.Tail[c] = g
			b.u.EpsEdges = append(b.u.EpsEdges, EpsEdge{a, body.entry}, EpsEdge{body.exit, c})
			stack = append(stack, fragment{a, c, body.size + 2})
			stacked = false

		case lexer.EndGroup:
			if kind != scopeGroup {
				return fragment{}, rerr.NewError(rerr.KindBalance)
			}
			return finish()

		case lexer.TokUnion:
			if len(stack) == lastUnion {
				return fragment{}, rerr.NewError(rerr.KindUnion)
			}
			stack = b.join(stack, lastUnion)
			lastUnion = len(stack)
			stacked = false

		case lexer.Repeat:
			if len(stack) == lastUnion || stacked {
				return fragment{}, rerr.NewError(rerr.KindPostfix)
			}
			stack = b.applyRepeat(stack, tok.Min, tok.Max, tok.HasMax)
			stacked = true
		}
	}
}

// join concatenates fragments above the watermark from into a single
// fragment: while more than one remains above from, pop b then a, add
// epsilon a.exit -> b.entry, push the merged fragment.
func (b *Builder) join(stack []fragment, from int) []fragment {
	for len(stack) > from+1 {
		n := len(stack)
		q, p := stack[n-1], stack[n-2]
		b.u.EpsEdges = append(b.u.EpsEdges, EpsEdge{p.exit, q.entry})
		stack = stack[:n-2]
		stack = append(stack, fragment{p.entry, q.exit, p.size + q.size})
	}
	return stack
}

// union collapses every fragment on the stack into one via alternation:
// while more than one element remains, pop q then p, allocate a new
// split/join node pair, and push the combined fragment.
func (b *Builder) union(stack []fragment) []fragment {
	for len(stack) > 1 {
		n := len(stack)
		q, p := stack[n-1], stack[n-2]
		node := b.u.alloc(2)
		a, c := node, node+1
		b.u.EpsEdges = append(b.u.EpsEdges,
			EpsEdge{a, p.entry}, EpsEdge{a, q.entry},
			EpsEdge{p.exit, c}, EpsEdge{q.exit, c})
		stack = stack[:n-2]
		stack = append(stack, fragment{a, c, p.size + q.size + 2})
	}
	return stack
}

// applyRepeat implements bounded repetition by copying the top fragment
// (spec.md §4.3, §9): the top fragment is duplicated up to cap-1 times,
// with every copy from the min-th instance onward made optional via a
// direct entry-to-exit epsilon. An unbounded upper bound additionally
// wraps the final (optional) instance in a loop.
func (b *Builder) applyRepeat(stack []fragment, min, max uint32, hasMax bool) []fragment {
	capN := max
	if !hasMax {
		capN = min + 1
	}

	a := stack[len(stack)-1]
	for i := uint32(0); i < capN; i++ {
		if i == min {
			b.u.EpsEdges = append(b.u.EpsEdges, EpsEdge{a.entry, a.exit})
		}
		if i < capN-1 {
			dup := b.copyLast(a)
			stack = append(stack, dup)
			a = dup
		}
	}

	if !hasMax {
		n := len(stack)
		p := stack[n-1]
		stack = stack[:n-1]
		node := b.u.alloc(2)
		s, e := node, node+1
		b.u.EpsEdges = append(b.u.EpsEdges, EpsEdge{s, p.entry}, EpsEdge{p.exit, e}, EpsEdge{e, s})
		stack = append(stack, fragment{s, e, p.size + 2})
	}

	return stack
}

// copyLast duplicates the fragment a, which must occupy the last a.size
// nodes of the arena, appending a fresh copy of those nodes along with
// every edge, epsilon edge, and group annotation whose endpoints lie
// entirely within that range. Edges are appended chronologically, so
// scanning from the tail and stopping at the first edge wholly below the
// range covers exactly the fragment being duplicated (spec.md §4.3).
func (b *Builder) copyLast(a fragment) fragment {
	size := conv.IntToUint32(int(a.size))
	start := Node(uint32(b.u.Nodes) - size)
	newStart := b.u.alloc(size)
	shift := func(n Node) Node { return n - start + newStart }

	var copiedEdges []Edge
	for i := len(b.u.Edges) - 1; i >= 0; i-- {
		e := b.u.Edges[i]
		if e.Src < start && e.Dst < start {
			break
		}
		if e.Src >= start && e.Dst >= start {
			copiedEdges = append(copiedEdges, Edge{shift(e.Src), shift(e.Dst), e.Set})
		}
	}
	for i := len(copiedEdges) - 1; i >= 0; i-- {
		b.u.Edges = append(b.u.Edges, copiedEdges[i])
	}

	var copiedEps []EpsEdge
	for i := len(b.u.EpsEdges) - 1; i >= 0; i-- {
		e := b.u.EpsEdges[i]
		if e.Src < start && e.Dst < start {
			break
		}
		if e.Src >= start && e.Dst >= start {
			copiedEps = append(copiedEps, EpsEdge{shift(e.Src), shift(e.Dst)})
		}
	}
	for i := len(copiedEps) - 1; i >= 0; i-- {
		b.u.EpsEdges = append(b.u.EpsEdges, copiedEps[i])
	}

	headCopies := make(map[Node]uint32)
	for n, g := range b.u.Head {
		if n >= start && n < start+Node(size) {
			headCopies[shift(n)] = g
		}
	}
	for n, g := range headCopies {
		b.u.Head[n] = g
	}

	tailCopies := make(map[Node]uint32)
	for n, g := range b.u.Tail {
		if n >= start && n < start+Node(size) {
			tailCopies[shift(n)] = g
		}
	}
	for n, g := range tailCopies {
		b.u.Tail[n] = g
	}

	return fragment{shift(a.entry), shift(a.exit), a.size}
}
