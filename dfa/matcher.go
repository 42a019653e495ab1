package dfa

// Span is a half-open byte range [Start, End) within the searched input.
type Span struct {
	Start, End int
}

// Match is the result of a successful search: one Span per group number
// the winning run actually opened and closed, group 0 being the whole
// match (spec.md §4.5). A group whose Matched entry is false did not both
// open and close on this run.
type Match struct {
	Groups  []Span
	Matched []bool
}

// groupMark tracks the most recent open/close byte offsets seen for one
// group during a single DFA walk.
type groupMark struct {
	open, close int
	hasClose    bool
}

// Find runs the leftmost-longest matcher described in spec.md §4.5: it
// tries successive start offsets from 0 upward and, for the first one
// that ever reaches group 0's tail, returns the farthest such state
// reached (the longest match from that start).
func (d *DFA) Find(input []byte) (Match, bool) {
	for start := 0; start <= len(input); start++ {
		if m, ok := d.FindAt(input, start); ok {
			return m, true
		}
	}
	return Match{}, false
}

// FindAt walks the DFA from state 0 starting at input[start:], recording
// group boundaries at every position visited (spec.md §4.5: "the position
// just before the first byte and the position just after the last
// consumed byte"). It reports the longest match starting exactly at
// start, if any — callers that already know start is the only viable
// match position (e.g. a required-literal prefilter hit) can skip Find's
// scan over earlier offsets.
func (d *DFA) FindAt(input []byte, start int) (Match, bool) {
	marks := make(map[uint32]*groupMark)
	observe := func(state StateID, pos int) {
		for g := range d.Head[state] {
			m, ok := marks[g]
			if !ok {
				m = &groupMark{}
				marks[g] = m
			}
			m.open = pos
			m.hasClose = false
		}
		for g := range d.Tail[state] {
			if m, ok := marks[g]; ok {
				m.close = pos
				m.hasClose = true
			}
		}
	}

	state := StartState
	observe(state, start)

	bestPos := -1
	var bestMarks map[uint32]*groupMark
	if d.Accepts(state) {
		bestPos, bestMarks = start, cloneMarks(marks)
	}

	pos := start
	for pos < len(input) {
		next, ok := d.Step(state, input[pos])
		if !ok {
			break
		}
		state, pos = next, pos+1
		observe(state, pos)
		if d.Accepts(state) {
			bestPos, bestMarks = pos, cloneMarks(marks)
		}
	}

	if bestPos < 0 {
		return Match{}, false
	}

	maxGroup := uint32(0)
	for g := range bestMarks {
		if g > maxGroup {
			maxGroup = g
		}
	}
	groups := make([]Span, maxGroup+1)
	matched := make([]bool, maxGroup+1)
	for g, m := range bestMarks {
		if m.hasClose {
			groups[g] = Span{m.open, m.close}
			matched[g] = true
		}
	}
	groups[0] = Span{start, bestPos}
	matched[0] = true

	return Match{Groups: groups, Matched: matched}, true
}

func cloneMarks(src map[uint32]*groupMark) map[uint32]*groupMark {
	dst := make(map[uint32]*groupMark, len(src))
	for g, m := range src {
		cp := *m
		dst[g] = &cp
	}
	return dst
}
