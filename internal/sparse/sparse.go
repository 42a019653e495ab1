// Package sparse provides a sparse set of uint32 values with O(1) insert,
// membership test, and clear. It backs two hot paths in rebyte's
// compilation pipeline: the no-revisit depth-first walk that computes an
// NFA node's epsilon closure (nfa cooker, spec.md §4.4), and the NFA
// state-set bookkeeping used while subset-constructing the DFA (dfa
// builder, spec.md §4.5).
package sparse

// Set is a set of uint32 values in [0, capacity) that supports O(1)
// Insert/Contains/Clear while preserving insertion order on iteration. The
// sparse array maps a value to its slot in the dense array; a value is a
// member only if the round trip through both arrays lands back on itself.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New creates a Set whose members are drawn from [0, capacity).
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds v to the set and reports whether it was newly added (false
// if v was already a member). Panics if v >= capacity.
func (s *Set) Insert(v uint32) bool {
	if s.Contains(v) {
		return false
	}
	s.sparse[v] = uint32(len(s.dense))
	s.dense = append(s.dense, v)
	return true
}

// Contains reports whether v is a member of the set.
func (s *Set) Contains(v uint32) bool {
	if int(v) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[v]
	return int(idx) < len(s.dense) && s.dense[idx] == v
}

// Clear empties the set in O(1) time. The backing arrays are reused.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members currently in the set.
func (s *Set) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the set's members in insertion order. The returned slice
// aliases the set's internal storage and is only valid until the next
// mutating call.
func (s *Set) Values() []uint32 {
	return s.dense
}
