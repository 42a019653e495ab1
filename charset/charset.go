// Package charset provides a dense 256-element bitset over byte values.
//
// A Set is the alphabet primitive the rest of rebyte builds on: the lexer
// emits Char tokens carrying a Set, the NFA's consuming edges are labeled
// with a Set, and the DFA's subset construction groups NFA states by which
// bytes they accept. Sets are value types: copying a Set copies its whole
// 256-bit table, so callers never need to worry about aliasing.
package charset

import "math/bits"

// Set is a set of byte values in [0,255], represented as four 64-bit words.
type Set struct {
	bits [4]uint64
}

// Empty returns the empty set.
func Empty() Set {
	return Set{}
}

// All returns the set containing every byte value.
func All() Set {
	return Range(0, 255)
}

// Byte returns the singleton set containing only b.
func Byte(b byte) Set {
	var s Set
	s.Insert(b)
	return s
}

// Range returns the set containing every byte in the inclusive interval
// [lo, hi]. If lo > hi the result is empty.
func Range(lo, hi byte) Set {
	var s Set
	s.InsertRange(lo, hi)
	return s
}

// Insert adds b to the set.
func (s *Set) Insert(b byte) {
	s.bits[b/64] |= 1 << (b % 64)
}

// InsertRange adds every byte in the inclusive interval [lo, hi] to the set.
// If lo > hi, InsertRange is a no-op.
func (s *Set) InsertRange(lo, hi byte) {
	if lo > hi {
		return
	}
	for b := int(lo); b <= int(hi); b++ {
		s.Insert(byte(b))
	}
}

// Contains reports whether b is a member of the set.
func (s Set) Contains(b byte) bool {
	return s.bits[b/64]&(1<<(b%64)) != 0
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return s.bits[0] == 0 && s.bits[1] == 0 && s.bits[2] == 0 && s.bits[3] == 0
}

// IsSingleton reports whether the set contains exactly one byte.
func (s Set) IsSingleton() bool {
	return s.Len() == 1
}

// Union returns the set of bytes in s or t (or both).
func (s Set) Union(t Set) Set {
	var r Set
	for i := range r.bits {
		r.bits[i] = s.bits[i] | t.bits[i]
	}
	return r
}

// Intersect returns the set of bytes in both s and t.
func (s Set) Intersect(t Set) Set {
	var r Set
	for i := range r.bits {
		r.bits[i] = s.bits[i] & t.bits[i]
	}
	return r
}

// Complement returns the set of bytes not in s.
func (s Set) Complement() Set {
	var r Set
	for i := range r.bits {
		r.bits[i] = ^s.bits[i]
	}
	return r
}

// Equal reports whether s and t contain exactly the same bytes.
func (s Set) Equal(t Set) bool {
	return s.bits == t.bits
}

// Forward calls f for every member of the set in ascending byte order.
// Iteration stops early if f returns false.
func (s Set) Forward(f func(b byte) bool) {
	for word := 0; word < 4; word++ {
		w := s.bits[word]
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			b := byte(word*64 + bit)
			if !f(b) {
				return
			}
			w &= w - 1
		}
	}
}

// Backward calls f for every member of the set in descending byte order.
// Iteration stops early if f returns false.
func (s Set) Backward(f func(b byte) bool) {
	for word := 3; word >= 0; word-- {
		w := s.bits[word]
		for w != 0 {
			bit := 63 - bits.LeadingZeros64(w)
			b := byte(word*64 + bit)
			if !f(b) {
				return
			}
			w &= ^(uint64(1) << bit)
		}
	}
}

// Members returns every byte in the set, in ascending order.
func (s Set) Members() []byte {
	out := make([]byte, 0, s.Len())
	s.Forward(func(b byte) bool {
		out = append(out, b)
		return true
	})
	return out
}

// Len returns the number of bytes in the set.
func (s Set) Len() int {
	n := 0
	for _, w := range s.bits {
		n += bits.OnesCount64(w)
	}
	return n
}
