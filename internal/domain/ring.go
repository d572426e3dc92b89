package domain

import "sort"

// HalfWindowRadius is the number of neighbours on each side of the active
// slide that are considered visible.
const HalfWindowRadius = 1

// Normalize maps any integer onto the ring [0, length).
// A non-positive length yields 0.
func Normalize(index, length int) int {
	if length <= 0 {
		return 0
	}
	return ((index % length) + length) % length
}

// CircularDelta returns the shortest signed step from one index to another
// on a ring of size n. An exactly opposite index (raw == n/2) keeps the
// positive delta.
func CircularDelta(from, to, n int) int {
	raw := to - from
	// Compare against n/2 without truncating, so odd rings behave like real division.
	if 2*raw > n {
		return raw - n
	}
	if 2*raw < -n {
		return raw + n
	}
	return raw
}

// IndexSet is a set of ring indices.
type IndexSet map[int]struct{}

// NewIndexSet creates a set holding the given indices.
func NewIndexSet(indices ...int) IndexSet {
	s := make(IndexSet, len(indices))
	for _, i := range indices {
		s.Add(i)
	}
	return s
}

// Add inserts an index.
func (s IndexSet) Add(i int) {
	s[i] = struct{}{}
}

// Has reports whether the index is in the set.
func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Len returns the number of indices in the set.
func (s IndexSet) Len() int {
	return len(s)
}

// Union returns a new set with the indices of both sets.
func (s IndexSet) Union(other IndexSet) IndexSet {
	out := make(IndexSet, len(s)+len(other))
	for i := range s {
		out.Add(i)
	}
	for i := range other {
		out.Add(i)
	}
	return out
}

// Sorted returns the indices in ascending order.
func (s IndexSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// VisibleSet returns the indices inside the window of the given radius
// around current. When the window would wrap onto itself every index is
// returned.
func VisibleSet(current, n, radius int) IndexSet {
	set := make(IndexSet)
	if n <= 0 {
		return set
	}

	maxAbs := n / 2
	if radius >= maxAbs {
		for i := 0; i < n; i++ {
			set.Add(i)
		}
		return set
	}

	for d := -radius; d <= radius; d++ {
		set.Add(Normalize(current+d, n))
	}
	return set
}

// ComputeCardState derives the visual state of the slide at index when
// current is active on a ring of n slides.
func ComputeCardState(index, current, n, radius int) CardState {
	delta := CircularDelta(current, index, n)
	abs := delta
	if abs < 0 {
		abs = -abs
	}

	return CardState{
		Index:   index,
		Delta:   delta,
		Abs:     abs,
		Visible: abs <= radius,
		Active:  index == current,
	}
}
