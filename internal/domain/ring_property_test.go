package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestRingProperties checks the ring arithmetic invariants over random inputs.
func TestRingProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: normalized indices always land on the ring
	properties.Property("normalize stays in range", prop.ForAll(
		func(i, length int) bool {
			got := Normalize(i, length)
			return got >= 0 && got < length
		},
		gen.IntRange(-100000, 100000),
		gen.IntRange(1, 500),
	))

	// Property: shifting by a full turn does not change the result
	properties.Property("normalize is periodic", prop.ForAll(
		func(i, length int) bool {
			return Normalize(i, length) == Normalize(i+length, length)
		},
		gen.IntRange(-100000, 100000),
		gen.IntRange(1, 500),
	))

	// Property: the delta is never longer than half the ring
	properties.Property("delta is shortest", prop.ForAll(
		func(n, a, b int) bool {
			from, to := a%n, b%n
			d := CircularDelta(from, to, n)
			if d < 0 {
				d = -d
			}
			return 2*d <= n
		},
		gen.IntRange(1, 200),
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
	))

	// Property: stepping by the delta reaches the target
	properties.Property("delta reaches target", prop.ForAll(
		func(n, a, b int) bool {
			from, to := a%n, b%n
			return Normalize(from+CircularDelta(from, to, n), n) == Normalize(to, n)
		},
		gen.IntRange(1, 200),
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
	))

	// Property: the visible window holds min(n, 2r+1) indices
	properties.Property("visible set size", prop.ForAll(
		func(n, current int) bool {
			want := 2*HalfWindowRadius + 1
			if n < want {
				want = n
			}
			return VisibleSet(current%n, n, HalfWindowRadius).Len() == want
		},
		gen.IntRange(1, 200),
		gen.IntRange(0, 10000),
	))

	// Property: every visible card is within the radius, the active one included
	properties.Property("visible set agrees with card state", prop.ForAll(
		func(n, c int) bool {
			current := c % n
			visible := VisibleSet(current, n, HalfWindowRadius)
			if !visible.Has(current) {
				return false
			}
			for i := 0; i < n; i++ {
				state := ComputeCardState(i, current, n, HalfWindowRadius)
				if state.Visible && !visible.Has(i) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 100),
		gen.IntRange(0, 10000),
	))

	properties.TestingRun(t)
}
