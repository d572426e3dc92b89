package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		length int
		want   int
	}{
		{"in range", 3, 5, 3},
		{"length wraps to zero", 5, 5, 0},
		{"past the end", 12, 5, 2},
		{"minus one", -1, 5, 4},
		{"far negative", -11, 5, 4},
		{"empty ring", 7, 0, 0},
		{"negative length", 7, -3, 0},
		{"shrunk ring", 4, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.index, tt.length))
		})
	}
}

func TestCircularDelta(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		n        int
		want     int
	}{
		{"same index", 2, 2, 5, 0},
		{"one ahead", 0, 1, 5, 1},
		{"one behind wraps", 0, 4, 5, -1},
		{"two behind wraps", 1, 4, 5, -2},
		{"odd ring half point", 0, 3, 5, -2},
		{"even ring tie stays positive", 0, 2, 4, 2},
		{"even ring negative tie stays negative", 2, 0, 4, -2},
		{"even ring beyond tie wraps", 0, 3, 4, -1},
		{"two slides", 0, 1, 2, 1},
		{"two slides reverse", 1, 0, 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CircularDelta(tt.from, tt.to, tt.n))
		})
	}
}

func TestVisibleSet(t *testing.T) {
	t.Run("empty ring", func(t *testing.T) {
		assert.Equal(t, 0, VisibleSet(0, 0, HalfWindowRadius).Len())
	})

	t.Run("window wraps at start", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 4}, VisibleSet(0, 5, HalfWindowRadius).Sorted())
	})

	t.Run("window in the middle", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3}, VisibleSet(2, 5, HalfWindowRadius).Sorted())
	})

	t.Run("two slides are all visible", func(t *testing.T) {
		assert.Equal(t, []int{0, 1}, VisibleSet(0, 2, HalfWindowRadius).Sorted())
		assert.Equal(t, []int{0, 1}, VisibleSet(1, 2, HalfWindowRadius).Sorted())
	})

	t.Run("three slides are all visible", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 2}, VisibleSet(2, 3, HalfWindowRadius).Sorted())
	})

	t.Run("single slide", func(t *testing.T) {
		assert.Equal(t, []int{0}, VisibleSet(0, 1, HalfWindowRadius).Sorted())
	})
}

func TestIndexSetUnion(t *testing.T) {
	a := NewIndexSet(4, 0, 1)
	b := NewIndexSet(0, 1, 2)

	u := a.Union(b)

	assert.Equal(t, []int{0, 1, 2, 4}, u.Sorted())
	assert.True(t, u.Has(4))
	assert.False(t, u.Has(3))
	// inputs are untouched
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 3, b.Len())
}

func TestComputeCardState(t *testing.T) {
	state := ComputeCardState(4, 0, 5, HalfWindowRadius)
	assert.Equal(t, CardState{Index: 4, Delta: -1, Abs: 1, Visible: true, Active: false}, state)

	state = ComputeCardState(2, 0, 5, HalfWindowRadius)
	assert.Equal(t, CardState{Index: 2, Delta: 2, Abs: 2, Visible: false, Active: false}, state)

	state = ComputeCardState(3, 3, 5, HalfWindowRadius)
	assert.True(t, state.Active)
	assert.True(t, state.Visible)
	assert.Equal(t, 0, state.Delta)
}

func TestAnnouncement(t *testing.T) {
	assert.Equal(t, "Slide 2 of 5", Announcement(1, 5))
}

func TestSlideElementID(t *testing.T) {
	meta := NewCardMeta("cfc-1", CardState{Index: 2}, 5)

	assert.Equal(t, "cfc-1-slide-2", meta.ElementID)
	assert.Equal(t, 3, meta.PosInSet)
	assert.Equal(t, 5, meta.SetSize)
	assert.Equal(t, "group", meta.Role)
	assert.Equal(t, "slide", meta.RoleDescription)
}
