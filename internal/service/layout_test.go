package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/ui/mock"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
)

func newItems(n int) []*domain.Item {
	slides := memory.NumberedSlides(n)
	items := make([]*domain.Item, n)
	for i, s := range slides {
		items[i] = &domain.Item{Slide: s, Position: i}
	}
	return items
}

func TestLayoutEngine_FirstApplyWritesEveryCard(t *testing.T) {
	view := mock.NewView()
	engine := NewLayoutEngine(view, "cfc-test", domain.HalfWindowRadius)
	items := newItems(7)

	touched := engine.Apply(items, 0)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, touched)
	assert.Equal(t, touched, view.Applied())
	assert.Len(t, view.VarWrites(), 14, "delta and abs for every card")
}

func TestLayoutEngine_DiffOnIndexChange(t *testing.T) {
	view := mock.NewView()
	engine := NewLayoutEngine(view, "cfc-test", domain.HalfWindowRadius)
	items := newItems(5)

	engine.Apply(items, 0)
	view.ResetWrites()

	touched := engine.Apply(items, 1)

	// 4 leaves the window and 2 enters it
	assert.Equal(t, []int{0, 1, 2, 4}, touched)
	assert.Equal(t, []int{0, 1, 2, 4}, view.Applied())

	visible, active, ok := engine.Snapshot()
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, visible)
	assert.Equal(t, 1, active)
}

func TestLayoutEngine_CardVarsWrittenOnlyOnChange(t *testing.T) {
	view := mock.NewView()
	engine := NewLayoutEngine(view, "cfc-test", domain.HalfWindowRadius)
	items := newItems(5)

	engine.Apply(items, 0)
	engine.Apply(items, 1)
	view.ResetWrites()

	touched := engine.Apply(items, 1)

	assert.Equal(t, []int{0, 1, 2}, touched, "metadata is still reapplied")
	assert.Empty(t, view.VarWrites(), "identical values are not rewritten")
}

func TestLayoutEngine_VarValues(t *testing.T) {
	view := mock.NewView()
	engine := NewLayoutEngine(view, "cfc-test", domain.HalfWindowRadius)
	items := newItems(5)

	engine.Apply(items, 1)

	cases := []struct {
		id    string
		delta int
		abs   int
	}{
		{"slide-1", -1, 1},
		{"slide-2", 0, 0},
		{"slide-3", 1, 1},
		{"slide-4", 2, 2},
		{"slide-5", -2, 2},
	}
	for _, tc := range cases {
		d, ok := view.Var(tc.id, domain.VarDelta)
		require.True(t, ok, tc.id)
		assert.Equal(t, tc.delta, d, tc.id)

		a, _ := view.Var(tc.id, domain.VarAbs)
		assert.Equal(t, tc.abs, a, tc.id)
	}
}

func TestLayoutEngine_Metadata(t *testing.T) {
	view := mock.NewView()
	engine := NewLayoutEngine(view, "cfc-test", domain.HalfWindowRadius)
	items := newItems(5)

	engine.Apply(items, 0)

	meta, ok := view.Meta("slide-3")
	require.True(t, ok)
	assert.Equal(t, "cfc-test-slide-2", meta.ElementID)
	assert.Equal(t, 5, meta.SetSize)
	assert.Equal(t, 3, meta.PosInSet)
	assert.Equal(t, "group", meta.Role)
	assert.Equal(t, "slide", meta.RoleDescription)
	assert.False(t, meta.State.Visible)
	assert.False(t, meta.State.Active)

	meta, _ = view.Meta("slide-1")
	assert.True(t, meta.State.Visible)
	assert.True(t, meta.State.Active)
}

func TestLayoutEngine_ResetForcesFullApply(t *testing.T) {
	view := mock.NewView()
	engine := NewLayoutEngine(view, "cfc-test", domain.HalfWindowRadius)
	items := newItems(6)

	engine.Apply(items, 0)
	engine.Reset()
	view.ResetWrites()

	_, _, ok := engine.Snapshot()
	assert.False(t, ok)

	touched := engine.Apply(items, 0)
	assert.Len(t, touched, 6)
	assert.Empty(t, view.VarWrites(), "cached values survive a reset")
}

func TestLayoutEngine_RetainDropsDepartedItems(t *testing.T) {
	view := mock.NewView()
	engine := NewLayoutEngine(view, "cfc-test", domain.HalfWindowRadius)
	items := newItems(3)

	engine.Apply(items, 0)

	replacement := &domain.Item{Slide: domain.Slide{ID: "slide-2"}, Position: 1}
	next := []*domain.Item{items[0], replacement, items[2]}
	engine.Retain(next)
	engine.Reset()
	view.ResetWrites()

	engine.Apply(next, 0)

	writes := view.VarWrites()
	require.Len(t, writes, 2, "only the new item has no cached values")
	assert.Equal(t, "slide-2", writes[0].SlideID)
}

func TestLayoutEngine_Empty(t *testing.T) {
	view := mock.NewView()
	engine := NewLayoutEngine(view, "cfc-test", domain.HalfWindowRadius)

	assert.Nil(t, engine.Apply(nil, 0))
	assert.Empty(t, view.Applied())
}
