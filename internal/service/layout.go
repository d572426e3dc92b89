package service

import (
	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
)

// appliedVars is the last delta/abs pair written to a card.
type appliedVars struct {
	delta int
	abs   int
}

// LayoutEngine applies card states to a renderer, writing only what changed.
//
// The first Apply after construction or Reset writes every card. Later calls
// write the cards that were visible, are visible, or were/are active.
// Card variables are only written when they differ from the cached values.
//
// Not safe for concurrent use; the carousel serializes access.
type LayoutEngine struct {
	renderer   ports.CardRenderer
	instanceID string
	radius     int

	applied     bool
	lastActive  int
	lastVisible domain.IndexSet

	cache map[*domain.Item]appliedVars
}

// NewLayoutEngine creates an engine writing cards of the given carousel instance.
func NewLayoutEngine(renderer ports.CardRenderer, instanceID string, radius int) *LayoutEngine {
	return &LayoutEngine{
		renderer:    renderer,
		instanceID:  instanceID,
		radius:      radius,
		lastVisible: domain.NewIndexSet(),
		cache:       make(map[*domain.Item]appliedVars),
	}
}

// Apply lays out items around current and returns the indices it touched, ascending.
func (e *LayoutEngine) Apply(items []*domain.Item, current int) []int {
	n := len(items)
	if n == 0 {
		return nil
	}

	visible := domain.VisibleSet(current, n, e.radius)

	var touched domain.IndexSet
	if !e.applied {
		touched = make(domain.IndexSet, n)
		for i := 0; i < n; i++ {
			touched.Add(i)
		}
	} else {
		touched = e.lastVisible.Union(visible)
		touched.Add(e.lastActive)
		touched.Add(current)
	}

	indices := touched.Sorted()
	applied := indices[:0]
	for _, i := range indices {
		if i < 0 || i >= n {
			continue
		}
		e.applyCard(items[i], domain.ComputeCardState(i, current, n, e.radius), n)
		applied = append(applied, i)
	}

	e.applied = true
	e.lastActive = current
	e.lastVisible = visible

	return applied
}

func (e *LayoutEngine) applyCard(item *domain.Item, state domain.CardState, n int) {
	e.renderer.ApplyCard(item.Slide, domain.NewCardMeta(e.instanceID, state, n))

	prev, known := e.cache[item]
	if !known || prev.delta != state.Delta {
		e.renderer.SetCardVar(item.Slide, domain.VarDelta, state.Delta)
	}
	if !known || prev.abs != state.Abs {
		e.renderer.SetCardVar(item.Slide, domain.VarAbs, state.Abs)
	}
	e.cache[item] = appliedVars{delta: state.Delta, abs: state.Abs}
}

// Reset forgets the last snapshot so the next Apply writes every card.
// Cached card variables are kept; use Retain to drop departed items.
func (e *LayoutEngine) Reset() {
	e.applied = false
	e.lastActive = 0
	e.lastVisible = domain.NewIndexSet()
}

// Retain drops cached values of items that are not in items.
func (e *LayoutEngine) Retain(items []*domain.Item) {
	keep := make(map[*domain.Item]struct{}, len(items))
	for _, it := range items {
		keep[it] = struct{}{}
	}
	for it := range e.cache {
		if _, ok := keep[it]; !ok {
			delete(e.cache, it)
		}
	}
}

// Snapshot returns the visible set and active index recorded by the last Apply.
// ok is false before the first Apply or after Reset.
func (e *LayoutEngine) Snapshot() (visible []int, active int, ok bool) {
	if !e.applied {
		return nil, 0, false
	}
	return e.lastVisible.Sorted(), e.lastActive, true
}
