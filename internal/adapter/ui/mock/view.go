// Package mock provides a recording implementation of the carousel View.
// It is used for testing the carousel and by the headless simulator.
package mock

import (
	"sync"

	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
)

// VarWrite is one recorded SetCardVar call.
type VarWrite struct {
	SlideID string
	Name    domain.CardVar
	Value   int
}

// View records every call the carousel makes and lets tests deliver
// taps, transition ends and scratch signals.
//
// Thread-safety: This implementation is thread-safe. Bound callbacks are
// invoked without the internal lock held.
type View struct {
	mu sync.Mutex

	// Rendered state
	cards         []domain.Slide
	meta          map[string]domain.CardMeta
	vars          map[string]map[domain.CardVar]int
	showArrows    bool
	showDots      bool
	dotCount      int
	activeDot     int
	announcement  string
	announcements []string

	// Recorded writes since the last ResetWrites
	applied   []int
	varWrites []VarWrite

	// Environment
	reducedMotion bool
	style         domain.TransitionStyle
	styles        map[string]domain.TransitionStyle

	events ports.ViewEvents
	bound  bool
}

// NewView creates a view with no transition configured, so the animation
// lock resolves immediately unless SetTransition is called.
func NewView() *View {
	return &View{
		meta:   make(map[string]domain.CardMeta),
		vars:   make(map[string]map[domain.CardVar]int),
		styles: make(map[string]domain.TransitionStyle),
	}
}

// SetCards implements ports.CardRenderer.
func (v *View) SetCards(slides []domain.Slide) {
	v.mu.Lock()
	defer v.mu.Unlock()

	keep := make(map[string]struct{}, len(slides))
	for _, s := range slides {
		keep[s.ID] = struct{}{}
	}
	for id := range v.meta {
		if _, ok := keep[id]; !ok {
			delete(v.meta, id)
			delete(v.vars, id)
		}
	}
	v.cards = append([]domain.Slide(nil), slides...)
}

// ApplyCard implements ports.CardRenderer.
func (v *View) ApplyCard(slide domain.Slide, meta domain.CardMeta) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.meta[slide.ID] = meta
	v.applied = append(v.applied, meta.State.Index)
}

// SetCardVar implements ports.CardRenderer.
func (v *View) SetCardVar(slide domain.Slide, name domain.CardVar, value int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.vars[slide.ID] == nil {
		v.vars[slide.ID] = make(map[domain.CardVar]int)
	}
	v.vars[slide.ID][name] = value
	v.varWrites = append(v.varWrites, VarWrite{SlideID: slide.ID, Name: name, Value: value})
}

// SetControls implements ports.Controls.
func (v *View) SetControls(showArrows, showDots bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showArrows = showArrows
	v.showDots = showDots
}

// SetDots implements ports.Controls.
func (v *View) SetDots(count, active int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dotCount = count
	v.activeDot = active
}

// SetAnnouncement implements ports.LiveRegion.
func (v *View) SetAnnouncement(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.announcement = text
	v.announcements = append(v.announcements, text)
}

// PrefersReducedMotion implements ports.Environment.
func (v *View) PrefersReducedMotion() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reducedMotion
}

// TransitionStyle implements ports.Environment.
func (v *View) TransitionStyle(slide domain.Slide) domain.TransitionStyle {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.styles[slide.ID]; ok {
		return s
	}
	return v.style
}

// Bind implements ports.View.
func (v *View) Bind(events ports.ViewEvents) func() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.events = events
	v.bound = true

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.events = ports.ViewEvents{}
		v.bound = false
	}
}

// SetReducedMotion configures the reduced-motion preference.
func (v *View) SetReducedMotion(reduced bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reducedMotion = reduced
}

// SetTransition configures the transform transition of every card.
// An empty duration removes the transition.
func (v *View) SetTransition(duration, fallback string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if duration == "" {
		v.style = domain.TransitionStyle{FallbackDuration: fallback}
		return
	}
	v.style = domain.TransitionStyle{
		Properties:       domain.TransformProperty,
		Durations:        duration,
		Delays:           "0s",
		FallbackDuration: fallback,
	}
}

// SetSlideTransition overrides the transition of one card.
func (v *View) SetSlideTransition(slideID string, style domain.TransitionStyle) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.styles[slideID] = style
}

// TapNext simulates a click on the next arrow.
func (v *View) TapNext() {
	v.mu.Lock()
	fn := v.events.OnNext
	v.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// TapPrev simulates a click on the previous arrow.
func (v *View) TapPrev() {
	v.mu.Lock()
	fn := v.events.OnPrev
	v.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// FinishTransition delivers a transition end of property on the card of slideID.
func (v *View) FinishTransition(slideID, property string) {
	v.mu.Lock()
	fn := v.events.OnTransitionEnd
	v.mu.Unlock()

	if fn != nil {
		fn(domain.TransitionEnd{SlideID: slideID, Property: property})
	}
}

// ScratchComplete delivers a completed scratch gesture on the card of slideID.
func (v *View) ScratchComplete(slideID string, percent *float64) {
	v.mu.Lock()
	fn := v.events.OnScratchComplete
	v.mu.Unlock()

	if fn != nil {
		fn(domain.ScratchSignal{SlideID: slideID, Percent: percent})
	}
}

// ResetWrites forgets the recorded ApplyCard and SetCardVar calls.
func (v *View) ResetWrites() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.applied = nil
	v.varWrites = nil
}

// Applied returns the indices passed to ApplyCard since the last ResetWrites, in call order.
func (v *View) Applied() []int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]int(nil), v.applied...)
}

// VarWrites returns the SetCardVar calls since the last ResetWrites.
func (v *View) VarWrites() []VarWrite {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]VarWrite(nil), v.varWrites...)
}

// Meta returns the last metadata applied to a card.
func (v *View) Meta(slideID string) (domain.CardMeta, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	m, ok := v.meta[slideID]
	return m, ok
}

// Var returns the last value written for a card variable.
func (v *View) Var(slideID string, name domain.CardVar) (int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	val, ok := v.vars[slideID][name]
	return val, ok
}

// Cards returns the current card list.
func (v *View) Cards() []domain.Slide {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.Slide(nil), v.cards...)
}

// Controls returns the arrows and dots visibility.
func (v *View) Controls() (showArrows, showDots bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.showArrows, v.showDots
}

// Dots returns the dot count and highlighted dot.
func (v *View) Dots() (count, active int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dotCount, v.activeDot
}

// Announcement returns the current live region text.
func (v *View) Announcement() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.announcement
}

// Announcements returns every live region write, including clears.
func (v *View) Announcements() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.announcements...)
}

// IsBound reports whether callbacks are attached.
func (v *View) IsBound() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.bound
}

// Verify interface implementation
var _ ports.View = (*View)(nil)
