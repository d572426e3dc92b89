package fyne

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"time"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
)

// CarouselOptions configures the motion of the carousel widget.
type CarouselOptions struct {
	// ReducedMotion snaps cards into place without animating
	ReducedMotion bool

	// Transition is the duration of the card transform animation
	Transition time.Duration

	// FallbackTransition is reported as the configured fallback duration, e.g. "400ms"
	FallbackTransition string
}

// cardEntry is the widget-side state of one card.
type cardEntry struct {
	slide     domain.Slide
	card      *widgets.Card
	elementID string
	visible   bool
	active    bool
	abs       int

	// offset is the animated horizontal position, in card steps from the centre
	offset float32
	anim   *fyneapp.Animation
}

// CarouselWidget renders the carousel with Fyne and implements ports.View.
// It must be driven from the Fyne main goroutine; transition ends are
// delivered on a later turn through fyne.Do. Only the bound callbacks are
// guarded by mu, since they are read from the delivery goroutine.
type CarouselWidget struct {
	widget.BaseWidget

	options CarouselOptions

	entries map[string]*cardEntry
	order   []string

	mu     sync.Mutex
	events ports.ViewEvents

	track    *fyneapp.Container
	prev     *widget.Button
	next     *widget.Button
	dots     *widgets.Dots
	live     *widget.Label
	controls *fyneapp.Container

	// later delivers callbacks on a later turn of the event loop
	later func(func())
}

// NewCarouselWidget creates an empty carousel.
func NewCarouselWidget(options CarouselOptions) *CarouselWidget {
	w := &CarouselWidget{
		options: options,
		entries: make(map[string]*cardEntry),
		dots:    widgets.NewDots(),
		live:    widget.NewLabel(""),
		later:   func(fn func()) { go fyneapp.Do(fn) },
	}
	w.track = container.New(&trackLayout{owner: w})
	w.prev = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { w.emit(func(e ports.ViewEvents) func() { return e.OnPrev }) })
	w.next = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { w.emit(func(e ports.ViewEvents) func() { return e.OnNext }) })
	w.live.Alignment = fyneapp.TextAlignCenter
	w.controls = container.NewBorder(nil, nil, w.prev, w.next, w.dots)

	w.prev.Hide()
	w.next.Hide()
	w.dots.Hide()

	w.ExtendBaseWidget(w)
	return w
}

// CreateRenderer implements fyneapp.Widget.
func (w *CarouselWidget) CreateRenderer() fyneapp.WidgetRenderer {
	bottom := container.NewVBox(w.controls, w.live)
	return widget.NewSimpleRenderer(container.NewBorder(nil, bottom, nil, nil, w.track))
}

func (w *CarouselWidget) emit(pick func(ports.ViewEvents) func()) {
	w.mu.Lock()
	fn := pick(w.events)
	w.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// SetCards implements ports.CardRenderer.
func (w *CarouselWidget) SetCards(slides []domain.Slide) {
	keep := make(map[string]struct{}, len(slides))
	order := make([]string, 0, len(slides))
	for _, s := range slides {
		keep[s.ID] = struct{}{}
		order = append(order, s.ID)

		if e, ok := w.entries[s.ID]; ok {
			if e.slide.Caption != s.Caption {
				e.card.SetCaption(s.Caption)
			}
			if !bytes.Equal(e.slide.Image, s.Image) {
				e.card.SetImage(s.Image)
			}
			e.slide = s
			continue
		}

		id := s.ID
		w.entries[id] = &cardEntry{
			slide: s,
			card: widgets.NewCard(s.Caption, s.Image, func() { w.scratched(id) }),
		}
	}
	for id, e := range w.entries {
		if _, ok := keep[id]; !ok {
			if e.anim != nil {
				e.anim.Stop()
			}
			e.card.Release()
			delete(w.entries, id)
		}
	}
	w.order = order
	w.restack()
}

// ApplyCard implements ports.CardRenderer.
func (w *CarouselWidget) ApplyCard(slide domain.Slide, meta domain.CardMeta) {
	e, ok := w.entries[slide.ID]
	if !ok {
		return
	}
	e.elementID = meta.ElementID
	e.visible = meta.State.Visible
	e.active = meta.State.Active
	e.card.SetActive(e.active)
	if e.visible {
		e.card.Show()
	} else {
		e.card.Hide()
	}
}

// SetCardVar implements ports.CardRenderer. A delta change animates the card
// towards its new position.
func (w *CarouselWidget) SetCardVar(slide domain.Slide, name domain.CardVar, value int) {
	e, ok := w.entries[slide.ID]
	if !ok {
		return
	}

	switch name {
	case domain.VarAbs:
		e.abs = value
		w.restack()
	case domain.VarDelta:
		w.move(e, float32(value))
	}
}

func (w *CarouselWidget) move(e *cardEntry, target float32) {
	if e.anim != nil {
		e.anim.Stop()
		e.anim = nil
	}

	if w.options.ReducedMotion || w.options.Transition <= 0 {
		e.offset = target
		w.track.Refresh()
		return
	}

	from := e.offset
	id := e.slide.ID
	anim := fyneapp.NewAnimation(w.options.Transition, func(p float32) {
		cur, ok := w.entries[id]
		if ok {
			cur.offset = from + (target-from)*p
		}

		w.track.Refresh()
		if ok && p >= 1 {
			w.transitionEnded(id)
		}
	})
	anim.Curve = fyneapp.AnimationEaseInOut
	e.anim = anim
	anim.Start()
}

// transitionEnded reports the end of a card's transform transition on a later turn.
func (w *CarouselWidget) transitionEnded(slideID string) {
	w.later(func() {
		w.mu.Lock()
		fn := w.events.OnTransitionEnd
		w.mu.Unlock()

		if fn != nil {
			fn(domain.TransitionEnd{SlideID: slideID, Property: domain.TransformProperty})
		}
	})
}

func (w *CarouselWidget) scratched(slideID string) {
	w.mu.Lock()
	fn := w.events.OnScratchComplete
	w.mu.Unlock()

	if fn != nil {
		fn(domain.ScratchSignal{SlideID: slideID})
	}
}

// restack orders the track so nearer cards are drawn on top.
func (w *CarouselWidget) restack() {
	ids := append([]string(nil), w.order...)
	sort.SliceStable(ids, func(i, j int) bool {
		return w.entries[ids[i]].abs > w.entries[ids[j]].abs
	})

	objects := make([]fyneapp.CanvasObject, 0, len(ids))
	for _, id := range ids {
		objects = append(objects, w.entries[id].card)
	}
	w.track.Objects = objects
	w.track.Refresh()
}

// SetControls implements ports.Controls.
func (w *CarouselWidget) SetControls(showArrows, showDots bool) {
	if showArrows {
		w.prev.Show()
		w.next.Show()
	} else {
		w.prev.Hide()
		w.next.Hide()
	}
	if showDots {
		w.dots.Show()
	} else {
		w.dots.Hide()
	}
}

// SetDots implements ports.Controls.
func (w *CarouselWidget) SetDots(count, active int) {
	w.dots.Set(count, active)
}

// SetAnnouncement implements ports.LiveRegion.
func (w *CarouselWidget) SetAnnouncement(text string) {
	w.live.SetText(text)
}

// PrefersReducedMotion implements ports.Environment.
func (w *CarouselWidget) PrefersReducedMotion() bool {
	return w.options.ReducedMotion
}

// TransitionStyle implements ports.Environment.
func (w *CarouselWidget) TransitionStyle(domain.Slide) domain.TransitionStyle {
	style := domain.TransitionStyle{FallbackDuration: w.options.FallbackTransition}
	if w.options.Transition > 0 {
		style.Properties = domain.TransformProperty
		style.Durations = fmt.Sprintf("%dms", w.options.Transition.Milliseconds())
		style.Delays = "0s"
	}
	return style
}

// Bind implements ports.View.
func (w *CarouselWidget) Bind(events ports.ViewEvents) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.events = events
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.events = ports.ViewEvents{}
	}
}

// Announcement returns the live region text.
func (w *CarouselWidget) Announcement() string {
	return w.live.Text
}

// CardState returns what the widget shows for a slide.
func (w *CarouselWidget) CardState(slideID string) (visible, active bool, offset float32, ok bool) {
	e, ok := w.entries[slideID]
	if !ok {
		return false, false, 0, false
	}
	return e.visible, e.active, e.offset, true
}

// ElementID returns the element id last applied to a slide's card.
func (w *CarouselWidget) ElementID(slideID string) string {
	if e, ok := w.entries[slideID]; ok {
		return e.elementID
	}
	return ""
}

// trackLayout places cards by their animated offset. The active card is
// centred at full size, neighbours are shifted and scaled down.
type trackLayout struct {
	owner *CarouselWidget
}

const (
	cardWidthRatio = 0.42
	cardStepRatio  = 0.62
	cardShrink     = 0.18
)

// Layout implements fyneapp.Layout.
func (l *trackLayout) Layout(objects []fyneapp.CanvasObject, size fyneapp.Size) {
	baseW := size.Width * cardWidthRatio
	baseH := size.Height
	for _, e := range l.owner.entries {
		dist := e.offset
		if dist < 0 {
			dist = -dist
		}
		scale := 1 - cardShrink*dist
		if scale < 0.3 {
			scale = 0.3
		}

		w, h := baseW*scale, baseH*scale
		x := size.Width/2 + e.offset*baseW*cardStepRatio - w/2
		y := (size.Height - h) / 2

		e.card.Resize(fyneapp.NewSize(w, h))
		e.card.Move(fyneapp.NewPos(x, y))
	}
}

// MinSize implements fyneapp.Layout.
func (l *trackLayout) MinSize([]fyneapp.CanvasObject) fyneapp.Size {
	return fyneapp.NewSize(320, 200)
}

// Verify interface implementation
var _ ports.View = (*CarouselWidget)(nil)
