package fyne

import (
	"testing"
	"time"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/logger"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
	"github.com/tejashwikalptaru/coverflow/internal/service"
)

func newTestWidget(t *testing.T, options CarouselOptions) *CarouselWidget {
	t.Helper()
	test.NewTempApp(t)

	w := NewCarouselWidget(options)
	w.Resize(fyneapp.NewSize(800, 400))
	return w
}

func TestCarouselWidget_SetCardsKeepsCardsByID(t *testing.T) {
	w := newTestWidget(t, CarouselOptions{ReducedMotion: true})

	w.SetCards(memory.NumberedSlides(3))
	first := w.entries["slide-2"].card
	require.Len(t, w.track.Objects, 3)

	slides := memory.NumberedSlides(4)
	slides[1].Caption = "Renamed"
	w.SetCards(slides)

	assert.Same(t, first, w.entries["slide-2"].card, "card with the same ID is reused")
	assert.Equal(t, "Renamed", w.entries["slide-2"].card.Caption())
	assert.Len(t, w.track.Objects, 4)

	w.SetCards(memory.NumberedSlides(1))
	assert.Len(t, w.entries, 1)
	assert.Len(t, w.track.Objects, 1)
}

func TestCarouselWidget_ApplyCardAndSnap(t *testing.T) {
	w := newTestWidget(t, CarouselOptions{ReducedMotion: true})
	slides := memory.NumberedSlides(3)
	w.SetCards(slides)

	state := domain.ComputeCardState(2, 0, 3, domain.HalfWindowRadius)
	w.ApplyCard(slides[2], domain.NewCardMeta("cfc-w", state, 3))
	w.SetCardVar(slides[2], domain.VarDelta, state.Delta)
	w.SetCardVar(slides[2], domain.VarAbs, state.Abs)

	visible, active, offset, ok := w.CardState("slide-3")
	require.True(t, ok)
	assert.True(t, visible)
	assert.False(t, active)
	assert.Equal(t, float32(-1), offset, "reduced motion snaps to the target")
	assert.Equal(t, "cfc-w-slide-2", w.ElementID("slide-3"))

	_, _, _, ok = w.CardState("missing")
	assert.False(t, ok)
	assert.Empty(t, w.ElementID("missing"))
}

func TestCarouselWidget_HiddenCards(t *testing.T) {
	w := newTestWidget(t, CarouselOptions{ReducedMotion: true})
	slides := memory.NumberedSlides(5)
	w.SetCards(slides)

	state := domain.ComputeCardState(2, 0, 5, domain.HalfWindowRadius)
	w.ApplyCard(slides[2], domain.NewCardMeta("cfc-w", state, 5))

	assert.False(t, w.entries["slide-3"].card.Visible())
}

func TestCarouselWidget_ControlsAndDots(t *testing.T) {
	w := newTestWidget(t, CarouselOptions{})

	assert.False(t, w.prev.Visible())
	assert.False(t, w.dots.Visible())

	w.SetControls(true, true)
	assert.True(t, w.prev.Visible())
	assert.True(t, w.next.Visible())
	assert.True(t, w.dots.Visible())

	w.SetDots(4, 2)
	assert.Equal(t, 4, w.dots.Count())
	assert.Equal(t, 2, w.dots.Active())

	w.SetDots(0, 0)
	assert.Equal(t, 0, w.dots.Count())

	w.SetControls(false, false)
	assert.False(t, w.next.Visible())
	assert.False(t, w.dots.Visible())
}

func TestCarouselWidget_Announcement(t *testing.T) {
	w := newTestWidget(t, CarouselOptions{})

	w.SetAnnouncement("Slide 1 of 3")
	assert.Equal(t, "Slide 1 of 3", w.Announcement())
}

func TestCarouselWidget_TransitionStyle(t *testing.T) {
	w := newTestWidget(t, CarouselOptions{Transition: 250 * time.Millisecond, FallbackTransition: "400ms"})

	style := w.TransitionStyle(domain.Slide{})
	assert.Equal(t, domain.TransformProperty, style.Properties)
	assert.Equal(t, "250ms", style.Durations)
	assert.Equal(t, "400ms", style.FallbackDuration)
	assert.Equal(t, 250.0, style.MillisFor(domain.TransformProperty))
	assert.False(t, w.PrefersReducedMotion())

	still := newTestWidget(t, CarouselOptions{ReducedMotion: true})
	assert.Empty(t, still.TransitionStyle(domain.Slide{}).Properties)
	assert.True(t, still.PrefersReducedMotion())
}

func TestCarouselWidget_BindDeliversEvents(t *testing.T) {
	w := newTestWidget(t, CarouselOptions{})
	w.SetCards(memory.NumberedSlides(2))

	var next, prev int
	var scratched []domain.ScratchSignal
	detach := w.Bind(ports.ViewEvents{
		OnNext:            func() { next++ },
		OnPrev:            func() { prev++ },
		OnScratchComplete: func(s domain.ScratchSignal) { scratched = append(scratched, s) },
	})

	test.Tap(w.next)
	test.Tap(w.prev)
	test.Tap(w.prev)
	w.entries["slide-2"].card.TappedSecondary(&fyneapp.PointEvent{})

	assert.Equal(t, 1, next)
	assert.Equal(t, 2, prev)
	require.Len(t, scratched, 1)
	assert.Equal(t, "slide-2", scratched[0].SlideID)
	assert.Nil(t, scratched[0].Percent)

	detach()
	test.Tap(w.next)
	assert.Equal(t, 1, next, "detached callbacks are not called")
}

func TestCarouselWidget_TransitionEndDeliveredLater(t *testing.T) {
	w := newTestWidget(t, CarouselOptions{})

	var queued []func()
	w.later = func(fn func()) { queued = append(queued, fn) }

	var ends []domain.TransitionEnd
	w.Bind(ports.ViewEvents{OnTransitionEnd: func(e domain.TransitionEnd) { ends = append(ends, e) }})

	w.transitionEnded("slide-1")
	assert.Empty(t, ends, "not delivered on the same turn")

	require.Len(t, queued, 1)
	queued[0]()
	assert.Equal(t, []domain.TransitionEnd{{SlideID: "slide-1", Property: domain.TransformProperty}}, ends)
}

// TestCarouselWidget_DrivenByCarousel connects a real carousel to the widget.
func TestCarouselWidget_DrivenByCarousel(t *testing.T) {
	w := newTestWidget(t, CarouselOptions{ReducedMotion: true})

	sched := scheduler.NewManual()
	bus := eventbus.NewSyncEventBus()
	defer bus.Close()

	attrs := memory.NewAttributeStore(map[domain.Attribute]string{
		domain.AttrShowArrows: "",
		domain.AttrShowDots:   "",
	})
	svc := service.NewCarouselService(
		logger.NewTestLogger(), w, memory.NewSlideRepository(memory.NumberedSlides(5)),
		attrs, sched, bus, service.CarouselConfig{ID: "cfc-ui"},
	)
	defer svc.Destroy()

	svc.Connect()
	sched.Flush()

	assert.Equal(t, "Slide 1 of 5", w.Announcement())
	assert.True(t, w.next.Visible())
	assert.Equal(t, 5, w.dots.Count())

	test.Tap(w.next)
	sched.Flush()

	assert.Equal(t, 1, svc.Index())
	assert.False(t, svc.IsAnimating(), "reduced motion releases immediately")
	assert.Equal(t, "Slide 2 of 5", w.Announcement())
	assert.Equal(t, 1, w.dots.Active())

	_, active, offset, ok := w.CardState("slide-2")
	require.True(t, ok)
	assert.True(t, active)
	assert.Equal(t, float32(0), offset)

	visible, _, _, _ := w.CardState("slide-1")
	assert.True(t, visible)
	visible, _, _, _ = w.CardState("slide-5")
	assert.False(t, visible, "only direct neighbours are visible")
}
