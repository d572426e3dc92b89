// Package service provides the carousel state machine of Coverflow.
package service

import (
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
)

// CarouselConfig configures a carousel instance.
type CarouselConfig struct {
	// ID prefixes the element ids of the cards; generated when empty
	ID string

	// Lock is the fallback timing of the animation lock
	Lock LockConfig
}

// DefaultCarouselConfig returns a config with a generated ID and default lock timing.
func DefaultCarouselConfig() CarouselConfig {
	return CarouselConfig{Lock: DefaultLockConfig()}
}

// CarouselService orchestrates the carousel: it owns the items and the current
// index, drives the layout engine and the animation lock, and publishes
// ready/change/scratch-complete events.
//
// Commands never fail. Out-of-range indices are normalized; commands issued
// while a transition is in flight, or after Destroy, are dropped.
//
// Thread-safe: state is guarded by a sync.Mutex. Events are published after
// the mutex is released, so handlers may issue new commands.
type CarouselService struct {
	// Dependencies (injected)
	logger    *slog.Logger
	view      ports.View
	source    ports.ItemSource
	attrs     ports.AttributeStore
	scheduler ports.Scheduler
	bus       ports.EventBus

	id     string
	layout *LayoutEngine
	lock   *AnimationLock

	// State
	mu         sync.Mutex
	items      []*domain.Item
	current    int
	connected  bool
	destroyed  bool
	showArrows bool
	showDots   bool

	detachView  func()
	cancelWatch func()

	// reflecting is held while the carousel writes its own index attribute.
	// It is read without mu because store watchers run inside attrs.Set.
	reflecting atomic.Bool
}

// NewCarouselService creates a carousel. Call Connect to bind it to the view.
func NewCarouselService(
	logger *slog.Logger,
	view ports.View,
	source ports.ItemSource,
	attrs ports.AttributeStore,
	scheduler ports.Scheduler,
	bus ports.EventBus,
	cfg CarouselConfig,
) *CarouselService {
	id := cfg.ID
	if id == "" {
		id = "cfc-" + uuid.NewString()[:8]
	}
	lockCfg := cfg.Lock
	if lockCfg == (LockConfig{}) {
		lockCfg = DefaultLockConfig()
	}

	logger = logger.With(slog.String("carousel", id))

	s := &CarouselService{
		logger:    logger,
		view:      view,
		source:    source,
		attrs:     attrs,
		scheduler: scheduler,
		bus:       bus,
		id:        id,
		layout:    NewLayoutEngine(view, id, domain.HalfWindowRadius),
		lock:      NewAnimationLock(logger, view, scheduler, lockCfg),
	}

	logger.Debug("carousel service initialized")
	return s
}

// Connect binds the view and attribute listeners, reads the attributes and
// performs the first refresh. Connecting twice is a no-op.
func (s *CarouselService) Connect() {
	s.mu.Lock()
	if s.connected {
		s.mu.Unlock()
		return
	}
	s.bindLocked()
	s.readControlsLocked()
	out := s.refreshLocked()
	s.mu.Unlock()

	s.settle(out)
}

// GoTo moves to target, normalized onto the ring.
// Dropped while animating, when target is the current index, or with no items.
func (s *CarouselService) GoTo(target int) {
	s.mu.Lock()
	out := s.goToLocked(target)
	s.mu.Unlock()

	s.settle(out)
}

// Next moves one slide forward, wrapping at the end.
func (s *CarouselService) Next() {
	s.mu.Lock()
	out := s.goToLocked(s.current + 1)
	s.mu.Unlock()

	s.settle(out)
}

// Prev moves one slide back, wrapping at the start.
func (s *CarouselService) Prev() {
	s.mu.Lock()
	out := s.goToLocked(s.current - 1)
	s.mu.Unlock()

	s.settle(out)
}

// Refresh rebuilds the items from the item source, recomputes the index and
// re-applies the full layout. A destroyed carousel is re-bound.
func (s *CarouselService) Refresh() {
	s.mu.Lock()
	if !s.connected {
		s.bindLocked()
		s.readControlsLocked()
	}
	out := s.refreshLocked()
	s.mu.Unlock()

	s.settle(out)
}

// AttributeChanged reacts to an external attribute write. Writes made by the
// carousel itself are ignored.
func (s *CarouselService) AttributeChanged(name domain.Attribute) {
	if s.reflecting.Load() {
		return
	}

	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return
	}

	s.logger.Debug("attribute changed", slog.String("name", string(name)))
	s.readControlsLocked()

	raw, present := s.attrs.Get(domain.AttrIndex)
	if v, ok := domain.ReadString(raw, present); ok {
		next := domain.Normalize(domain.ReadInt(v, true, s.current), len(s.items))
		if next != s.current {
			out := s.goToLocked(next)
			s.mu.Unlock()
			s.settle(out)
			return
		}
	}

	text := s.applyLayoutLocked(true)
	s.mu.Unlock()

	s.settle(outcome{announcement: text})
}

// HandleTransitionEnd releases the animation lock when the active card
// finished its transform transition.
func (s *CarouselService) HandleTransitionEnd(ev domain.TransitionEnd) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected || len(s.items) == 0 {
		return
	}
	s.lock.Finish(ev.SlideID, ev.Property, s.items[s.current].Slide.ID)
}

// HandleScratchComplete forwards a completed scratch gesture as a
// scratch-complete event. Signals from unknown slides are dropped.
func (s *CarouselService) HandleScratchComplete(sig domain.ScratchSignal) {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return
	}

	index := -1
	for i, it := range s.items {
		if it.Slide.ID == sig.SlideID {
			index = i
			break
		}
	}
	length := len(s.items)
	s.mu.Unlock()

	if index < 0 {
		s.logger.Debug("scratch signal dropped: unknown slide", slog.String("slide", sig.SlideID))
		return
	}

	percent := domain.DefaultScratchPercent
	if sig.Percent != nil {
		percent = *sig.Percent
	}
	s.bus.Publish(domain.NewScratchCompleteEvent(s.id, index, length, percent))
}

// Destroy stops the fallback timer and detaches every listener.
// It is idempotent; only Refresh or Connect bring the carousel back.
func (s *CarouselService) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed || !s.connected {
		s.destroyed = true
		return
	}

	s.lock.Release()
	if s.detachView != nil {
		s.detachView()
		s.detachView = nil
	}
	if s.cancelWatch != nil {
		s.cancelWatch()
		s.cancelWatch = nil
	}
	s.connected = false
	s.destroyed = true

	s.logger.Debug("carousel destroyed")
}

// ID returns the instance identifier.
func (s *CarouselService) ID() string {
	return s.id
}

// Index returns the current index.
func (s *CarouselService) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Len returns the number of items.
func (s *CarouselService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Current returns the active slide, or false with no items.
func (s *CarouselService) Current() (domain.Slide, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return domain.Slide{}, false
	}
	return s.items[s.current].Slide, true
}

// IsAnimating reports whether a transition holds the animation lock.
func (s *CarouselService) IsAnimating() bool {
	return s.lock.Locked()
}

// IsConnected reports whether listeners are bound.
func (s *CarouselService) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// outcome is what a locked command leaves to do once mu is released.
type outcome struct {
	events       []domain.Event
	announcement string
}

// settle announces and publishes out. Callers must not hold mu: the
// scheduler and subscribers may run synchronously and call back in.
func (s *CarouselService) settle(out outcome) {
	if out.announcement != "" {
		s.announce(out.announcement)
	}
	s.publish(out.events)
}

// goToLocked arms the lock before touching the view, so IsAnimating already
// reports true while the cards are written.
func (s *CarouselService) goToLocked(target int) outcome {
	if !s.connected {
		return outcome{}
	}
	n := len(s.items)
	if n == 0 {
		return outcome{}
	}
	if s.lock.Locked() {
		s.logger.Debug("goTo dropped: animating", slog.Int("target", target))
		return outcome{}
	}

	next := domain.Normalize(target, n)
	if next == s.current {
		return outcome{}
	}

	s.current = next
	s.lock.Arm(&s.items[next].Slide)
	s.reflectIndexLocked()
	text := s.applyLayoutLocked(true)

	return outcome{
		events:       []domain.Event{domain.NewChangeEvent(s.id, next, n)},
		announcement: text,
	}
}

func (s *CarouselService) refreshLocked() outcome {
	slides, err := s.source.Slides()
	if err != nil {
		s.logger.Warn("failed to read slides, keeping previous", slog.Any("error", err))
		slides = make([]domain.Slide, len(s.items))
		for i, it := range s.items {
			slides[i] = it.Slide
		}
	}
	s.rebuildItemsLocked(slides)

	n := len(s.items)
	raw, present := s.attrs.Get(domain.AttrStartIndex)
	base := domain.ReadInt(raw, present, 0)
	raw, present = s.attrs.Get(domain.AttrIndex)
	if v, ok := domain.ReadString(raw, present); ok {
		base = domain.ReadInt(v, true, base)
	}
	s.current = domain.Normalize(base, n)

	s.reflectIndexLocked()

	s.layout.Reset()
	s.layout.Retain(s.items)
	text := s.applyLayoutLocked(true)

	s.logger.Debug("carousel refreshed", slog.Int("index", s.current), slog.Int("length", n))

	return outcome{
		events:       []domain.Event{domain.NewReadyEvent(s.id, s.current, n)},
		announcement: text,
	}
}

// rebuildItemsLocked keeps an Item when the same slide sits at the same position.
func (s *CarouselService) rebuildItemsLocked(slides []domain.Slide) {
	next := make([]*domain.Item, len(slides))
	for i, slide := range slides {
		if i < len(s.items) && s.items[i].Slide.ID == slide.ID {
			it := s.items[i]
			it.Slide = slide
			next[i] = it
			continue
		}
		next[i] = &domain.Item{Slide: slide, Position: i}
	}
	s.items = next
	s.view.SetCards(slides)
}

// applyLayoutLocked writes the layout and returns the announcement to make
// once mu is released, or "" when there is nothing to announce.
func (s *CarouselService) applyLayoutLocked(announce bool) string {
	n := len(s.items)
	if n == 0 {
		s.view.SetDots(0, 0)
		return ""
	}

	s.layout.Apply(s.items, s.current)

	dots := 0
	if s.showDots {
		dots = n
	}
	s.view.SetDots(dots, s.current)

	if announce && s.announceEnabledLocked() {
		return domain.Announcement(s.current, n)
	}
	return ""
}

// announce clears the live region now and writes text on the next turn,
// so a repeated identical text is still observed as a change.
// It takes mu inside the deferred func and must be called without it.
func (s *CarouselService) announce(text string) {
	s.view.SetAnnouncement("")
	s.scheduler.Defer(func() {
		s.mu.Lock()
		dead := s.destroyed
		s.mu.Unlock()

		if !dead {
			s.view.SetAnnouncement(text)
		}
	})
}

func (s *CarouselService) announceEnabledLocked() bool {
	raw, present := s.attrs.Get(domain.AttrAnnounceChanges)
	return domain.ReadBool(raw, present, true)
}

func (s *CarouselService) readControlsLocked() {
	raw, present := s.attrs.Get(domain.AttrShowArrows)
	s.showArrows = domain.ReadBool(raw, present, false)
	raw, present = s.attrs.Get(domain.AttrShowDots)
	s.showDots = domain.ReadBool(raw, present, false)

	s.view.SetControls(s.showArrows, s.showDots)
}

func (s *CarouselService) reflectIndexLocked() {
	s.reflecting.Store(true)
	defer s.reflecting.Store(false)

	if err := s.attrs.Set(domain.AttrIndex, strconv.Itoa(s.current)); err != nil {
		s.logger.Warn("failed to reflect index", slog.Any("error", err))
	}
}

func (s *CarouselService) bindLocked() {
	s.detachView = s.view.Bind(ports.ViewEvents{
		OnPrev:            s.Prev,
		OnNext:            s.Next,
		OnTransitionEnd:   s.HandleTransitionEnd,
		OnScratchComplete: s.HandleScratchComplete,
	})
	s.cancelWatch = s.attrs.Watch(s.AttributeChanged)
	s.connected = true
	s.destroyed = false
}

func (s *CarouselService) publish(events []domain.Event) {
	for _, e := range events {
		s.bus.Publish(e)
	}
}
