package simulate

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tejashwikalptaru/coverflow/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/ui/mock"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/service"
)

// Options configures a simulated carousel.
type Options struct {
	// Slides is the initial number of numbered slides
	Slides int

	// Attributes are set before the carousel connects
	Attributes map[domain.Attribute]string

	// ReducedMotion makes the view report a reduced-motion preference
	ReducedMotion bool

	// Transition is the card transform duration, e.g. "450ms"; empty means none
	Transition string

	// FallbackTransition is the fallback duration variable of the cards
	FallbackTransition string

	// Lock overrides the lock timing; zero uses the defaults
	Lock service.LockConfig
}

// Runner drives one carousel through a script on a virtual clock.
type Runner struct {
	logger *slog.Logger

	view  *mock.View
	repo  *memory.SlideRepository
	attrs *memory.AttributeStore
	sched *scheduler.Manual
	bus   *eventbus.SyncEventBus
	svc   *service.CarouselService

	mu     sync.Mutex
	events []domain.Event
}

// NewRunner creates a connected carousel over in-memory adapters.
func NewRunner(logger *slog.Logger, opts Options) *Runner {
	r := &Runner{
		logger: logger,
		view:   mock.NewView(),
		repo:   memory.NewSlideRepository(memory.NumberedSlides(opts.Slides)),
		attrs:  memory.NewAttributeStore(opts.Attributes),
		sched:  scheduler.NewManual(),
		bus:    eventbus.NewSyncEventBus(),
	}
	r.bus.SetLogger(logger.With(slog.String("component", "eventbus")))
	r.bus.SubscribeAll(r.record)

	r.view.SetReducedMotion(opts.ReducedMotion)
	r.view.SetTransition(opts.Transition, opts.FallbackTransition)

	r.svc = service.NewCarouselService(
		logger.With(slog.String("service", "carousel")),
		r.view, r.repo, r.attrs, r.sched, r.bus,
		service.CarouselConfig{ID: "cfc-sim", Lock: opts.Lock},
	)
	return r
}

func (r *Runner) record(e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Runner) takeEvents() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

// Carousel returns the simulated carousel.
func (r *Runner) Carousel() *service.CarouselService {
	return r.svc
}

// View returns the recording view.
func (r *Runner) View() *mock.View {
	return r.view
}

// Run connects the carousel and executes steps, one report row per step.
// The first row describes the connect.
func (r *Runner) Run(steps []Step) *Report {
	report := &Report{}

	r.svc.Connect()
	report.Rows = append(report.Rows, r.row(0, "connect"))

	for i, step := range steps {
		r.exec(step)
		report.Rows = append(report.Rows, r.row(i+1, step.Text))
	}
	return report
}

// Close destroys the carousel and closes the bus.
func (r *Runner) Close() error {
	r.svc.Destroy()
	return r.bus.Close()
}

func (r *Runner) exec(step Step) {
	r.logger.Debug("step", slog.String("step", step.Text))

	switch step.Op {
	case OpNext:
		r.view.TapNext()
	case OpPrev:
		r.view.TapPrev()
	case OpGoto:
		r.svc.GoTo(step.Index)
	case OpFinish:
		if slide, ok := r.svc.Current(); ok {
			r.view.FinishTransition(slide.ID, domain.TransformProperty)
		}
	case OpAdvance:
		r.sched.Advance(step.Duration)
	case OpFlush:
		r.sched.Flush()
	case OpResize:
		r.repo.Replace(memory.NumberedSlides(step.Index))
		r.svc.Refresh()
	case OpAttr:
		if step.Remove {
			r.attrs.Remove(step.Attr)
			return
		}
		if err := r.attrs.Set(step.Attr, step.Value); err != nil {
			r.logger.Warn("attribute write failed", slog.String("attr", string(step.Attr)), slog.Any("error", err))
		}
	case OpScratch:
		cards := r.view.Cards()
		if step.Index >= len(cards) {
			r.logger.Debug("scratch on missing card", slog.Int("index", step.Index))
			return
		}
		r.view.ScratchComplete(cards[step.Index].ID, step.Percent)
	case OpDestroy:
		r.svc.Destroy()
	case OpRefresh:
		r.svc.Refresh()
	}
}

func (r *Runner) row(n int, command string) Row {
	count, _ := r.view.Dots()
	return Row{
		Step:         n,
		Command:      command,
		Index:        r.svc.Index(),
		Length:       r.svc.Len(),
		Animating:    r.svc.IsAnimating(),
		Connected:    r.svc.IsConnected(),
		Clock:        r.sched.Now(),
		Pending:      r.sched.Pending(),
		Dots:         count,
		Announcement: r.view.Announcement(),
		Events:       describeEvents(r.takeEvents()),
	}
}

// describeEvents renders events as "change 2/5, scratch-complete 1/5 50%".
func describeEvents(events []domain.Event) string {
	parts := make([]string, 0, len(events))
	for _, e := range events {
		name := strings.TrimPrefix(string(e.Type()), "coverflow-carousel:")
		switch ev := e.(type) {
		case domain.ReadyEvent:
			parts = append(parts, fmt.Sprintf("%s %s", name, position(ev.Position)))
		case domain.ChangeEvent:
			parts = append(parts, fmt.Sprintf("%s %s", name, position(ev.Position)))
		case domain.ScratchCompleteEvent:
			parts = append(parts, fmt.Sprintf("%s %s %g%%", name, position(ev.Position), ev.Percent))
		default:
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ", ")
}

func position(p domain.Position) string {
	if p.Length == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", p.Index+1, p.Length)
}

// Row is the carousel state after one step.
type Row struct {
	Step         int
	Command      string
	Index        int
	Length       int
	Animating    bool
	Connected    bool
	Clock        time.Duration
	Pending      int
	Dots         int
	Announcement string
	Events       string
}
