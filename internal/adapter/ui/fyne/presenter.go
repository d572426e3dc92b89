// Package fyne provides Fyne UI adapter implementations.
// This package implements the carousel view and its window using the Fyne toolkit.
package fyne

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
	"github.com/tejashwikalptaru/coverflow/internal/service"
)

// UIView defines the window chrome the presenter updates.
// The actual UI implementation (MainWindow) must implement this interface.
type UIView interface {
	// SetTitle updates the window title
	SetTitle(title string)

	// SetStatus updates the status line under the carousel
	SetStatus(text string)

	// ShowNotification displays a system notification
	ShowNotification(title, message string)
}

// Presenter implements the Presenter pattern (MVP architecture).
// It maps carousel events to window updates and translates window commands
// (keyboard shortcuts, menu items) into carousel operations.
//
// Thread-safety: All operations are thread-safe via sync.Mutex.
type Presenter struct {
	// Dependencies
	logger   *slog.Logger
	carousel *service.CarouselService
	bus      ports.EventBus
	view     UIView

	// openFolder switches the carousel to another library folder
	openFolder func(path string) error

	mu            sync.Mutex
	subscriptions []domain.SubscriptionID
	shutdownOnce  sync.Once
}

// NewPresenter creates a presenter and subscribes it to carousel events.
// openFolder may be nil when the slide source is fixed.
func NewPresenter(
	logger *slog.Logger,
	carousel *service.CarouselService,
	bus ports.EventBus,
	view UIView,
	openFolder func(path string) error,
) *Presenter {
	p := &Presenter{
		logger:     logger,
		carousel:   carousel,
		bus:        bus,
		view:       view,
		openFolder: openFolder,
	}

	p.subscribeToEvents()
	return p
}

func (p *Presenter) subscribeToEvents() {
	subscriptions := []struct {
		eventType domain.EventType
		handler   domain.EventHandler
	}{
		{domain.EventReady, p.onReady},
		{domain.EventChange, p.onChange},
		{domain.EventScratchComplete, p.onScratchComplete},
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range subscriptions {
		p.subscriptions = append(p.subscriptions, p.bus.Subscribe(s.eventType, s.handler))
	}
}

// Event handlers

func (p *Presenter) onReady(event domain.Event) {
	e, ok := event.(domain.ReadyEvent)
	if !ok {
		return
	}
	if e.Length == 0 {
		p.view.SetTitle(APPNAME)
		p.view.SetStatus("No slides")
		return
	}
	p.showPosition(e.Position)
}

func (p *Presenter) onChange(event domain.Event) {
	e, ok := event.(domain.ChangeEvent)
	if !ok {
		return
	}
	p.showPosition(e.Position)
}

func (p *Presenter) onScratchComplete(event domain.Event) {
	e, ok := event.(domain.ScratchCompleteEvent)
	if !ok {
		return
	}
	p.view.ShowNotification("Slide revealed",
		fmt.Sprintf("Slide %d of %d revealed (%.0f%%)", e.Index+1, e.Length, e.Percent))
}

func (p *Presenter) showPosition(pos domain.Position) {
	p.view.SetTitle(fmt.Sprintf("%s (%d/%d)", APPNAME, pos.Index+1, pos.Length))

	if slide, ok := p.carousel.Current(); ok && slide.Caption != "" {
		p.view.SetStatus(slide.Caption)
		return
	}
	p.view.SetStatus(domain.Announcement(pos.Index, pos.Length))
}

// User commands

// OnNextKey handles the right arrow key.
func (p *Presenter) OnNextKey() {
	p.carousel.Next()
}

// OnPrevKey handles the left arrow key.
func (p *Presenter) OnPrevKey() {
	p.carousel.Prev()
}

// OnFirstKey handles the Home key.
func (p *Presenter) OnFirstKey() {
	p.carousel.GoTo(0)
}

// OnLastKey handles the End key.
func (p *Presenter) OnLastKey() {
	p.carousel.GoTo(p.carousel.Len() - 1)
}

// OnReload handles the Reload menu item.
func (p *Presenter) OnReload() {
	p.logger.Debug("reload requested")
	p.carousel.Refresh()
}

// OnFolderOpened switches the library to folderPath.
func (p *Presenter) OnFolderOpened(folderPath string) error {
	if p.openFolder == nil {
		return domain.NewValidationError("library.path", folderPath, "library folder cannot be changed")
	}
	if err := p.openFolder(folderPath); err != nil {
		p.logger.Warn("failed to open folder", slog.String("path", folderPath), slog.Any("error", err))
		return err
	}
	return nil
}

// Shutdown unsubscribes from the event bus. Safe to call multiple times.
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		for _, id := range p.subscriptions {
			p.bus.Unsubscribe(id)
		}
		p.subscriptions = nil
		p.logger.Debug("presenter shut down")
	})
}
