// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/library"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/scheduler"
	fyneui "github.com/tejashwikalptaru/coverflow/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/logger"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
	"github.com/tejashwikalptaru/coverflow/internal/service"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	config Config

	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App

	// Infrastructure
	eventBus  ports.EventBus
	scheduler *scheduler.Realtime
	eventLog  domain.SubscriptionID

	// Repositories
	attrs  *memory.PreferencesAttributeStore
	slides *switchSource

	// Library watching
	ctx     context.Context
	cancel  context.CancelFunc
	watchMu sync.Mutex
	watcher *library.Watcher

	// Services
	carousel *service.CarouselService

	// UI
	widget     *fyneui.CarouselWidget
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow

	shutdownOnce sync.Once
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	app := &Application{config: config}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	// Step 1: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 1.5: Create logger
	app.logger = logger.NewLogger(logger.Config{
		Level:  config.LogLevel(),
		Format: config.Log.Format,
	})
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("app_name", config.AppName),
		slog.String("version", GetVersionInfo().FullString()))

	// Step 2: Create an event bus; every event is logged at debug
	syncBus := eventbus.NewSyncEventBus()
	syncBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus = syncBus
	eventLogger := app.logger.With(slog.String("component", "events"))
	app.eventLog = syncBus.SubscribeAll(func(e domain.Event) {
		eventLogger.Debug("event", slog.String("type", string(e.Type())))
	})

	// Step 3: Timers run on the Fyne main goroutine
	app.scheduler = scheduler.NewRealtime(fyne.Do)

	// Step 4: Create repositories
	app.attrs = memory.NewPreferencesAttributeStore(app.fyneApp.Preferences(), "main")
	if err := app.seedAttributes(); err != nil {
		return nil, fmt.Errorf("failed to seed carousel attributes: %w", err)
	}

	source, err := app.newSource(config.Library.Path)
	if err != nil {
		return nil, err
	}
	app.slides = &switchSource{current: source}

	// Step 5: Create the view and the carousel
	app.widget = fyneui.NewCarouselWidget(fyneui.CarouselOptions{
		ReducedMotion:      config.Carousel.ReducedMotion,
		Transition:         config.Carousel.Transition,
		FallbackTransition: config.Carousel.FallbackTransition,
	})

	lockCfg := service.DefaultLockConfig()
	lockCfg.BufferMs = float64(config.Carousel.FallbackBuffer.Milliseconds())
	app.carousel = service.NewCarouselService(
		app.logger.With(slog.String("service", "carousel")),
		app.widget,
		app.slides,
		app.attrs,
		app.scheduler,
		app.eventBus,
		service.CarouselConfig{Lock: lockCfg},
	)

	// Step 6: Create UI
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp, app.widget)

	// Step 7: Create Presenter and wire with UI
	app.presenter = fyneui.NewPresenter(
		app.logger.With(slog.String("component", "presenter")),
		app.carousel,
		app.eventBus,
		app.mainWindow,
		app.OpenFolder,
	)
	app.mainWindow.SetPresenter(app.presenter)
	app.mainWindow.SetOnBeforeClose(app.stopWatcher)

	// Step 8: Connect the carousel and start watching the library
	app.carousel.Connect()
	if err := app.startWatcher(config.Library.Path); err != nil {
		// Non-fatal - the library can still be reloaded by hand
		app.logger.Warn("failed to watch library", slog.Any("error", err))
	}

	return app, nil
}

// seedAttributes writes the configured attributes. The index attribute is
// left alone so the last position survives restarts.
func (a *Application) seedAttributes() error {
	c := a.config.Carousel
	values := []struct {
		name  domain.Attribute
		value string
	}{
		{domain.AttrStartIndex, strconv.Itoa(c.StartIndex)},
		{domain.AttrShowDots, strconv.FormatBool(c.ShowDots)},
		{domain.AttrShowArrows, strconv.FormatBool(c.ShowArrows)},
		{domain.AttrAnnounceChanges, strconv.FormatBool(c.AnnounceChanges)},
	}
	for _, v := range values {
		if err := a.attrs.Set(v.name, v.value); err != nil {
			return err
		}
	}
	return nil
}

func (a *Application) newSource(path string) (ports.ItemSource, error) {
	if path == "" {
		return memory.NewSlideRepository(memory.NumberedSlides(a.config.Library.Placeholders)), nil
	}
	src := library.NewDirSource(a.logger, path)
	if _, err := src.Slides(); err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	return src, nil
}

// OpenFolder switches the carousel to the slides under path.
func (a *Application) OpenFolder(path string) error {
	src, err := a.newSource(path)
	if err != nil {
		return err
	}

	a.stopWatcher()
	a.slides.set(src)
	a.carousel.Refresh()

	if err := a.startWatcher(path); err != nil {
		a.logger.Warn("failed to watch library", slog.String("path", path), slog.Any("error", err))
	}
	a.logger.Info("library opened", slog.String("path", path))
	return nil
}

func (a *Application) startWatcher(path string) error {
	if path == "" || !a.config.Library.Watch {
		return nil
	}

	w, err := library.NewWatcher(a.logger, path, a.config.Library.Debounce, func() {
		fyne.Do(a.carousel.Refresh)
	})
	if err != nil {
		return err
	}
	if err := w.Start(a.ctx); err != nil {
		_ = w.Close()
		return err
	}

	a.watchMu.Lock()
	a.watcher = w
	a.watchMu.Unlock()
	return nil
}

func (a *Application) stopWatcher() {
	a.watchMu.Lock()
	w := a.watcher
	a.watcher = nil
	a.watchMu.Unlock()

	if w != nil {
		if err := w.Close(); err != nil {
			a.logger.Warn("failed to close library watcher", slog.Any("error", err))
		}
	}
}

// Run starts the application.
// This is called from main.go after the application is created.
func (a *Application) Run() {
	a.logger.Info("Coverflow started", slog.Int("slides", a.carousel.Len()))

	// Show and run UI (blocks until the window is closed)
	a.mainWindow.ShowAndRun()
}

// Shutdown gracefully shuts down the application. Safe to call multiple times.
func (a *Application) Shutdown() error {
	var err error
	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		a.stopWatcher()
		a.cancel()

		if a.presenter != nil {
			a.presenter.Shutdown()
		}
		if a.carousel != nil {
			a.carousel.Destroy()
		}

		a.eventBus.Unsubscribe(a.eventLog)
		if closeErr := a.eventBus.Close(); closeErr != nil {
			err = fmt.Errorf("failed to close event bus: %w", closeErr)
		}

		a.logger.Info("application shutdown complete")
	})
	return err
}

// Carousel returns the carousel service.
func (a *Application) Carousel() *service.CarouselService {
	return a.carousel
}

// Widget returns the carousel widget.
func (a *Application) Widget() *fyneui.CarouselWidget {
	return a.widget
}

// Window returns the main window.
func (a *Application) Window() *fyneui.MainWindow {
	return a.mainWindow
}

// GetEventBus returns the event bus.
func (a *Application) GetEventBus() ports.EventBus {
	return a.eventBus
}

// GetFyneApp returns the Fyne application.
func (a *Application) GetFyneApp() fyne.App {
	return a.fyneApp
}

// switchSource is an item source whose backing source can be replaced at runtime.
type switchSource struct {
	mu      sync.RWMutex
	current ports.ItemSource
}

func (s *switchSource) set(src ports.ItemSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = src
}

// Slides implements ports.ItemSource.
func (s *switchSource) Slides() ([]domain.Slide, error) {
	s.mu.RLock()
	src := s.current
	s.mu.RUnlock()
	return src.Slides()
}

var _ ports.ItemSource = (*switchSource)(nil)
