package library

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
)

// Watcher reports debounced changes to the slides of a directory tree.
// A burst of filesystem events results in a single onChange call once the
// tree has been quiet for the debounce delay.
type Watcher struct {
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
	delay    time.Duration
	onChange func()

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewWatcher watches root and its non-hidden subdirectories.
func NewWatcher(logger *slog.Logger, root string, delay time.Duration, onChange func()) (*Watcher, error) {
	if err := checkDir(root); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, domain.NewSourceError("watch", root, err)
	}

	w := &Watcher{
		logger:   logger.With(slog.String("component", "library-watcher")),
		fsw:      fsw,
		delay:    delay,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	if err := w.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return fs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return domain.NewSourceError("watch", path, err)
		}
		return nil
	})
}

// Start processes filesystem events until ctx is done or Close is called.
// Returns domain.ErrWatcherClosed after Close.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return domain.ErrWatcherClosed
	}
	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if isHidden(filepath.Base(event.Name)) {
		return
	}

	relevant := IsSupported(event.Name)
	switch {
	case event.Has(fsnotify.Create):
		// New directories are watched too; their contents arrive as later events.
		if err := w.addRecursive(event.Name); err == nil && !relevant {
			relevant = checkDir(event.Name) == nil
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// A removed directory may have held slides.
		relevant = relevant || filepath.Ext(event.Name) == ""
	case event.Has(fsnotify.Chmod):
		return
	}

	if !relevant {
		return
	}

	w.logger.Debug("library changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
	w.schedule()
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	closed := w.closed
	w.timer = nil
	w.mu.Unlock()

	if !closed && w.onChange != nil {
		w.onChange()
	}
}

// Close stops watching. Pending debounced notifications are dropped.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()

		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}
