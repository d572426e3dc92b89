package fyne

import (
	"fmt"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Window defaults.
const (
	APPNAME = "Coverflow"
	WIDTH   = 900
	HEIGHT  = 560
)

// MainWindow is the main UI window implementing the UIView interface.
// It hosts the carousel widget and forwards keyboard and menu input to the Presenter.
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All carousel logic is in the CarouselService, reached through the Presenter
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window

	// UI components
	carousel *CarouselWidget
	status   *widget.Label

	// Lifecycle management
	closeOnce     sync.Once
	onBeforeClose func()

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates a new main window around the carousel widget.
func NewMainWindow(app fyneapp.App, carousel *CarouselWidget) *MainWindow {
	w := &MainWindow{
		app:      app,
		carousel: carousel,
	}

	w.window = app.NewWindow(APPNAME)
	w.buildUI()
	w.window.Resize(fyneapp.NewSize(WIDTH, HEIGHT))

	w.window.SetCloseIntercept(func() {
		if w.onBeforeClose != nil {
			w.onBeforeClose()
		}
		w.window.Close()
	})

	return w
}

// SetPresenter connects the presenter to this view.
// This must be called before showing the window.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.addShortcuts()
}

// SetOnBeforeClose registers a callback run before the window closes.
func (w *MainWindow) SetOnBeforeClose(fn func()) {
	w.onBeforeClose = fn
}

func (w *MainWindow) buildUI() {
	w.status = widget.NewLabel("")
	w.status.Alignment = fyneapp.TextAlignCenter
	w.status.Truncation = fyneapp.TextTruncateEllipsis
	w.status.TextStyle = fyneapp.TextStyle{Bold: true}

	content := container.NewBorder(nil, w.status, nil, nil, w.carousel)
	w.window.SetContent(container.NewPadded(content))
	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

func (w *MainWindow) createMenu() []*fyneapp.Menu {
	openFolder := fyneapp.NewMenuItem("Open Folder", w.handleOpenFolder)
	reload := fyneapp.NewMenuItem("Reload", func() {
		if w.presenter != nil {
			w.presenter.OnReload()
		}
	})
	exit := fyneapp.NewMenuItem("Exit", func() {
		w.window.Close()
	})

	file := fyneapp.NewMenu("File", openFolder, reload, fyneapp.NewMenuItemSeparator(), exit)
	return []*fyneapp.Menu{file}
}

func (w *MainWindow) handleOpenFolder() {
	if w.presenter == nil {
		return
	}

	d := NewFolderDialog(w.window, func(folderPath string) {
		if err := w.presenter.OnFolderOpened(folderPath); err != nil {
			dialog.ShowError(fmt.Errorf("failed to open folder: %w", err), w.window)
		}
	}, w.presenter.logger)
	d.Show()
}

// addShortcuts wires arrow keys and Ctrl+R.
func (w *MainWindow) addShortcuts() {
	w.window.Canvas().SetOnTypedKey(w.handleKey)

	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyR,
		Modifier: fyneapp.KeyModifierShortcutDefault,
	}, func(fyneapp.Shortcut) {
		w.presenter.OnReload()
	})
}

func (w *MainWindow) handleKey(ev *fyneapp.KeyEvent) {
	if w.presenter == nil {
		return
	}
	switch ev.Name {
	case fyneapp.KeyLeft:
		w.presenter.OnPrevKey()
	case fyneapp.KeyRight:
		w.presenter.OnNextKey()
	case fyneapp.KeyHome:
		w.presenter.OnFirstKey()
	case fyneapp.KeyEnd:
		w.presenter.OnLastKey()
	}
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window. It's safe to call multiple times (idempotent).
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		w.window.Close()
	})
}

// GetWindow returns the underlying Fyne window.
func (w *MainWindow) GetWindow() fyneapp.Window {
	return w.window
}

// UIView interface implementation

// SetTitle updates the window title.
func (w *MainWindow) SetTitle(title string) {
	w.window.SetTitle(title)
}

// SetStatus updates the status line.
func (w *MainWindow) SetStatus(text string) {
	w.status.SetText(text)
}

// Status returns the status line text.
func (w *MainWindow) Status() string {
	return w.status.Text
}

// ShowNotification displays a system notification.
func (w *MainWindow) ShowNotification(title, message string) {
	w.app.SendNotification(fyneapp.NewNotification(title, message))
}

// Verify UIView implementation
var _ UIView = (*MainWindow)(nil)
