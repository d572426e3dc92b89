// Package scheduler provides implementations of the Scheduler interface.
package scheduler

import (
	"time"

	"github.com/tejashwikalptaru/coverflow/internal/ports"
)

// Realtime schedules callbacks on wall-clock time.
// Every callback is handed to the dispatch function, which moves it onto the
// owner's event loop (fyne.Do for the desktop view).
type Realtime struct {
	dispatch func(func())
}

// NewRealtime creates a wall-clock scheduler. A nil dispatch runs callbacks
// on the timer or Defer goroutine.
func NewRealtime(dispatch func(func())) *Realtime {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Realtime{dispatch: dispatch}
}

// AfterFunc calls fn through the dispatch function once d has elapsed.
func (r *Realtime) AfterFunc(d time.Duration, fn func()) ports.Timer {
	return time.AfterFunc(d, func() { r.dispatch(fn) })
}

// Defer hands fn to the dispatch function from a new goroutine and returns
// at once, even when dispatch itself runs fn synchronously.
func (r *Realtime) Defer(fn func()) {
	go r.dispatch(fn)
}

var _ ports.Scheduler = (*Realtime)(nil)
