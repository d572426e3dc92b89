package ports

import "time"

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from firing.
	// Returns false if the callback already fired or was stopped.
	Stop() bool
}

// Scheduler defers work to a later turn of the owner's event loop.
type Scheduler interface {
	// AfterFunc calls fn once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer

	// Defer calls fn on a later turn, after the current call stack unwinds.
	Defer(fn func())
}
