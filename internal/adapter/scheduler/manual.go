package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/tejashwikalptaru/coverflow/internal/ports"
)

// Manual is a virtual-time scheduler. Nothing runs until the owner calls
// Flush or Advance, so tests and the simulator control every turn.
//
// Thread-safe: callbacks are always invoked without the internal lock held.
type Manual struct {
	mu       sync.Mutex
	now      time.Duration
	seq      uint64
	timers   []*manualTimer
	deferred []func()
}

type manualTimer struct {
	owner   *Manual
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// NewManual creates a virtual clock starting at zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc schedules fn at Now()+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) ports.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{owner: m, due: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Defer queues fn for the next Flush.
func (m *Manual) Defer(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deferred = append(m.deferred, fn)
}

// Stop cancels the timer.
func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Now returns the virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Flush runs deferred callbacks until none are left, including callbacks
// deferred while flushing. Returns how many ran.
func (m *Manual) Flush() int {
	ran := 0
	for {
		m.mu.Lock()
		if len(m.deferred) == 0 {
			m.mu.Unlock()
			return ran
		}
		fn := m.deferred[0]
		m.deferred = m.deferred[1:]
		m.mu.Unlock()

		fn()
		ran++
	}
}

// Advance moves the clock forward by d, firing due timers in due order.
// Deferred callbacks are flushed before the first timer and after each one.
// Returns the number of timers fired.
func (m *Manual) Advance(d time.Duration) int {
	m.Flush()

	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	fired := 0
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
		fired++
		m.Flush()
	}

	m.mu.Lock()
	m.now = target
	m.compact()
	m.mu.Unlock()

	return fired
}

// nextDue pops the earliest live timer due at or before target and moves the clock to it.
func (m *Manual) nextDue(target time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due != m.timers[j].due {
			return m.timers[i].due < m.timers[j].due
		}
		return m.timers[i].seq < m.timers[j].seq
	})

	for _, t := range m.timers {
		if t.stopped || t.fired {
			continue
		}
		if t.due > target {
			return nil
		}
		t.fired = true
		m.now = t.due
		return t
	}
	return nil
}

func (m *Manual) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	m.timers = live
}

var _ ports.Scheduler = (*Manual)(nil)
