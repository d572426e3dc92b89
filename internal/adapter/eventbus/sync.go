// Package eventbus provides implementations of the EventBus interface.
// This package contains the synchronous event bus implementation.
package eventbus

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
)

// ErrClosed is returned by Close when the bus is already closed.
var ErrClosed = errors.New("event bus already closed")

// SyncEventBus delivers events synchronously, on the publisher's goroutine,
// in subscription order. Wildcard subscribers run after typed ones.
//
// Thread-safety: This implementation is thread-safe. Handlers run without the
// bus lock held, so a handler may publish or (un)subscribe.
type SyncEventBus struct {
	logger *slog.Logger

	mu     sync.RWMutex
	subs   []subscription
	nextID uint64
	closed bool
}

// a subscription with an empty eventType receives every event.
type subscription struct {
	id        domain.SubscriptionID
	eventType domain.EventType
	handler   domain.EventHandler
}

// NewSyncEventBus creates a new synchronous event bus.
func NewSyncEventBus() *SyncEventBus {
	return &SyncEventBus{}
}

// SetLogger sets the logger used to report panicking handlers.
func (bus *SyncEventBus) SetLogger(logger *slog.Logger) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.logger = logger
}

// Publish delivers event to its typed subscribers, then to wildcard subscribers.
// Publishing on a closed bus or publishing nil is a no-op.
//
// Panics in handlers are recovered and logged, the remaining handlers still run.
func (bus *SyncEventBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	bus.mu.RLock()
	if bus.closed {
		bus.mu.RUnlock()
		return
	}
	typed := make([]subscription, 0, len(bus.subs))
	var wildcard []subscription
	for _, sub := range bus.subs {
		switch sub.eventType {
		case event.Type():
			typed = append(typed, sub)
		case "":
			wildcard = append(wildcard, sub)
		}
	}
	logger := bus.logger
	bus.mu.RUnlock()

	for _, sub := range append(typed, wildcard...) {
		bus.deliver(logger, sub, event)
	}
}

func (bus *SyncEventBus) deliver(logger *slog.Logger, sub subscription, event domain.Event) {
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Error("event handler panicked",
				slog.Any("panic", r),
				slog.String("event_type", string(event.Type())),
				slog.String("subscription", string(sub.id)))
		}
	}()

	sub.handler(event)
}

// Subscribe registers a handler for events of the specified type.
// Panics if the handler is nil or the bus is closed.
func (bus *SyncEventBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	if eventType == "" {
		panic("event type cannot be empty, use SubscribeAll")
	}
	return bus.add(eventType, handler, "sub")
}

// SubscribeAll registers a handler that receives all events regardless of type.
func (bus *SyncEventBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	return bus.add("", handler, "sub-all")
}

func (bus *SyncEventBus) add(eventType domain.EventType, handler domain.EventHandler, prefix string) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	bus.nextID++
	id := domain.SubscriptionID(fmt.Sprintf("%s-%d", prefix, bus.nextID))
	bus.subs = append(bus.subs, subscription{id: id, eventType: eventType, handler: handler})

	return id
}

// Unsubscribe removes a previously registered event handler, keeping the
// order of the others. Unknown IDs are ignored.
func (bus *SyncEventBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	for i, sub := range bus.subs {
		if sub.id == id {
			bus.subs = append(bus.subs[:i:i], bus.subs[i+1:]...)
			return
		}
	}
}

// HasSubscribers returns true if an event of the given type would reach any handler.
func (bus *SyncEventBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, sub := range bus.subs {
		if sub.eventType == eventType || sub.eventType == "" {
			return true
		}
	}
	return false
}

// Close drops all subscriptions. Later publishes are ignored.
// Returns ErrClosed if already closed.
func (bus *SyncEventBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return ErrClosed
	}

	bus.closed = true
	bus.subs = nil

	return nil
}

// SubscriberCount returns the number of active subscriptions.
func (bus *SyncEventBus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	return len(bus.subs)
}

// Verify that SyncEventBus implements the EventBus interface
var _ ports.EventBus = (*SyncEventBus)(nil)
