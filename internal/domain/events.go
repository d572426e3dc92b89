// Package domain defines events for the event-driven architecture.
// Events replace direct callbacks between the carousel and its observers.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	EventReady           EventType = "coverflow-carousel:ready"
	EventChange          EventType = "coverflow-carousel:change"
	EventScratchComplete EventType = "coverflow-carousel:scratch-complete"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// Position is the payload shared by carousel events.
type Position struct {
	CarouselID string
	Index      int
	Length     int
}

// ReadyEvent is published after the carousel (re)built its slides.
type ReadyEvent struct {
	baseEvent
	Position
}

// Type returns the event type.
func (e ReadyEvent) Type() EventType {
	return EventReady
}

// NewReadyEvent creates a new ReadyEvent.
func NewReadyEvent(carouselID string, index, length int) ReadyEvent {
	return ReadyEvent{
		baseEvent: newBaseEvent(),
		Position:  Position{CarouselID: carouselID, Index: index, Length: length},
	}
}

// ChangeEvent is published after a committed index change.
type ChangeEvent struct {
	baseEvent
	Position
}

// Type returns the event type.
func (e ChangeEvent) Type() EventType {
	return EventChange
}

// NewChangeEvent creates a new ChangeEvent.
func NewChangeEvent(carouselID string, index, length int) ChangeEvent {
	return ChangeEvent{
		baseEvent: newBaseEvent(),
		Position:  Position{CarouselID: carouselID, Index: index, Length: length},
	}
}

// ScratchCompleteEvent forwards a completed scratch gesture on one of the cards.
// Index is the card the gesture happened on, not necessarily the active one.
type ScratchCompleteEvent struct {
	baseEvent
	Position
	Percent float64
}

// Type returns the event type.
func (e ScratchCompleteEvent) Type() EventType {
	return EventScratchComplete
}

// NewScratchCompleteEvent creates a new ScratchCompleteEvent.
func NewScratchCompleteEvent(carouselID string, index, length int, percent float64) ScratchCompleteEvent {
	return ScratchCompleteEvent{
		baseEvent: newBaseEvent(),
		Position:  Position{CarouselID: carouselID, Index: index, Length: length},
		Percent:   percent,
	}
}
