// Package domain contains core carousel models and logic with no external dependencies.
// This package defines the fundamental entities of the coverflow carousel.
package domain

import "fmt"

// Slide is one piece of content shown on a card.
// Slides are identified by ID; two slides with the same ID are the same content.
type Slide struct {
	// ID is a stable identifier for the content (e.g. a path relative to the library root)
	ID string

	// Caption is the text shown under the card
	Caption string

	// Source is where the slide came from (file path, URL, ...)
	Source string

	// Image is the raw encoded artwork (PNG, JPEG), may be empty
	Image []byte
}

// Item is one carousel entry: a slide placed at a ring position.
// Identity of an Item is preserved across rebuilds while its slide and position are unchanged.
type Item struct {
	Slide    Slide
	Position int
}

// CardState is the derived visual state of a card for the current index.
type CardState struct {
	Index   int
	Delta   int // signed shortest circular distance from the active index, in (-n/2, n/2]
	Abs     int
	Visible bool
	Active  bool
}

// CardMeta is the metadata written to a card on every layout application.
type CardMeta struct {
	State           CardState
	ElementID       string
	SetSize         int
	PosInSet        int
	Role            string
	RoleDescription string
}

// NewCardMeta builds the metadata for a card of the given carousel instance.
func NewCardMeta(instanceID string, state CardState, setSize int) CardMeta {
	return CardMeta{
		State:           state,
		ElementID:       SlideElementID(instanceID, state.Index),
		SetSize:         setSize,
		PosInSet:        state.Index + 1,
		Role:            "group",
		RoleDescription: "slide",
	}
}

// SlideElementID returns the per-instance element identifier of a card.
func SlideElementID(instanceID string, index int) string {
	return fmt.Sprintf("%s-slide-%d", instanceID, index)
}

// CardVar names a numeric style variable written to a card.
type CardVar string

const (
	// VarDelta carries CardState.Delta
	VarDelta CardVar = "--cfc-delta"

	// VarAbs carries CardState.Abs
	VarAbs CardVar = "--cfc-abs"
)

// TransformProperty is the animated property whose transition gates the lock.
const TransformProperty = "transform"

// TransitionEnd is delivered by the view when a card finishes animating a property.
type TransitionEnd struct {
	SlideID  string
	Property string
}

// ScratchSignal is delivered when a nested scratch-to-reveal gesture completes on a card.
type ScratchSignal struct {
	SlideID string

	// Percent revealed, nil when the gesture did not report it
	Percent *float64
}

// DefaultScratchPercent is used when a scratch signal carries no percent.
const DefaultScratchPercent = 100.0

// Announcement returns the live-region text for the given position.
func Announcement(index, length int) string {
	return fmt.Sprintf("Slide %d of %d", index+1, length)
}
