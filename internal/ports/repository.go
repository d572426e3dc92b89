// Package ports define the content and attribute boundaries of the carousel.
// These interfaces keep the carousel independent of where slides and settings live.
package ports

import (
	"github.com/tejashwikalptaru/coverflow/internal/domain"
)

// ItemSource produces the ordered slides of a carousel.
// The carousel calls Slides on every refresh and matches the result
// positionally against its current items.
type ItemSource interface {
	// Slides returns the current slides in display order.
	// Returns an error if the source cannot be read; the carousel then keeps its previous slides.
	Slides() ([]domain.Slide, error)
}

// AttributeStore is a typed key-value boundary for carousel attributes
// (start-index, index, show-dots, show-arrows, announce-changes).
//
// Thread-safety: Implementations must be thread-safe.
type AttributeStore interface {
	// Get returns the raw value and whether the attribute is present.
	Get(name domain.Attribute) (string, bool)

	// Set writes an attribute. Watchers are notified when the value changes.
	Set(name domain.Attribute, value string) error

	// Watch registers fn to be called with the name of every attribute that changes.
	// The returned function removes the watcher.
	Watch(fn func(name domain.Attribute)) (cancel func())
}
