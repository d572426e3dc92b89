// Package ports define the view interfaces of the carousel.
// These interfaces let the carousel drive any renderer without depending on Fyne directly.
package ports

import (
	"github.com/tejashwikalptaru/coverflow/internal/domain"
)

// CardRenderer applies layout results to cards.
//
// Its methods run while the carousel holds its state lock. An implementation
// must not invoke bound ViewEvents callbacks synchronously from inside them;
// queue the callback onto the event loop instead.
type CardRenderer interface {
	// SetCards replaces the card list. Cards whose slide ID is unchanged are kept.
	SetCards(slides []domain.Slide)

	// ApplyCard writes visibility, active flag and position metadata to a card.
	ApplyCard(slide domain.Slide, meta domain.CardMeta)

	// SetCardVar writes a numeric style variable to a card.
	// The carousel only calls this when the value differs from the last write.
	SetCardVar(slide domain.Slide, name domain.CardVar, value int)
}

// Controls renders the navigation chrome around the cards.
type Controls interface {
	// SetControls shows or hides the arrow buttons and the dots row.
	SetControls(showArrows, showDots bool)

	// SetDots rebuilds the dots row with count dots and highlights active.
	// A count of zero removes all dots.
	SetDots(count, active int)
}

// LiveRegion is the polite announcement boundary (a screen reader live region).
type LiveRegion interface {
	SetAnnouncement(text string)
}

// Environment answers motion-related queries about the rendering environment.
type Environment interface {
	// PrefersReducedMotion reports if the user asked for reduced motion.
	PrefersReducedMotion() bool

	// TransitionStyle returns the configured transition of the card showing slide.
	TransitionStyle(slide domain.Slide) domain.TransitionStyle
}

// ViewEvents are the callbacks a view delivers to the carousel.
// Nil fields are ignored.
type ViewEvents struct {
	OnPrev            func()
	OnNext            func()
	OnTransitionEnd   func(domain.TransitionEnd)
	OnScratchComplete func(domain.ScratchSignal)
}

// View is everything the carousel needs from its renderer.
//
// Thread-safety: Bound callbacks must not be invoked while the view holds
// a lock that its own methods need; the carousel may call back into the
// view from inside a callback.
type View interface {
	CardRenderer
	Controls
	LiveRegion
	Environment

	// Bind attaches the carousel's callbacks. The returned function detaches them.
	Bind(events ViewEvents) (detach func())
}
