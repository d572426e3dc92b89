// Package memory provides in-memory and Fyne-preferences backed repositories.
package memory

import (
	"strconv"
	"sync"

	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
)

// SlideRepository is an in-memory item source. Tests and the simulator
// replace its slides and call Refresh on the carousel.
//
// Thread-safe: All operations protected by sync.RWMutex.
type SlideRepository struct {
	mu     sync.RWMutex
	slides []domain.Slide
	err    error
}

// NewSlideRepository creates a repository holding a copy of slides.
func NewSlideRepository(slides []domain.Slide) *SlideRepository {
	r := &SlideRepository{}
	r.Replace(slides)
	return r
}

// Slides returns a copy of the current slides, or the injected failure.
func (r *SlideRepository) Slides() ([]domain.Slide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.err != nil {
		return nil, r.err
	}
	return append([]domain.Slide(nil), r.slides...), nil
}

// Replace swaps the slides.
func (r *SlideRepository) Replace(slides []domain.Slide) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slides = append([]domain.Slide(nil), slides...)
}

// Fail makes the next Slides calls return err; nil clears it.
func (r *SlideRepository) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// NumberedSlides builds n placeholder slides with IDs "slide-1".."slide-n".
func NumberedSlides(n int) []domain.Slide {
	slides := make([]domain.Slide, n)
	for i := range slides {
		id := "slide-" + strconv.Itoa(i+1)
		slides[i] = domain.Slide{ID: id, Caption: "Slide " + strconv.Itoa(i+1), Source: "memory://" + id}
	}
	return slides
}

// Verify interface implementation
var _ ports.ItemSource = (*SlideRepository)(nil)
