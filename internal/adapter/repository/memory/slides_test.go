package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
)

func TestSlideRepository_ReturnsCopy(t *testing.T) {
	repo := NewSlideRepository(NumberedSlides(3))

	slides, err := repo.Slides()
	require.NoError(t, err)
	require.Len(t, slides, 3)

	slides[0].ID = "mutated"

	again, err := repo.Slides()
	require.NoError(t, err)
	assert.Equal(t, "slide-1", again[0].ID)
}

func TestSlideRepository_Replace(t *testing.T) {
	repo := NewSlideRepository(NumberedSlides(5))
	repo.Replace([]domain.Slide{{ID: "a"}})

	slides, err := repo.Slides()
	require.NoError(t, err)
	assert.Equal(t, []domain.Slide{{ID: "a"}}, slides)
}

func TestSlideRepository_Fail(t *testing.T) {
	repo := NewSlideRepository(NumberedSlides(1))
	boom := errors.New("boom")

	repo.Fail(boom)
	_, err := repo.Slides()
	assert.ErrorIs(t, err, boom)

	repo.Fail(nil)
	_, err = repo.Slides()
	assert.NoError(t, err)
}

func TestNumberedSlides(t *testing.T) {
	slides := NumberedSlides(2)

	assert.Equal(t, "slide-1", slides[0].ID)
	assert.Equal(t, "Slide 2", slides[1].Caption)
	assert.Empty(t, NumberedSlides(0))
}
