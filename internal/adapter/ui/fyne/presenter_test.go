package fyne

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/coverflow/internal/adapter/ui/mock"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/logger"
	"github.com/tejashwikalptaru/coverflow/internal/service"
)

// recordingView is a UIView that remembers what the presenter showed.
type recordingView struct {
	mu            sync.Mutex
	title         string
	status        string
	notifications []string
}

func (v *recordingView) SetTitle(title string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.title = title
}

func (v *recordingView) SetStatus(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = text
}

func (v *recordingView) ShowNotification(title, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notifications = append(v.notifications, title+": "+message)
}

func (v *recordingView) snapshot() (string, string, []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.title, v.status, append([]string(nil), v.notifications...)
}

type presenterFixture struct {
	cards *mock.View
	repo  *memory.SlideRepository
	bus   *eventbus.SyncEventBus
	svc   *service.CarouselService
	view  *recordingView
	p     *Presenter
}

func newPresenterFixture(t *testing.T, n int, openFolder func(string) error) *presenterFixture {
	t.Helper()

	f := &presenterFixture{
		cards: mock.NewView(),
		repo:  memory.NewSlideRepository(memory.NumberedSlides(n)),
		bus:   eventbus.NewSyncEventBus(),
		view:  &recordingView{},
	}
	f.cards.SetReducedMotion(true)
	f.svc = service.NewCarouselService(
		logger.NewTestLogger(), f.cards, f.repo, memory.NewAttributeStore(nil),
		scheduler.NewManual(), f.bus, service.CarouselConfig{ID: "cfc-p"},
	)
	f.p = NewPresenter(logger.NewTestLogger(), f.svc, f.bus, f.view, openFolder)

	t.Cleanup(func() {
		f.p.Shutdown()
		f.svc.Destroy()
		_ = f.bus.Close()
	})
	return f
}

func TestPresenter_ReadyShowsPosition(t *testing.T) {
	f := newPresenterFixture(t, 3, nil)

	f.svc.Connect()

	title, status, _ := f.view.snapshot()
	assert.Equal(t, "Coverflow (1/3)", title)
	assert.Equal(t, "Slide 1", status, "status shows the caption of the active slide")
}

func TestPresenter_EmptyCarousel(t *testing.T) {
	f := newPresenterFixture(t, 0, nil)

	f.svc.Connect()

	title, status, _ := f.view.snapshot()
	assert.Equal(t, APPNAME, title)
	assert.Equal(t, "No slides", status)
}

func TestPresenter_KeysNavigate(t *testing.T) {
	f := newPresenterFixture(t, 4, nil)
	f.svc.Connect()

	f.p.OnNextKey()
	assert.Equal(t, 1, f.svc.Index())
	title, _, _ := f.view.snapshot()
	assert.Equal(t, "Coverflow (2/4)", title)

	f.p.OnPrevKey()
	f.p.OnPrevKey()
	assert.Equal(t, 3, f.svc.Index(), "prev wraps around")

	f.p.OnFirstKey()
	assert.Equal(t, 0, f.svc.Index())

	f.p.OnLastKey()
	assert.Equal(t, 3, f.svc.Index())
	_, status, _ := f.view.snapshot()
	assert.Equal(t, "Slide 4", status)
}

func TestPresenter_StatusFallsBackToAnnouncement(t *testing.T) {
	f := newPresenterFixture(t, 2, nil)
	slides := memory.NumberedSlides(2)
	slides[0].Caption = ""
	f.repo.Replace(slides)

	f.svc.Connect()

	_, status, _ := f.view.snapshot()
	assert.Equal(t, "Slide 1 of 2", status)
}

func TestPresenter_Reload(t *testing.T) {
	f := newPresenterFixture(t, 2, nil)
	f.svc.Connect()

	f.repo.Replace(memory.NumberedSlides(5))
	f.p.OnReload()

	assert.Equal(t, 5, f.svc.Len())
	title, _, _ := f.view.snapshot()
	assert.Equal(t, "Coverflow (1/5)", title)
}

func TestPresenter_ScratchNotification(t *testing.T) {
	f := newPresenterFixture(t, 3, nil)
	f.svc.Connect()

	f.cards.ScratchComplete("slide-2", nil)

	_, _, notes := f.view.snapshot()
	require.Len(t, notes, 1)
	assert.Equal(t, "Slide revealed: Slide 2 of 3 revealed (100%)", notes[0])
}

func TestPresenter_OnFolderOpened(t *testing.T) {
	t.Run("fixed source", func(t *testing.T) {
		f := newPresenterFixture(t, 1, nil)

		err := f.p.OnFolderOpened("/tmp/x")
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("forwards path", func(t *testing.T) {
		var opened string
		f := newPresenterFixture(t, 1, func(path string) error {
			opened = path
			return nil
		})

		require.NoError(t, f.p.OnFolderOpened("/srv/pictures"))
		assert.Equal(t, "/srv/pictures", opened)
	})

	t.Run("propagates failure", func(t *testing.T) {
		boom := errors.New("boom")
		f := newPresenterFixture(t, 1, func(string) error { return boom })

		assert.ErrorIs(t, f.p.OnFolderOpened("/nope"), boom)
	})
}

func TestPresenter_ShutdownUnsubscribes(t *testing.T) {
	f := newPresenterFixture(t, 3, nil)
	f.svc.Connect()

	f.p.Shutdown()
	f.p.Shutdown()

	f.p.OnNextKey()
	title, _, _ := f.view.snapshot()
	assert.Equal(t, "Coverflow (1/3)", title, "no updates after shutdown")
	assert.False(t, f.bus.HasSubscribers(domain.EventChange))
}
