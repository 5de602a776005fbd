package home

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/visiontour/internal/router"
	"github.com/abhisek/visiontour/internal/screen"
	"github.com/abhisek/visiontour/internal/screens/history"
	"github.com/abhisek/visiontour/internal/screens/index"
	"github.com/abhisek/visiontour/internal/store"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "slides" }
func (s *stubScreen) Title() string                           { return "Presentación" }

// fakeRepo satisfies store.EventRepo; only the tour queries return data.
type fakeRepo struct {
	store.EventRepo
	tours []store.TourSummary
}

func (f *fakeRepo) RecentTours(context.Context, int) ([]store.TourSummary, error) {
	return f.tours, nil
}

func down() tea.KeyPressMsg  { return tea.KeyPressMsg{Code: tea.KeyDown} }
func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func TestStartPushesFreshPresentation(t *testing.T) {
	builds := 0
	h := New(Options{NewPresentation: func() (screen.Screen, error) {
		builds++
		return &stubScreen{}, nil
	}})

	_, cmd := h.Update(enter())
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &stubScreen{}, push.Screen)

	_, cmd = h.Update(enter())
	cmd()
	assert.Equal(t, 2, builds, "each start builds a new presentation")
}

func TestStartFailureIsShown(t *testing.T) {
	h := New(Options{NewPresentation: func() (screen.Screen, error) {
		return nil, errors.New("deck broken")
	}})

	_, cmd := h.Update(enter())
	h.Update(cmd())
	assert.Contains(t, h.View(100, 30), "deck broken")
}

func TestIndexItemPushesIndex(t *testing.T) {
	h := New(Options{NewPresentation: func() (screen.Screen, error) { return &stubScreen{}, nil }})

	h.Update(down())
	_, cmd := h.Update(enter())
	push := cmd().(router.PushScreenMsg)
	idx, ok := push.Screen.(*index.IndexScreen)
	require.True(t, ok)

	_, cmd = idx.Update(enter())
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "starting from the index replaces it")
	assert.IsType(t, &stubScreen{}, replace.Screen)
}

func TestHistoryDisabledWithoutStore(t *testing.T) {
	h := New(Options{})
	h.Update(down())
	h.Update(down())
	_, cmd := h.Update(enter())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd(), "cursor skips the disabled history item")
}

func TestHistoryItemAndLastTour(t *testing.T) {
	repo := &fakeRepo{tours: []store.TourSummary{{
		TourID:        "t1",
		LastEventAt:   time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC),
		FurthestSlide: 4,
	}}}
	h := New(Options{Tours: repo})

	h.Update(h.Init()())
	assert.Contains(t, h.View(120, 40), "llegaste a la diapositiva 5 de 12")

	h.Update(down())
	h.Update(down())
	_, cmd := h.Update(enter())
	push := cmd().(router.PushScreenMsg)
	assert.IsType(t, &history.HistoryScreen{}, push.Screen)
}

func TestInitWithoutStore(t *testing.T) {
	assert.Nil(t, New(Options{}).Init())
}
