// Package history shows past walks through the deck.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/screen"
	"github.com/abhisek/visiontour/internal/store"
	"github.com/abhisek/visiontour/internal/ui/layout"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

const recentLimit = 50

// TourReader is the read side of the event store used by this screen.
type TourReader interface {
	RecentTours(ctx context.Context, limit int) ([]store.TourSummary, error)
	TourEvents(ctx context.Context, tourID string) ([]store.TourEvent, error)
}

type historyLoadedMsg struct {
	Tours []store.TourSummary
	Err   error
}

type eventsLoadedMsg struct {
	TourID string
	Events []store.TourEvent
	Err    error
}

var actionLabels = map[string]string{
	store.TourStart:    "inicio",
	store.TourAdvance:  "avanza",
	store.TourBack:     "retrocede",
	store.TourInteract: "interactúa",
	store.TourRestart:  "reinicia",
	store.TourFinish:   "termina",
	store.TourQuit:     "abandona",
}

// HistoryScreen lists recent tours. Enter expands a tour into its steps.
type HistoryScreen struct {
	repo     TourReader
	tours    []store.TourSummary
	events   map[string][]store.TourEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo TourReader) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		events:   make(map[string][]store.TourEvent),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		tours, err := repo.RecentTours(context.Background(), recentLimit)
		return historyLoadedMsg{Tours: tours, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Historial"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Detalles"},
		{Key: "↑↓", Description: "Recorrer"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.tours = msg.Tours
		}
		s.loaded = true
		return s, nil

	case eventsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.events[msg.TourID] = msg.Events
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.tours)-1 {
				s.selected++
			}
		case "enter":
			if len(s.tours) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			if s.expanded[s.selected] {
				return s, s.loadEvents(s.tours[s.selected].TourID)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadEvents(tourID string) tea.Cmd {
	if _, ok := s.events[tourID]; ok {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		events, err := repo.TourEvents(context.Background(), tourID)
		return eventsLoadedMsg{TourID: tourID, Events: events, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Cargando historial...")
	}
	if len(s.tours) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Todavía no hay recorridos. ¡Comienza la presentación!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, tour := range s.tours {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		status := fmt.Sprintf("hasta la diapositiva %d", tour.FurthestSlide+1)
		if tour.Finished {
			status = "completado"
		}
		line := fmt.Sprintf("%s%s  %d pasos  %d interacciones  %s",
			prefix, tour.StartedAt.Format("02/01/2006 15:04"), tour.Events, tour.Interactions, status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderEvents(tour.TourID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderEvents(tourID string, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	events, ok := s.events[tourID]
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    cargando...")) + "\n"
	}

	var b strings.Builder
	for _, e := range events {
		label, ok := actionLabels[e.Action]
		if !ok {
			label = e.Action
		}
		line := fmt.Sprintf("    %s  %-10s  diapositiva %d (%s)",
			e.Timestamp.Format("15:04:05"), label, e.SlideIndex+1, e.SlideKind)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(actionColor(e.Action)).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func actionColor(action string) color.Color {
	switch action {
	case store.TourInteract:
		return theme.Accent
	case store.TourFinish:
		return theme.Success
	case store.TourQuit:
		return theme.Error
	default:
		return theme.Text
	}
}
