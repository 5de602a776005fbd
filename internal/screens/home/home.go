// Package home is the main menu.
package home

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/deck"
	"github.com/abhisek/visiontour/internal/router"
	"github.com/abhisek/visiontour/internal/screen"
	"github.com/abhisek/visiontour/internal/screens/history"
	"github.com/abhisek/visiontour/internal/screens/index"
	"github.com/abhisek/visiontour/internal/screens/welcome"
	"github.com/abhisek/visiontour/internal/store"
	"github.com/abhisek/visiontour/internal/ui/components"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

// Options wires the home menu to the rest of the app.
type Options struct {
	Deck *deck.Deck

	// Tours backs the history screen and the last-tour line. Nil disables
	// both.
	Tours store.EventRepo

	// NewPresentation builds a fresh slideshow for every start.
	NewPresentation func() (screen.Screen, error)
}

type lastTourMsg struct {
	Tour *store.TourSummary
	Err  error
}

type startFailedMsg struct {
	Err error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	opts    Options
	menu    components.Menu
	last    *store.TourSummary
	errText string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Deck == nil {
		opts.Deck = deck.Default()
	}
	h := &HomeScreen{opts: opts}

	items := []components.MenuItem{
		{
			Label:  "Comenzar la presentación",
			Detail: fmt.Sprintf("%d diapositivas", opts.Deck.Len()),
			Action: func() tea.Cmd {
				return Start(opts.NewPresentation, false)
			},
		},
		{
			Label: "Índice de diapositivas",
			Action: func() tea.Cmd {
				idx := index.New(opts.Deck, func() tea.Cmd {
					return Start(opts.NewPresentation, true)
				})
				return func() tea.Msg { return router.PushScreenMsg{Screen: idx} }
			},
		},
		{
			Label:    "Historial de recorridos",
			Disabled: opts.Tours == nil,
			Action: func() tea.Cmd {
				hist := history.New(opts.Tours)
				return func() tea.Msg { return router.PushScreenMsg{Screen: hist} }
			},
		},
		{
			Label:  "Salir",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}
	h.menu = components.NewMenu(items)
	return h
}

// Start builds a presentation and pushes it, or replaces the active screen
// when replace is set.
func Start(build func() (screen.Screen, error), replace bool) tea.Cmd {
	return func() tea.Msg {
		if build == nil {
			return startFailedMsg{Err: errors.New("presentation unavailable")}
		}
		s, err := build()
		if err != nil {
			return startFailedMsg{Err: err}
		}
		if replace {
			return router.ReplaceScreenMsg{Screen: s}
		}
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.opts.Tours == nil {
		return nil
	}
	repo := h.opts.Tours
	return func() tea.Msg {
		tours, err := repo.RecentTours(context.Background(), 1)
		if err != nil || len(tours) == 0 {
			return lastTourMsg{Err: err}
		}
		return lastTourMsg{Tour: &tours[0]}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lastTourMsg:
		h.last = msg.Tour
		return h, nil
	case startFailedMsg:
		h.errText = "No se pudo iniciar la presentación: " + msg.Err.Error()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	if height >= 20 {
		sections = append(sections, welcome.RenderBanner(width), "")
	} else {
		sections = append(sections, theme.Title.Render("VISIONTOUR"), "")
	}

	sections = append(sections,
		theme.Subtitle.Render("Historia de la IA para visión por computadora"),
		"",
		theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")),
	)

	if line := h.lastTourLine(); line != "" {
		sections = append(sections, "", theme.Hint.Render(line))
	}
	if h.errText != "" {
		sections = append(sections, "", theme.Bad.Render(h.errText))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (h *HomeScreen) lastTourLine() string {
	if h.last == nil {
		return ""
	}
	status := fmt.Sprintf("llegaste a la diapositiva %d de %d", h.last.FurthestSlide+1, h.opts.Deck.Len())
	if h.last.Finished {
		status = "completado"
	}
	return fmt.Sprintf("Último recorrido (%s): %s", h.last.LastEventAt.Format("02/01/2006 15:04"), status)
}

func (h *HomeScreen) Title() string {
	return "Inicio"
}
