// Package welcome is the splash shown before the home menu.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/router"
	"github.com/abhisek/visiontour/internal/screen"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

var eyeArt = []string{
	"     ▄▄███████▄▄     ",
	"   ▄█▀   ▄▄▄   ▀█▄   ",
	"  ██    █████    ██  ",
	"   ▀█▄   ▀▀▀   ▄█▀   ",
	"     ▀▀███████▀▀     ",
}

const tagline = "De los píxeles a la imaginación"

type tickMsg time.Time

// WelcomeScreen animates a scanning eye, then shows the banner. Any key
// moves on to the screen built by next.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that is replaced by next() on the first key.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, w.renderEye())

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("pulsa cualquier tecla para continuar"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

// renderEye draws the eye. After the first phase a scan line sweeps across
// it, one column per tick.
func (w *WelcomeScreen) renderEye() string {
	base := lipgloss.NewStyle().Foreground(theme.Primary)
	if w.elapsed < phase1End {
		return base.Render(strings.Join(eyeArt, "\n"))
	}

	scanStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	cols := len([]rune(eyeArt[0]))
	scan := w.tickCount % cols

	lines := make([]string, len(eyeArt))
	for i, line := range eyeArt {
		runes := []rune(line)
		mark := runes[scan]
		if mark == ' ' {
			mark = '┃'
		}
		lines[i] = base.Render(string(runes[:scan])) +
			scanStyle.Render(string(mark)) +
			base.Render(string(runes[scan+1:]))
	}
	return strings.Join(lines, "\n")
}
