// Package app hosts the root Bubble Tea model and the screen stack.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/aiclient"
	"github.com/abhisek/visiontour/internal/deck"
	"github.com/abhisek/visiontour/internal/logger"
	"github.com/abhisek/visiontour/internal/router"
	"github.com/abhisek/visiontour/internal/screen"
	"github.com/abhisek/visiontour/internal/screens/home"
	"github.com/abhisek/visiontour/internal/screens/presentation"
	"github.com/abhisek/visiontour/internal/screens/welcome"
	"github.com/abhisek/visiontour/internal/store"
	"github.com/abhisek/visiontour/internal/ui/layout"
)

// Options carries the dependencies shared by every screen.
type Options struct {
	Deck      *deck.Deck
	AI        *aiclient.Client
	Events    store.EventRepo
	ImagesDir string
	Log       *logger.Logger

	// SkipSplash opens the home menu directly.
	SkipSplash bool

	// Direct opens the presentation as the bottom screen.
	Direct bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) (AppModel, error) {
	if opts.Deck == nil {
		opts.Deck = deck.Default()
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}

	newPresentation := func() (screen.Screen, error) {
		popts := presentation.Options{
			Deck:      opts.Deck,
			AI:        opts.AI,
			ImagesDir: opts.ImagesDir,
			Log:       opts.Log,
		}
		if opts.Events != nil {
			popts.Events = opts.Events
		}
		return presentation.New(popts)
	}

	if opts.Direct {
		p, err := newPresentation()
		if err != nil {
			return AppModel{}, err
		}
		return AppModel{router: router.New(p)}, nil
	}

	newHome := func() screen.Screen {
		return home.New(home.Options{
			Deck:            opts.Deck,
			Tours:           opts.Events,
			NewPresentation: newPresentation,
		})
	}

	var first screen.Screen
	if opts.SkipSplash {
		first = newHome()
	} else {
		first = welcome.New(newHome)
	}
	return AppModel{router: router.New(first)}, nil
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			if leaver, ok := m.router.Active().(screen.Leaver); ok {
				return m, tea.Sequence(leaver.Leave(), tea.Quit)
			}
			return m, tea.Quit
		}
		if key == "esc" && !m.capturing() {
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// capturing reports whether the active screen wants esc for itself.
func (m AppModel) capturing() bool {
	ic, ok := m.router.Active().(screen.InputCapturer)
	return ok && ic.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return hp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Volver"},
			{Key: "Ctrl+C", Description: "Salir"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Recorrer"},
		{Key: "Enter", Description: "Elegir"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	model, err := newAppModel(opts)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
