// Package presentation is the slideshow screen: it owns the progression
// controller, mounts one widget per slide and hosts the tutor chat.
package presentation

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/visiontour/internal/aiclient"
	"github.com/abhisek/visiontour/internal/deck"
	"github.com/abhisek/visiontour/internal/logger"
	"github.com/abhisek/visiontour/internal/progression"
	"github.com/abhisek/visiontour/internal/screen"
	"github.com/abhisek/visiontour/internal/store"
	"github.com/abhisek/visiontour/internal/ui/components"
	"github.com/abhisek/visiontour/internal/ui/layout"
	"github.com/abhisek/visiontour/internal/ui/theme"
	"github.com/abhisek/visiontour/internal/widgets"
)

const (
	chatWidth      = 44
	sideBySideMinW = 120
)

// TourRecorder persists tour steps.
type TourRecorder interface {
	AppendTourEvent(ctx context.Context, data store.TourEventData) error
}

// Options configures the presentation screen.
type Options struct {
	Deck      *deck.Deck
	AI        *aiclient.Client
	Events    TourRecorder
	ImagesDir string
	Log       *logger.Logger
}

// Screen is the slideshow.
type Screen struct {
	ctrl   *progression.Controller
	widget widgets.Widget
	deps   widgets.Deps
	chat   *chatPanel

	tourID   string
	events   TourRecorder
	finished bool
	log      *logger.Logger
}

var _ screen.Screen = (*Screen)(nil)

// New creates a presentation over opts.Deck, or the built-in deck when nil.
func New(opts Options) (*Screen, error) {
	d := opts.Deck
	if d == nil {
		d = deck.Default()
	}
	ctrl, err := progression.New(d)
	if err != nil {
		return nil, fmt.Errorf("start presentation: %w", err)
	}

	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	tourID := uuid.NewString()
	log = log.With("tour_id", tourID)

	s := &Screen{
		ctrl:   ctrl,
		deps:   widgets.Deps{AI: opts.AI, ImagesDir: opts.ImagesDir, Log: log},
		chat:   newChatPanel(opts.AI, log),
		tourID: tourID,
		events: opts.Events,
		log:    log,
	}
	return s, nil
}

// TourID identifies this walk through the deck in stored events.
func (s *Screen) TourID() string {
	return s.tourID
}

// Controller exposes the progression state for inspection.
func (s *Screen) Controller() *progression.Controller {
	return s.ctrl
}

func (s *Screen) Init() tea.Cmd {
	s.record(store.TourStart)
	return s.mount()
}

func (s *Screen) Title() string {
	return "Presentación"
}

// Status shows the slide counter and progress in the header.
func (s *Screen) Status() string {
	return fmt.Sprintf("%d/%d · %d%%  ", s.ctrl.CurrentIndex()+1, s.ctrl.Len(), int(s.ctrl.ProgressPercent()))
}

// CapturingInput reports whether keys must reach the screen untouched,
// including esc.
func (s *Screen) CapturingInput() bool {
	return s.chat.open || s.widgetCapturing()
}

// Leave records an abandoned tour when the screen is closed early.
func (s *Screen) Leave() tea.Cmd {
	if !s.finished {
		s.record(store.TourQuit)
	}
	return nil
}

func (s *Screen) widgetCapturing() bool {
	tc, ok := s.widget.(widgets.TextCapturer)
	return ok && tc.CapturingText()
}

// mount builds a fresh widget for the current slide. The controller has
// already applied its reset rule for the new index.
func (s *Screen) mount() tea.Cmd {
	slide := s.ctrl.Current()
	s.widget = widgets.New(slide.Kind, s.deps, s.onInteract)
	s.log.Debug("slide mounted", "index", s.ctrl.CurrentIndex(), "kind", slide.Kind)
	if s.widget == nil {
		return nil
	}
	return s.widget.Init()
}

func (s *Screen) onInteract() {
	if s.ctrl.ReportInteraction() {
		s.record(store.TourInteract)
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		return s, s.chat.update(msg)

	case spinner.TickMsg:
		cmds := []tea.Cmd{s.chat.update(msg)}
		if s.widget != nil {
			var cmd tea.Cmd
			s.widget, cmd = s.widget.Update(msg)
			cmds = append(cmds, cmd)
		}
		return s, tea.Batch(cmds...)

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	if s.widget != nil {
		var cmd tea.Cmd
		s.widget, cmd = s.widget.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if s.chat.open {
		switch key {
		case "ctrl+t", "esc":
			return s.chat.toggle()
		}
		return s.chat.update(msg)
	}

	if key == "ctrl+t" {
		return s.chat.toggle()
	}
	if s.widgetCapturing() {
		return s.forwardToWidget(msg)
	}

	switch key {
	case "?":
		return s.chat.toggle()
	case "right", "n", "pgdown":
		return s.next()
	case "left", "p", "pgup":
		return s.previous()
	case "r":
		return s.restart()
	}
	return s.forwardToWidget(msg)
}

func (s *Screen) forwardToWidget(msg tea.Msg) tea.Cmd {
	if s.widget == nil {
		return nil
	}
	var cmd tea.Cmd
	s.widget, cmd = s.widget.Update(msg)
	return cmd
}

func (s *Screen) next() tea.Cmd {
	if !s.ctrl.Next() {
		return nil
	}
	s.record(store.TourAdvance)
	if s.ctrl.IsLastSlide() && !s.finished {
		s.finished = true
		s.record(store.TourFinish)
	}
	return s.mount()
}

func (s *Screen) previous() tea.Cmd {
	if !s.ctrl.Previous() {
		return nil
	}
	s.record(store.TourBack)
	return s.mount()
}

func (s *Screen) restart() tea.Cmd {
	if !s.ctrl.Restart() {
		return nil
	}
	s.record(store.TourRestart)
	return s.mount()
}

// record stores a tour step. Failures are logged and never block the
// learner.
func (s *Screen) record(action string) {
	slide := s.ctrl.Current()
	s.log.Debug("tour step", "action", action, "index", s.ctrl.CurrentIndex())
	if s.events == nil {
		return
	}
	err := s.events.AppendTourEvent(context.Background(), store.TourEventData{
		TourID:     s.tourID,
		Action:     action,
		SlideIndex: s.ctrl.CurrentIndex(),
		SlideKind:  string(slide.Kind),
	})
	if err != nil {
		s.log.Warn("record tour event failed", "action", action, "error", err)
	}
}

func (s *Screen) View(width, height int) string {
	progress := components.NewProgressBar("", s.ctrl.ProgressPercent(), true, min(width-4, 60)).View()
	nav := s.navigation()
	navHeight := lipgloss.Height(nav)

	slideHeight := max(height-navHeight-2, 1)
	slideWidth := width - 2
	var chatView string
	if s.chat.open {
		if width >= sideBySideMinW {
			slideWidth = width - chatWidth - 3
			chatView = s.chat.view(chatWidth, slideHeight)
		} else {
			chatView = s.chat.view(width-2, slideHeight)
		}
	}

	var body string
	switch {
	case chatView != "" && width < sideBySideMinW:
		body = chatView
	default:
		slide := renderSlide(s.ctrl.Current(), s.widget, slideWidth)
		body = lipgloss.NewStyle().Width(slideWidth).MaxHeight(slideHeight).Render(slide)
		if chatView != "" {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", chatView)
		}
	}
	body = lipgloss.NewStyle().Height(slideHeight).MaxHeight(slideHeight).Render(body)

	return lipgloss.NewStyle().Padding(0, 1).Render(progress + "\n" + body + "\n" + nav)
}

// navigation renders the previous/next/restart controls.
func (s *Screen) navigation() string {
	prev := components.NewButton("◂ Anterior", false, s.ctrl.CurrentIndex() == 0)

	var next components.Button
	switch {
	case s.ctrl.IsLastSlide():
		next = components.NewButton("↺ Reiniciar", true, false)
	case s.ctrl.CanAdvance():
		next = components.NewButton("Siguiente ▸", true, false)
	default:
		next = components.NewButton("Interactúa para continuar", false, true)
	}

	row := components.ButtonRow(2, prev, next)
	if !s.chat.open {
		row += "  " + theme.Hint.Render("? tutor IA")
	}
	return row
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.chat.open {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Enviar"},
			{Key: "Esc/Ctrl+T", Description: "Cerrar chat"},
			{Key: "Ctrl+C", Description: "Salir"},
		}
	}

	hints := []layout.KeyHint{
		{Key: "←/p", Description: "Anterior"},
	}
	if s.ctrl.IsLastSlide() {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Reiniciar"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "→/n", Description: "Siguiente"})
	}
	if s.widget != nil {
		hints = append(hints, s.widget.KeyHints()...)
	}
	if !s.widgetCapturing() {
		hints = append(hints,
			layout.KeyHint{Key: "?", Description: "Tutor"},
			layout.KeyHint{Key: "Esc", Description: "Menú"},
		)
	}
	return hints
}
