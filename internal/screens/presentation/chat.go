package presentation

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/aiclient"
	"github.com/abhisek/visiontour/internal/chat"
	"github.com/abhisek/visiontour/internal/logger"
	"github.com/abhisek/visiontour/internal/ui/components"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

// chatReplyMsg is the outcome of one tutor exchange. panel identifies the
// chat that sent it; replies for any other panel are dropped.
type chatReplyMsg struct {
	panel uint64
	reply string
	err   error
}

var chatPanels atomic.Uint64

// chatPanel is the floating tutor chat. It is independent of slide
// progression and keeps its transcript for the whole tour.
type chatPanel struct {
	id      uint64
	ai      *aiclient.Client
	lang    aiclient.Language
	session *chat.Session
	input   components.TextInput
	spinner spinner.Model
	open    bool
	log     *logger.Logger
}

func newChatPanel(ai *aiclient.Client, log *logger.Logger) *chatPanel {
	lang, _ := aiclient.LookupLanguage("es")
	if ai != nil {
		lang = ai.Language()
	}
	input := components.NewTextInput("Pregunta algo...", 500)
	input.Blur()
	return &chatPanel{
		id:      chatPanels.Add(1),
		ai:      ai,
		lang:    lang,
		session: chat.NewSession(lang.ChatGreeting),
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.Ellipsis), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary))),
		log:     log,
	}
}

func (p *chatPanel) toggle() tea.Cmd {
	p.open = !p.open
	if p.open {
		return p.input.Focus()
	}
	p.input.Blur()
	return nil
}

// send dispatches the current input as typed. Nothing happens while a reply
// is pending or when the input is blank.
func (p *chatPanel) send() tea.Cmd {
	text := p.input.Value()
	history, ok := p.session.Begin(text)
	if !ok {
		return nil
	}
	p.input.Reset()

	id := p.id
	if p.ai == nil {
		return func() tea.Msg { return chatReplyMsg{panel: id, err: errors.New("no AI backend configured")} }
	}
	ai := p.ai
	call := func() tea.Msg {
		reply, err := ai.SendMessage(context.Background(), history, text)
		return chatReplyMsg{panel: id, reply: reply, err: err}
	}
	return tea.Batch(call, p.spinner.Tick)
}

func (p *chatPanel) handleReply(msg chatReplyMsg) {
	if msg.err != nil {
		p.log.Warn("tutor chat failed", "error", msg.err)
		p.session.Fail(p.lang.ChatFailure)
		return
	}
	p.session.Complete(msg.reply)
}

func (p *chatPanel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case chatReplyMsg:
		if msg.panel != p.id {
			return nil
		}
		p.handleReply(msg)
		return nil
	case spinner.TickMsg:
		if !p.session.Sending() {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if msg.String() == "enter" {
			return p.send()
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *chatPanel) view(width, height int) string {
	inner := max(width-4, 10)
	var lines []string
	for _, m := range p.session.Messages() {
		lines = append(lines, renderMessage(m, inner))
	}
	if p.session.Sending() {
		lines = append(lines, p.spinner.View()+" "+theme.Hint.Render("Escribiendo"))
	}

	transcript := strings.Join(lines, "\n")
	// Keep the newest messages visible.
	budget := max(height-6, 3)
	if all := strings.Split(transcript, "\n"); len(all) > budget {
		transcript = strings.Join(all[len(all)-budget:], "\n")
	}

	p.input.SetWidth(inner - 2)
	body := theme.Label.Render("Tutor IA") + "\n\n" + transcript + "\n\n" + p.input.View()
	return theme.ActiveCard.Width(width).Render(body)
}

func renderMessage(m chat.Message, width int) string {
	switch {
	case m.IsError:
		return theme.Bad.Width(width).Render("⚠ " + m.Text)
	case m.Role == chat.RoleUser:
		return lipgloss.NewStyle().Foreground(theme.Accent).Width(width).Align(lipgloss.Right).Render(m.Text)
	default:
		return theme.Body.Width(width).Render(m.Text)
	}
}
