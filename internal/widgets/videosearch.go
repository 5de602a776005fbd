package widgets

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/aiclient"
	"github.com/abhisek/visiontour/internal/logger"
	"github.com/abhisek/visiontour/internal/ui/layout"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

type searchPreset struct {
	Label string
	Query string
}

var searchPresets = []searchPreset{
	{Label: "Noticias sobre SORA", Query: "Últimas noticias sobre modelo Sora de OpenAI y su fecha de lanzamiento"},
	{Label: "Lo último de IA en video", Query: "Avances recientes en generación de video con IA: Veo, Runway, Pika"},
	{Label: "Uso profesional en cine", Query: "Cómo usan los cineastas y artistas modelos como Sora o Veo en producciones reales"},
}

type searchResultMsg struct {
	mount  uint64
	result aiclient.SearchResult
}

// VideoSearch answers one of three preset questions about AI video with a
// search-grounded response. Issuing a query is the engagement action.
type VideoSearch struct {
	mount uint64
	ai    *aiclient.Client
	lang  aiclient.Language
	log   *logger.Logger

	cur     cursor
	spinner spinner.Model
	loading bool
	query   string
	result  *aiclient.SearchResult

	onInteract func()
}

func newVideoSearch(deps Deps, onInteract func()) *VideoSearch {
	lang, _ := aiclient.LookupLanguage("es")
	if deps.AI != nil {
		lang = deps.AI.Language()
	}
	return &VideoSearch{
		mount:      nextMount(),
		ai:         deps.AI,
		lang:       lang,
		log:        deps.logger("video-search"),
		cur:        cursor{n: len(searchPresets)},
		spinner:    spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary))),
		onInteract: onInteract,
	}
}

// Loading reports whether a search is in flight.
func (v *VideoSearch) Loading() bool {
	return v.loading
}

func (v *VideoSearch) Init() tea.Cmd { return nil }

func (v *VideoSearch) Update(msg tea.Msg) (Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case searchResultMsg:
		if msg.mount != v.mount {
			return v, nil
		}
		v.loading = false
		res := msg.result
		v.result = &res
		if res.Degraded {
			v.log.Warn("search degraded", "query", v.query)
		}
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if v.loading {
			// Presets are disabled while a search runs.
			return v, nil
		}
		if idx, ok := v.cur.handle(msg); ok {
			return v, v.search(searchPresets[idx].Query)
		}
	}
	return v, nil
}

func (v *VideoSearch) search(query string) tea.Cmd {
	v.query = query
	v.loading = true
	v.onInteract()

	mount, lang := v.mount, v.lang
	if v.ai == nil {
		return func() tea.Msg {
			return searchResultMsg{mount: mount, result: aiclient.SearchResult{Text: lang.SearchFailed, Degraded: true}}
		}
	}

	ai := v.ai
	run := func() tea.Msg {
		return searchResultMsg{mount: mount, result: ai.SearchGroundedAnswer(context.Background(), query)}
	}
	return tea.Batch(run, v.spinner.Tick)
}

func (v *VideoSearch) View(width int) string {
	var b strings.Builder

	for i, p := range searchPresets {
		label := fmt.Sprintf("%d  %s", i+1, p.Label)
		switch {
		case v.loading:
			b.WriteString(theme.ButtonDisabled.Render(label))
		case i == v.cur.pos:
			b.WriteString(theme.Selected.Render("▸ " + label))
		default:
			b.WriteString(theme.Unselected.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.loading {
		b.WriteString(v.spinner.View() + " " + theme.Hint.Render("Buscando información en tiempo real..."))
		return b.String()
	}
	if v.result == nil {
		return b.String()
	}

	textWidth := max(min(width, 88)-4, 20)
	var card strings.Builder
	card.WriteString(theme.Label.Render(fmt.Sprintf("RESULTADOS PARA: %q", v.query)))
	card.WriteString("\n")
	card.WriteString(theme.Body.Width(textWidth).Render(v.result.Text))
	if len(v.result.Sources) > 0 {
		card.WriteString("\n\n")
		card.WriteString(theme.Hint.Render("FUENTES:"))
		for _, s := range v.result.Sources {
			card.WriteString("\n  • " + lipgloss.NewStyle().Foreground(theme.Primary).Render(s.Title))
			card.WriteString("\n    " + theme.Hint.Render(s.URI))
		}
	}
	b.WriteString(theme.Card.Render(card.String()))
	return b.String()
}

func (v *VideoSearch) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Pregunta"},
		{Key: "Enter/1-3", Description: "Buscar"},
	}
}
