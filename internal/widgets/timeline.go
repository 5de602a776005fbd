package widgets

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/ui/layout"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

type milestone struct {
	Year   string
	Label  string
	Sub    string
	Desc   string
	Author string
}

var milestones = []milestone{
	{
		Year: "1989", Label: "CNNs", Sub: "El Ojo",
		Desc:   "LeNet-5: La primera red capaz de leer dígitos manuscritos en cheques bancarios. Imitaba la corteza visual biológica.",
		Author: "Yann LeCun (AT&T Labs)",
	},
	{
		Year: "2012", Label: "AlexNet", Sub: "Deep Learning",
		Desc:   "El momento 'Big Bang'. Usó GPUs para entrenar una red profunda y ganó el concurso ImageNet por un margen histórico.",
		Author: "Krizhevsky, Sutskever & Hinton (U. Toronto)",
	},
	{
		Year: "2017", Label: "Transformers", Sub: "Atención",
		Desc:   "Paper 'Attention Is All You Need'. Aunque nació para texto, su capacidad de paralelización revolucionó luego la visión.",
		Author: "Google Brain",
	},
	{
		Year: "2021", Label: "DALL-E", Sub: "Generación",
		Desc:   "La IA aprendió a asociar conceptos visuales con palabras, permitiendo crear imágenes surrealistas desde cero.",
		Author: "OpenAI",
	},
	{
		Year: "2025", Label: "Gemini", Sub: "Multimodal",
		Desc:   "Modelos nativamente multimodales. No son redes separadas pegadas con cinta; entienden audio, video e imagen fluidamente.",
		Author: "Google DeepMind",
	},
}

// Timeline shows five milestones; selecting one reveals its detail card.
type Timeline struct {
	cur        cursor
	selected   int // -1 until a milestone is chosen
	onInteract func()
}

func newTimeline(onInteract func()) *Timeline {
	return &Timeline{
		cur:        cursor{n: len(milestones)},
		selected:   -1,
		onInteract: onInteract,
	}
}

func (t *Timeline) Init() tea.Cmd { return nil }

func (t *Timeline) Update(msg tea.Msg) (Widget, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	if idx, ok := t.cur.handle(kmsg); ok {
		t.selected = idx
		t.onInteract()
	}
	return t, nil
}

func (t *Timeline) View(width int) string {
	var b strings.Builder

	stops := make([]string, 0, len(milestones))
	for i, m := range milestones {
		style := theme.Unselected
		marker := "○"
		if i == t.selected {
			style = theme.Selected
			marker = "●"
		} else if i == t.cur.pos {
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		}
		stops = append(stops, style.Render(fmt.Sprintf("%s %s", marker, m.Year)))
	}
	b.WriteString(strings.Join(stops, theme.Hint.Render(" ── ")))
	b.WriteString("\n\n")

	for i, m := range milestones {
		prefix := "  "
		if i == t.cur.pos {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d. %s  %s", prefix, i+1, m.Label, theme.Hint.Render(strings.ToUpper(m.Sub)))
		b.WriteString(theme.Body.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if t.selected < 0 {
		b.WriteString(theme.Hint.Render("Toca un año para ver los detalles del hito."))
		return b.String()
	}

	m := milestones[t.selected]
	card := theme.Label.Render(fmt.Sprintf("%s (%s)", m.Label, m.Year)) +
		"  " + theme.Hint.Render(m.Author) + "\n" +
		theme.Body.Render(m.Desc)
	b.WriteString(theme.ActiveCard.Width(min(width, 72)).Render(card))
	return b.String()
}

func (t *Timeline) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Hito"},
		{Key: "Enter/1-5", Description: "Ver detalle"},
	}
}
