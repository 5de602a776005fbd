package widgets

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/ui/layout"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

var attentionWords = []string{"Gato", "Comiendo", "Pescado"}

// attentionWeights[i][j] is how strongly word i attends to context j, on a
// 0..4 scale.
var attentionWeights = [3][3]int{
	{4, 2, 1},
	{2, 4, 0},
	{1, 0, 4},
}

// Attention visualizes self-attention over a three word sentence. Selecting
// a word is the engagement action.
type Attention struct {
	cur        cursor
	focused    int // -1 until a word is chosen
	onInteract func()
}

func newAttention(onInteract func()) *Attention {
	return &Attention{
		cur:        cursor{n: len(attentionWords)},
		focused:    -1,
		onInteract: onInteract,
	}
}

func (a *Attention) Init() tea.Cmd { return nil }

func (a *Attention) Update(msg tea.Msg) (Widget, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	if idx, ok := a.cur.handle(kmsg); ok {
		a.focused = idx
		a.onInteract()
	}
	return a, nil
}

func (a *Attention) View(width int) string {
	var b strings.Builder
	b.WriteString(theme.Label.Render("Mecanismo de Auto-Atención"))
	b.WriteString("\n\n")

	for i, w := range attentionWords {
		word := fmt.Sprintf("%-10s", w)
		switch {
		case i == a.focused:
			word = theme.ButtonActive.Render(word)
		case i == a.cur.pos:
			word = lipgloss.NewStyle().Foreground(theme.Accent).Padding(0, 2).Render(word)
		default:
			word = lipgloss.NewStyle().Foreground(theme.Primary).Padding(0, 2).Render(word)
		}

		links := make([]string, 0, len(attentionWords))
		for j := range attentionWords {
			links = append(links, a.link(i, j))
		}

		ctx := fmt.Sprintf("Contexto %d", i+1)
		if i == a.focused {
			ctx = theme.Selected.Render(ctx)
		} else {
			ctx = theme.Hint.Render(ctx)
		}

		b.WriteString(word + "  " + strings.Join(links, " ") + "  " + ctx + "\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Toca las palabras de la izquierda para ver su atención."))
	return b.String()
}

// link draws the weight from word i to context j. With no focus every link
// is drawn; with focus only the focused word's links stay bright.
func (a *Attention) link(i, j int) string {
	w := attentionWeights[i][j]
	bar := strings.Repeat("━", w) + strings.Repeat(" ", 4-w)
	if a.focused == -1 || a.focused == i {
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render(bar)
	}
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(w, 1)) + strings.Repeat(" ", 4-min(w, 1)))
}

func (a *Attention) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Palabra"},
		{Key: "Enter/1-3", Description: "Enfocar"},
	}
}
