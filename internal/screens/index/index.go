// Package index lists the slides of the deck without the progression gate.
package index

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/deck"
	"github.com/abhisek/visiontour/internal/screen"
	"github.com/abhisek/visiontour/internal/ui/layout"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

const listWidth = 38

var kindLabels = map[deck.Kind]string{
	deck.KindIntro:       "Portada",
	deck.KindTimeline:    "Línea de tiempo",
	deck.KindCNN:         "Convolución",
	deck.KindAlexNet:     "Ingredientes",
	deck.KindResNet:      "Conexiones residuales",
	deck.KindAttention:   "Atención",
	deck.KindViT:         "Parches",
	deck.KindDiffusion:   "Difusión",
	deck.KindGenImage:    "Generación de imágenes",
	deck.KindVideoSearch: "Búsqueda con IA",
	deck.KindEthics:      "Ética",
	deck.KindConclusion:  "Cierre",
}

// KindLabel names the widget a slide kind mounts.
func KindLabel(k deck.Kind) string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// IndexScreen is a read-only table of contents. Enter starts the
// presentation from the first slide.
type IndexScreen struct {
	slides   []deck.Slide
	selected int
	start    func() tea.Cmd
}

var _ screen.Screen = (*IndexScreen)(nil)
var _ screen.KeyHintProvider = (*IndexScreen)(nil)

// New creates an index over d. start is invoked on enter.
func New(d *deck.Deck, start func() tea.Cmd) *IndexScreen {
	return &IndexScreen{slides: d.Slides(), start: start}
}

// Selected returns the highlighted slide index.
func (s *IndexScreen) Selected() int {
	return s.selected
}

func (s *IndexScreen) Init() tea.Cmd {
	return nil
}

func (s *IndexScreen) Title() string {
	return "Índice"
}

func (s *IndexScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Recorrer"},
		{Key: "Enter", Description: "Comenzar"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *IndexScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.slides)-1 {
			s.selected++
		}
	case "home", "g":
		s.selected = 0
	case "end", "G":
		s.selected = len(s.slides) - 1
	case "enter":
		if s.start != nil {
			return s, s.start()
		}
	}
	return s, nil
}

func (s *IndexScreen) View(width, height int) string {
	list := s.renderList()
	if width < listWidth*2 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, list)
	}
	detail := s.renderDetail(width - listWidth - 4)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Render(list),
		"  ",
		detail,
	)
}

func (s *IndexScreen) renderList() string {
	var b strings.Builder
	b.WriteString("\n")
	for i, slide := range s.slides {
		line := fmt.Sprintf("%2d. %s", i+1, slide.Title)
		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *IndexScreen) renderDetail(width int) string {
	if len(s.slides) == 0 {
		return ""
	}
	slide := s.slides[s.selected]
	var sections []string
	sections = append(sections, "", theme.Title.Render(slide.Title))
	if slide.Subtitle != "" {
		sections = append(sections, theme.Subtitle.Render(slide.Subtitle))
	}
	sections = append(sections, theme.Label.Render(KindLabel(slide.Kind)))
	if r := slide.Researcher; r != nil {
		sections = append(sections, "", theme.Hint.Render(r.Name+" · "+r.Role))
	}
	if slide.Content != "" {
		sections = append(sections, "", theme.Body.Width(width).Render(slide.Content))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
