package presentation

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/deck"
	"github.com/abhisek/visiontour/internal/ui/theme"
	"github.com/abhisek/visiontour/internal/widgets"
)

const maxTextWidth = 96

// renderSlide draws the fixed chrome of a slide followed by its widget.
// A nil widget renders chrome only.
func renderSlide(slide deck.Slide, w widgets.Widget, width int) string {
	textWidth := max(min(width, maxTextWidth)-2, 20)
	var b strings.Builder

	b.WriteString(theme.Title.Render(slide.Title))
	b.WriteString("\n")
	if slide.Subtitle != "" {
		b.WriteString(theme.Subtitle.Render(slide.Subtitle))
		b.WriteString("\n")
	}

	if r := slide.Researcher; r != nil {
		b.WriteString("\n")
		b.WriteString(badge(r.Name, r.Role))
		if r.Description != "" {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Width(textWidth).Render(r.Description))
		}
		b.WriteString("\n")
	}
	if a := slide.AuthorInfo; a != nil {
		b.WriteString("\n")
		b.WriteString(badge(a.Name, a.Role))
		b.WriteString("\n")
	}

	if slide.Content != "" {
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(textWidth).Render(slide.Content))
		b.WriteString("\n")
	}

	if slide.Image != "" {
		b.WriteString(theme.Hint.Render("▣ " + slide.Image))
		b.WriteString("\n")
	}

	if slide.Kind == deck.KindConclusion {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("🚀 ¡Gracias por completar el recorrido!"))
		b.WriteString("\n")
	}

	if w != nil {
		b.WriteString("\n")
		b.WriteString(w.View(width))
	}

	return strings.TrimRight(b.String(), "\n")
}

func badge(name, role string) string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("◉ "+name) +
		"  " + lipgloss.NewStyle().Foreground(theme.Primary).Render(role)
}
