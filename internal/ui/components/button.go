package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/ui/theme"
)

// Button is a styled label. Buttons do not handle keys themselves; the
// owning screen maps shortcuts to actions and only reflects state here.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
}

// NewButton creates a button.
func NewButton(label string, focused, disabled bool) Button {
	return Button{Label: label, Focused: focused, Disabled: disabled}
}

// View renders the button.
func (b Button) View() string {
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render(b.Label)
	case b.Focused:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render(b.Label)
	}
}

// ButtonRow renders buttons left to right separated by gap spaces.
func ButtonRow(gap int, buttons ...Button) string {
	spacer := strings.Repeat(" ", gap)
	parts := make([]string, 0, 2*len(buttons))
	for i, b := range buttons {
		if i > 0 {
			parts = append(parts, spacer)
		}
		parts = append(parts, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
