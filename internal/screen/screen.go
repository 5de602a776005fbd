package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/visiontour/internal/ui/layout"
)

// Screen is one full-frame view managed by the router.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a status string on the
// right edge of the header.
type StatusProvider interface {
	Status() string
}

// InputCapturer is implemented by screens that sometimes need every key,
// including esc, for free text entry.
type InputCapturer interface {
	CapturingInput() bool
}

// Leaver is implemented by screens that need to run a command when they are
// removed from the stack.
type Leaver interface {
	Leave() tea.Cmd
}
