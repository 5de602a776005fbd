// Package widgets implements the interactive element mounted under each
// slide. A widget owns only its local state; the onInteract callback is the
// single effect it has outside itself.
package widgets

import (
	"sync/atomic"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/visiontour/internal/aiclient"
	"github.com/abhisek/visiontour/internal/deck"
	"github.com/abhisek/visiontour/internal/logger"
	"github.com/abhisek/visiontour/internal/ui/layout"
)

// Widget is the contract shared by every slide widget.
type Widget interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Widget, tea.Cmd)
	View(width int) string
	KeyHints() []layout.KeyHint
}

// TextCapturer is implemented by widgets that can take free text input.
// While CapturingText is true the owning screen forwards every key to the
// widget instead of interpreting navigation shortcuts.
type TextCapturer interface {
	CapturingText() bool
}

// Deps are the collaborators a widget may need. AI may be nil, in which case
// the AI-backed widgets render an explanatory notice.
type Deps struct {
	AI        *aiclient.Client
	ImagesDir string
	Log       *logger.Logger
}

// New builds a fresh widget for kind. It returns nil for bookend and unknown
// kinds, which render chrome only.
func New(kind deck.Kind, deps Deps, onInteract func()) Widget {
	if onInteract == nil {
		onInteract = func() {}
	}

	switch kind {
	case deck.KindTimeline:
		return newTimeline(onInteract)
	case deck.KindCNN:
		return newConvolution(onInteract)
	case deck.KindAlexNet:
		return newIngredients(onInteract)
	case deck.KindResNet:
		return newResNetCompare(onInteract)
	case deck.KindAttention:
		return newAttention(onInteract)
	case deck.KindViT:
		return newPatchSlicer(onInteract)
	case deck.KindDiffusion:
		return newDiffusionSlider(onInteract)
	case deck.KindGenImage:
		return newImageLab(deps, onInteract)
	case deck.KindVideoSearch:
		return newVideoSearch(deps, onInteract)
	case deck.KindEthics:
		return newEthics(onInteract)
	default:
		return nil
	}
}

func (d Deps) logger(widget string) *logger.Logger {
	if d.Log == nil {
		return logger.Nop()
	}
	return d.Log.With("widget", widget)
}

var mounts atomic.Uint64

// nextMount returns a process-unique id for a widget mount. Async results
// carry it so a remounted widget ignores replies meant for its predecessor.
func nextMount() uint64 {
	return mounts.Add(1)
}
