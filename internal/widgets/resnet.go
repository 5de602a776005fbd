package widgets

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/ui/layout"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

type resnetMode int

const (
	modePlain resnetMode = iota
	modeResidual
)

const resnetLayers = 5

// ResNetCompare contrasts a plain deep network, whose signal fades layer by
// layer, with a residual one. Choosing a mode is the engagement action, even
// when the mode does not change.
type ResNetCompare struct {
	mode       resnetMode
	onInteract func()
}

func newResNetCompare(onInteract func()) *ResNetCompare {
	return &ResNetCompare{mode: modePlain, onInteract: onInteract}
}

func (r *ResNetCompare) Init() tea.Cmd { return nil }

func (r *ResNetCompare) Update(msg tea.Msg) (Widget, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "1":
		r.mode = modePlain
	case "2":
		r.mode = modeResidual
	case "enter", "space", " ", "tab", "m":
		r.mode = 1 - r.mode
	default:
		return r, nil
	}
	r.onInteract()
	return r, nil
}

// signal returns the fraction of the input signal that survives to layer i
// (1-based) in the current mode.
func (r *ResNetCompare) signal(i int) float64 {
	if r.mode == modeResidual {
		return 1
	}
	return max(0.1, 1-float64(i)*0.2)
}

func (r *ResNetCompare) View(width int) string {
	var b strings.Builder

	plain := theme.ButtonInactive
	residual := theme.ButtonInactive
	if r.mode == modePlain {
		plain = theme.ButtonActive
	} else {
		residual = theme.ButtonActive
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		plain.Render("1 Red Profunda Normal"), "  ",
		residual.Render("2 ResNet (Con Atajos)"),
	))
	b.WriteString("\n\n")

	if r.mode == modeResidual {
		skip := "   ╭" + strings.Repeat("─", resnetLayers*6-3) + "╮"
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render(skip))
		b.WriteString("\n")
	}

	blocks := make([]string, 0, resnetLayers)
	for i := 1; i <= resnetLayers; i++ {
		blocks = append(blocks, layerBlock(r.signal(i)))
	}
	b.WriteString("   " + strings.Join(blocks, theme.Hint.Render("→")))
	b.WriteString("\n\n")

	if r.mode == modePlain {
		b.WriteString(theme.Body.Render("Sin atajos, la señal (información) se degrada a medida que la red se hace más profunda."))
	} else {
		b.WriteString(theme.Body.Render("Los 'Saltos de Identidad' permiten que la información fluya sin degradarse, permitiendo 152+ capas."))
	}
	return b.String()
}

// layerBlock draws one layer whose shading reflects the surviving signal.
func layerBlock(signal float64) string {
	shades := []string{"░", "▒", "▓", "█"}
	idx := min(int(signal*float64(len(shades)-1)+0.5), len(shades)-1)
	color := theme.TextDim
	if signal >= 1 {
		color = theme.Primary
	}
	return lipgloss.NewStyle().Foreground(color).Render("[" + strings.Repeat(shades[idx], 3) + "]")
}

func (r *ResNetCompare) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1/2", Description: "Elegir red"},
		{Key: "Enter", Description: "Alternar"},
	}
}
