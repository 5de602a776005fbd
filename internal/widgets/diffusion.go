package widgets

import (
	"fmt"
	"math/rand/v2"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/visiontour/internal/ui/components"
	"github.com/abhisek/visiontour/internal/ui/layout"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

const (
	sliderStep   = 10
	blurredAbove = 50
)

// DiffusionSlider reveals a picture as noise is removed. The slider value
// runs from 0 (pure noise) to 100 (clean image); noise is its complement.
// Moving the slider is the engagement action.
type DiffusionSlider struct {
	value      int
	noiseMask  [][]float64
	onInteract func()
}

func newDiffusionSlider(onInteract func()) *DiffusionSlider {
	rows, cols := patchGrid*patchH, patchGrid*patchW
	rng := rand.New(rand.NewPCG(42, 2020))
	mask := make([][]float64, rows)
	for y := range mask {
		mask[y] = make([]float64, cols)
		for x := range mask[y] {
			mask[y][x] = rng.Float64()
		}
	}
	return &DiffusionSlider{value: 0, noiseMask: mask, onInteract: onInteract}
}

// Noise returns the current noise level in percent.
func (d *DiffusionSlider) Noise() int {
	return 100 - d.value
}

// Blurred reports whether the picture is drawn blurred.
func (d *DiffusionSlider) Blurred() bool {
	return d.Noise() > blurredAbove
}

func (d *DiffusionSlider) Init() tea.Cmd { return nil }

func (d *DiffusionSlider) Update(msg tea.Msg) (Widget, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	value := d.value
	switch kmsg.String() {
	case "up", "k", "+", "=":
		value += sliderStep
	case "down", "j", "-":
		value -= sliderStep
	case "home":
		value = 0
	case "end":
		value = 100
	default:
		return d, nil
	}

	value = min(max(value, 0), 100)
	if value == d.value {
		return d, nil
	}
	d.value = value
	d.onInteract()
	return d, nil
}

func (d *DiffusionSlider) glyph(x, y int) rune {
	if d.noiseMask[y][x] < float64(d.Noise())/100 {
		return shadeRamp[int(d.noiseMask[y][x]*997)%len(shadeRamp)]
	}
	r := pixel(x, y)
	if !d.Blurred() {
		return r
	}
	// Blur collapses the ramp to a few coarse levels.
	for i, s := range shadeRamp {
		if s == r {
			return shadeRamp[(i/3)*3]
		}
	}
	return r
}

func (d *DiffusionSlider) View(width int) string {
	var b strings.Builder
	b.WriteString(theme.Label.Render("Difusión Latente"))
	b.WriteString("\n\n")

	for y := range d.noiseMask {
		var line strings.Builder
		for x := range d.noiseMask[y] {
			line.WriteRune(d.glyph(x, y))
		}
		b.WriteString("   " + theme.Body.Render(line.String()) + "\n")
	}
	b.WriteString("\n")

	bar := components.NewProgressBar("", float64(d.value), false, 30).View()
	b.WriteString("Ruido " + bar + " Imagen  " + theme.Hint.Render(fmt.Sprintf("ruido %d%%", d.Noise())))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(`El modelo "elimina el ruido" progresivamente para revelar la imagen.`))
	return b.String()
}

func (d *DiffusionSlider) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓ / +-", Description: "Mover control"},
	}
}
