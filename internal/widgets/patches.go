package widgets

import (
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/visiontour/internal/ui/layout"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

const (
	patchGrid = 4 // patches per side
	patchW    = 4 // columns per patch
	patchH    = 2 // rows per patch
)

var shadeRamp = []rune(" .:-=+*#%@")

// PatchSlicer shows how a Vision Transformer cuts an image into 16 patches.
// Toggling between the whole picture and its patches is the engagement
// action.
type PatchSlicer struct {
	sliced     bool
	onInteract func()
}

func newPatchSlicer(onInteract func()) *PatchSlicer {
	return &PatchSlicer{onInteract: onInteract}
}

func (p *PatchSlicer) Init() tea.Cmd { return nil }

func (p *PatchSlicer) Update(msg tea.Msg) (Widget, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch kmsg.String() {
	case "enter", "space", " ", "t":
		p.sliced = !p.sliced
		p.onInteract()
	}
	return p, nil
}

// pixel returns the glyph at (x, y) of the built-in picture: a lit sphere.
func pixel(x, y int) rune {
	w := float64(patchGrid * patchW)
	h := float64(patchGrid * patchH)
	// Terminal cells are about twice as tall as wide.
	dx := (float64(x) + 0.5 - w/2) / (w / 2)
	dy := (float64(y) + 0.5 - h/2) / (h / 2)
	d := math.Hypot(dx, dy)
	if d > 0.95 {
		return shadeRamp[0]
	}
	light := 1 - math.Hypot(dx+0.35, dy+0.35)/1.6
	idx := int(math.Round(light * float64(len(shadeRamp)-1)))
	return shadeRamp[min(max(idx, 1), len(shadeRamp)-1)]
}

func patchRow(px, py, row int) string {
	var b strings.Builder
	for x := range patchW {
		b.WriteRune(pixel(px*patchW+x, py*patchH+row))
	}
	return b.String()
}

func (p *PatchSlicer) View(width int) string {
	var b strings.Builder

	if !p.sliced {
		for y := range patchGrid * patchH {
			var line strings.Builder
			for x := range patchGrid * patchW {
				line.WriteRune(pixel(x, y))
			}
			b.WriteString("   " + theme.Body.Render(line.String()) + "\n")
		}
	} else {
		for py := range patchGrid {
			for row := range patchH {
				cells := make([]string, 0, patchGrid)
				for px := range patchGrid {
					cells = append(cells, patchRow(px, py, row))
				}
				b.WriteString("   " + theme.Body.Render(strings.Join(cells, "  ")) + "\n")
			}
			labels := make([]string, 0, patchGrid)
			for px := range patchGrid {
				labels = append(labels, fmt.Sprintf("%-4d", py*patchGrid+px+1))
			}
			b.WriteString("   " + theme.Label.Render(strings.Join(labels, "  ")) + "\n")
		}
		tokens := make([]string, 0, patchGrid*patchGrid)
		for i := range patchGrid * patchGrid {
			tokens = append(tokens, fmt.Sprintf("[%d]", i+1))
		}
		b.WriteString("\n   " + theme.Hint.Render(strings.Join(tokens, "")) + "\n")
	}

	b.WriteString("\n")
	if p.sliced {
		b.WriteString(theme.ButtonActive.Render("Unificar Imagen (Visión Humana)"))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render("El modelo recibe estos 16 'parches' como una secuencia (1, 2, 3...), igual que palabras en una oración."))
	} else {
		b.WriteString(theme.ButtonActive.Render("Tokenizar en Parches (Visión Transformer)"))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render("A diferencia de las CNN que escanean píxeles, ViT rompe la imagen en fichas y analiza la relación entre todas ellas a la vez."))
	}
	return b.String()
}

func (p *PatchSlicer) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter/t", Description: "Alternar parches"},
	}
}
