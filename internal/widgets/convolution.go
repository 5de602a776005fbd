package widgets

import (
	"fmt"
	"math/rand/v2"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/ui/layout"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

const gridSize = 5

// edgeKernel is a vertical edge detector applied at the cursor.
var edgeKernel = [3][3]int{
	{-1, 0, 1},
	{-1, 0, 1},
	{-1, 0, 1},
}

// Convolution simulates a 3x3 kernel scanning a 5x5 grid of pixel values.
// Moving the kernel is the engagement action.
type Convolution struct {
	pixels     [gridSize][gridSize]int
	row, col   int
	moved      bool
	onInteract func()
}

func newConvolution(onInteract func()) *Convolution {
	c := &Convolution{row: gridSize / 2, col: gridSize / 2, onInteract: onInteract}
	rng := rand.New(rand.NewPCG(uint64(nextMount()), 1989))
	for r := range gridSize {
		for col := range gridSize {
			c.pixels[r][col] = rng.IntN(9)
		}
	}
	return c
}

func (c *Convolution) Init() tea.Cmd { return nil }

func (c *Convolution) Update(msg tea.Msg) (Widget, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	row, col := c.row, c.col
	switch kmsg.String() {
	case "up", "k":
		row--
	case "down", "j":
		row++
	case "h":
		col--
	case "l":
		col++
	default:
		return c, nil
	}

	if row < 0 || row >= gridSize || col < 0 || col >= gridSize {
		return c, nil
	}
	c.row, c.col = row, col
	c.moved = true
	c.onInteract()
	return c, nil
}

// inWindow reports whether (r, col) lies in the 3x3 window around the cursor.
func (c *Convolution) inWindow(r, col int) bool {
	return abs(r-c.row) <= 1 && abs(col-c.col) <= 1
}

// response is the kernel's dot product with the window. Cells outside the
// grid count as zero.
func (c *Convolution) response() int {
	sum := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, col := c.row+dr, c.col+dc
			if r < 0 || r >= gridSize || col < 0 || col >= gridSize {
				continue
			}
			sum += c.pixels[r][col] * edgeKernel[dr+1][dc+1]
		}
	}
	return sum
}

func (c *Convolution) View(width int) string {
	var b strings.Builder
	b.WriteString(theme.Label.Render("Simulación de Convolución"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(`Mueve el "Kernel" (el recuadro rojo) para ver cómo escanea los píxeles.`))
	b.WriteString("\n\n")

	hot := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	center := lipgloss.NewStyle().Background(theme.Error).Foreground(theme.BgDark).Bold(true)
	cold := lipgloss.NewStyle().Foreground(theme.TextDim)

	for r := range gridSize {
		b.WriteString("   ")
		for col := range gridSize {
			cell := fmt.Sprintf(" %d ", c.pixels[r][col])
			switch {
			case r == c.row && col == c.col:
				cell = center.Render(cell)
			case c.inWindow(r, col):
				cell = hot.Render(cell)
			default:
				cell = cold.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	op := "Operación: Producto escalar local"
	if c.moved {
		op += fmt.Sprintf(" = %d", c.response())
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render(op))
	return b.String()
}

func (c *Convolution) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "h/j/k/l", Description: "Mover kernel"},
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
