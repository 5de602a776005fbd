package widgets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// renderPreview draws an encoded image as terminal half blocks, cols cells
// wide. Each cell shows two vertically stacked pixels.
func renderPreview(data []byte, cols int) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || cols <= 0 {
		return "", nil
	}

	// Two pixel rows per cell, and cells are about twice as tall as wide.
	rows := max(cols*b.Dy()/b.Dx()/2, 1)
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var out strings.Builder
	for y := 0; y < rows*2; y += 2 {
		for x := range cols {
			top := hexColor(dst.At(x, y))
			bottom := hexColor(dst.At(x, y+1))
			out.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		out.WriteString("\n")
	}
	return strings.TrimSuffix(out.String(), "\n"), nil
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
