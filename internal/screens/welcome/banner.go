package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/ui/theme"
)

const bannerArt = `
 ██╗   ██╗██╗███████╗██╗ ██████╗ ███╗   ██╗
 ██║   ██║██║██╔════╝██║██╔═══██╗████╗  ██║
 ██║   ██║██║███████╗██║██║   ██║██╔██╗ ██║
 ╚██╗ ██╔╝██║╚════██║██║██║   ██║██║╚██╗██║
  ╚████╔╝ ██║███████║██║╚██████╔╝██║ ╚████║
   ╚═══╝  ╚═╝╚══════╝╚═╝ ╚═════╝ ╚═╝  ╚═══╝`

const bannerCompact = "V I S I O N"

// bannerWidth is the widest line of bannerArt plus a margin.
const bannerWidth = 46

// RenderBanner returns the VISION banner with the "tour" tagline below it.
// Narrow terminals get the compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)
	tag := lipgloss.NewStyle().Foreground(theme.Secondary).Render("t o u r")

	if width < bannerWidth {
		return lipgloss.JoinVertical(lipgloss.Center, style.Render(bannerCompact), tag)
	}
	return lipgloss.JoinVertical(lipgloss.Center, style.Render(bannerArt), "", tag)
}
