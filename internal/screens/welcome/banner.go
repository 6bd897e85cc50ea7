package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stocklearn/internal/ui/theme"
)

const bannerArt = `╔═╗╔╦╗╔═╗╔═╗╦╔═  ╦  ╔═╗╔═╗╦═╗╔╗╔
╚═╗ ║ ║ ║║  ╠╩╗  ║  ║╣ ╠═╣╠╦╝║║║
╚═╝ ╩ ╚═╝╚═╝╩ ╩  ╩═╝╚═╝╩ ╩╩╚═╝╚╝`

const bannerCompact = "S T O C K L E A R N"

// RenderBanner returns the StockLearn banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
