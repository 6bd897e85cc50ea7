package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stocklearn/internal/ui/theme"
)

// Card wraps content in a rounded-border card. cw is the outer width, so
// cards rendered with the same cw line up.
func Card(title, content string, cw int, focused bool) string {
	border := theme.Border
	if focused {
		border = theme.Primary
	}

	body := content
	if title != "" {
		body = theme.Title.Render(title) + "\n" + content
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw-2).
		Padding(0, 1).
		Render(body)
}

// Centered places content horizontally centered at the top of the area.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}
