package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stocklearn/internal/ui/theme"
)

// TabBar renders the bottom tab strip with the active tab highlighted.
func TabBar(active theme.Tab, width int) string {
	parts := make([]string, 0, len(theme.Tabs))
	for i, tab := range theme.Tabs {
		label := fmt.Sprintf("%d %s %s", i+1, theme.TabGlyph(tab), tab.Label())
		if tab == active {
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.Text).
				Background(theme.Primary).
				Bold(true).
				Padding(0, 1).
				Render(label))
		} else {
			parts = append(parts, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Padding(0, 1).
				Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(parts, " "))
}
