package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stocklearn/internal/router"
	"github.com/abhisek/stocklearn/internal/screen"
	"github.com/abhisek/stocklearn/internal/ui/layout"
	"github.com/abhisek/stocklearn/internal/ui/theme"
)

const defaultMessage = "This feature is being built.\nCheck back later!"

// PlaceholderScreen is a generic "coming soon" screen.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)
var _ screen.KeyHintProvider = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title.
func New(title string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: defaultMessage}
}

// NewWithMessage creates a PlaceholderScreen with a custom body.
func NewWithMessage(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "backspace" {
		return p, router.Pop
	}
	return p, nil
}

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "1-5", Description: "Tabs"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (p *PlaceholderScreen) View(width, height int) string {
	heading := theme.Title.Render(p.title)
	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		Align(lipgloss.Center).
		Render("╌╌ Coming Soon ╌╌\n\n" + p.message)

	content := lipgloss.JoinVertical(lipgloss.Center, heading, "", body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
