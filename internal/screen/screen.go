package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stocklearn/internal/ui/layout"
	"github.com/abhisek/stocklearn/internal/ui/theme"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that sometimes own the keyboard,
// such as a form with a focused text field. While CapturesInput is true the
// shell does not treat digits or Tab as tab switches.
type InputCapturer interface {
	CapturesInput() bool
}

// SwitchTabMsg asks the shell to bring a tab to the front.
type SwitchTabMsg struct {
	Tab theme.Tab
}

// SwitchTab returns a command that emits SwitchTabMsg.
func SwitchTab(t theme.Tab) tea.Cmd {
	return func() tea.Msg {
		return SwitchTabMsg{Tab: t}
	}
}

// TabFocusedMsg is delivered to a tab's active screen when the tab is
// brought to the front.
type TabFocusedMsg struct{}

// EscapeHandler is implemented by screens that use Esc for their own
// navigation. While HandlesEscape is true the shell forwards Esc to the
// screen instead of popping it.
type EscapeHandler interface {
	HandlesEscape() bool
}
