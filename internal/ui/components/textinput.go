package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stocklearn/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label, optional masking and an
// optional digits-only filter.
type TextInput struct {
	Model      textinput.Model
	Label      string
	DigitsOnly bool
	Masked     bool
}

// NewTextInput creates a new styled text input. The input starts blurred.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{
		Model: ti,
		Label: label,
	}
}

// NewPasswordInput creates a masked text input.
func NewPasswordInput(label, placeholder string) TextInput {
	t := NewTextInput(label, placeholder, 64)
	t.SetMasked(true)
	return t
}

// SetMasked toggles password masking.
func (t *TextInput) SetMasked(masked bool) {
	t.Masked = masked
	if masked {
		t.Model.EchoMode = textinput.EchoPassword
		t.Model.EchoCharacter = '•'
	} else {
		t.Model.EchoMode = textinput.EchoNormal
	}
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages. Printable non-digit keys are dropped when
// DigitsOnly is set.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.DigitsOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" {
			for _, r := range kmsg.Text {
				if r < '0' || r > '9' {
					return t, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and input.
func (t TextInput) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	marker := "  "
	if t.Focused() {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
		marker = "▸ "
	}
	return labelStyle.Render(marker+t.Label) + "\n    " + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}
