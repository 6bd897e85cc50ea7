package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stocklearn/internal/progress"
	"github.com/abhisek/stocklearn/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// OptionChosenMsg is emitted when the learner confirms an option.
type OptionChosenMsg struct {
	Index int
}

// MultiChoice is a multiple-choice selector. Once Locked, the cursor is
// hidden and each option renders by its OptionState.
type MultiChoice struct {
	Question string
	Options  []string
	States   []progress.OptionState
	Cursor   int
	Locked   bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		States:   make([]progress.OptionState, len(options)),
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter", "space":
		return m, m.choose(m.Cursor)
	}

	// a-f picks an option directly.
	if len(key) == 1 && key[0] >= 'a' && int(key[0]-'a') < len(m.Options) {
		m.Cursor = int(key[0] - 'a')
		return m, m.choose(m.Cursor)
	}

	return m, nil
}

func (m MultiChoice) choose(i int) tea.Cmd {
	return func() tea.Msg {
		return OptionChosenMsg{Index: i}
	}
}

// Lock freezes the component and applies the per-option states.
func (m *MultiChoice) Lock(states []progress.OptionState) {
	m.Locked = true
	m.States = states
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}

		prefix := "  "
		if i == m.Cursor && !m.Locked {
			prefix = "▸ "
		}

		state := progress.OptionNeutral
		if i < len(m.States) {
			state = m.States[i]
		}

		line := fmt.Sprintf("%s%s)  %s%s", prefix, label, opt, stateMark(state))
		s += optionStyle(state, i == m.Cursor && !m.Locked).Render(line) + "\n"
	}

	return s
}

func stateMark(s progress.OptionState) string {
	switch s {
	case progress.OptionSelectedCorrect, progress.OptionCorrectUnselected:
		return "  ✓"
	case progress.OptionSelectedIncorrect:
		return "  ✗"
	}
	return ""
}

func optionStyle(s progress.OptionState, focused bool) lipgloss.Style {
	switch s {
	case progress.OptionSelectedCorrect:
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	case progress.OptionSelectedIncorrect:
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	case progress.OptionCorrectUnselected:
		return lipgloss.NewStyle().Foreground(theme.Success)
	}
	if focused {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(theme.Text)
}
