package learn

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stocklearn/internal/activity"
	"github.com/abhisek/stocklearn/internal/learner"
	"github.com/abhisek/stocklearn/internal/lesson"
	"github.com/abhisek/stocklearn/internal/router"
	"github.com/abhisek/stocklearn/internal/screen"
	lessonscreen "github.com/abhisek/stocklearn/internal/screens/lesson"
	"github.com/abhisek/stocklearn/internal/ui/components"
	"github.com/abhisek/stocklearn/internal/ui/layout"
	"github.com/abhisek/stocklearn/internal/ui/theme"
)

// LearnScreen lists the lessons with the learner's progress and resources.
type LearnScreen struct {
	catalog  *lesson.Catalog
	learner  *learner.State
	recorder *activity.Recorder
	selected int
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)

// New creates a LearnScreen.
func New(catalog *lesson.Catalog, state *learner.State, recorder *activity.Recorder) *LearnScreen {
	return &LearnScreen{
		catalog:  catalog,
		learner:  state,
		recorder: recorder,
	}
}

func (s *LearnScreen) Init() tea.Cmd {
	return nil
}

func (s *LearnScreen) Title() string {
	return "Learn"
}

func (s *LearnScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose lesson"},
		{Key: "Enter", Description: "Open"},
		{Key: "1-5", Description: "Tabs"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < s.catalog.Len()-1 {
			s.selected++
		}
	case "enter":
		if s.selected < s.catalog.Len() {
			l := s.catalog.Lessons[s.selected]
			return s, router.Push(lessonscreen.New(l, s.learner, s.recorder))
		}
	}
	return s, nil
}

func (s *LearnScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.TabBarHeight + layout.FooterHeight)

	sections := []string{
		components.Card("Your Progress", s.renderProgress(cw), cw, false),
	}
	if done := s.renderCompleted(); done != "" {
		sections = append(sections, components.Card("Completed Lessons", done, cw, false))
	}
	sections = append(sections, components.Card("All Lessons", s.renderLessons(), cw, true))
	if !compact {
		sections = append(sections, components.Card("Resources", s.renderResources(), cw, false))
	}

	return components.Centered(strings.Join(sections, "\n"), width, height)
}

func (s *LearnScreen) renderProgress(cw int) string {
	done := s.learner.Completion.Len()
	total := s.catalog.Len()

	summary := theme.Body.Render(fmt.Sprintf("%d of %d lessons completed", done, total))
	bar := components.NewProgressBar("", done, total, false, cw-6).View()
	return summary + "\n" + bar
}

func (s *LearnScreen) renderCompleted() string {
	var lines []string
	for _, l := range s.catalog.Lessons {
		if s.learner.Completion.Has(l.ID) {
			lines = append(lines, theme.Gain.Render("✓ ")+theme.Body.Render(l.Title))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *LearnScreen) renderLessons() string {
	var lines []string
	for i, l := range s.catalog.Lessons {
		glyph, c := theme.LessonGlyph(l.Icon)

		prefix := "  "
		title := theme.Body.Render(l.Title)
		if i == s.selected {
			prefix = theme.Selected.Render("▸ ")
			title = theme.Selected.Render(l.Title)
		}

		detail := theme.Subtitle.Render(fmt.Sprintf("  %s · %d questions", l.Duration, l.QuestionCount()))
		line := prefix + lipgloss.NewStyle().Foreground(c).Render(glyph) + " " + title + detail
		if s.learner.Completion.Has(l.ID) {
			line += "  " + theme.Badge.Render("✓")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (s *LearnScreen) renderResources() string {
	if len(s.catalog.Resources) == 0 {
		return theme.Hint.Render("No resources")
	}
	var lines []string
	for _, r := range s.catalog.Resources {
		line := theme.Body.Bold(true).Render(r.Title)
		if r.Description != "" {
			line += theme.Subtitle.Render("  " + r.Description)
		}
		lines = append(lines, line, "  "+theme.Hint.Render(r.URL))
	}
	return strings.Join(lines, "\n")
}
