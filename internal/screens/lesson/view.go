package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	lsn "github.com/abhisek/stocklearn/internal/lesson"
	"github.com/abhisek/stocklearn/internal/ui/components"
	"github.com/abhisek/stocklearn/internal/ui/layout"
	"github.com/abhisek/stocklearn/internal/ui/theme"
)

func questionCount(l lsn.Lesson) string {
	if n := l.QuestionCount(); n != 1 {
		return fmt.Sprintf("%d questions", n)
	}
	return "1 question"
}

func (s *LessonScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var body string
	switch s.mode {
	case modeQuiz:
		body = s.renderQuiz(cw)
	case modeResult:
		body = s.renderResult(cw)
	default:
		body = s.renderDetail(cw)
	}
	return components.Centered(body, width, height)
}

func (s *LessonScreen) renderHeader() string {
	glyph, c := theme.LessonGlyph(s.lesson.Icon)
	title := lipgloss.NewStyle().Foreground(c).Render(glyph) + " " +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.lesson.Title)

	meta := theme.Subtitle.Render("⏱ " + s.lesson.Duration)
	if s.learner.Engine.IsComplete(s.lesson.ID) {
		meta += "  " + theme.Badge.Render("✓ Completed")
	}
	return title + "\n" + meta
}

func (s *LessonScreen) renderDetail(cw int) string {
	var sections []string

	sections = append(sections, components.Card("", s.renderHeader(), cw, false))

	if embed := lsn.EmbedURL(s.lesson.VideoURL); embed != "" {
		sections = append(sections, components.Card("▶ Video Lesson", theme.Hint.Render(embed), cw, false))
	}

	content := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 4).Render(s.lesson.Content)
	sections = append(sections, components.Card("Lesson", content, cw, false))

	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	sections = append(sections, components.Card("", s.actions.View(), cw, true))
	return strings.Join(sections, "\n")
}

func (s *LessonScreen) renderQuiz(cw int) string {
	q := s.quiz
	heading := fmt.Sprintf("Question %d of %d", q.Index()+1, q.Total())
	score := theme.Subtitle.Render(fmt.Sprintf("Score: %d", q.Score()))

	bar := components.NewProgressBar("", q.Index()+1, q.Total(), false, cw-4).View()

	sections := []string{
		components.Card(heading, bar+"\n"+score, cw, false),
		components.Card("", s.choice.View(), cw, s.feedback == nil),
	}

	if fb := s.feedback; fb != nil {
		verdict := theme.Correct.Render("✓ Correct!")
		if !fb.Correct {
			verdict = theme.Incorrect.Render("✗ Not quite")
		}
		text := verdict
		if fb.Explanation != "" {
			text += "\n" + lipgloss.NewStyle().Foreground(theme.Text).Width(cw-4).Render(fb.Explanation)
		}
		sections = append(sections, components.Card("", text, cw, false))
	}

	return strings.Join(sections, "\n")
}

func (s *LessonScreen) renderResult(cw int) string {
	r := s.result

	headline := theme.Title.Render("Quiz completed!")
	if r.Perfect() {
		headline = theme.Correct.Render("★ Perfect score!")
	}

	lines := []string{
		headline,
		"",
		theme.Body.Render(fmt.Sprintf("You scored %d out of %d", r.Score, r.Total)),
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("%d%%", r.Percent())),
	}
	if r.AutoCompleted {
		lines = append(lines, "", theme.Gain.Render("Lesson marked as complete."))
	} else {
		lines = append(lines, "", theme.Hint.Render("Answer every question correctly to complete the lesson."))
	}

	return strings.Join([]string{
		components.Card(s.lesson.Title, strings.Join(lines, "\n"), cw, false),
		components.Card("", s.resultMenu.View(), cw, true),
	}, "\n")
}
