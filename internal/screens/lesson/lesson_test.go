package lesson

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stocklearn/internal/activity"
	"github.com/abhisek/stocklearn/internal/learner"
	lsn "github.com/abhisek/stocklearn/internal/lesson"
	"github.com/abhisek/stocklearn/internal/router"
	"github.com/abhisek/stocklearn/internal/store"
)

func testLesson() lsn.Lesson {
	return lsn.Lesson{
		ID:       9,
		Title:    "Test Lesson",
		Icon:     lsn.IconShield,
		Duration: "3 min",
		Content:  "Diversify your holdings.",
		VideoURL: "https://youtu.be/abc123",
		Questions: []lsn.Question{
			{Prompt: "First?", Options: []string{"w", "x", "y", "z"}, CorrectIndex: 1, Explanation: "Because x."},
			{Prompt: "Second?", Options: []string{"w", "x", "y", "z"}, CorrectIndex: 2},
		},
	}
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

// send delivers msg and feeds every resulting message back to the screen.
func send(s *LessonScreen, msg tea.Msg) {
	_, cmd := s.Update(msg)
	for cmd != nil {
		next := cmd()
		if next == nil {
			return
		}
		_, cmd = s.Update(next)
	}
}

func startQuiz(t *testing.T, s *LessonScreen) {
	t.Helper()
	send(s, enter)
	if s.mode != modeQuiz {
		t.Fatalf("mode = %v, want quiz", s.mode)
	}
}

func TestLessonScreen_Detail(t *testing.T) {
	s := New(testLesson(), learner.New(), nil)
	if s.Title() != "Test Lesson" {
		t.Errorf("Title = %q", s.Title())
	}
	view := s.View(100, 40)
	for _, want := range []string{"Test Lesson", "3 min", "youtube.com/embed/abc123", "Diversify", "Take Quiz", "Mark as Complete"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q", want)
		}
	}
	if s.HandlesEscape() {
		t.Error("detail mode should let the shell handle Esc")
	}
}

func TestLessonScreen_PerfectQuizCompletes(t *testing.T) {
	st := learner.New()
	s := New(testLesson(), st, nil)
	startQuiz(t, s)

	if !strings.Contains(s.View(100, 40), "Question 1 of 2") {
		t.Error("expected question counter")
	}

	send(s, key('b'))
	if s.feedback == nil || !s.feedback.Correct {
		t.Fatal("expected correct feedback")
	}
	if !strings.Contains(s.View(100, 40), "Because x.") {
		t.Error("expected explanation after answering")
	}

	send(s, enter)
	if s.quiz.Index() != 1 {
		t.Fatalf("Index = %d, want 1", s.quiz.Index())
	}

	send(s, key('c'))
	send(s, enter)

	if s.mode != modeResult {
		t.Fatalf("mode = %v, want result", s.mode)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Perfect score!") || !strings.Contains(view, "100%") {
		t.Errorf("result view missing perfect score:\n%s", view)
	}
	if !st.Completion.Has(9) {
		t.Error("perfect score should complete the lesson")
	}
}

func TestLessonScreen_PartialScore(t *testing.T) {
	st := learner.New()
	s := New(testLesson(), st, nil)
	startQuiz(t, s)

	send(s, key('a')) // wrong
	send(s, key('b')) // ignored, already answered
	if s.quiz.Score() != 0 {
		t.Errorf("Score = %d, want 0", s.quiz.Score())
	}
	send(s, enter)
	send(s, key('c'))
	send(s, enter)

	view := s.View(100, 40)
	if !strings.Contains(view, "Quiz completed!") || !strings.Contains(view, "50%") {
		t.Errorf("result view missing partial score:\n%s", view)
	}
	if st.Completion.Has(9) {
		t.Error("partial score should not complete the lesson")
	}
}

func TestLessonScreen_EnterBeforeAnswerDoesNotAdvance(t *testing.T) {
	s := New(testLesson(), learner.New(), nil)
	startQuiz(t, s)

	// Enter on an unanswered question submits the highlighted option.
	send(s, enter)
	if s.feedback == nil {
		t.Fatal("enter should submit the highlighted option")
	}
	if s.quiz.Index() != 0 {
		t.Errorf("Index = %d, want 0", s.quiz.Index())
	}
}

func TestLessonScreen_Retake(t *testing.T) {
	s := New(testLesson(), learner.New(), nil)
	startQuiz(t, s)
	send(s, key('a'))
	send(s, enter)
	send(s, key('a'))
	send(s, enter)

	send(s, enter) // Retake Quiz
	if s.mode != modeQuiz {
		t.Fatalf("mode = %v, want quiz after retake", s.mode)
	}
	if s.quiz.Index() != 0 || s.quiz.Score() != 0 {
		t.Errorf("retake should start fresh, got index %d score %d", s.quiz.Index(), s.quiz.Score())
	}
}

func TestLessonScreen_EscLeavesQuiz(t *testing.T) {
	s := New(testLesson(), learner.New(), nil)
	startQuiz(t, s)
	if !s.HandlesEscape() {
		t.Fatal("quiz mode should handle Esc")
	}
	send(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.mode != modeDetail || s.quiz != nil {
		t.Error("Esc should discard the quiz and return to the lesson")
	}
}

func TestLessonScreen_MarkComplete(t *testing.T) {
	st := learner.New()
	s := New(testLesson(), st, nil)

	send(s, tea.KeyPressMsg{Code: tea.KeyDown})
	send(s, enter)

	if !st.Completion.Has(9) {
		t.Fatal("lesson should be complete")
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "✓ Completed") {
		t.Error("expected completed badge")
	}
	if s.actions.Items[1].Disabled != true {
		t.Error("mark complete should be disabled once complete")
	}
}

func TestLessonScreen_BackPops(t *testing.T) {
	s := New(testLesson(), learner.New(), nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(enter)
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestLessonScreen_NoQuestions(t *testing.T) {
	l := testLesson()
	l.Questions = nil
	s := New(l, learner.New(), nil)
	send(s, enter)
	if s.mode != modeDetail {
		t.Error("quiz should not start without questions")
	}
	if !strings.Contains(s.View(100, 40), "no quiz") {
		t.Error("expected an explanation")
	}
}

func TestLessonScreen_RecordsEvents(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "lesson.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()
	repo := st.EventRepo()

	s := New(testLesson(), learner.New(), activity.NewRecorder(repo, nil))
	startQuiz(t, s)
	send(s, key('b'))
	send(s, enter)
	send(s, key('c'))
	send(s, enter)

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.QuizAttempts != 1 || stats.PerfectQuizzes != 1 {
		t.Errorf("attempts = %d perfect = %d, want 1 1", stats.QuizAttempts, stats.PerfectQuizzes)
	}
	if stats.Answers != 2 || stats.CorrectAnswers != 2 {
		t.Errorf("answers = %d correct = %d, want 2 2", stats.Answers, stats.CorrectAnswers)
	}
	if stats.LessonsComplete != 1 {
		t.Errorf("LessonsComplete = %d, want 1", stats.LessonsComplete)
	}
}
