package learn

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stocklearn/internal/learner"
	"github.com/abhisek/stocklearn/internal/lesson"
	"github.com/abhisek/stocklearn/internal/router"
)

func newTestLearn(t *testing.T) (*LearnScreen, *learner.State) {
	t.Helper()
	cat, err := lesson.Default()
	if err != nil {
		t.Fatalf("lesson.Default: %v", err)
	}
	st := learner.New()
	return New(cat, st, nil), st
}

func TestLearn_View(t *testing.T) {
	s, _ := newTestLearn(t)
	view := s.View(100, 40)
	for _, want := range []string{"Your Progress", "0 of 4 lessons completed", "All Lessons", "What is a Stock?", "Resources"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Completed Lessons") {
		t.Error("completed section should be hidden when nothing is complete")
	}
}

func TestLearn_CompletedSection(t *testing.T) {
	s, st := newTestLearn(t)
	st.Engine.MarkLessonComplete(1)

	view := s.View(100, 40)
	if !strings.Contains(view, "1 of 4 lessons completed") {
		t.Error("progress should count completed lesson")
	}
	if !strings.Contains(view, "Completed Lessons") {
		t.Error("expected completed section")
	}
}

func TestLearn_OpenLesson(t *testing.T) {
	s, _ := newTestLearn(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != "Understanding NEPSE" {
		t.Errorf("pushed %q, want %q", push.Screen.Title(), "Understanding NEPSE")
	}
}

func TestLearn_SelectionBounds(t *testing.T) {
	s, _ := newTestLearn(t)
	for i := 0; i < 10; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.selected != 3 {
		t.Errorf("selected = %d, want 3", s.selected)
	}
	for i := 0; i < 10; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	}
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
}
