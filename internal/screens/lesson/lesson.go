package lesson

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stocklearn/internal/activity"
	"github.com/abhisek/stocklearn/internal/learner"
	lsn "github.com/abhisek/stocklearn/internal/lesson"
	"github.com/abhisek/stocklearn/internal/progress"
	"github.com/abhisek/stocklearn/internal/router"
	"github.com/abhisek/stocklearn/internal/screen"
	"github.com/abhisek/stocklearn/internal/store"
	"github.com/abhisek/stocklearn/internal/ui/components"
	"github.com/abhisek/stocklearn/internal/ui/layout"
)

type mode int

const (
	modeDetail mode = iota
	modeQuiz
	modeResult
)

// LessonScreen shows a lesson and runs its quiz.
type LessonScreen struct {
	lesson   lsn.Lesson
	learner  *learner.State
	recorder *activity.Recorder

	mode    mode
	actions components.Menu

	quiz     *progress.QuizSession
	attempt  activity.Attempt
	choice   components.MultiChoice
	feedback *progress.Feedback

	result     progress.Result
	resultMenu components.Menu

	errMsg string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.EscapeHandler = (*LessonScreen)(nil)

// New creates a LessonScreen for l.
func New(l lsn.Lesson, state *learner.State, recorder *activity.Recorder) *LessonScreen {
	if recorder == nil {
		recorder = activity.NewRecorder(nil, nil)
	}
	s := &LessonScreen{
		lesson:   l,
		learner:  state,
		recorder: recorder,
	}
	s.buildActions()
	return s
}

func (s *LessonScreen) buildActions() {
	completed := s.learner.Engine.IsComplete(s.lesson.ID)
	items := []components.MenuItem{
		{Label: "Take Quiz", Detail: questionCount(s.lesson), Action: s.startQuiz},
		{Label: "Mark as Complete", Disabled: completed, Action: func() tea.Cmd {
			return func() tea.Msg { return markCompleteMsg{} }
		}},
		{Label: "Back to Lessons", Action: func() tea.Cmd { return router.Pop }},
	}
	if completed {
		items[1].Label = "✓ Completed"
	}
	selected := s.actions.Selected
	s.actions = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		s.actions.Selected = selected
	}
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	return s.lesson.Title
}

// HandlesEscape reports whether Esc is consumed by the screen: inside the
// quiz and on the results card it returns to the lesson instead of popping.
func (s *LessonScreen) HandlesEscape() bool {
	return s.mode != modeDetail
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeQuiz:
		if s.feedback != nil {
			next := "Next question"
			if s.quiz.IsLast() {
				next = "See results"
			}
			return []layout.KeyHint{
				{Key: "Enter", Description: next},
				{Key: "Esc", Description: "Leave quiz"},
			}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter/a-d", Description: "Answer"},
			{Key: "Esc", Description: "Leave quiz"},
		}
	case modeResult:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back to lesson"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizStartedMsg:
		return s, s.handleQuizStarted(msg)

	case components.OptionChosenMsg:
		return s, s.handleAnswer(msg.Index)

	case markCompleteMsg:
		return s, s.markComplete()

	case backToDetailMsg:
		s.leaveQuiz()
		return s, nil

	case persistedMsg:
		// Failures are already logged by the recorder; the quiz carries on.
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *LessonScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.mode {
	case modeDetail:
		s.actions, cmd = s.actions.Update(msg)
		return s, cmd

	case modeQuiz:
		if msg.String() == "esc" {
			s.leaveQuiz()
			return s, nil
		}
		if s.feedback != nil {
			if msg.String() == "enter" || msg.String() == "space" {
				return s, s.next()
			}
			return s, nil
		}
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd

	case modeResult:
		if msg.String() == "esc" {
			s.leaveQuiz()
			return s, nil
		}
		s.resultMenu, cmd = s.resultMenu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) startQuiz() tea.Cmd {
	l := s.lesson
	engine := s.learner.Engine
	retake := s.mode == modeResult
	return func() tea.Msg {
		var (
			sess *progress.QuizSession
			err  error
		)
		if retake {
			sess, err = engine.RetakeQuiz(l)
		} else {
			sess, err = engine.StartQuiz(l)
		}
		return quizStartedMsg{Session: sess, Err: err}
	}
}

func (s *LessonScreen) handleQuizStarted(msg quizStartedMsg) tea.Cmd {
	if msg.Err != nil {
		if errors.Is(msg.Err, progress.ErrNoQuestions) {
			s.errMsg = "This lesson has no quiz yet."
		} else {
			s.errMsg = msg.Err.Error()
		}
		s.mode = modeDetail
		return nil
	}

	s.errMsg = ""
	s.quiz = msg.Session
	s.attempt = activity.NewAttempt(msg.Session)
	s.mode = modeQuiz
	s.loadQuestion()

	rec, a := s.recorder, s.attempt
	return func() tea.Msg {
		return persistedMsg{Err: rec.QuizStarted(context.Background(), a)}
	}
}

func (s *LessonScreen) loadQuestion() {
	q := s.quiz.Current()
	s.choice = components.NewMultiChoice(q.Prompt, q.Options)
	s.feedback = nil
}

func (s *LessonScreen) handleAnswer(option int) tea.Cmd {
	if s.mode != modeQuiz || s.quiz == nil {
		return nil
	}
	fb, err := s.quiz.Submit(option)
	if err != nil {
		// A repeat answer leaves the locked feedback in place.
		return nil
	}
	s.feedback = &fb
	s.choice.Lock(fb.States)

	rec, a, idx, score := s.recorder, s.attempt, s.quiz.Index(), s.quiz.Score()
	return func() tea.Msg {
		return persistedMsg{Err: rec.Answered(context.Background(), a, idx, fb, score)}
	}
}

func (s *LessonScreen) next() tea.Cmd {
	if !s.quiz.IsLast() {
		if err := s.quiz.Advance(); err != nil {
			return nil
		}
		s.loadQuestion()
		return nil
	}

	res, err := s.learner.Engine.Finish(s.quiz)
	if err != nil {
		return nil
	}
	s.result = res
	s.mode = modeResult
	s.quiz = nil
	s.feedback = nil
	s.buildActions()
	s.resultMenu = components.NewMenu([]components.MenuItem{
		{Label: "Retake Quiz", Action: s.startQuiz},
		{Label: "Back to Lesson", Action: func() tea.Cmd {
			return func() tea.Msg { return backToDetailMsg{} }
		}},
	})

	rec, a := s.recorder, s.attempt
	return func() tea.Msg {
		return persistedMsg{Err: rec.Finished(context.Background(), a, res)}
	}
}

// leaveQuiz discards any running session and returns to the lesson body.
func (s *LessonScreen) leaveQuiz() {
	s.quiz = nil
	s.feedback = nil
	s.mode = modeDetail
	s.buildActions()
}

func (s *LessonScreen) markComplete() tea.Cmd {
	if !s.learner.Engine.MarkLessonComplete(s.lesson.ID) {
		return nil
	}
	s.buildActions()

	rec, id := s.recorder, int(s.lesson.ID)
	return func() tea.Msg {
		return persistedMsg{Err: rec.Completed(context.Background(), id, store.CompletionSourceManual)}
	}
}
