package progress

import (
	"errors"
	"testing"

	"github.com/abhisek/stocklearn/internal/lesson"
)

func testLesson(id lesson.ID, correct ...int) lesson.Lesson {
	l := lesson.Lesson{ID: id, Title: "Test lesson", Icon: lesson.IconShield, Content: "body"}
	for _, c := range correct {
		l.Questions = append(l.Questions, lesson.Question{
			Prompt:       "Pick one",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: c,
			Explanation:  "because",
		})
	}
	return l
}

// runQuiz answers every question with the given options and finishes.
func runQuiz(t *testing.T, e *Engine, l lesson.Lesson, answers []int) Result {
	t.Helper()
	s, err := e.StartQuiz(l)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	for i, a := range answers {
		if _, err := s.Submit(a); err != nil {
			t.Fatalf("Submit(%d) on question %d: %v", a, i, err)
		}
		if i < len(answers)-1 {
			if err := s.Advance(); err != nil {
				t.Fatalf("Advance on question %d: %v", i, err)
			}
		}
	}
	r, err := e.Finish(s)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return r
}

func TestStartQuiz_NoQuestions(t *testing.T) {
	e := NewEngine(nil)
	_, err := e.StartQuiz(testLesson(1))
	if !errors.Is(err, ErrNoQuestions) {
		t.Errorf("err = %v, want ErrNoQuestions", err)
	}
}

func TestStartQuiz_InitialState(t *testing.T) {
	e := NewEngine(nil)
	s, err := e.StartQuiz(testLesson(1, 0, 1))
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if s.Index() != 0 || s.Score() != 0 || s.Answered() || s.Selected() != -1 {
		t.Errorf("initial state = (%d, %d, %v, %d), want (0, 0, false, -1)",
			s.Index(), s.Score(), s.Answered(), s.Selected())
	}
	if s.Phase() != PhaseInProgress {
		t.Errorf("Phase = %v, want PhaseInProgress", s.Phase())
	}
	if e.Completion().Len() != 0 {
		t.Errorf("Completion().Len() = %d, want 0", e.Completion().Len())
	}
}

func TestAllCorrect_AutoCompletes(t *testing.T) {
	for n := 1; n <= 5; n++ {
		e := NewEngine(nil)
		correct := make([]int, n)
		for i := range correct {
			correct[i] = i % 4
		}
		l := testLesson(lesson.ID(n), correct...)

		r := runQuiz(t, e, l, correct)

		if r.Score != n || r.Total != n {
			t.Errorf("n=%d: score = %d/%d, want %d/%d", n, r.Score, r.Total, n, n)
		}
		if !r.AutoCompleted || !r.NewlyCompleted || !e.IsComplete(l.ID) {
			t.Errorf("n=%d: lesson not auto-completed", n)
		}
		if r.Percent() != 100 {
			t.Errorf("n=%d: Percent = %d, want 100", n, r.Percent())
		}
	}
}

func TestPerfectRetake_NotNewlyCompleted(t *testing.T) {
	e := NewEngine(nil)
	l := testLesson(3, 1, 2)

	first := runQuiz(t, e, l, []int{1, 2})
	second := runQuiz(t, e, l, []int{1, 2})

	if !first.NewlyCompleted {
		t.Error("first perfect attempt should newly complete the lesson")
	}
	if !second.AutoCompleted || second.NewlyCompleted {
		t.Errorf("second attempt: AutoCompleted=%v NewlyCompleted=%v, want true false",
			second.AutoCompleted, second.NewlyCompleted)
	}
	if e.Completion().Len() != 1 {
		t.Errorf("Completion().Len() = %d, want 1", e.Completion().Len())
	}
}

func TestAllIncorrect_NoAutoComplete(t *testing.T) {
	e := NewEngine(nil)
	l := testLesson(2, 0, 0, 0)

	r := runQuiz(t, e, l, []int{3, 2, 1})

	if r.Score != 0 {
		t.Errorf("Score = %d, want 0", r.Score)
	}
	if r.AutoCompleted || e.IsComplete(l.ID) {
		t.Error("lesson auto-completed with zero score")
	}

	if !e.MarkLessonComplete(l.ID) {
		t.Error("MarkLessonComplete returned false for a new lesson")
	}
	if !e.IsComplete(l.ID) {
		t.Error("manual completion not recorded")
	}
}

func TestSubmit_SecondAnswerIsLocked(t *testing.T) {
	e := NewEngine(nil)
	s, _ := e.StartQuiz(testLesson(1, 0, 0))

	first, err := s.Submit(0)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.Score() != 1 {
		t.Fatalf("Score = %d, want 1", s.Score())
	}

	for _, opt := range []int{0, 1, 2, 3} {
		fb, err := s.Submit(opt)
		if !errors.Is(err, ErrAlreadyAnswered) {
			t.Errorf("Submit(%d) err = %v, want ErrAlreadyAnswered", opt, err)
		}
		if fb.Selected != first.Selected || fb.Correct != first.Correct {
			t.Errorf("Submit(%d) feedback = %+v, want locked %+v", opt, fb, first)
		}
		if s.Score() != 1 {
			t.Errorf("Score after Submit(%d) = %d, want 1", opt, s.Score())
		}
	}
}

func TestSubmit_OutOfRange(t *testing.T) {
	e := NewEngine(nil)
	s, _ := e.StartQuiz(testLesson(1, 0))

	for _, opt := range []int{-1, 4, 99} {
		if _, err := s.Submit(opt); !errors.Is(err, ErrOptionOutOfRange) {
			t.Errorf("Submit(%d) err = %v, want ErrOptionOutOfRange", opt, err)
		}
	}
	if s.Answered() {
		t.Error("out-of-range submit marked the question answered")
	}
}

func TestAdvance_Guards(t *testing.T) {
	e := NewEngine(nil)
	s, _ := e.StartQuiz(testLesson(1, 0, 0))

	if err := s.Advance(); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("Advance before answer err = %v, want ErrNotAnswered", err)
	}
	if s.Index() != 0 {
		t.Errorf("Index = %d, want 0", s.Index())
	}

	s.Submit(0)
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if s.Index() != 1 || s.Answered() {
		t.Errorf("after Advance = (%d, %v), want (1, false)", s.Index(), s.Answered())
	}

	s.Submit(0)
	if err := s.Advance(); !errors.Is(err, ErrLastQuestion) {
		t.Errorf("Advance on last err = %v, want ErrLastQuestion", err)
	}
	if s.Index() != 1 {
		t.Errorf("Index = %d, want 1", s.Index())
	}
}

func TestFinish_Guards(t *testing.T) {
	e := NewEngine(nil)
	s, _ := e.StartQuiz(testLesson(1, 0, 0))

	s.Submit(0)
	if _, err := s.Finish(); !errors.Is(err, ErrNotLastQuestion) {
		t.Errorf("Finish on first question err = %v, want ErrNotLastQuestion", err)
	}

	s.Advance()
	if _, err := s.Finish(); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("Finish before answering err = %v, want ErrNotAnswered", err)
	}
}

func TestFinish_ResultDeliveredOnce(t *testing.T) {
	e := NewEngine(nil)
	s, _ := e.StartQuiz(testLesson(1, 0))
	s.Submit(0)

	if _, err := e.Finish(s); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := e.Finish(s); !errors.Is(err, ErrSessionFinished) {
		t.Errorf("second Finish err = %v, want ErrSessionFinished", err)
	}
	if _, err := s.Submit(0); !errors.Is(err, ErrSessionFinished) {
		t.Errorf("Submit after finish err = %v, want ErrSessionFinished", err)
	}
	if err := s.Advance(); !errors.Is(err, ErrSessionFinished) {
		t.Errorf("Advance after finish err = %v, want ErrSessionFinished", err)
	}
}

func TestRetake_ResetsSession(t *testing.T) {
	e := NewEngine(nil)
	l := testLesson(1, 0, 0, 0)
	runQuiz(t, e, l, []int{0, 0, 0})

	s, err := e.RetakeQuiz(l)
	if err != nil {
		t.Fatalf("RetakeQuiz: %v", err)
	}
	if s.Score() != 0 || s.Index() != 0 || s.Finished() {
		t.Errorf("retake state = (%d, %d, %v), want (0, 0, false)", s.Score(), s.Index(), s.Finished())
	}
	if !e.IsComplete(l.ID) {
		t.Error("retake removed lesson from completion set")
	}

	// Retaking mid-quiz also starts fresh.
	s.Submit(0)
	s.Advance()
	s, _ = e.RetakeQuiz(l)
	if s.Score() != 0 || s.Index() != 0 {
		t.Errorf("mid-quiz retake = (%d, %d), want (0, 0)", s.Score(), s.Index())
	}
}

func TestCompletion_Idempotent(t *testing.T) {
	e := NewEngine(nil)

	if !e.MarkLessonComplete(3) {
		t.Error("first MarkLessonComplete = false, want true")
	}
	if e.MarkLessonComplete(3) {
		t.Error("second MarkLessonComplete = true, want false")
	}
	if got := e.Completion().Len(); got != 1 {
		t.Errorf("Len = %d, want 1", got)
	}
}

func TestScenario_MixedAnswers(t *testing.T) {
	e := NewEngine(nil)
	l := testLesson(1, 0, 0, 0)
	s, _ := e.StartQuiz(l)

	wantCorrect := []bool{true, false, true}
	for i, a := range []int{0, 1, 0} {
		fb, err := s.Submit(a)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if fb.Correct != wantCorrect[i] {
			t.Errorf("question %d correct = %v, want %v", i+1, fb.Correct, wantCorrect[i])
		}
		if i < 2 {
			s.Advance()
		}
	}

	r, err := e.Finish(s)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if r.Score != 2 || r.Total != 3 {
		t.Errorf("result = %d/%d, want 2/3", r.Score, r.Total)
	}
	if r.AutoCompleted || e.IsComplete(1) {
		t.Error("2/3 must not auto-complete")
	}
	if r.Percent() != 67 {
		t.Errorf("Percent = %d, want 67", r.Percent())
	}
}

func TestScenario_PerfectOnce(t *testing.T) {
	e := NewEngine(nil)
	l := testLesson(1, 0, 0, 0)

	runQuiz(t, e, l, []int{0, 0, 0})
	runQuiz(t, e, l, []int{0, 0, 0})

	ids := e.Completion().IDs()
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("IDs = %v, want [1]", ids)
	}
}

func TestOptionStates(t *testing.T) {
	e := NewEngine(nil)
	s, _ := e.StartQuiz(testLesson(1, 2))

	for i, st := range s.OptionStates() {
		if st != OptionNeutral {
			t.Errorf("before answer option %d = %v, want neutral", i, st)
		}
	}

	fb, _ := s.Submit(0)
	want := []OptionState{OptionSelectedIncorrect, OptionNeutral, OptionCorrectUnselected, OptionNeutral}
	for i := range want {
		if fb.States[i] != want[i] {
			t.Errorf("option %d = %v, want %v", i, fb.States[i], want[i])
		}
	}
}

func TestStateFor(t *testing.T) {
	tests := []struct {
		selected, correct, answered bool
		want                        OptionState
	}{
		{false, false, false, OptionNeutral},
		{true, true, false, OptionNeutral},
		{true, true, true, OptionSelectedCorrect},
		{true, false, true, OptionSelectedIncorrect},
		{false, true, true, OptionCorrectUnselected},
		{false, false, true, OptionNeutral},
	}
	for _, tt := range tests {
		if got := StateFor(tt.selected, tt.correct, tt.answered); got != tt.want {
			t.Errorf("StateFor(%v, %v, %v) = %v, want %v", tt.selected, tt.correct, tt.answered, got, tt.want)
		}
	}
}

func TestCompletionSet_Reset(t *testing.T) {
	cs := NewCompletionSet()
	cs.Add(2)
	cs.Add(1)
	if ids := cs.IDs(); len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("IDs = %v, want [1 2]", ids)
	}
	cs.Reset()
	if cs.Len() != 0 || cs.Has(1) {
		t.Error("Reset did not empty the set")
	}
}
