package progress

import "github.com/abhisek/stocklearn/internal/lesson"

// Engine drives quiz sessions and owns completion bookkeeping.
type Engine struct {
	completion *CompletionSet
}

// NewEngine creates an engine over cs. A nil set gets a fresh empty one.
func NewEngine(cs *CompletionSet) *Engine {
	if cs == nil {
		cs = NewCompletionSet()
	}
	return &Engine{completion: cs}
}

// Completion returns the completion set the engine writes to.
func (e *Engine) Completion() *CompletionSet { return e.completion }

// StartQuiz begins a new quiz for l. The completion set is not touched.
func (e *Engine) StartQuiz(l lesson.Lesson) (*QuizSession, error) {
	return newQuizSession(l)
}

// RetakeQuiz starts over with a fresh session. Any previous session for the
// lesson should be dropped by the caller.
func (e *Engine) RetakeQuiz(l lesson.Lesson) (*QuizSession, error) {
	return newQuizSession(l)
}

// Finish finishes s and, on a perfect score, marks the lesson complete.
func (e *Engine) Finish(s *QuizSession) (Result, error) {
	r, err := s.Finish()
	if err != nil {
		return Result{}, err
	}
	if r.Perfect() {
		r.AutoCompleted = true
		r.NewlyCompleted = e.completion.Add(r.LessonID)
	}
	return r, nil
}

// MarkLessonComplete adds id to the completion set and reports whether it
// was newly added.
func (e *Engine) MarkLessonComplete(id lesson.ID) bool {
	return e.completion.Add(id)
}

// IsComplete reports whether id is in the completion set.
func (e *Engine) IsComplete(id lesson.ID) bool {
	return e.completion.Has(id)
}
