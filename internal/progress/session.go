package progress

import (
	"math"

	"github.com/abhisek/stocklearn/internal/lesson"
)

// Phase is the lifecycle phase of a quiz session.
type Phase int

const (
	PhaseInProgress Phase = iota // Serving questions
	PhaseFinished                // Result delivered, terminal
)

// OptionState is the visual state of one answer option.
type OptionState int

const (
	OptionNeutral OptionState = iota
	OptionSelectedCorrect
	OptionSelectedIncorrect
	OptionCorrectUnselected
)

// String returns a short name for the state.
func (s OptionState) String() string {
	switch s {
	case OptionSelectedCorrect:
		return "selected-correct"
	case OptionSelectedIncorrect:
		return "selected-incorrect"
	case OptionCorrectUnselected:
		return "correct-unselected"
	default:
		return "neutral"
	}
}

// StateFor derives an option's visual state. Before an answer every option is
// neutral; afterwards the selected option shows its correctness and the
// correct option is always revealed.
func StateFor(isSelected, isCorrectOption, isAnswered bool) OptionState {
	if !isAnswered {
		return OptionNeutral
	}
	switch {
	case isSelected && isCorrectOption:
		return OptionSelectedCorrect
	case isSelected:
		return OptionSelectedIncorrect
	case isCorrectOption:
		return OptionCorrectUnselected
	default:
		return OptionNeutral
	}
}

// Feedback describes the outcome of submitting an answer.
type Feedback struct {
	Selected    int
	Correct     bool
	Explanation string
	States      []OptionState
}

// Result is the immutable outcome of a finished quiz.
type Result struct {
	LessonID lesson.ID
	Score    int
	Total    int

	// AutoCompleted is true when the score was perfect and the lesson was
	// added to the completion set as a consequence.
	AutoCompleted bool

	// NewlyCompleted is true when this result put the lesson into the
	// completion set for the first time.
	NewlyCompleted bool
}

// Perfect reports whether every question was answered correctly.
func (r Result) Perfect() bool {
	return r.Total > 0 && r.Score == r.Total
}

// Percent returns the score as a rounded percentage.
func (r Result) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) * 100 / float64(r.Total)))
}

// QuizSession tracks a single attempt at a lesson's quiz. It is discarded
// when the quiz ends; a retake starts a fresh session.
type QuizSession struct {
	lesson   lesson.Lesson
	index    int
	score    int
	answered bool
	selected int
	phase    Phase
}

func newQuizSession(l lesson.Lesson) (*QuizSession, error) {
	if len(l.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &QuizSession{lesson: l, selected: -1}, nil
}

// Lesson returns the lesson being quizzed.
func (s *QuizSession) Lesson() lesson.Lesson { return s.lesson }

// Index returns the zero-based current question index.
func (s *QuizSession) Index() int { return s.index }

// Total returns the number of questions.
func (s *QuizSession) Total() int { return len(s.lesson.Questions) }

// Score returns the running score.
func (s *QuizSession) Score() int { return s.score }

// Answered reports whether the current question has been answered.
func (s *QuizSession) Answered() bool { return s.answered }

// Selected returns the option chosen for the current question, or -1.
func (s *QuizSession) Selected() int { return s.selected }

// Phase returns the session phase.
func (s *QuizSession) Phase() Phase { return s.phase }

// Finished reports whether the result has been delivered.
func (s *QuizSession) Finished() bool { return s.phase == PhaseFinished }

// IsLast reports whether the current question is the final one.
func (s *QuizSession) IsLast() bool { return s.index == len(s.lesson.Questions)-1 }

// Current returns the current question.
func (s *QuizSession) Current() lesson.Question {
	return s.lesson.Questions[s.index]
}

// OptionStates returns the visual state of every option of the current question.
func (s *QuizSession) OptionStates() []OptionState {
	q := s.Current()
	states := make([]OptionState, len(q.Options))
	for i := range q.Options {
		states[i] = StateFor(i == s.selected, q.IsCorrect(i), s.answered)
	}
	return states
}

// Submit records an answer for the current question. A second submit for the
// same question is rejected with ErrAlreadyAnswered and returns the feedback
// of the first answer; the score is not touched.
func (s *QuizSession) Submit(option int) (Feedback, error) {
	if s.Finished() {
		return Feedback{}, ErrSessionFinished
	}
	q := s.Current()
	if option < 0 || option >= len(q.Options) {
		return Feedback{}, ErrOptionOutOfRange
	}
	if s.answered {
		return s.feedback(), ErrAlreadyAnswered
	}

	s.answered = true
	s.selected = option
	if q.IsCorrect(option) {
		s.score++
	}
	return s.feedback(), nil
}

func (s *QuizSession) feedback() Feedback {
	q := s.Current()
	return Feedback{
		Selected:    s.selected,
		Correct:     q.IsCorrect(s.selected),
		Explanation: q.Explanation,
		States:      s.OptionStates(),
	}
}

// Advance moves to the next question. The index is unchanged on error.
func (s *QuizSession) Advance() error {
	switch {
	case s.Finished():
		return ErrSessionFinished
	case !s.answered:
		return ErrNotAnswered
	case s.IsLast():
		return ErrLastQuestion
	}
	s.index++
	s.answered = false
	s.selected = -1
	return nil
}

// Finish ends the session and returns its result. The result is delivered
// exactly once; later calls return ErrSessionFinished.
func (s *QuizSession) Finish() (Result, error) {
	switch {
	case s.Finished():
		return Result{}, ErrSessionFinished
	case !s.IsLast():
		return Result{}, ErrNotLastQuestion
	case !s.answered:
		return Result{}, ErrNotAnswered
	}
	s.phase = PhaseFinished
	return Result{
		LessonID: s.lesson.ID,
		Score:    s.score,
		Total:    len(s.lesson.Questions),
	}, nil
}
