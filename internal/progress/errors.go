package progress

import "errors"

var (
	// ErrNoQuestions is returned when a quiz is started for a lesson with no questions.
	ErrNoQuestions = errors.New("lesson has no questions")

	// ErrOptionOutOfRange is returned when a submitted option does not exist.
	ErrOptionOutOfRange = errors.New("option index out of range")

	// ErrAlreadyAnswered is returned when the current question was already answered.
	// The feedback returned alongside it is the locked original.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrNotAnswered is returned when advancing or finishing before answering.
	ErrNotAnswered = errors.New("current question not answered")

	// ErrLastQuestion is returned when advancing past the final question.
	ErrLastQuestion = errors.New("already on the last question")

	// ErrNotLastQuestion is returned when finishing before the final question.
	ErrNotLastQuestion = errors.New("not on the last question")

	// ErrSessionFinished is returned for any operation on a finished session.
	ErrSessionFinished = errors.New("quiz session finished")
)
