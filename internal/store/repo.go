package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUserExists is returned when registering an email that is taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound is returned when no user has the given email.
	ErrUserNotFound = errors.New("user not found")
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Quiz event actions.
const (
	QuizActionStart  = "start"
	QuizActionAnswer = "answer"
	QuizActionFinish = "finish"
)

// Completion sources.
const (
	CompletionSourceQuiz   = "quiz"
	CompletionSourceManual = "manual"
)

// Auth event actions.
const (
	AuthActionLogin  = "login"
	AuthActionSignup = "signup"
	AuthActionLogout = "logout"
)

// QuizEventData captures one step of a quiz attempt.
type QuizEventData struct {
	AttemptID     string
	LessonID      int
	Action        string
	QuestionIndex int
	OptionIndex   int
	Correct       bool
	Score         int
	Total         int
}

// QuizEvent is a stored quiz event.
type QuizEvent struct {
	Sequence  int64
	Timestamp time.Time
	QuizEventData
}

// CompletionEventData records a lesson entering the completion set.
type CompletionEventData struct {
	LessonID int
	Source   string
}

// CompletionEvent is a stored completion event.
type CompletionEvent struct {
	Sequence  int64
	Timestamp time.Time
	CompletionEventData
}

// AuthEventData captures one login, signup or logout.
type AuthEventData struct {
	Action       string
	Email        string
	Success      bool
	StatusCode   int
	ErrorMessage string
	LatencyMs    int64
}

// AuthEvent is a stored auth event.
type AuthEvent struct {
	Sequence  int64
	Timestamp time.Time
	AuthEventData
}

// Stats summarizes the event log.
type Stats struct {
	QuizAttempts    int
	PerfectQuizzes  int
	Answers         int
	CorrectAnswers  int
	LessonsComplete int
	Logins          int
	FailedLogins    int
	Signups         int
	LastActivity    time.Time
}

// Accuracy returns the fraction of answers that were correct.
func (s Stats) Accuracy() float64 {
	if s.Answers == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.Answers)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendQuizEvent(ctx context.Context, data QuizEventData) error
	AppendCompletionEvent(ctx context.Context, data CompletionEventData) error
	AppendAuthEvent(ctx context.Context, data AuthEventData) error

	QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEvent, error)
	QueryCompletionEvents(ctx context.Context, opts QueryOpts) ([]CompletionEvent, error)
	QueryAuthEvents(ctx context.Context, opts QueryOpts) ([]AuthEvent, error)

	// Stats aggregates the whole log.
	Stats(ctx context.Context) (Stats, error)
}

// User is an account registered with the development auth server.
type User struct {
	ID           int64
	CreatedAt    time.Time
	Name         string
	Number       string
	Email        string
	PasswordHash string
	Address      string
	WardNo       int
}

// UserRepo stores accounts for the development auth server.
type UserRepo interface {
	// CreateUser inserts u and returns it with ID and CreatedAt set.
	// Returns ErrUserExists if the email is taken.
	CreateUser(ctx context.Context, u User) (User, error)

	// UserByEmail returns ErrUserNotFound when no user matches.
	UserByEmail(ctx context.Context, email string) (User, error)
}
