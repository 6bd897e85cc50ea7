// Package activity records learner actions to the event log.
package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/abhisek/stocklearn/internal/progress"
	"github.com/abhisek/stocklearn/internal/store"
)

// Recorder appends quiz, completion and logout events. A Recorder with a nil
// repo only logs.
type Recorder struct {
	repo store.EventRepo
	log  *slog.Logger
}

// NewRecorder creates a Recorder. A nil logger discards.
func NewRecorder(repo store.EventRepo, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Recorder{repo: repo, log: log}
}

// Attempt identifies one run through a lesson's quiz.
type Attempt struct {
	ID       string
	LessonID int
	Total    int
}

// NewAttempt creates an attempt with a fresh ID for session s.
func NewAttempt(s *progress.QuizSession) Attempt {
	return Attempt{
		ID:       uuid.NewString(),
		LessonID: int(s.Lesson().ID),
		Total:    s.Total(),
	}
}

// QuizStarted records the start of an attempt.
func (r *Recorder) QuizStarted(ctx context.Context, a Attempt) error {
	r.log.Info("quiz started", "lesson", a.LessonID, "attempt", a.ID)
	return r.appendQuiz(ctx, store.QuizEventData{
		AttemptID: a.ID,
		LessonID:  a.LessonID,
		Action:    store.QuizActionStart,
		Total:     a.Total,
	})
}

// Answered records the first answer to a question.
func (r *Recorder) Answered(ctx context.Context, a Attempt, question int, fb progress.Feedback, score int) error {
	return r.appendQuiz(ctx, store.QuizEventData{
		AttemptID:     a.ID,
		LessonID:      a.LessonID,
		Action:        store.QuizActionAnswer,
		QuestionIndex: question,
		OptionIndex:   fb.Selected,
		Correct:       fb.Correct,
		Score:         score,
		Total:         a.Total,
	})
}

// Finished records a quiz result, plus a completion event when the result
// completed the lesson for the first time.
func (r *Recorder) Finished(ctx context.Context, a Attempt, res progress.Result) error {
	r.log.Info("quiz finished",
		"lesson", a.LessonID,
		"attempt", a.ID,
		"score", res.Score,
		"total", res.Total,
	)
	if err := r.appendQuiz(ctx, store.QuizEventData{
		AttemptID: a.ID,
		LessonID:  a.LessonID,
		Action:    store.QuizActionFinish,
		Score:     res.Score,
		Total:     res.Total,
	}); err != nil {
		return err
	}
	if res.NewlyCompleted {
		return r.Completed(ctx, a.LessonID, store.CompletionSourceQuiz)
	}
	return nil
}

// Completed records a lesson entering the completion set.
func (r *Recorder) Completed(ctx context.Context, lessonID int, source string) error {
	r.log.Info("lesson completed", "lesson", lessonID, "source", source)
	if r.repo == nil {
		return nil
	}
	err := r.repo.AppendCompletionEvent(ctx, store.CompletionEventData{LessonID: lessonID, Source: source})
	if err != nil {
		r.log.Error("append completion event", "error", err)
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

// LoggedOut records a logout.
func (r *Recorder) LoggedOut(ctx context.Context, email string) error {
	r.log.Info("logout", "email", email)
	if r.repo == nil {
		return nil
	}
	err := r.repo.AppendAuthEvent(ctx, store.AuthEventData{
		Action:  store.AuthActionLogout,
		Email:   email,
		Success: true,
	})
	if err != nil {
		r.log.Error("append auth event", "error", err)
		return fmt.Errorf("record logout: %w", err)
	}
	return nil
}

func (r *Recorder) appendQuiz(ctx context.Context, data store.QuizEventData) error {
	if r.repo == nil {
		return nil
	}
	if err := r.repo.AppendQuizEvent(ctx, data); err != nil {
		r.log.Error("append quiz event", "action", data.Action, "error", err)
		return fmt.Errorf("record quiz %s: %w", data.Action, err)
	}
	return nil
}
