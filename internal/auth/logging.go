package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/abhisek/stocklearn/internal/store"
)

// LoggingService is a decorator that records every submission as an event.
type LoggingService struct {
	inner     Service
	eventRepo store.EventRepo
	log       *slog.Logger
}

// WithLogging wraps a Service with event logging. repo and log may be nil.
func WithLogging(s Service, repo store.EventRepo, log *slog.Logger) Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &LoggingService{inner: s, eventRepo: repo, log: log}
}

func (l *LoggingService) Login(ctx context.Context, req LoginRequest) (Response, error) {
	start := time.Now()
	resp, err := l.inner.Login(ctx, req)
	l.record(ctx, store.AuthActionLogin, req.Email, start, err)
	return resp, err
}

func (l *LoggingService) Signup(ctx context.Context, req SignupRequest) (Response, error) {
	start := time.Now()
	resp, err := l.inner.Signup(ctx, req)
	l.record(ctx, store.AuthActionSignup, req.Email, start, err)
	return resp, err
}

func (l *LoggingService) record(ctx context.Context, action, email string, start time.Time, err error) {
	// Rejected before reaching the server: not an attempt.
	var verr *ValidationError
	if errors.Is(err, ErrSubmitInProgress) || errors.As(err, &verr) {
		l.log.Debug("auth submission not sent", "action", action, "error", err)
		return
	}

	data := store.AuthEventData{
		Action:    action,
		Email:     email,
		Success:   err == nil,
		LatencyMs: time.Since(start).Milliseconds(),
	}

	var serr *ServerError
	if errors.As(err, &serr) {
		data.StatusCode = serr.Status
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("auth submission failed", "action", action, "status", data.StatusCode, "error", err)
	} else {
		l.log.Info("auth submission succeeded", "action", action, "latency_ms", data.LatencyMs)
	}

	if l.eventRepo == nil {
		return
	}
	// Log the event but don't fail the submission if logging fails.
	if logErr := l.eventRepo.AppendAuthEvent(ctx, data); logErr != nil {
		l.log.Error("failed to log auth event", "error", logErr)
	}
}
