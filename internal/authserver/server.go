// Package authserver is a development implementation of the auth endpoints
// the app talks to: POST /auth/signup and POST /auth/login.
package authserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/stocklearn/internal/store"
)

// ErrWeakSecret is returned when the signing secret is too short.
var ErrWeakSecret = errors.New("token secret must be at least 16 bytes")

// Options configures the server.
type Options struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
	Logger     *slog.Logger
}

// Server serves the auth API over a user repository.
type Server struct {
	users      store.UserRepo
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	log        *slog.Logger
}

func New(users store.UserRepo, opts Options) (*Server, error) {
	if len(opts.Secret) < 16 {
		return nil, ErrWeakSecret
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		users:      users,
		secret:     []byte(opts.Secret),
		tokenTTL:   opts.TokenTTL,
		bcryptCost: opts.BcryptCost,
		log:        opts.Logger,
	}, nil
}

// Router returns the HTTP routes.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.health).Methods("GET")

	a := r.PathPrefix("/auth").Subrouter()
	a.HandleFunc("/signup", s.signup).Methods("POST")
	a.HandleFunc("/login", s.login).Methods("POST")
	a.Handle("/me", s.requireToken(http.HandlerFunc(s.me))).Methods("GET")

	r.Use(s.logRequests)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("auth server listening", "addr", addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"latency_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}
