// Package learner holds the per-run learner state shared by the screens.
// It is created fresh at startup and is never restored from the event log.
package learner

import (
	"github.com/abhisek/stocklearn/internal/auth"
	"github.com/abhisek/stocklearn/internal/progress"
)

// State is the in-memory learner state: lesson completion and login flag.
type State struct {
	Completion *progress.CompletionSet
	Engine     *progress.Engine
	Auth       *auth.Session
}

// New returns an empty learner state.
func New() *State {
	cs := progress.NewCompletionSet()
	return &State{
		Completion: cs,
		Engine:     progress.NewEngine(cs),
		Auth:       &auth.Session{},
	}
}

// Reset clears completion and signs out.
func (s *State) Reset() {
	s.Completion.Reset()
	s.Auth.SignOut()
}
