package auth

import (
	"strings"
	"sync"
)

// Session is the learner's login state. It holds no credentials.
type Session struct {
	mu       sync.RWMutex
	loggedIn bool
	name     string
	email    string
}

// SignIn marks the session logged in.
func (s *Session) SignIn(name, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	s.name = strings.TrimSpace(name)
	s.email = strings.TrimSpace(email)
}

// SignOut clears the session.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = false
	s.name = ""
	s.email = ""
}

func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// DisplayName returns the name given at signup, or the local part of the
// email address.
func (s *Session) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.name != "" {
		return s.name
	}
	local, _, _ := strings.Cut(s.email, "@")
	return local
}
