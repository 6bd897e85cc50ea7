package profile

import "github.com/abhisek/stocklearn/internal/auth"

// authResultMsg carries the outcome of a login or signup request.
type authResultMsg struct {
	Signup bool
	Name   string
	Email  string
	Resp   auth.Response
	Err    error
}

// persistedMsg reports the outcome of writing an event.
type persistedMsg struct {
	Err error
}
