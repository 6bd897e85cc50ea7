package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConnectivity indicates the auth server could not be reached or its
	// response could not be read.
	ErrConnectivity = errors.New("cannot connect to the server")

	// ErrSubmitInProgress is returned when a submission is already in flight.
	ErrSubmitInProgress = errors.New("a submission is already in progress")
)

// ServerError is a non-2xx reply from the auth server.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return "Server error"
	}
	return e.Message
}

// FieldError is one failed form constraint.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// ValidationError lists the form fields that failed local validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Tag == "required" {
			return "Please fill all the fields"
		}
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Alert titles shown to the user.
const (
	TitleError           = "Error"
	TitleFailure         = "Failure"
	TitleSuccess         = "Success"
	TitleConnectionError = "Connection Error"
)

// Describe maps a submission error to an alert title and message.
func Describe(err error) (title, message string) {
	var (
		verr *ValidationError
		serr *ServerError
	)
	switch {
	case errors.As(err, &verr):
		return TitleError, verr.Error()
	case errors.As(err, &serr):
		return TitleFailure, serr.Error()
	case errors.Is(err, ErrConnectivity):
		return TitleConnectionError, "Cannot connect to the server."
	case errors.Is(err, ErrSubmitInProgress):
		return TitleError, "Please wait, a request is already in progress."
	default:
		return TitleError, fmt.Sprint(err)
	}
}

// SuccessMessage is the alert message for a successful submission.
func SuccessMessage(signup bool) string {
	if signup {
		return "Signup Successful"
	}
	return "Login Successful"
}
