package auth

import "context"

//go:generate mockgen -source=service.go -destination=../mocks/auth/mock_service.go -package=mock_auth

// Service submits login and signup forms to the auth backend.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (Response, error)
	Signup(ctx context.Context, req SignupRequest) (Response, error)
}

// Response is the success body of a login or signup call. Any token the
// server returns is ignored.
type Response struct {
	Message string `json:"message"`
}
