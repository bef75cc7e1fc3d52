package service

import (
	"context"

	"bloghub-backend/internal/domains/auth/model"
	"bloghub-backend/internal/domains/auth/session"
)

type Service interface {
	SignUp(ctx context.Context, req model.SignUpRequest) (*model.AuthResponse, error)
	SignIn(ctx context.Context, req model.SignInRequest) (*model.AuthResponse, error)
	SignOut(ctx context.Context, sess *session.Session) error
	// Authenticate resolves a bearer token to a live session with a fresh profile.
	Authenticate(ctx context.Context, token string) (*session.Session, error)
}
