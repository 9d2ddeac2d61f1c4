package ports

import (
	"context"

	"github.com/curato/curation-client/internal/core/domain"
)

type AuthService interface {
	Bootstrap(ctx context.Context) domain.Session
	Login(ctx context.Context, identifier, password string) (*domain.LoginResult, error)
	Signup(ctx context.Context, in domain.SignupInput) (*domain.SignupResult, error)
	Logout(ctx context.Context)
	Session() domain.Session
}
