package ports

import (
	"context"
	"encoding/json"

	"github.com/curato/curation-client/internal/core/domain"
)

// LoginResponse is the backend answer to POST /user/login.
type LoginResponse struct {
	Token     string          `json:"token"`
	Signature string          `json:"signature,omitempty"`
	Raw       json.RawMessage `json:"-"`
}

// SignupResponse is the backend answer to POST /user/signup.
type SignupResponse struct {
	Msg string          `json:"msg"`
	Raw json.RawMessage `json:"-"`
}

// AuthRepository calls the backend authentication endpoints.
type AuthRepository interface {
	Login(ctx context.Context, in domain.LoginInput) (*LoginResponse, error)
	Signup(ctx context.Context, in domain.SignupInput) (*SignupResponse, error)
}
