package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/curato/curation-client/internal/core/domain"
	"github.com/curato/curation-client/internal/core/ports"
)

// AuthRepository implements ports.AuthRepository over the REST API.
type AuthRepository struct {
	client Doer
}

func NewAuthRepository(client Doer) *AuthRepository {
	return &AuthRepository{client: client}
}

func (r *AuthRepository) Login(ctx context.Context, in domain.LoginInput) (*ports.LoginResponse, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, http.MethodPost, pathLogin, in, &raw); err != nil {
		return nil, err
	}

	var resp ports.LoginResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, &domain.APIError{Kind: domain.KindRequest, Message: fmt.Sprintf("decode login response: %v", err)}
		}
	}
	resp.Raw = raw
	return &resp, nil
}

func (r *AuthRepository) Signup(ctx context.Context, in domain.SignupInput) (*ports.SignupResponse, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, http.MethodPost, pathSignup, in, &raw); err != nil {
		return nil, err
	}

	var resp ports.SignupResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, &domain.APIError{Kind: domain.KindRequest, Message: fmt.Sprintf("decode signup response: %v", err)}
		}
	}
	resp.Raw = raw
	return &resp, nil
}
