package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/curato/curation-client/internal/core/domain"
	"github.com/curato/curation-client/internal/core/ports"
)

const (
	loginFailedMessage  = "login failed"
	signupFailedMessage = "signup failed"
	signupOKMessage     = "Signup successful"
)

// SessionService owns the authentication state of the client. It is the only
// writer of the session; readers get copies through Session.
type SessionService struct {
	repo      ports.AuthRepository
	store     ports.TokenStore
	validator *inputValidator
	logger    zerolog.Logger

	mu      sync.RWMutex
	session domain.Session
}

func NewSessionService(repo ports.AuthRepository, store ports.TokenStore, logger zerolog.Logger) *SessionService {
	return &SessionService{
		repo:      repo,
		store:     store,
		validator: newInputValidator(),
		logger:    logger,
		session:   domain.Session{State: domain.StateUnknown},
	}
}

// Bootstrap sets the initial state from whatever token was persisted.
// A token that cannot be decoded is cleared.
func (s *SessionService) Bootstrap(ctx context.Context) domain.Session {
	token, ok := s.store.Token(ctx)
	if !ok {
		return s.transition(domain.Session{State: domain.StateUnauthenticated})
	}

	identity, err := DecodeToken(token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("stored token is unreadable, clearing session")
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			s.logger.Error().Err(clearErr).Msg("clear token store")
		}
		return s.transition(domain.Session{State: domain.StateUnauthenticated})
	}

	s.logger.Debug().Str("username", identity.Username).Msg("session restored")
	return s.transition(domain.Session{State: domain.StateAuthenticated, Token: token, Identity: identity})
}

// Login validates the credentials, exchanges them for a token and persists it.
func (s *SessionService) Login(ctx context.Context, identifier, password string) (*domain.LoginResult, error) {
	in := domain.LoginInput{Identifier: strings.TrimSpace(identifier), Password: password}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	resp, err := s.repo.Login(ctx, in)
	if err != nil {
		s.logger.Info().Err(err).Str("identifier", in.Identifier).Msg("login rejected")
		return nil, authError("login", loginFailedMessage, err)
	}

	identity, err := DecodeToken(resp.Token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login returned an unreadable token")
		return nil, &domain.AuthError{Op: "login", Message: loginFailedMessage, Err: err}
	}

	if err := s.store.SetToken(ctx, resp.Token); err != nil {
		return nil, &domain.AuthError{Op: "login", Message: "could not save session", Err: err}
	}
	if user, err := json.Marshal(identity.Claims); err == nil {
		if err := s.store.SetUser(ctx, user); err != nil {
			s.logger.Warn().Err(err).Msg("persist user payload")
		}
	}

	s.transition(domain.Session{State: domain.StateAuthenticated, Token: resp.Token, Identity: identity})
	s.logger.Info().Str("username", identity.Username).Msg("logged in")

	return &domain.LoginResult{Token: resp.Token, Identity: *identity, Payload: resp.Raw}, nil
}

// Signup registers an account. It never authenticates the session.
func (s *SessionService) Signup(ctx context.Context, in domain.SignupInput) (*domain.SignupResult, error) {
	in = domain.SignupInput{
		FullName:    strings.TrimSpace(in.FullName),
		Username:    strings.TrimSpace(in.Username),
		Email:       strings.TrimSpace(in.Email),
		Password:    in.Password,
		DateOfBirth: strings.TrimSpace(in.DateOfBirth),
		Phone:       strings.TrimSpace(in.Phone),
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	resp, err := s.repo.Signup(ctx, in)
	if err != nil {
		s.logger.Info().Err(err).Str("username", in.Username).Msg("signup rejected")
		return nil, authError("signup", signupFailedMessage, err)
	}

	msg := resp.Msg
	if msg == "" {
		msg = signupOKMessage
	}
	s.logger.Info().Str("username", in.Username).Msg("signed up")
	return &domain.SignupResult{Message: msg, Payload: resp.Raw}, nil
}

// Logout clears the persisted token and user and drops the session.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("clear token store")
	}
	s.transition(domain.Session{State: domain.StateUnauthenticated})
	s.logger.Info().Msg("logged out")
}

// Expire drops the in-memory session after the HTTP client has already
// cleared the store on a 401.
func (s *SessionService) Expire(context.Context) {
	s.transition(domain.Session{State: domain.StateUnauthenticated})
	s.logger.Info().Msg("session expired")
}

// Session returns a snapshot of the current state.
func (s *SessionService) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *SessionService) transition(next domain.Session) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.State.CanTransitionTo(next.State) {
		s.logger.Error().Str("from", string(s.session.State)).Str("to", string(next.State)).Msg("invalid session transition")
		return s.session
	}
	s.session = next
	return next
}

// authError prefers the backend's own message and falls back to fallback.
func authError(op, fallback string, err error) *domain.AuthError {
	msg := fallback
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.ServerSupplied:
			msg = apiErr.Message
		case apiErr.Kind == domain.KindNetwork:
			msg = apiErr.Message
		}
	}
	return &domain.AuthError{Op: op, Message: msg, Err: err}
}
