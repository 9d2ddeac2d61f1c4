package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Is(t *testing.T) {
	cases := []struct {
		name string
		err  *APIError
		is   []error
		not  []error
	}{
		{"response", &APIError{Kind: KindResponse, Status: 500}, []error{ErrBackend}, []error{ErrNetwork, ErrRequest, ErrSessionExpired}},
		{"expired", &APIError{Kind: KindResponse, Status: 401, Expired: true}, []error{ErrBackend, ErrSessionExpired}, []error{ErrNetwork}},
		{"network", &APIError{Kind: KindNetwork}, []error{ErrNetwork}, []error{ErrBackend, ErrRequest}},
		{"request", &APIError{Kind: KindRequest}, []error{ErrRequest}, []error{ErrBackend, ErrNetwork}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("call: %w", tc.err)
			for _, target := range tc.is {
				if !errors.Is(wrapped, target) {
					t.Fatalf("expected errors.Is(%v)", target)
				}
			}
			for _, target := range tc.not {
				if errors.Is(wrapped, target) {
					t.Fatalf("unexpected errors.Is(%v)", target)
				}
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	if got := (&APIError{Kind: KindResponse, Status: 404, Message: "not found"}).Error(); got != "not found (status 404)" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := (&APIError{Kind: KindNetwork, Message: "network error"}).Error(); got != "network error" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestAuthError_Unwrap(t *testing.T) {
	cause := &APIError{Kind: KindNetwork, Message: "network error"}
	err := &AuthError{Op: "login", Message: "network error", Err: cause}

	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected the cause to be reachable")
	}
	if err.Error() != "login: network error" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidationError_Is(t *testing.T) {
	var err error = &ValidationError{Field: "Email", Message: "Email is required"}
	if !errors.Is(err, ErrValidation) || errors.Is(err, ErrBackend) {
		t.Fatalf("unexpected errors.Is results")
	}
}

func TestSessionState_Transitions(t *testing.T) {
	if !StateUnknown.CanTransitionTo(StateAuthenticated) || !StateUnknown.CanTransitionTo(StateUnauthenticated) {
		t.Fatalf("bootstrap transitions must be allowed")
	}
	if StateAuthenticated.CanTransitionTo(StateUnknown) || StateUnauthenticated.CanTransitionTo(StateUnknown) {
		t.Fatalf("nothing returns to unknown")
	}
	if (Session{Token: "t"}).IsAuthenticated() || (Session{Identity: &Identity{}}).IsAuthenticated() {
		t.Fatalf("token and identity are both required")
	}
	if !(Session{Token: "t", Identity: &Identity{}}).IsAuthenticated() {
		t.Fatalf("expected authenticated")
	}
}
