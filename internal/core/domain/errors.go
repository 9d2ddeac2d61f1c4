package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrSessionExpired     = errors.New("session expired")
	ErrBackend            = errors.New("backend error")
	ErrNetwork            = errors.New("network error")
	ErrRequest            = errors.New("request error")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrCollectionNotFound = errors.New("collection not found")
)

// ValidationError is a local input failure detected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ErrorKind tells the three normalized backend failure shapes apart.
type ErrorKind int

const (
	// KindResponse: the server answered with a non-2xx status.
	KindResponse ErrorKind = iota + 1
	// KindNetwork: no response was received.
	KindNetwork
	// KindRequest: the request could not be built, or a 2xx body could not be read.
	KindRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindResponse:
		return "response"
	case KindNetwork:
		return "network"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

// APIError is the envelope every HTTP failure is normalized into.
type APIError struct {
	Kind    ErrorKind
	Message string
	Status  int
	Data    json.RawMessage
	// ServerSupplied is set when Message came from the response body.
	ServerSupplied bool
	// Expired is set when a 401 on a non-login endpoint reset the session.
	Expired bool
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// Is supports errors.Is against ErrBackend, ErrNetwork, ErrRequest and ErrSessionExpired.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrBackend:
		return e.Kind == KindResponse
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrRequest:
		return e.Kind == KindRequest
	case ErrSessionExpired:
		return e.Expired
	}
	return false
}

// AuthError is a failed login or signup with a message fit for the user.
type AuthError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *AuthError) Unwrap() error { return e.Err }
