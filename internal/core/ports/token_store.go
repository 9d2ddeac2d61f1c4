package ports

import (
	"context"
	"encoding/json"
)

// TokenStore persists the bearer token and the cached user blob.
type TokenStore interface {
	// Token never fails: a missing key or unreadable medium reads as absent.
	Token(ctx context.Context) (string, bool)
	SetToken(ctx context.Context, token string) error
	User(ctx context.Context) (json.RawMessage, bool)
	SetUser(ctx context.Context, blob json.RawMessage) error
	// Clear removes both keys. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Navigator moves the client to another route, e.g. the login screen after
// the session expired.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }
