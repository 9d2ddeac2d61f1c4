// Package backend implements the repository ports over the Curato REST API.
package backend

import "context"

// Doer sends one JSON request. *httpclient.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Backend endpoint paths.
const (
	pathLogin       = "/user/login"
	pathSignup      = "/user/signup"
	pathCollections = "/collections"
	pathExplore     = "/explore"
	pathCollection  = "/c"
)

// envelope is the {result: ...} wrapper used by the collection endpoints.
type envelope[T any] struct {
	Result T `json:"result"`
}
