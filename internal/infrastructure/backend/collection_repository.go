package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/curato/curation-client/internal/core/domain"
)

var errNoResult = &domain.APIError{Kind: domain.KindRequest, Message: "create response has no result"}

// CollectionRepository implements ports.CollectionRepository over the REST API.
type CollectionRepository struct {
	client Doer
}

func NewCollectionRepository(client Doer) *CollectionRepository {
	return &CollectionRepository{client: client}
}

// List returns the authenticated user's collections.
func (r *CollectionRepository) List(ctx context.Context) ([]domain.Collection, error) {
	return r.list(ctx, pathCollections)
}

// Explore returns the public feed.
func (r *CollectionRepository) Explore(ctx context.Context) ([]domain.Collection, error) {
	return r.list(ctx, pathExplore)
}

// ByUser returns the collections created by userID.
func (r *CollectionRepository) ByUser(ctx context.Context, userID string) ([]domain.Collection, error) {
	return r.list(ctx, pathCollection+"/user/"+url.PathEscape(userID))
}

// Search returns collections matching query. The query is path-escaped.
func (r *CollectionRepository) Search(ctx context.Context, query string) ([]domain.Collection, error) {
	return r.list(ctx, pathCollection+"/search/"+url.PathEscape(query))
}

func (r *CollectionRepository) Get(ctx context.Context, id string) (*domain.Collection, error) {
	return r.one(ctx, http.MethodGet, collectionPath(id), nil)
}

func (r *CollectionRepository) Create(ctx context.Context, in domain.CollectionInput) (*domain.Collection, error) {
	return r.one(ctx, http.MethodPost, pathCollection, in)
}

func (r *CollectionRepository) Update(ctx context.Context, id string, patch domain.CollectionPatch) (*domain.Collection, error) {
	return r.one(ctx, http.MethodPut, collectionPath(id), patch)
}

func (r *CollectionRepository) Delete(ctx context.Context, id string) error {
	return r.client.Do(ctx, http.MethodDelete, collectionPath(id), nil, nil)
}

func (r *CollectionRepository) list(ctx context.Context, path string) ([]domain.Collection, error) {
	var env envelope[[]domain.Collection]
	if err := r.client.Do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	if env.Result == nil {
		return []domain.Collection{}, nil
	}
	return env.Result, nil
}

// one decodes a single-record response. A body without a result yields
// ErrCollectionNotFound for reads, a KindRequest error for creates and nil
// for updates.
func (r *CollectionRepository) one(ctx context.Context, method, path string, body any) (*domain.Collection, error) {
	var env envelope[*domain.Collection]
	if err := r.client.Do(ctx, method, path, body, &env); err != nil {
		return nil, err
	}
	if env.Result == nil {
		switch method {
		case http.MethodGet:
			return nil, domain.ErrCollectionNotFound
		case http.MethodPost:
			return nil, errNoResult
		}
	}
	return env.Result, nil
}

func collectionPath(id string) string {
	return pathCollection + "/" + url.PathEscape(id)
}
