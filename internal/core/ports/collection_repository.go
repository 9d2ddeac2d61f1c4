package ports

import (
	"context"

	"github.com/curato/curation-client/internal/core/domain"
)

// CollectionRepository calls the backend collection endpoints.
type CollectionRepository interface {
	// List returns the authenticated user's collections (GET /collections).
	List(ctx context.Context) ([]domain.Collection, error)
	// Explore returns the public feed (GET /explore).
	Explore(ctx context.Context) ([]domain.Collection, error)
	Get(ctx context.Context, id string) (*domain.Collection, error)
	Create(ctx context.Context, in domain.CollectionInput) (*domain.Collection, error)
	Update(ctx context.Context, id string, patch domain.CollectionPatch) (*domain.Collection, error)
	Delete(ctx context.Context, id string) error
	ByUser(ctx context.Context, userID string) ([]domain.Collection, error)
	Search(ctx context.Context, query string) ([]domain.Collection, error)
}
