package ports

import (
	"context"

	"github.com/curato/curation-client/internal/core/domain"
)

// CollectionService combines backend calls with the local collection cache.
type CollectionService interface {
	Refresh(ctx context.Context) []domain.Collection
	Collections() []domain.Collection
	Create(ctx context.Context, in domain.CollectionInput) (*domain.Collection, error)
	Edit(ctx context.Context, id string, patch domain.CollectionPatch) (*domain.Collection, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Collection, error)
	Explore(ctx context.Context) ([]domain.Collection, error)
	ByUser(ctx context.Context, userID string) ([]domain.Collection, error)
	Search(ctx context.Context, query string) ([]domain.Collection, error)
}
