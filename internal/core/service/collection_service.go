package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/curato/curation-client/internal/core/domain"
	"github.com/curato/curation-client/internal/core/ports"
)

// CollectionService runs collection calls against the backend and keeps the
// local cache in step with successful mutations.
type CollectionService struct {
	repo      ports.CollectionRepository
	cache     *CollectionCache
	validator *inputValidator
	logger    zerolog.Logger
}

func NewCollectionService(repo ports.CollectionRepository, cache *CollectionCache, logger zerolog.Logger) *CollectionService {
	return &CollectionService{repo: repo, cache: cache, validator: newInputValidator(), logger: logger}
}

func (s *CollectionService) Refresh(ctx context.Context) []domain.Collection {
	return s.cache.Refresh(ctx)
}

func (s *CollectionService) Collections() []domain.Collection {
	return s.cache.Collections()
}

// Create posts a new collection and puts the server's record at the front of the cache.
func (s *CollectionService) Create(ctx context.Context, in domain.CollectionInput) (*domain.Collection, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, &domain.APIError{Kind: domain.KindRequest, Message: "create response has no result"}
	}
	s.cache.Insert(*created)
	s.logger.Info().Str("collection_id", created.Key()).Msg("collection created")
	return created, nil
}

// Edit applies patch on the backend, then merges it into the cached record.
func (s *CollectionService) Edit(ctx context.Context, id string, patch domain.CollectionPatch) (*domain.Collection, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, &domain.ValidationError{Field: "Title", Message: "Title is required"}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.cache.Update(id, patch)
	s.logger.Info().Str("collection_id", id).Msg("collection updated")
	return updated, nil
}

// Delete removes the collection on the backend, then from the cache.
func (s *CollectionService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Remove(id)
	s.logger.Info().Str("collection_id", id).Msg("collection deleted")
	return nil
}

func (s *CollectionService) Get(ctx context.Context, id string) (*domain.Collection, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *CollectionService) Explore(ctx context.Context) ([]domain.Collection, error) {
	return s.repo.Explore(ctx)
}

func (s *CollectionService) ByUser(ctx context.Context, userID string) ([]domain.Collection, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &domain.ValidationError{Field: "UserID", Message: "User id is required"}
	}
	return s.repo.ByUser(ctx, userID)
}

// Search returns no results for a blank query without calling the backend.
func (s *CollectionService) Search(ctx context.Context, query string) ([]domain.Collection, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Collection{}, nil
	}
	return s.repo.Search(ctx, query)
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &domain.ValidationError{Field: "ID", Message: "Collection id is required"}
	}
	return nil
}
