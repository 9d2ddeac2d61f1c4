package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/curato/curation-client/internal/core/domain"
	"github.com/curato/curation-client/internal/core/ports"
)

var _ ports.CollectionService = (*CollectionService)(nil)
var _ ports.AuthService = (*SessionService)(nil)

var errServer = &domain.APIError{Kind: domain.KindResponse, Status: http.StatusInternalServerError, Message: "boom"}

func newCollectionService(t *testing.T, repo *stubCollectionRepo, seed ...domain.Collection) *CollectionService {
	t.Helper()
	if repo.listFn == nil {
		repo.listFn = func(context.Context) ([]domain.Collection, error) { return seed, nil }
	}
	cache := NewCollectionCache(repo, zerolog.Nop())
	svc := NewCollectionService(repo, cache, zerolog.Nop())
	svc.Refresh(context.Background())
	return svc
}

func TestCreate_InsertsServerRecord(t *testing.T) {
	repo := &stubCollectionRepo{
		createFn: func(_ context.Context, in domain.CollectionInput) (*domain.Collection, error) {
			if in.Title != "Desk" {
				t.Fatalf("expected trimmed title, got %q", in.Title)
			}
			return &domain.Collection{ID: "new", Title: in.Title}, nil
		},
	}
	svc := newCollectionService(t, repo, domain.Collection{ID: "a"})

	created, err := svc.Create(context.Background(), domain.CollectionInput{Title: "  Desk "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != "new" {
		t.Fatalf("unexpected record: %+v", created)
	}
	assertIDs(t, svc.Collections(), "new", "a")
}

func TestCreate_BlankTitle(t *testing.T) {
	repo := &stubCollectionRepo{}
	svc := newCollectionService(t, repo)

	_, err := svc.Create(context.Background(), domain.CollectionInput{Title: "   "})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Message != "Title is required" {
		t.Fatalf("expected title validation error, got %v", err)
	}
	if repo.calls.Load() != 0 {
		t.Fatalf("expected no backend call")
	}
}

func TestMutationFailureLeavesCacheUntouched(t *testing.T) {
	repo := &stubCollectionRepo{
		createFn: func(context.Context, domain.CollectionInput) (*domain.Collection, error) {
			return nil, errServer
		},
		updateFn: func(context.Context, string, domain.CollectionPatch) (*domain.Collection, error) {
			return nil, errServer
		},
		deleteFn: func(context.Context, string) error {
			return errServer
		},
	}
	svc := newCollectionService(t, repo, domain.Collection{ID: "a", Title: "A"}, domain.Collection{ID: "b", Title: "B"})
	ctx := context.Background()
	title := "changed"

	if _, err := svc.Create(ctx, domain.CollectionInput{Title: "x"}); !errors.Is(err, domain.ErrBackend) {
		t.Fatalf("expected ErrBackend from Create, got %v", err)
	}
	if _, err := svc.Edit(ctx, "a", domain.CollectionPatch{Title: &title}); !errors.Is(err, domain.ErrBackend) {
		t.Fatalf("expected ErrBackend from Edit, got %v", err)
	}
	if err := svc.Delete(ctx, "a"); !errors.Is(err, domain.ErrBackend) {
		t.Fatalf("expected ErrBackend from Delete, got %v", err)
	}

	got := svc.Collections()
	assertIDs(t, got, "a", "b")
	if got[0].Title != "A" {
		t.Fatalf("cache changed after failed edit: %+v", got[0])
	}
}

func TestCreate_MissingResultIsAnError(t *testing.T) {
	repo := &stubCollectionRepo{
		createFn: func(context.Context, domain.CollectionInput) (*domain.Collection, error) {
			return nil, nil
		},
	}
	svc := newCollectionService(t, repo, domain.Collection{ID: "a"})

	created, err := svc.Create(context.Background(), domain.CollectionInput{Title: "x"})
	if !errors.Is(err, domain.ErrRequest) {
		t.Fatalf("expected ErrRequest, got %v", err)
	}
	if created != nil {
		t.Fatalf("expected no record, got %+v", created)
	}
	assertIDs(t, svc.Collections(), "a")
}

func TestEdit_MergesIntoCache(t *testing.T) {
	repo := &stubCollectionRepo{
		updateFn: func(_ context.Context, id string, patch domain.CollectionPatch) (*domain.Collection, error) {
			return &domain.Collection{ID: id, Title: *patch.Title}, nil
		},
	}
	svc := newCollectionService(t, repo,
		domain.Collection{ID: "a", Title: "A", Description: "desc"},
		domain.Collection{ID: "b", Title: "B"},
	)
	title := "A2"

	if _, err := svc.Edit(context.Background(), "a", domain.CollectionPatch{Title: &title}); err != nil {
		t.Fatalf("Edit returned error: %v", err)
	}
	got := svc.Collections()
	if got[0].Title != "A2" || got[0].Description != "desc" {
		t.Fatalf("unexpected cached record: %+v", got[0])
	}
}

func TestEdit_Validation(t *testing.T) {
	repo := &stubCollectionRepo{}
	svc := newCollectionService(t, repo)
	blank := " "

	if _, err := svc.Edit(context.Background(), "", domain.CollectionPatch{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty id, got %v", err)
	}
	if _, err := svc.Edit(context.Background(), "a", domain.CollectionPatch{Title: &blank}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank title, got %v", err)
	}
	if repo.calls.Load() != 0 {
		t.Fatalf("expected no backend call")
	}
}

func TestDelete_RemovesFromCache(t *testing.T) {
	var deleted string
	repo := &stubCollectionRepo{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	svc := newCollectionService(t, repo, domain.Collection{ID: "a"}, domain.Collection{AltID: "b"})

	if err := svc.Delete(context.Background(), "b"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted != "b" {
		t.Fatalf("expected backend delete of b, got %q", deleted)
	}
	assertIDs(t, svc.Collections(), "a")

	if err := svc.Delete(context.Background(), "  "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestReads(t *testing.T) {
	repo := &stubCollectionRepo{
		getFn: func(_ context.Context, id string) (*domain.Collection, error) {
			if id == "missing" {
				return nil, domain.ErrCollectionNotFound
			}
			return &domain.Collection{ID: id}, nil
		},
		searchFn: func(_ context.Context, q string) ([]domain.Collection, error) {
			return []domain.Collection{{ID: "hit-" + q}}, nil
		},
	}
	svc := newCollectionService(t, repo)
	ctx := context.Background()

	if c, err := svc.Get(ctx, "x"); err != nil || c.ID != "x" {
		t.Fatalf("unexpected Get result %+v, %v", c, err)
	}
	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, domain.ErrCollectionNotFound) {
		t.Fatalf("expected ErrCollectionNotFound, got %v", err)
	}
	if feed, err := svc.Explore(ctx); err != nil || len(feed) != 1 {
		t.Fatalf("unexpected Explore result %v, %v", feed, err)
	}
	if list, err := svc.ByUser(ctx, "u1"); err != nil || list[0].ID != "by-u1" {
		t.Fatalf("unexpected ByUser result %v, %v", list, err)
	}
	if _, err := svc.ByUser(ctx, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank user id, got %v", err)
	}
	if hits, err := svc.Search(ctx, " desk "); err != nil || hits[0].ID != "hit-desk" {
		t.Fatalf("unexpected Search result %v, %v", hits, err)
	}

	before := repo.calls.Load()
	if hits, err := svc.Search(ctx, "   "); err != nil || len(hits) != 0 {
		t.Fatalf("expected empty results for blank query, got %v, %v", hits, err)
	}
	if repo.calls.Load() != before {
		t.Fatalf("blank search must not call the backend")
	}
}
