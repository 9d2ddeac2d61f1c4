package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/curato/curation-client/internal/core/domain"
	"github.com/curato/curation-client/internal/core/ports"
	"github.com/curato/curation-client/internal/metrics"
)

const refreshKey = "collections"

// CollectionCache holds the authenticated user's collections, newest first.
type CollectionCache struct {
	repo   ports.CollectionRepository
	logger zerolog.Logger
	group  singleflight.Group

	mu    sync.RWMutex
	items []domain.Collection
}

func NewCollectionCache(repo ports.CollectionRepository, logger zerolog.Logger) *CollectionCache {
	return &CollectionCache{repo: repo, logger: logger}
}

// Refresh replaces the cache with the backend list sorted by creation time,
// newest first. On failure the cache is emptied and an empty slice returned.
// Concurrent callers share one fetch, which ignores their cancellation.
func (c *CollectionCache) Refresh(ctx context.Context) []domain.Collection {
	fetchCtx := context.WithoutCancel(ctx)
	v, _, _ := c.group.Do(refreshKey, func() (any, error) {
		list, err := c.repo.List(fetchCtx)
		if err != nil {
			c.logger.Error().Err(err).Msg("refresh collections")
			metrics.CacheRefreshTotal.WithLabelValues("error").Inc()
			c.replace(nil)
			return []domain.Collection{}, nil
		}
		sorted := append([]domain.Collection(nil), list...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt.Time)
		})
		c.replace(clone(sorted))
		metrics.CacheRefreshTotal.WithLabelValues("ok").Inc()
		c.logger.Debug().Int("count", len(sorted)).Msg("collections refreshed")
		return sorted, nil
	})
	return clone(v.([]domain.Collection))
}

// Insert puts col at the front without re-sorting. A cached record with the
// same identifier is dropped first.
func (c *CollectionCache) Insert(col domain.Collection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]domain.Collection, 0, len(c.items)+1)
	next = append(next, col)
	for _, item := range c.items {
		if item.Matches(col.ID) || item.Matches(col.AltID) {
			continue
		}
		next = append(next, item)
	}
	c.items = next
	metrics.CacheSize.Set(float64(len(next)))
}

// Remove drops every record whose "_id" or "id" equals id.
func (c *CollectionCache) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0:0]
	for _, item := range c.items {
		if !item.Matches(id) {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(c.items)
	if removed {
		c.items = kept
		metrics.CacheSize.Set(float64(len(kept)))
	}
	return removed
}

// Update merges the set fields of patch into the record matching id.
func (c *CollectionCache) Update(id string, patch domain.CollectionPatch) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	updated := false
	for i, item := range c.items {
		if item.Matches(id) {
			c.items[i] = patch.Apply(item)
			updated = true
		}
	}
	return updated
}

// Collections returns a copy of the cached list.
func (c *CollectionCache) Collections() []domain.Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.items)
}

func (c *CollectionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *CollectionCache) replace(items []domain.Collection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	metrics.CacheSize.Set(float64(len(items)))
}

func clone(items []domain.Collection) []domain.Collection {
	out := make([]domain.Collection, len(items))
	copy(out, items)
	return out
}
