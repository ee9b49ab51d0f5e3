package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultTTL             = time.Hour
	defaultCleanupInterval = 10 * time.Minute
)

// CacheStore is a Store backed by go-cache. Nothing survives a restart.
type CacheStore struct {
	cache           *gocache.Cache
	ttl             time.Duration
	cleanupInterval time.Duration
}

// NewCacheStore creates a store with a one hour TTL unless configured otherwise.
func NewCacheStore(opts ...Option) *CacheStore {
	s := &CacheStore{ttl: defaultTTL, cleanupInterval: defaultCleanupInterval}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = gocache.New(s.ttl, s.cleanupInterval)
	s.cache.OnEvicted(func(string, any) {
		metrics.UpdateSessionsActive(s.cache.ItemCount())
	})
	return s
}

// Save stores a copy of a under a.ID.
func (s *CacheStore) Save(_ context.Context, a model.Analysis) error {
	if a.ID == "" {
		return ErrInvalidID
	}
	s.cache.Set(a.ID, a, gocache.DefaultExpiration)
	metrics.UpdateSessionsActive(s.cache.ItemCount())
	return nil
}

// Get returns the session stored under id.
func (s *CacheStore) Get(_ context.Context, id string) (model.Analysis, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return model.Analysis{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	a, ok := v.(model.Analysis)
	if !ok {
		return model.Analysis{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return a, nil
}

// Delete removes the session stored under id.
func (s *CacheStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	metrics.UpdateSessionsActive(s.cache.ItemCount())
	return nil
}

// Count returns the number of held sessions.
func (s *CacheStore) Count(_ context.Context) int {
	return s.cache.ItemCount()
}
