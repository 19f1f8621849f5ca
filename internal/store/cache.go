package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of prepared statements kept per store.
const DefaultCacheSize = 64

// StatementCache keeps prepared statements keyed by a hash of their query.
// Evicted statements are closed.
type StatementCache struct {
	cache *lru.Cache[uint64, *sql.Stmt]
	mu    sync.RWMutex
}

// NewStatementCache creates a cache holding at most size statements.
func NewStatementCache(size int) (*StatementCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.NewWithEvict(size, func(_ uint64, stmt *sql.Stmt) {
		_ = stmt.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("creating statement cache: %w", err)
	}
	return &StatementCache{cache: cache}, nil
}

// Key returns the cache key for query.
func Key(query string) uint64 {
	return xxhash.Sum64String(query)
}

// Get returns the cached statement for query, if any.
func (s *StatementCache) Get(query string) (*sql.Stmt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Get(Key(query))
}

// GetOrPrepare returns the cached statement for query, preparing and
// caching it on a miss.
func (s *StatementCache) GetOrPrepare(ctx context.Context, db *sql.DB, query string) (*sql.Stmt, error) {
	key := Key(query)

	// Fast path: try to get from cache with read lock
	s.mu.RLock()
	if stmt, ok := s.cache.Get(key); ok {
		s.mu.RUnlock()
		return stmt, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if stmt, ok := s.cache.Get(key); ok {
		return stmt, nil
	}

	stmt, err := db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, stmt)
	return stmt, nil
}

// Len returns the number of cached statements.
func (s *StatementCache) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Len()
}

// Close closes and drops every cached statement.
func (s *StatementCache) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Purge() // This will trigger the evict callback for all items
	return nil
}
