// Package cache is a small typed read-through cache over go-cache.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultExpiration      = time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// Cache stores values of type V by string key.
type Cache[V any] struct {
	useCase string
	cache   *gocache.Cache
	log     *slog.Logger

	// gen counts Delete and Flush calls. A read-through load started
	// before one of them must not store its result.
	mu  sync.Mutex
	gen uint64
}

func New[V any](useCase string, defaultExpiration, cleanupInterval time.Duration, log *slog.Logger) *Cache[V] {
	if log == nil {
		log = slog.Default()
	}
	return &Cache[V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
		log:     log,
	}
}

// Get retrieves a value by key.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	value, found := c.cache.Get(key)
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		c.log.Error("wrong type assertion when getting value", "cache", c.useCase, "key", key)
		return zero, false
	}
	return v, true
}

// Set stores value under key. A zero ttl uses the cache default.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
}

// Delete drops keys.
func (c *Cache[V]) Delete(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for _, key := range keys {
		c.cache.Delete(key)
	}
}

// Len counts stored items, including expired ones not yet cleaned up.
func (c *Cache[V]) Len() int {
	return c.cache.ItemCount()
}

func (c *Cache[V]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.cache.Flush()
}

// ReadThrough returns the cached value for key, or calls fn and caches
// its result. Errors from fn are returned as is and nothing is cached.
// A result is also dropped when Delete or Flush ran while fn was loading,
// so a write that finished after the load began is seen by the next read.
func (c *Cache[V]) ReadThrough(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		c.log.Debug("cache hit", "cache", c.useCase, "key", key)
		return value, nil
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	value, err := fn(ctx)
	if err != nil {
		return value, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		c.log.Debug("stale load not cached", "cache", c.useCase, "key", key)
		return value, nil
	}
	c.Set(key, value, ttl)
	return value, nil
}
