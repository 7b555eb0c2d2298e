package tenant

import (
	"context"
	"sync"
	"time"
)

// Cache stores resolved tenants per subdomain so the directory is hit at
// most once per TTL window, not once per request.
type Cache interface {
	Get(ctx context.Context, key string) (*Tenant, bool)
	Set(ctx context.Context, key string, t *Tenant, ttl time.Duration)

	// Delete removes a tenant from cache. Called on deactivation so a
	// disabled tenant stops resolving immediately.
	Delete(ctx context.Context, key string)
}

// inMemoryCache is the default process-local cache.
type inMemoryCache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
}

type cacheItem struct {
	tenant    *Tenant
	expiresAt time.Time
}

// NewInMemoryCache creates a process-local tenant cache. Expired entries
// are dropped lazily on read; the working set is bounded by the number of
// active subdomains, so no background sweeper is needed.
func NewInMemoryCache() Cache {
	return &inMemoryCache{items: make(map[string]cacheItem)}
}

func (c *inMemoryCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		c.Delete(ctx, key)
		return nil, false
	}
	return item.tenant, true
}

func (c *inMemoryCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheItem{tenant: t, expiresAt: time.Now().Add(ttl)}
}

func (c *inMemoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// noOpCache disables caching; every request hits the directory.
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache. Useful in tests and in
// deployments where the directory lookup is cheap enough.
func NewNoOpCache() Cache {
	return noOpCache{}
}

func (noOpCache) Get(ctx context.Context, key string) (*Tenant, bool) { return nil, false }

func (noOpCache) Set(ctx context.Context, key string, t *Tenant, _ time.Duration) {}

func (noOpCache) Delete(ctx context.Context, key string) {}
