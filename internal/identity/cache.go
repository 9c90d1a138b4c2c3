package identity

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/LootVault_Go/internal/domain"
)

// cachedIdentity wraps an identity with version metadata for cache invalidation
type cachedIdentity struct {
	Version  string
	Identity domain.Identity
	CachedAt time.Time
}

// identityCache is an LRU of identities keyed by user id with time-based expiry.
type identityCache struct {
	lru *expirable.LRU[string, *cachedIdentity]
}

func newIdentityCache(size int, ttl time.Duration) *identityCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &identityCache{
		lru: expirable.NewLRU[string, *cachedIdentity](size, nil, ttl),
	}
}

// Get returns a copy of the cached identity. Entries from an older schema are dropped.
func (c *identityCache) Get(userID string) (*domain.Identity, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}
	out := entry.Identity
	return &out, true
}

func (c *identityCache) Set(identity domain.Identity) {
	c.lru.Add(identity.UserID, &cachedIdentity{
		Version:  CacheSchemaVersion,
		Identity: identity,
		CachedAt: time.Now(),
	})
}

func (c *identityCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

func (c *identityCache) Len() int {
	return c.lru.Len()
}
