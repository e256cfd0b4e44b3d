package auth

import (
	"sync"
	"sync/atomic"
	"time"
)

// KeyCache is a TTL-based in-memory cache with stale-while-revalidate for
// authenticated keys. sync.Map keeps reads lock-free on the hot path.
type KeyCache struct {
	store sync.Map // map[string]*keyCacheEntry
	ttl   time.Duration
}

type keyCacheEntry struct {
	project    *ProjectContext
	expiresAt  time.Time
	refreshing atomic.Bool
}

// KeyCacheResult holds the result of a cache lookup.
type KeyCacheResult struct {
	Project      *ProjectContext
	Hit          bool
	NeedsRefresh bool // entry is stale; exactly one caller gets true
}

// NewKeyCache creates a cache with the given TTL.
func NewKeyCache(ttl time.Duration) *KeyCache {
	return &KeyCache{ttl: ttl}
}

// Get performs a non-blocking cache lookup. Stale entries are returned with
// NeedsRefresh set for exactly one caller, which should refresh in the
// background.
func (c *KeyCache) Get(apiKey string) KeyCacheResult {
	val, ok := c.store.Load(apiKey)
	if !ok {
		return KeyCacheResult{}
	}

	entry := val.(*keyCacheEntry)
	if time.Now().Before(entry.expiresAt) {
		return KeyCacheResult{Project: entry.project, Hit: true}
	}

	needsRefresh := entry.refreshing.CompareAndSwap(false, true)
	return KeyCacheResult{Project: entry.project, Hit: true, NeedsRefresh: needsRefresh}
}

// Set stores a project context with a fresh TTL.
func (c *KeyCache) Set(apiKey string, project *ProjectContext) {
	c.store.Store(apiKey, &keyCacheEntry{
		project:   project,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Delete removes an entry from the cache.
func (c *KeyCache) Delete(apiKey string) {
	c.store.Delete(apiKey)
}
