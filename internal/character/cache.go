package character

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/metrics"
)

// CacheConfig holds cache configuration
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// cachedCharacterEntry wraps a record with version metadata for cache invalidation
type cachedCharacterEntry struct {
	Version   string
	Character *domain.Character
}

// characterCache is an in-memory LRU of character records with time-based
// expiration and version-based invalidation. Entries are private copies.
type characterCache struct {
	lru *expirable.LRU[string, *cachedCharacterEntry]
}

func newCharacterCache(cfg CacheConfig) *characterCache {
	if cfg.Size <= 0 {
		cfg.Size = DefaultCacheSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}
	return &characterCache{
		lru: expirable.NewLRU[string, *cachedCharacterEntry](cfg.Size, nil, cfg.TTL),
	}
}

// Get returns a copy of the cached record.
// Entries with a mismatched version are removed and reported as misses.
func (c *characterCache) Get(name string) (*domain.Character, bool) {
	entry, found := c.lru.Get(name)
	if !found || entry.Version != CacheSchemaVersion {
		if found {
			c.lru.Remove(name)
		}
		metrics.CacheLookups.WithLabelValues(metrics.ResultMiss).Inc()
		return nil, false
	}

	metrics.CacheLookups.WithLabelValues(metrics.ResultHit).Inc()
	return entry.Character.Clone(), true
}

// Set stores a copy of the record
func (c *characterCache) Set(ch *domain.Character) {
	c.lru.Add(ch.Name, &cachedCharacterEntry{
		Version:   CacheSchemaVersion,
		Character: ch.Clone(),
	})
}

// Invalidate removes a record from the cache
func (c *characterCache) Invalidate(name string) {
	c.lru.Remove(name)
}

// Len returns the number of live entries
func (c *characterCache) Len() int {
	return c.lru.Len()
}
