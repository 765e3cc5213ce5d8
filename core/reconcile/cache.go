package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// IndexLoader loads the registry records an index is built from.
type IndexLoader func(ctx context.Context) ([]RegistryRecord, error)

// cachedIndex is a built index with its build time.
type cachedIndex struct {
	index *RosterIndex
	built time.Time
}

// IndexCache keeps built roster indices keyed by registry version (e.g. object name + ETag).
// Concurrent misses for the same key share one build.
type IndexCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]*cachedIndex
	sf      singleflight.Group
}

// NewIndexCache creates a cache. A zero TTL disables caching.
func NewIndexCache(ttl time.Duration) *IndexCache {
	return &IndexCache{
		ttl:     ttl,
		entries: make(map[string]*cachedIndex),
	}
}

func (c *IndexCache) expired(e *cachedIndex) bool {
	if c.ttl == 0 {
		return true
	}
	return time.Since(e.built) > c.ttl
}

// GetOrBuild returns the cached index for key or builds it from load.
func (c *IndexCache) GetOrBuild(ctx context.Context, key string, load IndexLoader) (*RosterIndex, error) {
	if c.ttl == 0 {
		records, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return BuildIndex(records), nil
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && !c.expired(entry) {
		return entry.index, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		entry, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && !c.expired(entry) {
			return entry.index, nil
		}

		records, err := load(ctx)
		if err != nil {
			return nil, err
		}
		idx := BuildIndex(records)

		c.mu.Lock()
		c.entries[key] = &cachedIndex{index: idx, built: time.Now()}
		c.mu.Unlock()

		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*RosterIndex), nil
}

// Invalidate drops the entry for key.
func (c *IndexCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
