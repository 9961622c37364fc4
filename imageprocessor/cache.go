package imageprocessor

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DescriptorCache maps image paths to their descriptors for the lifetime
// of one engine. Entries are never invalidated, so image files must not
// change while a run is in progress. Implementations are safe for
// concurrent use.
type DescriptorCache interface {
	Get(path string) (Descriptors, bool)
	Add(path string, desc Descriptors)
	Len() int
	Purge()
}

// NewDescriptorCache returns an unbounded cache when capacity <= 0 and an
// LRU cache holding at most capacity images otherwise
func NewDescriptorCache(capacity int) (DescriptorCache, error) {
	if capacity <= 0 {
		return newMapCache(), nil
	}
	return newLRUCache(capacity)
}

// mapCache grows with the number of distinct images referenced
type mapCache struct {
	mu      sync.RWMutex
	entries map[string]Descriptors
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]Descriptors)}
}

func (c *mapCache) Get(path string) (Descriptors, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	desc, ok := c.entries[path]
	return desc, ok
}

func (c *mapCache) Add(path string, desc Descriptors) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[path] = desc
}

func (c *mapCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *mapCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Descriptors)
}

// lruCache bounds memory by evicting the least recently used image.
// Descriptors are immutable, so an evicted entry is simply recomputed.
type lruCache struct {
	cache *lru.Cache[string, Descriptors]
}

func newLRUCache(capacity int) (*lruCache, error) {
	c, err := lru.New[string, Descriptors](capacity)
	if err != nil {
		return nil, err
	}
	return &lruCache{cache: c}, nil
}

func (c *lruCache) Get(path string) (Descriptors, bool) {
	return c.cache.Get(path)
}

func (c *lruCache) Add(path string, desc Descriptors) {
	c.cache.Add(path, desc)
}

func (c *lruCache) Len() int {
	return c.cache.Len()
}

func (c *lruCache) Purge() {
	c.cache.Purge()
}
