package geocode

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	places    []Place
	expiresAt time.Time
}

// Cache wraps a Searcher and remembers successful answers for a TTL.
// Errors are never cached.
type Cache struct {
	next Searcher
	ttl  time.Duration
	now  func() time.Time

	mu   sync.RWMutex
	data map[string]entry
}

// NewCache returns a caching Searcher in front of next.
func NewCache(next Searcher, ttl time.Duration) *Cache {
	return &Cache{
		next: next,
		ttl:  ttl,
		now:  time.Now,
		data: make(map[string]entry),
	}
}

func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Search answers from the cache when possible, otherwise asks next.
func (c *Cache) Search(ctx context.Context, query string) ([]Place, error) {
	key := cacheKey(query)
	if places, ok := c.Peek(key); ok {
		return places, nil
	}

	places, err := c.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry{places: places, expiresAt: c.now().Add(c.ttl)}
	return clonePlaces(places), nil
}

// Peek reads a cached answer without querying.
func (c *Cache) Peek(query string) ([]Place, bool) {
	key := cacheKey(query)
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// a concurrent Search may have refreshed the entry since the read
		if cur, ok := c.data[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return clonePlaces(e.places), true
}

// Len returns the number of cached entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func clonePlaces(p []Place) []Place {
	if p == nil {
		return nil
	}
	return append([]Place(nil), p...)
}
