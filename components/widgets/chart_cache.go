package widgets

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RenderCache memoizes rendered chart HTML keyed by chart input.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCacheStats is a point-in-time view of cache usage.
type ChartCacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// ChartCache keeps rendered chart markup for a TTL. Concurrent misses on one key
// share a single render, and the oldest entry is dropped once the size bound is hit.
type ChartCache struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	flight     singleflight.Group

	mu      sync.Mutex
	entries map[string]cachedChart
	hits    uint64
	misses  uint64
}

type cachedChart struct {
	html    string
	expires time.Time
}

// ChartCacheOption customizes a ChartCache.
type ChartCacheOption func(*ChartCache)

// WithMaxEntries bounds the number of cached charts; zero means unbounded.
func WithMaxEntries(n int) ChartCacheOption {
	return func(c *ChartCache) {
		if n >= 0 {
			c.maxEntries = n
		}
	}
}

// NewChartCache builds a cache with the provided TTL. A non-positive TTL disables caching.
func NewChartCache(ttl time.Duration, opts ...ChartCacheOption) *ChartCache {
	c := &ChartCache{
		ttl:        ttl,
		maxEntries: 256,
		now:        time.Now,
		entries:    make(map[string]cachedChart),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// GetOrRender returns a live entry or renders and stores a new one. Render errors are not cached.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}
	if html, ok := c.lookup(key); ok {
		return html, nil
	}
	v, err, _ := c.flight.Do(key, func() (any, error) {
		if html, ok := c.peek(key); ok {
			return html, nil
		}
		html, err := render()
		if err != nil {
			return "", err
		}
		c.store(key, html)
		return html, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Purge drops expired entries and reports how many remain.
func (c *ChartCache) Purge() int {
	if c == nil {
		return 0
	}
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, key)
		}
	}
	return len(c.entries)
}

// Stats reports entry count and hit/miss totals.
func (c *ChartCache) Stats() ChartCacheStats {
	if c == nil {
		return ChartCacheStats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return ChartCacheStats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}

func (c *ChartCache) lookup(key string) (string, bool) {
	html, ok := c.peek(key)
	c.mu.Lock()
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()
	return html, ok
}

func (c *ChartCache) peek(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, key)
		return "", false
	}
	return entry.html, true
}

func (c *ChartCache) store(key, html string) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = cachedChart{html: html, expires: now.Add(c.ttl)}
}

func (c *ChartCache) evictOldestLocked() {
	var (
		oldest string
		at     time.Time
	)
	for key, entry := range c.entries {
		if oldest == "" || entry.expires.Before(at) {
			oldest, at = key, entry.expires
		}
	}
	delete(c.entries, oldest)
}

// inputHash returns a deterministic hash of a chart's input data.
func inputHash(input any) string {
	b, err := json.Marshal(input)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
