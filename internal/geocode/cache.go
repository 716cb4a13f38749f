package geocode

import (
	"strings"
	"sync"
)

// Result is what a successful geocode resolves to.
type Result struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
}

// cache is keyed by the place string, lowercased and trimmed, and must be
// safe for concurrent reads with single-writer inserts. A sync.RWMutex
// guarding a plain map serves both needs.
type cache struct {
	mu      sync.RWMutex
	entries map[string]Result
}

func newCache() *cache {
	return &cache{entries: make(map[string]Result)}
}

func normalizeKey(place string) string {
	return strings.TrimSpace(strings.ToLower(place))
}

func (c *cache) get(place string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.entries[normalizeKey(place)]
	return r, ok
}

func (c *cache) put(place string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[normalizeKey(place)] = r
}
