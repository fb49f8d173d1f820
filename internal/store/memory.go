package store

import (
	"strings"
	"sync"
	"time"

	"github.com/alexkokkinos/walktime/internal/weather"
)

// MemoryCache is a concurrency-safe in-memory forecast cache keyed by
// location query. A document older than maxAge is treated as absent; the
// remaining-hours filter compensates for staleness within that window via
// the document's fetch timestamp.
type MemoryCache struct {
	mu sync.RWMutex

	data   map[string]*weather.Forecast
	maxAge time.Duration
}

// NewMemoryCache creates a cache with the given freshness window.
// If maxAge is <= 0, documents never expire.
func NewMemoryCache(maxAge time.Duration) *MemoryCache {
	return &MemoryCache{
		data:   make(map[string]*weather.Forecast),
		maxAge: maxAge,
	}
}

// locationKey canonicalizes a free-form location query so that "Chicago" and
// " chicago " share a cache entry.
func locationKey(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

// Save stores the latest forecast document for a location, replacing any
// previous one.
func (c *MemoryCache) Save(location string, forecast *weather.Forecast) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[locationKey(location)] = forecast
}

// GetFresh returns the cached forecast for a location if one exists and is
// still within the freshness window.
func (c *MemoryCache) GetFresh(location string) (*weather.Forecast, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	forecast, ok := c.data[locationKey(location)]
	if !ok {
		return nil, false
	}
	if c.maxAge > 0 && time.Since(forecast.FetchedAt) > c.maxAge {
		return nil, false
	}
	return forecast, true
}

// Locations returns every location key currently cached. Stale entries are
// included; the scheduler uses this to decide what to refresh.
func (c *MemoryCache) Locations() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}
