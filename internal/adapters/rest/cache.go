package rest

import (
	"sync"
	"time"

	"github.com/eduplat/campus-cli/internal/domain"
	"github.com/eduplat/campus-cli/internal/ports"
)

const defaultCacheTTL = 30 * time.Second

type cacheEntry struct {
	result domain.Result
	at     time.Time
}

// responseCache is a time-boxed map from request URL to the last successful
// envelope. Only idempotent reads are cached; any mutation clears the whole
// map, trading hit rate for consistency.
type responseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	clock   ports.Clock
}

func newResponseCache(ttl time.Duration, clock ports.Clock) *responseCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

func (c *responseCache) get(key string) (domain.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return domain.Result{}, false
	}
	if c.clock.Now().Sub(entry.at) >= c.ttl {
		delete(c.entries, key)
		return domain.Result{}, false
	}
	return entry.result, true
}

func (c *responseCache) put(key string, result domain.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{result: result, at: c.clock.Now()}
}

func (c *responseCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
