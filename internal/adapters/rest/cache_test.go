package rest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eduplat/campus-cli/internal/domain"
)

func TestResponseCacheExpiresEntries(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	cache := newResponseCache(10*time.Second, clock)
	cache.put("GET:/courses", domain.Result{Code: 200, Message: "ok"})

	got, ok := cache.get("GET:/courses")
	assert.True(t, ok)
	assert.Equal(t, "ok", got.Message)

	clock.advance(9 * time.Second)
	_, ok = cache.get("GET:/courses")
	assert.True(t, ok)

	clock.advance(time.Second)
	_, ok = cache.get("GET:/courses")
	assert.False(t, ok)
}

func TestResponseCacheClear(t *testing.T) {
	t.Parallel()

	cache := newResponseCache(time.Minute, newFakeClock())
	cache.put("GET:/a", domain.Result{Code: 200})
	cache.put("GET:/b", domain.Result{Code: 200})

	cache.clear()

	_, ok := cache.get("GET:/a")
	assert.False(t, ok)
	_, ok = cache.get("GET:/b")
	assert.False(t, ok)
}

func TestResponseCacheDefaultTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	cache := newResponseCache(0, clock)
	cache.put("GET:/a", domain.Result{Code: 200})

	clock.advance(defaultCacheTTL - time.Second)
	_, ok := cache.get("GET:/a")
	assert.True(t, ok)

	clock.advance(time.Second)
	_, ok = cache.get("GET:/a")
	assert.False(t, ok)
}
