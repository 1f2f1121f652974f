// Package httpcache provides a short-TTL in-memory cache for upstream API
// responses. Both public APIs consumed by the chronicle advertise
// minute-order freshness, so every GET (and the GraphQL POST) is served
// through this cache.
package httpcache

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/maypok86/otter/v2"
)

// Entry is one cached response body.
type Entry struct {
	ExpiresAt time.Time
	Data      []byte
}

// Cache is a bounded TTL response cache keyed by request URL (plus request
// body for POSTs).
type Cache struct {
	cache  *otter.Cache[string, Entry]
	logger *slog.Logger
	ttl    time.Duration
}

// New creates a cache holding responses for ttl.
func New(ttl time.Duration, logger *slog.Logger) *Cache {
	cache := otter.Must(&otter.Options[string, Entry]{
		MaximumSize:      10_000,
		InitialCapacity:  1_000,
		ExpiryCalculator: otter.ExpiryWriting[string, Entry](ttl),
	})
	return &Cache{cache: cache, logger: logger, ttl: ttl}
}

func cacheKey(url string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(url))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached body for a URL+body pair, if present and fresh.
func (c *Cache) Get(url string, body []byte) ([]byte, bool) {
	key := cacheKey(url, body)
	entry, found := c.cache.GetIfPresent(key)
	if !found {
		return nil, false
	}
	// Otter expires on write TTL already; the explicit check guards clock skew.
	if time.Now().After(entry.ExpiresAt) {
		c.cache.Invalidate(key)
		return nil, false
	}
	return entry.Data, true
}

// Set stores a response body for a URL+body pair.
func (c *Cache) Set(url string, body, data []byte) {
	c.cache.Set(cacheKey(url, body), Entry{Data: data, ExpiresAt: time.Now().Add(c.ttl)})
	c.logger.Debug("cache set", "url", url, "size", len(data))
}

// Len is the estimated number of live entries.
func (c *Cache) Len() int {
	return int(c.cache.EstimatedSize())
}
