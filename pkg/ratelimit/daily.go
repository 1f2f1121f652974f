// Package ratelimit holds the per-caller daily quota for the AI commentary
// endpoint. One process-wide counter, keyed by caller identity plus UTC date.
package ratelimit

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultDailyLimit is how many commentary generations one caller gets per day.
const DefaultDailyLimit = 3

// Entries outlive the day they belong to, then the janitor drops them. The
// date baked into the key makes stale-day entries unreachable either way.
const entryTTL = 48 * time.Hour

// Daily counts requests per caller per UTC day.
type Daily struct {
	store *gocache.Cache
	limit int
	now   func() time.Time
}

// NewDaily builds a limiter allowing limit requests per caller per day.
func NewDaily(limit int) *Daily {
	return &Daily{
		store: gocache.New(entryTTL, time.Hour),
		limit: limit,
		now:   time.Now,
	}
}

// CheckAndConsume spends one unit of today's quota for id. It reports whether
// the request may proceed and how much quota remains afterwards. A denied
// request consumes nothing.
func (d *Daily) CheckAndConsume(id string) (allowed bool, remaining int) {
	key := id + ":" + d.now().UTC().Format("2006-01-02")

	count := 0
	if v, ok := d.store.Get(key); ok {
		count, _ = v.(int)
	}
	if count >= d.limit {
		return false, 0
	}

	d.store.Set(key, count+1, entryTTL)
	return true, d.limit - count - 1
}
