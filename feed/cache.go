package feed

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// GlobalKey is the only key in use today: the landing page (global feed,
// page 1) carries no viewer-specific data, so a single shared slot works.
const GlobalKey = "feed:global:1"

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Cache is a render-once, serve-stale slot store. Entries are NOT
// invalidated by writes; they expire after their TTL or when Invalidate
// is called. During an expiry race two requests may both recompute and
// both store - the overwrite is idempotent, so only the extra computation
// is wasted.
type Cache struct {
	slots cmap.ConcurrentMap[string, cacheEntry]
}

func NewCache() *Cache {
	return &Cache{slots: cmap.New[cacheEntry]()}
}

func (c *Cache) GetOrCompute(key string, ttl time.Duration, compute func() (Page, error)) (Page, error) {
	if entry, ok := c.slots.Get(key); ok && time.Now().Before(entry.expires) {
		return entry.page, nil
	}
	page, err := compute()
	if err != nil {
		return page, err
	}
	c.slots.Set(key, cacheEntry{page: page, expires: time.Now().Add(ttl)})
	return page, nil
}

// Invalidate drops the entry so the next read recomputes immediately.
func (c *Cache) Invalidate(key string) {
	c.slots.Remove(key)
}
