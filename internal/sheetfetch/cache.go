package sheetfetch

import (
	"sync"
	"time"
)

// DefaultTTL is how long a fetched document stays fresh before a refetch is
// required.
const DefaultTTL = 60 * time.Second

// Clock supplies the current time; injected so expiry is deterministic in
// tests.
type Clock func() time.Time

// DocumentCache is a single-slot, time-bounded cache for the active source
// document. One sheet URL is active at a time, so a single slot is enough;
// concurrent refreshes are allowed and the last write wins.
type DocumentCache struct {
	mu        sync.Mutex
	doc       *Document
	storedAt  time.Time
	ttl       time.Duration
	now       Clock
}

// NewDocumentCache creates a cache with the given TTL. A zero ttl falls back
// to DefaultTTL and a nil clock to time.Now.
func NewDocumentCache(ttl time.Duration, now Clock) *DocumentCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &DocumentCache{ttl: ttl, now: now}
}

// Get returns the cached document when it is still fresh. An expired entry is
// reported as absent; there is no explicit invalidation.
func (c *DocumentCache) Get() (*Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil || c.now().Sub(c.storedAt) >= c.ttl {
		return nil, false
	}
	return c.doc, true
}

// Put overwrites the single slot with a freshly fetched document.
func (c *DocumentCache) Put(doc *Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = doc
	c.storedAt = c.now()
}
