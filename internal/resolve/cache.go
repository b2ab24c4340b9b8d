package resolve

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	program   string
	ok        bool
	expiresAt time.Time
}

// CachingResolver remembers answers, misses included, of an inner Resolver for ttl.
type CachingResolver struct {
	inner   Resolver
	ttl     time.Duration
	maxSize int
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCachingResolver wraps r. maxSize <= 0 means unbounded.
func NewCachingResolver(r Resolver, ttl time.Duration, maxSize int) *CachingResolver {
	return &CachingResolver{
		inner:   r,
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachingResolver) Resolve(ctx context.Context, host string) (string, bool) {
	c.mu.Lock()
	if e, ok := c.entries[host]; ok && c.now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.program, e.ok
	}
	c.mu.Unlock()

	program, ok := c.inner.Resolve(ctx, host)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, present := c.entries[host]; !present && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictSoonest()
	}
	c.entries[host] = cacheEntry{program: program, ok: ok, expiresAt: c.now().Add(c.ttl)}
	return program, ok
}

// Len returns the number of cached hosts.
func (c *CachingResolver) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *CachingResolver) evictSoonest() {
	var victim string
	var at time.Time
	for host, e := range c.entries {
		if victim == "" || e.expiresAt.Before(at) {
			victim, at = host, e.expiresAt
		}
	}
	delete(c.entries, victim)
}
