// Package cache is a process-lifetime TTL cache for resolved query ranges.
// Entries expire lazily on read and eagerly via a janitor sweep, so a key
// that is never read again still gets reclaimed.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Cache maps range keys to payloads with a fixed time-to-live. Safe for
// concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	enabled bool
	now     func() time.Time
	sweep   time.Duration
	stop    chan struct{}
	once    sync.Once
}

// Option configures a Cache at construction time.
type Option func(*Cache)

// WithClock injects a time source. Tests use this to make TTL expiry
// deterministic.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithSweepInterval overrides the janitor period, which otherwise equals
// the TTL.
func WithSweepInterval(d time.Duration) Option {
	return func(c *Cache) { c.sweep = d }
}

// New builds a cache with the given TTL. A disabled cache accepts Set and
// Get calls but never stores or returns anything.
func New(ttl time.Duration, enabled bool, opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		enabled: enabled,
		now:     time.Now,
		sweep:   ttl,
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.enabled && c.sweep > 0 {
		go c.janitor()
	}
	return c
}

// Get returns the value stored under key, or false if the cache is
// disabled, the key was never stored, or the entry is older than the TTL.
// Stale entries are evicted on this path.
func (c *Cache) Get(key string) (any, bool) {
	if !c.enabled {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the current timestamp, overwriting any
// prior entry. No-op when disabled.
func (c *Cache) Set(key string, value any) {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
}

// Len reports the number of entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Flush evicts every expired entry and reports how many were removed.
func (c *Cache) Flush() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Close stops the janitor and clears all entries. Safe to call more than
// once.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.Flush()
		case <-c.stop:
			return
		}
	}
}
