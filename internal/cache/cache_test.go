package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is an adjustable time source.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCache(ttl time.Duration, enabled bool) (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	// Sweep disabled so only lazy eviction runs; janitor is covered
	// separately.
	c := New(ttl, enabled, WithClock(clock.Now), WithSweepInterval(0))
	return c, clock
}

func TestGetWithinTTL(t *testing.T) {
	c, clock := newTestCache(time.Minute, true)
	defer c.Close()

	c.Set("k", "v")
	clock.Advance(time.Minute - time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestGetPastTTLEvicts(t *testing.T) {
	c, clock := newTestCache(time.Minute, true)
	defer c.Close()

	c.Set("k", "v")
	clock.Advance(time.Minute + time.Second)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "stale read evicts the entry")
}

func TestDisabledCacheStoresNothing(t *testing.T) {
	c, _ := newTestCache(time.Minute, false)
	defer c.Close()

	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestSetOverwritesAndRefreshes(t *testing.T) {
	c, clock := newTestCache(time.Minute, true)
	defer c.Close()

	c.Set("k", "old")
	clock.Advance(45 * time.Second)
	c.Set("k", "new")
	clock.Advance(45 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok, "overwrite restarts the TTL")
	assert.Equal(t, "new", v)
}

func TestGetUnknownKey(t *testing.T) {
	c, _ := newTestCache(time.Minute, true)
	defer c.Close()

	_, ok := c.Get("never-stored")
	assert.False(t, ok)
}

func TestFlushRemovesOnlyExpired(t *testing.T) {
	c, clock := newTestCache(time.Minute, true)
	defer c.Close()

	c.Set("old", 1)
	clock.Advance(45 * time.Second)
	c.Set("fresh", 2)
	clock.Advance(30 * time.Second)

	removed := c.Flush()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestJanitorSweepsExpiredEntries(t *testing.T) {
	c := New(10*time.Millisecond, true, WithSweepInterval(5*time.Millisecond))
	defer c.Close()

	c.Set("k", "v")
	assert.Eventually(t, func() bool { return c.Len() == 0 },
		500*time.Millisecond, 5*time.Millisecond,
		"janitor reclaims entries nobody reads again")
}

func TestCloseClearsEntries(t *testing.T) {
	c, _ := newTestCache(time.Minute, true)
	c.Set("k", "v")
	c.Close()
	assert.Equal(t, 0, c.Len())
	c.Close() // idempotent
}
