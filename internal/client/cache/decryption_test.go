package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nostos-app/nostos/internal/client/models"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestCache(maxEntries int) (*DecryptionCache, *fakeClock) {
	clock := &fakeClock{now: time.UnixMilli(1700000000000)}
	return NewWithOptions(time.Hour, maxEntries, clock), clock
}

const (
	owner = "0xAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaa"
	item  = "0x1111111111111111111111111111111111111111111111111111111111111111"
)

func TestGetSet_RoundTrip(t *testing.T) {
	c, _ := newTestCache(10)

	_, ok := c.Get(owner, item)
	assert.False(t, ok)

	p := models.ItemPayload{Name: "Blue Backpack", Reward: "0.01", Timestamp: 1700000000000}
	c.Set(owner, item, p)

	got, ok := c.Get(owner, item)
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestGet_CaseInsensitive(t *testing.T) {
	c, _ := newTestCache(10)
	c.Set(owner, item, models.ItemPayload{Name: "x"})

	_, ok := c.Get("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", item)
	assert.True(t, ok)
}

func TestGet_Expiry(t *testing.T) {
	c, clock := newTestCache(10)
	c.Set(owner, item, models.ItemPayload{Name: "x"})

	clock.now = clock.now.Add(time.Hour + time.Second)

	_, ok := c.Get(owner, item)
	assert.False(t, ok, "expired entry must be absent")
	assert.Equal(t, 0, c.Len(), "expired entry must be removed on access")
}

func TestSet_EvictsOldestFirst(t *testing.T) {
	c, clock := newTestCache(3)

	for i := 0; i < 3; i++ {
		clock.now = clock.now.Add(time.Minute)
		c.Set(owner, fmt.Sprintf("0x%02d", i), models.ItemPayload{Name: fmt.Sprintf("item-%d", i)})
	}
	require.Equal(t, 3, c.Len())

	clock.now = clock.now.Add(time.Minute)
	c.Set(owner, "0x99", models.ItemPayload{Name: "newest"})

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get(owner, "0x00")
	assert.False(t, ok, "oldest-inserted entry must be the one evicted")
	for _, id := range []string{"0x01", "0x02", "0x99"} {
		_, ok := c.Get(owner, id)
		assert.True(t, ok, "entry %s must survive eviction", id)
	}
}

func TestSet_OverwriteDoesNotEvict(t *testing.T) {
	c, clock := newTestCache(2)

	c.Set(owner, "0x01", models.ItemPayload{Name: "a"})
	clock.now = clock.now.Add(time.Minute)
	c.Set(owner, "0x02", models.ItemPayload{Name: "b"})
	clock.now = clock.now.Add(time.Minute)

	// same key again: capacity untouched
	c.Set(owner, "0x01", models.ItemPayload{Name: "a2"})

	assert.Equal(t, 2, c.Len())
	got, ok := c.Get(owner, "0x01")
	require.True(t, ok)
	assert.Equal(t, "a2", got.Name)
}

func TestClearForOwner(t *testing.T) {
	c, _ := newTestCache(10)
	other := "0xBBBBbbbbBBBBbbbbBBBBbbbbBBBBbbbbBBBBbbbb"

	c.Set(owner, "0x01", models.ItemPayload{Name: "a"})
	c.Set(other, "0x01", models.ItemPayload{Name: "b"})

	c.ClearForOwner(owner)

	_, ok := c.Get(owner, "0x01")
	assert.False(t, ok)
	_, ok = c.Get(other, "0x01")
	assert.True(t, ok)
}

func TestClearAll(t *testing.T) {
	c, _ := newTestCache(10)
	c.Set(owner, "0x01", models.ItemPayload{Name: "a"})
	c.Set(owner, "0x02", models.ItemPayload{Name: "b"})

	c.ClearAll()
	assert.Equal(t, 0, c.Len())
}
