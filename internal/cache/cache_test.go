package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Minute)

	c.Set("key1", []byte("value1"))

	data, found := c.Get("key1")
	assert.True(t, found)
	assert.Equal(t, []byte("value1"), data)

	_, found = c.Get("missing")
	assert.False(t, found)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)

	c.Set("key1", []byte("value1"))
	time.Sleep(20 * time.Millisecond)

	_, found := c.Get("key1")
	assert.False(t, found)
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := NewCache(time.Minute)

	c.Set("key1", []byte("a"))
	c.Set("key2", []byte("b"))
	assert.Equal(t, 2, c.Size())

	c.Delete("key1")
	assert.Equal(t, 1, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestCacheStop(t *testing.T) {
	c := NewCache(time.Minute)

	c.Stop()
	c.Stop() // repeated calls are safe

	// entries remain readable after the eviction goroutine exits
	c.Set("key1", []byte("value1"))
	data, found := c.Get("key1")
	assert.True(t, found)
	assert.Equal(t, []byte("value1"), data)
}

func TestCacheKeyIsStable(t *testing.T) {
	c := NewCache(time.Minute)

	k1 := c.generateKey(`/compare|{"competitor_id":4,"candidate_id":1}`)
	k2 := c.generateKey(`/compare|{"competitor_id":4,"candidate_id":1}`)
	k3 := c.generateKey(`/best-match|{"competitor_id":4,"candidate_id":1}`)

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}
