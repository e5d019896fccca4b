package cache

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/strivefit/mcu-crossref/internal/monitoring"
)

// entry is one cached response body.
type entry struct {
	data      []byte
	expiresAt time.Time
}

func (e *entry) expired() bool {
	return time.Now().After(e.expiresAt)
}

// Cache is a TTL response cache for scoring endpoints. Scoring is a pure
// function of the request body and the stored parts, so identical requests
// within the TTL window can replay the stored body.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewCache creates a cache whose entries live for ttl.
func NewCache(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]*entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}

	go c.evictLoop()

	return c
}

// evictLoop drops expired entries until Stop is called. The sweep interval
// tracks the TTL so stale bodies never linger much past expiry.
func (c *Cache) evictLoop() {
	interval := c.ttl
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			for key, e := range c.entries {
				if e.expired() {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

// Stop ends the eviction goroutine. Safe to call more than once; the cache
// itself stays usable, expired entries are then only dropped on read.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// generateKey hashes the request path and body into a cache key.
func (c *Cache) generateKey(input string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(input)))
}

// Get returns the cached body for a key. Expired entries read as absent and
// are removed on the spot.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if e.expired() {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.data, true
}

// Set stores a response body under a key.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete removes one entry.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
}

// Size returns the number of entries, expired ones included.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Stats reports entry counts and the configured TTL.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	expired := 0
	for _, e := range c.entries {
		if e.expired() {
			expired++
		}
	}

	return map[string]interface{}{
		"total_items":   len(c.entries),
		"expired_items": expired,
		"active_items":  len(c.entries) - expired,
		"ttl_seconds":   c.ttl.Seconds(),
	}
}

// cacheablePaths lists the POST endpoints whose responses are pure
// functions of the request body and stored data.
var cacheablePaths = map[string]bool{
	"/compare":    true,
	"/best-match": true,
}

// Middleware caches scoring responses keyed on path and request body.
// Only 200 responses are stored.
func (c *Cache) Middleware(metrics *monitoring.Metrics) func(*gin.Context) {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodPost || !cacheablePaths[ctx.Request.URL.Path] {
			ctx.Next()
			return
		}

		body, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			ctx.Next()
			return
		}

		// Restore the body for the handler
		ctx.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		key := c.generateKey(ctx.Request.URL.Path + "|" + string(body))

		if data, found := c.Get(key); found {
			slog.Info("Cache hit", "key", key[:8]+"...")
			metrics.IncrementCacheHit()
			ctx.Data(http.StatusOK, "application/json", data)
			ctx.Abort()
			return
		}

		metrics.IncrementCacheMiss()

		wrapper := &responseWriter{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}
		ctx.Writer = wrapper
		ctx.Next()

		if ctx.Writer.Status() == http.StatusOK {
			c.Set(key, wrapper.body.Bytes())
		}
	}
}

// responseWriter tees the response body so it can be stored.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
