package api

import (
	"os"
	"strconv"
	"sync"

	"github.com/atlascommand/atlasfit/pkg/fitscore"
)

// ProfileCache is a thread-safe LRU cache for driver scoring profiles.
type ProfileCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*cacheEntry
	order   []string // oldest first
}

type cacheEntry struct {
	profile *fitscore.DriverProfile
}

// NewProfileCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 100.
func NewProfileCache(maxSize int) *ProfileCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &ProfileCache{
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

// NewProfileCacheFromEnv creates a cache with size from PROFILE_CACHE_SIZE env var.
func NewProfileCacheFromEnv() *ProfileCache {
	size := 100
	if v := os.Getenv("PROFILE_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewProfileCache(size)
}

// Get retrieves a profile from the cache, or nil if not found.
func (c *ProfileCache) Get(driverID string) *fitscore.DriverProfile {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[driverID]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(driverID)
	return entry.profile
}

// Put adds a profile to the cache, evicting the oldest if full.
func (c *ProfileCache) Put(driverID string, profile *fitscore.DriverProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[driverID]; ok {
		c.entries[driverID] = &cacheEntry{profile: profile}
		c.moveToEnd(driverID)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[driverID] = &cacheEntry{profile: profile}
	c.order = append(c.order, driverID)
}

// Remove drops a profile from the cache, if present. Called when a driver
// row changes so stale preferences never feed the engine.
func (c *ProfileCache) Remove(driverID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[driverID]; !ok {
		return
	}
	delete(c.entries, driverID)
	for i, k := range c.order {
		if k == driverID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *ProfileCache) moveToEnd(driverID string) {
	for i, k := range c.order {
		if k == driverID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, driverID)
			return
		}
	}
}
