package cache

import (
	"strings"
	"sync"
	"time"

	"transit-dashboard/config"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"
)

// Cache is the in-process tier: a Ristretto cache of encoded snapshots.
// Ristretto cannot enumerate keys, so the keys written are tracked to
// support prefix invalidation.
type Cache struct {
	client     *ristretto.Cache
	ttl        time.Duration
	mu         sync.Mutex
	keys       map[string]struct{}
	maxTracked int
}

// New creates a new cache instance with the given configuration
func New(cfg config.CacheConfig) (*Cache, error) {
	// Calculate max cost in bytes (convert MB to bytes)
	maxCost := int64(cfg.MaxSizeMB) * 1024 * 1024

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CounterSize), // Number of keys to track frequency for admission
		MaxCost:     maxCost,                // Maximum cache size in bytes
		BufferItems: 64,                     // Number of keys per Get buffer
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("max_size_mb", cfg.MaxSizeMB).
		Int("ttl_seconds", cfg.TTLSeconds).
		Int("counter_size", cfg.CounterSize).
		Msg("Cache initialized successfully")

	return &Cache{
		client:     client,
		ttl:        time.Duration(cfg.TTLSeconds) * time.Second,
		keys:       make(map[string]struct{}),
		maxTracked: max(cfg.CounterSize/10, 1024),
	}, nil
}

// Get retrieves an encoded value
func (c *Cache) Get(key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	v, ok := c.client.Get(key)
	if !ok {
		return nil, false
	}
	data, ok := v.([]byte)
	return data, ok
}

// Set stores an encoded value. A zero ttl falls back to the configured TTL.
// The write is applied before Set returns.
func (c *Cache) Set(key string, data []byte, ttl time.Duration) bool {
	if c == nil || c.client == nil {
		return false
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	ok := c.client.SetWithTTL(key, data, int64(len(data)), ttl)
	c.client.Wait()
	if ok {
		c.track(key)
	}
	return ok
}

// Delete removes a key from the cache
func (c *Cache) Delete(key string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(key)
	c.mu.Lock()
	delete(c.keys, key)
	c.mu.Unlock()
}

// DeletePrefix removes every tracked key starting with prefix and returns how many were dropped
func (c *Cache) DeletePrefix(prefix string) int {
	if c == nil || c.client == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key := range c.keys {
		if strings.HasPrefix(key, prefix) {
			c.client.Del(key)
			delete(c.keys, key)
			n++
		}
	}
	return n
}

func (c *Cache) track(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.keys[key] = struct{}{}
	if len(c.keys) <= c.maxTracked {
		return
	}
	// forget keys Ristretto already evicted or expired
	for k := range c.keys {
		if _, ok := c.client.Get(k); !ok {
			delete(c.keys, k)
		}
	}
}

// Close cleanly shuts down the cache
func (c *Cache) Close() {
	if c != nil && c.client != nil {
		c.client.Close()
		log.Info().Msg("Cache closed")
	}
}

// MetricsSnapshot is a point-in-time copy of the in-process cache counters
type MetricsSnapshot struct {
	Hits         uint64  `json:"hits"`
	Misses       uint64  `json:"misses"`
	KeysAdded    uint64  `json:"keys_added"`
	KeysEvicted  uint64  `json:"keys_evicted"`
	CostAdded    uint64  `json:"cost_added"`
	CostEvicted  uint64  `json:"cost_evicted"`
	SetsDropped  uint64  `json:"sets_dropped"`
	SetsRejected uint64  `json:"sets_rejected"`
	GetsDropped  uint64  `json:"gets_dropped"`
	HitRatio     float64 `json:"hit_ratio"`
	TTLSeconds   int     `json:"ttl_seconds"`
	TrackedKeys  int     `json:"tracked_keys"`
}

// GetMetricsSnapshot returns current cache metrics as a snapshot
func (c *Cache) GetMetricsSnapshot() MetricsSnapshot {
	if c == nil {
		return MetricsSnapshot{}
	}
	c.mu.Lock()
	tracked := len(c.keys)
	c.mu.Unlock()

	if c.client == nil || c.client.Metrics == nil {
		return MetricsSnapshot{TTLSeconds: int(c.ttl.Seconds()), TrackedKeys: tracked}
	}

	m := c.client.Metrics
	return MetricsSnapshot{
		Hits:         m.Hits(),
		Misses:       m.Misses(),
		KeysAdded:    m.KeysAdded(),
		KeysEvicted:  m.KeysEvicted(),
		CostAdded:    m.CostAdded(),
		CostEvicted:  m.CostEvicted(),
		SetsDropped:  m.SetsDropped(),
		SetsRejected: m.SetsRejected(),
		GetsDropped:  m.GetsDropped(),
		HitRatio:     m.Ratio(),
		TTLSeconds:   int(c.ttl.Seconds()),
		TrackedKeys:  tracked,
	}
}
