package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// TTLs for cached dashboard responses
const (
	TTLList     = 120 * time.Second
	TTLSummary  = 300 * time.Second
	TTLRealtime = 60 * time.Second
)

// Key prefixes
const (
	PrefixDashboard  = "dashboard:"
	PrefixComplaints = "dashboard:complaints"
	PrefixAdmin      = "admin:dashboard:"
)

// SnapshotCache stores JSON-encoded analytics results in two tiers: the
// in-process Ristretto cache and, when configured, Redis. Either tier may be nil.
type SnapshotCache struct {
	local  *Cache
	remote *redis.Client

	remoteHits   atomic.Uint64
	remoteMisses atomic.Uint64
	remoteErrors atomic.Uint64
}

func NewSnapshotCache(local *Cache, remote *redis.Client) *SnapshotCache {
	return &SnapshotCache{local: local, remote: remote}
}

// Get decodes the cached value for key into dst. It reports false on a miss.
// Redis hits are copied into the local tier.
func (s *SnapshotCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if s == nil {
		return false, nil
	}
	if data, ok := s.local.Get(key); ok {
		if err := json.Unmarshal(data, dst); err != nil {
			s.local.Delete(key)
			return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
		}
		return true, nil
	}
	if s.remote == nil {
		return false, nil
	}

	data, err := s.remote.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.remoteMisses.Add(1)
		return false, nil
	}
	if err != nil {
		s.remoteErrors.Add(1)
		return false, fmt.Errorf("failed to read %s from redis: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	s.remoteHits.Add(1)

	if ttl, err := s.remote.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		s.local.Set(key, data, ttl)
	}
	return true, nil
}

// Set encodes value and writes it to both tiers
func (s *SnapshotCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	s.local.Set(key, data, ttl)
	if s.remote == nil {
		return nil
	}
	if err := s.remote.Set(ctx, key, data, ttl).Err(); err != nil {
		s.remoteErrors.Add(1)
		return fmt.Errorf("failed to write %s to redis: %w", key, err)
	}
	return nil
}

// DeletePrefix drops every key starting with prefix from both tiers.
// Redis keys are found with SCAN so the server is never blocked.
func (s *SnapshotCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if s == nil {
		return 0, nil
	}
	n := s.local.DeletePrefix(prefix)
	if s.remote == nil {
		return n, nil
	}

	var keys []string
	iter := s.remote.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.remoteErrors.Add(1)
		return n, fmt.Errorf("failed to scan %s*: %w", prefix, err)
	}
	if len(keys) == 0 {
		return n, nil
	}

	deleted, err := s.remote.Del(ctx, keys...).Result()
	if err != nil {
		s.remoteErrors.Add(1)
		return n, fmt.Errorf("failed to delete %s*: %w", prefix, err)
	}
	return max(n, int(deleted)), nil
}

// Ping checks the remote tier. It returns false when no Redis is configured.
func (s *SnapshotCache) Ping(ctx context.Context) (time.Duration, bool, error) {
	if s == nil || s.remote == nil {
		return 0, false, nil
	}
	start := time.Now()
	if err := s.remote.Ping(ctx).Err(); err != nil {
		return 0, true, err
	}
	return time.Since(start), true, nil
}

// Remember returns the cached value for key or computes, caches and returns it.
// Cache failures are logged and never fail the call.
func Remember[T any](ctx context.Context, s *SnapshotCache, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	var cached T
	hit, err := s.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Snapshot cache read failed")
	}
	if hit {
		return cached, nil
	}

	value, err := compute(ctx)
	if err != nil {
		return value, err
	}
	if err := s.Set(ctx, key, value, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Snapshot cache write failed")
	}
	return value, nil
}

// Metrics combines the local Ristretto counters with the Redis tier counters
type Metrics struct {
	Local          MetricsSnapshot `json:"local"`
	RemoteEnabled  bool            `json:"remote_enabled"`
	RemoteHits     uint64          `json:"remote_hits"`
	RemoteMisses   uint64          `json:"remote_misses"`
	RemoteErrors   uint64          `json:"remote_errors"`
	RemoteHitRatio float64         `json:"remote_hit_ratio"`
}

func (s *SnapshotCache) Metrics() Metrics {
	if s == nil {
		return Metrics{}
	}
	m := Metrics{
		Local:         s.local.GetMetricsSnapshot(),
		RemoteEnabled: s.remote != nil,
		RemoteHits:    s.remoteHits.Load(),
		RemoteMisses:  s.remoteMisses.Load(),
		RemoteErrors:  s.remoteErrors.Load(),
	}
	if total := m.RemoteHits + m.RemoteMisses; total > 0 {
		m.RemoteHitRatio = float64(m.RemoteHits) / float64(total)
	}
	return m
}

// Close shuts down the local tier. The Redis client is owned by the caller.
func (s *SnapshotCache) Close() {
	if s != nil {
		s.local.Close()
	}
}
