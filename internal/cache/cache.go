// Package cache is the dashboard's query cache: backend responses keyed by
// logical resource name, evicted after a successful mutation so the next read
// refetches.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// Resource keys.
const (
	KeySensors  = "sensors"
	KeyReadings = "readings"
	KeyAlerts   = "alerts"
)

// SensorKey is the key of one sensor with its nested readings.
func SensorKey(id string) string { return "sensor:" + id }

// ReadingKey is the key of one reading.
func ReadingKey(id string) string { return "reading:" + id }

// AlertKey is the key of one alert.
func AlertKey(id string) string { return "alert:" + id }

// Cache stores encoded values by key. Every key has a generation that Delete
// advances, so a load that started before an eviction can tell it is stale.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Generation(ctx context.Context, key string) (uint64, error)
	// SetIfGeneration stores value only while key is still at generation gen.
	SetIfGeneration(ctx context.Context, key string, value []byte, ttl time.Duration, gen uint64) (bool, error)
}

// Fetch returns the cached value for key, or calls load and caches its result.
// A cache that fails to read or write is logged and bypassed; only load errors
// reach the caller, and failed loads are never cached. A result is not cached
// when key was invalidated while load ran.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if data, ok, err := c.Get(ctx, key); err != nil {
		nuts.L.Warnf("[Cache] Get %s failed, loading from backend: %v", key, err)
	} else if ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		nuts.L.Warnf("[Cache] Dropping undecodable entry %s", key)
		_ = c.Delete(ctx, key)
	}

	// Read before load: an eviction from here on makes the result stale.
	gen, genErr := c.Generation(ctx, key)
	if genErr != nil {
		nuts.L.Warnf("[Cache] Generation of %s unavailable, not caching: %v", key, genErr)
	}
	v, err := load(ctx)
	if err != nil {
		return zero, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v, fmt.Errorf("encode %s for cache: %w", key, err)
	}
	if genErr != nil {
		return v, nil
	}
	stored, err := c.SetIfGeneration(ctx, key, data, ttl, gen)
	if err != nil {
		nuts.L.Warnf("[Cache] Set %s failed: %v", key, err)
	} else if !stored {
		nuts.L.Infof("[Cache] %s was invalidated during load, result not cached", key)
	}
	return v, nil
}

// Invalidate evicts keys and logs failures. A failed eviction means the next
// read may be stale until the TTL passes, which is logged as an error.
func Invalidate(ctx context.Context, c Cache, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		nuts.L.Errorf("[Cache] Failed to invalidate %v: %v", keys, err)
	}
}
