package cache

import (
	"context"
	"time"
)

// Backend connectivity status reported in Statistics.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
)

// Store is the backend contract shared by the in-process and Redis
// implementations. Stores operate on raw bytes and fully-qualified
// (already namespaced) keys; serialization, namespacing, TTL defaults
// and the degraded-connectivity policy live in Service.
type Store interface {
	// Get returns the value for key, or ErrCacheMiss if the key is
	// absent or expired. An expired entry is never returned.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given TTL, overwriting any
	// existing entry. A ttl <= 0 removes the key instead: the entry
	// would already be expired, so it is never observable.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key is present and not expired.
	Exists(ctx context.Context, key string) (bool, error)

	// DeleteMatching removes every key that starts with prefix and
	// contains pattern. An empty pattern matches all keys under prefix.
	// Removal happens in bounded batches and is not atomic across the
	// matched set; a concurrent Get may still observe a key that is
	// about to be deleted.
	DeleteMatching(ctx context.Context, prefix, pattern string) error

	// Stats returns a point-in-time snapshot of the backend.
	Stats(ctx context.Context) (Statistics, error)

	// Close releases backend resources.
	Close() error
}

// Statistics is a read-only snapshot of cache state. Backend fields
// are filled by the Store, hit/miss fields by the Service.
type Statistics struct {
	// Status is StatusConnected or StatusDisconnected.
	Status string `json:"status"`

	// Backend identifies the implementation ("memory" or "redis").
	Backend string `json:"backend"`

	// ItemCount is the number of items held by the backend. For the
	// Redis backend this counts the whole database, not only the
	// service namespace.
	ItemCount int64 `json:"item_count"`

	// MemoryBytes is the approximate memory used by the backend.
	MemoryBytes int64 `json:"memory_bytes"`

	// Clients is the number of connected clients (networked backend
	// only, zero for the in-process store).
	Clients int64 `json:"clients"`

	// UptimeSeconds is how long the backend has been running.
	UptimeSeconds int64 `json:"uptime_seconds"`

	// Version is the backend version string.
	Version string `json:"version"`

	// Hits and Misses count Service-level lookups since construction.
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`

	// HitRate is Hits / (Hits + Misses), zero when no lookups happened.
	HitRate float64 `json:"hit_rate"`
}
