package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTTL applies when a caller stores a value without choosing one.
const DefaultTTL = 60 * time.Minute

// DefaultNamespace prefixes keys when no namespace is configured.
const DefaultNamespace = "aprovafacil"

// ServiceConfig configures a Service.
type ServiceConfig struct {
	// Store is the backend. Required.
	Store Store

	// Namespace prefixes every key so multiple logical caches can
	// share one backend. Defaults to DefaultNamespace.
	Namespace string

	// DefaultTTL applies to Set calls. Defaults to DefaultTTL.
	DefaultTTL time.Duration

	// Logger receives operational events.
	Logger zerolog.Logger
}

// Service is the cache facade used by the application: it namespaces
// keys, serializes values as JSON, applies the default TTL and
// enforces the degraded-connectivity policy — reads fail soft (a
// backend failure is reported as a miss), mutations fail loud (the
// caller must know an invalidation was lost).
type Service struct {
	store      Store
	namespace  string
	defaultTTL time.Duration
	logger     zerolog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewService creates a cache service over the given store. Construct
// one instance during application bootstrap and inject it into every
// consumer; tests inject a fresh memory-backed instance instead.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Store == nil {
		panic("cache: store cannot be nil")
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = DefaultTTL
	}
	return &Service{
		store:      cfg.Store,
		namespace:  cfg.Namespace,
		defaultTTL: cfg.DefaultTTL,
		logger:     cfg.Logger,
	}
}

// key qualifies a caller key with the service namespace.
func (s *Service) key(key string) string {
	return s.namespace + ":" + key
}

// prefix is the namespace boundary used by Clear.
func (s *Service) prefix() string {
	return s.namespace + ":"
}

// Get loads the value stored under key into dest (a pointer, filled
// via JSON). Returns ErrCacheMiss when the key is absent, expired, the
// stored payload cannot be decoded, or the backend is unreachable — a
// cache read never fails hard.
func (s *Service) Get(ctx context.Context, key string, dest any) error {
	data, err := s.store.Get(ctx, s.key(key))
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			CacheErrors.WithLabelValues("get").Inc()
			s.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, treating as miss")
		}
		s.misses.Add(1)
		CacheMisses.Inc()
		return ErrCacheMiss
	}

	if err := json.Unmarshal(data, dest); err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		s.logger.Warn().Err(err).Str("key", key).Msg("Corrupt cache entry, treating as miss")
		s.misses.Add(1)
		CacheMisses.Inc()
		return ErrCacheMiss
	}

	s.hits.Add(1)
	CacheHits.WithLabelValues(s.backendName()).Inc()
	s.logger.Debug().Str("key", key).Msg("Cache hit")
	return nil
}

// Set stores value under key with the default TTL.
func (s *Service) Set(ctx context.Context, key string, value any) error {
	return s.SetWithTTL(ctx, key, value, s.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL. A ttl <= 0
// stores nothing observable: the entry would already be expired.
// Unlike reads, a failed write is propagated — silently dropping it
// would leave callers believing the cache is coherent.
func (s *Service) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal cache value: %w", err)
	}

	if err := s.store.Set(ctx, s.key(key), data, ttl); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Removing an absent key is not an error, but a
// backend failure is propagated.
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, s.key(key)); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("cache delete %q: %w", key, err)
	}
	return nil
}

// Exists reports whether key is present and unexpired. Backend
// failures report false, mirroring the read policy.
func (s *Service) Exists(ctx context.Context, key string) bool {
	ok, err := s.store.Exists(ctx, s.key(key))
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache existence check failed, reporting absent")
		return false
	}
	return ok
}

// Clear removes every key in this service's namespace whose name
// contains pattern; an empty pattern clears the whole namespace. Keys
// outside the namespace are never touched. Like other mutations,
// failures are propagated.
func (s *Service) Clear(ctx context.Context, pattern string) error {
	if err := s.store.DeleteMatching(ctx, s.prefix(), pattern); err != nil {
		CacheErrors.WithLabelValues("clear").Inc()
		return fmt.Errorf("cache clear %q: %w", pattern, err)
	}
	s.logger.Info().Str("pattern", pattern).Msg("Cache invalidated")
	return nil
}

// GetStatistics returns a snapshot of cache state. It never fails:
// when the backend is unreachable it returns a zeroed snapshot with
// StatusDisconnected.
func (s *Service) GetStatistics(ctx context.Context) Statistics {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		CacheErrors.WithLabelValues("stats").Inc()
		s.logger.Warn().Err(err).Msg("Cache backend unreachable, reporting degraded statistics")
		stats = Statistics{Status: StatusDisconnected}
	}

	stats.Hits = s.hits.Load()
	stats.Misses = s.misses.Load()
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	if stats.Backend != "" {
		CacheItems.WithLabelValues(stats.Backend).Set(float64(stats.ItemCount))
	}
	return stats
}

// Close releases the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}

func (s *Service) backendName() string {
	switch s.store.(type) {
	case *MemoryStore:
		return "memory"
	case *RedisStore:
		return "redis"
	default:
		return "unknown"
	}
}
