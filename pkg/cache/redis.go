package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// defaultScanBatch bounds SCAN/DEL batches during pattern
	// invalidation so large key spaces never block the backend.
	defaultScanBatch = 100

	// defaultPingInterval is how often the connectivity watcher probes
	// the backend.
	defaultPingInterval = 10 * time.Second
)

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	// Client is the shared go-redis client. Required.
	Client *redis.Client

	// Logger receives connection lifecycle events.
	Logger zerolog.Logger

	// ScanBatch is the SCAN/DEL batch size for pattern invalidation.
	ScanBatch int

	// PingInterval is the connectivity probe interval.
	PingInterval time.Duration
}

// RedisStore is the networked Store implementation. A single
// long-lived client is reused for all operations; per-key atomicity is
// delegated to Redis. Expiry relies on Redis native TTL eviction, so
// reads do not re-check expiry themselves.
//
// A background watcher probes connectivity. While the backend is
// unreachable every operation fails immediately with
// ErrBackendUnavailable instead of blocking on reconnection; the
// watcher logs each reconnect attempt and flips the store back to
// connected once a probe succeeds.
type RedisStore struct {
	client       *redis.Client
	logger       zerolog.Logger
	scanBatch    int
	pingInterval time.Duration

	connected atomic.Bool
	started   time.Time
	stop      chan struct{}
	once      sync.Once
}

// NewRedisStore creates a Redis-backed store and starts its
// connectivity watcher. Panics if cfg.Client is nil.
func NewRedisStore(cfg RedisConfig) *RedisStore {
	if cfg.Client == nil {
		panic("cache: redis client cannot be nil")
	}
	if cfg.ScanBatch <= 0 {
		cfg.ScanBatch = defaultScanBatch
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}

	s := &RedisStore{
		client:       cfg.Client,
		logger:       cfg.Logger,
		scanBatch:    cfg.ScanBatch,
		pingInterval: cfg.PingInterval,
		started:      time.Now(),
		stop:         make(chan struct{}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("Redis unreachable at construction, starting disconnected")
	} else {
		s.connected.Store(true)
		s.logger.Info().Msg("Redis connection established")
	}

	go s.watch()
	return s
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if !s.connected.Load() {
		return nil, ErrBackendUnavailable
	}

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: redis get: %v", ErrBackendUnavailable, err)
	}
	return data, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !s.connected.Load() {
		return ErrBackendUnavailable
	}

	if ttl <= 0 {
		return s.Delete(ctx, key)
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", ErrBackendUnavailable, err)
	}
	return nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if !s.connected.Load() {
		return ErrBackendUnavailable
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: redis del: %v", ErrBackendUnavailable, err)
	}
	return nil
}

// Exists implements Store.
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	if !s.connected.Load() {
		return false, ErrBackendUnavailable
	}

	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: redis exists: %v", ErrBackendUnavailable, err)
	}
	return n > 0, nil
}

// DeleteMatching implements Store. Keys are located with SCAN and
// removed batch by batch, so a very large matched set never blocks the
// backend behind a single command.
func (s *RedisStore) DeleteMatching(ctx context.Context, prefix, pattern string) error {
	if !s.connected.Load() {
		return ErrBackendUnavailable
	}

	match := prefix + "*"
	if pattern != "" {
		match = prefix + "*" + pattern + "*"
	}

	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, match, int64(s.scanBatch)).Result()
		if err != nil {
			return fmt.Errorf("%w: redis scan: %v", ErrBackendUnavailable, err)
		}
		if len(batch) > 0 {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("%w: redis del: %v", ErrBackendUnavailable, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Stats implements Store. Counts and memory figures come from the
// backend itself (DBSIZE and INFO), so ItemCount covers the whole
// database rather than a single namespace.
func (s *RedisStore) Stats(ctx context.Context) (Statistics, error) {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return Statistics{}, fmt.Errorf("%w: redis ping: %v", ErrBackendUnavailable, err)
	}

	stats := Statistics{
		Status:  StatusConnected,
		Backend: "redis",
	}

	if n, err := s.client.DBSize(ctx).Result(); err == nil {
		stats.ItemCount = n
	}

	// INFO is best-effort: reachability was already established by the
	// ping, and some test servers only implement a subset of it.
	if info, err := s.client.Info(ctx, "server", "memory", "clients").Result(); err == nil {
		stats.MemoryBytes = infoInt(info, "used_memory")
		stats.Clients = infoInt(info, "connected_clients")
		stats.UptimeSeconds = infoInt(info, "uptime_in_seconds")
		stats.Version = infoField(info, "redis_version")
	}

	return stats, nil
}

// Close implements Store and stops the connectivity watcher. The
// underlying client is owned by the caller and stays open.
func (s *RedisStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

// watch probes the backend and maintains the connected flag.
func (s *RedisStore) watch() {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			err := s.client.Ping(ctx).Err()
			cancel()

			switch {
			case err == nil && !s.connected.Load():
				s.connected.Store(true)
				s.logger.Info().Msg("Redis connection established")
			case err != nil && s.connected.Load():
				s.connected.Store(false)
				s.logger.Warn().Err(err).Msg("Redis connection lost, entering degraded mode")
			case err != nil:
				s.logger.Warn().Err(err).Msg("Redis reconnect attempt failed")
			}
		}
	}
}

// infoField extracts a string field from an INFO response.
func infoField(info, field string) string {
	for _, line := range strings.Split(info, "\r\n") {
		if v, ok := strings.CutPrefix(line, field+":"); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// infoInt extracts an integer field from an INFO response.
func infoInt(info, field string) int64 {
	v := infoField(info, field)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
