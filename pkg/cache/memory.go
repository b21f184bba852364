package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	// defaultMaxKeys bounds the in-process store when the caller does
	// not configure a limit.
	defaultMaxKeys = 10000

	// janitorInterval is how often expired entries are actively swept.
	// Reads also check expiry lazily, so the sweep only reclaims
	// memory for entries nobody asks for anymore.
	janitorInterval = 1 * time.Minute
)

// MemoryStore is the in-process Store implementation: a mutex-guarded
// map with lazy expiry on read plus a background sweep. It is always
// "connected" and suits tests and single-instance deployments; shared
// deployments use RedisStore.
type MemoryStore struct {
	mu      sync.RWMutex
	items   map[string]memoryItem
	maxKeys int
	started time.Time
	stop    chan struct{}
	once    sync.Once
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
	storedAt  time.Time
}

func (it memoryItem) expired(now time.Time) bool {
	return now.After(it.expiresAt)
}

// NewMemoryStore creates an in-process store holding at most maxKeys
// entries (defaultMaxKeys when maxKeys <= 0). When full, the oldest
// entry is evicted to make room.
func NewMemoryStore(maxKeys int) *MemoryStore {
	if maxKeys <= 0 {
		maxKeys = defaultMaxKeys
	}
	s := &MemoryStore{
		items:   make(map[string]memoryItem),
		maxKeys: maxKeys,
		started: time.Now(),
		stop:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if item.expired(time.Now()) {
		_ = s.Delete(ctx, key)
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

// Set implements Store.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Delete(ctx, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if _, exists := s.items[key]; !exists && len(s.items) >= s.maxKeys {
		s.evictOldestLocked(now)
	}
	s.items[key] = memoryItem{
		value:     value,
		expiresAt: now.Add(ttl),
		storedAt:  now,
	}
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

// Exists implements Store.
func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()

	if !ok || item.expired(time.Now()) {
		return false, nil
	}
	return true, nil
}

// DeleteMatching implements Store.
func (s *MemoryStore) DeleteMatching(ctx context.Context, prefix, pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.items {
		if strings.HasPrefix(key, prefix) && strings.Contains(key, pattern) {
			delete(s.items, key)
		}
	}
	return nil
}

// Stats implements Store. Expired entries still awaiting the sweep are
// excluded from the counts.
func (s *MemoryStore) Stats(ctx context.Context) (Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	var count, bytes int64
	for key, item := range s.items {
		if item.expired(now) {
			continue
		}
		count++
		bytes += int64(len(key) + len(item.value))
	}

	return Statistics{
		Status:        StatusConnected,
		Backend:       "memory",
		ItemCount:     count,
		MemoryBytes:   bytes,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Version:       "in-process",
	}, nil
}

// Close implements Store and stops the background sweep.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

// evictOldestLocked removes the entry with the oldest storedAt.
// Callers must hold the write lock.
func (s *MemoryStore) evictOldestLocked(now time.Time) {
	var oldestKey string
	var oldestAt time.Time
	for key, item := range s.items {
		if item.expired(now) {
			// Prefer reclaiming an expired slot.
			delete(s.items, key)
			return
		}
		if oldestKey == "" || item.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = item.storedAt
		}
	}
	if oldestKey != "" {
		delete(s.items, oldestKey)
	}
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, item := range s.items {
				if item.expired(now) {
					delete(s.items, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
