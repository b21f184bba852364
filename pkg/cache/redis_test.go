package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aprovafacil/backend-core/internal/testutil"
)

func newTestRedisStore(t *testing.T) (*testutil.RedisHarness, *RedisStore) {
	t.Helper()

	h := testutil.NewRedisHarness(t)
	store := NewRedisStore(RedisConfig{
		Client:       h.Client,
		Logger:       zerolog.Nop(),
		PingInterval: 50 * time.Millisecond,
	})
	t.Cleanup(func() { store.Close() })
	return h, store
}

func TestNewRedisStore_NilClientPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewRedisStore should panic with nil client")
		}
	}()
	NewRedisStore(RedisConfig{})
}

func TestRedisStore_SetAndGet(t *testing.T) {
	_, store := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "v" {
		t.Errorf("Get = %q, want %q", data, "v")
	}
}

func TestRedisStore_GetMissing(t *testing.T) {
	_, store := newTestRedisStore(t)

	_, err := store.Get(context.Background(), "absent")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get = %v, want ErrCacheMiss", err)
	}
}

func TestRedisStore_NativeExpiry(t *testing.T) {
	h, store := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Redis evicts on its own clock; advance it past the TTL.
	h.Server.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after expiry = %v, want ErrCacheMiss", err)
	}
	if ok, _ := store.Exists(ctx, "k"); ok {
		t.Error("Exists after expiry = true, want false")
	}
}

func TestRedisStore_SetNonPositiveTTLRemoves(t *testing.T) {
	_, store := newTestRedisStore(t)
	ctx := context.Background()

	_ = store.Set(ctx, "k", []byte("v"), time.Minute)
	if err := store.Set(ctx, "k", []byte("v2"), 0); err != nil {
		t.Fatalf("Set with zero TTL failed: %v", err)
	}

	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get = %v, want ErrCacheMiss", err)
	}
}

func TestRedisStore_DeleteMatchingBatches(t *testing.T) {
	_, store := newTestRedisStore(t)
	store.scanBatch = 10 // force multiple SCAN rounds
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		key := "app:progresso_usuario_" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		_ = store.Set(ctx, key, []byte("v"), time.Minute)
	}
	_ = store.Set(ctx, "app:resultado_simulado_9", []byte("v"), time.Minute)
	_ = store.Set(ctx, "other:progresso_usuario_x", []byte("v"), time.Minute)

	if err := store.DeleteMatching(ctx, "app:", "progresso_usuario"); err != nil {
		t.Fatalf("DeleteMatching failed: %v", err)
	}

	if _, err := store.Get(ctx, "app:progresso_usuario_aa"); !errors.Is(err, ErrCacheMiss) {
		t.Error("matched key should be gone")
	}
	if _, err := store.Get(ctx, "app:resultado_simulado_9"); err != nil {
		t.Error("non-matching key should survive")
	}
	if _, err := store.Get(ctx, "other:progresso_usuario_x"); err != nil {
		t.Error("foreign-prefix key should survive")
	}
}

func TestRedisStore_Stats(t *testing.T) {
	_, store := newTestRedisStore(t)
	ctx := context.Background()

	_ = store.Set(ctx, "k1", []byte("v"), time.Minute)
	_ = store.Set(ctx, "k2", []byte("v"), time.Minute)

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Status != StatusConnected {
		t.Errorf("Status = %q, want %q", stats.Status, StatusConnected)
	}
	if stats.Backend != "redis" {
		t.Errorf("Backend = %q, want redis", stats.Backend)
	}
	if stats.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", stats.ItemCount)
	}
}

func TestRedisStore_DisconnectedOperationsFailFast(t *testing.T) {
	h, store := newTestRedisStore(t)
	ctx := context.Background()

	_ = store.Set(ctx, "k", []byte("v"), time.Minute)
	h.Server.Close()

	if err := store.Set(ctx, "k", []byte("v2"), time.Minute); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("Set while down = %v, want ErrBackendUnavailable", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("Get while down = %v, want ErrBackendUnavailable", err)
	}
	if _, err := store.Stats(ctx); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("Stats while down = %v, want ErrBackendUnavailable", err)
	}
}

func TestRedisStore_WatcherRecoversConnection(t *testing.T) {
	h, store := newTestRedisStore(t)
	ctx := context.Background()

	h.Server.Close()

	// Give the watcher time to notice the outage.
	deadline := time.Now().Add(2 * time.Second)
	for store.connected.Load() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if store.connected.Load() {
		t.Fatal("watcher never marked the store disconnected")
	}

	// While disconnected, operations return immediately.
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("Get while disconnected = %v, want ErrBackendUnavailable", err)
	}

	if err := h.Server.Restart(); err != nil {
		t.Fatalf("Failed to restart miniredis: %v", err)
	}

	deadline = time.Now().Add(2 * time.Second)
	for !store.connected.Load() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !store.connected.Load() {
		t.Fatal("watcher never recovered the connection")
	}

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Errorf("Set after recovery failed: %v", err)
	}
}
