// Package testutil provides testing utilities shared across packages.
package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// RedisHarness bundles an in-process miniredis server with a client
// connected to it. Tests use Server to manipulate time (FastForward)
// and connectivity (Close/Restart). Integration tests against a real
// Redis live under tests/integration and use testcontainers instead.
type RedisHarness struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

// NewRedisHarness starts miniredis and connects a client. Both are
// cleaned up when the test finishes.
func NewRedisHarness(t *testing.T) *RedisHarness {
	t.Helper()

	srv, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: srv.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		srv.Close()
	})

	return &RedisHarness{Server: srv, Client: client}
}
