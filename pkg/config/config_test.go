package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.CacheBackend != BackendMemory {
		t.Errorf("CacheBackend = %q, want %q", cfg.CacheBackend, BackendMemory)
	}
	if cfg.RedisURL != "localhost:6379" {
		t.Errorf("RedisURL = %q, want localhost:6379", cfg.RedisURL)
	}
	if cfg.Namespace != "aprovafacil" {
		t.Errorf("Namespace = %q, want aprovafacil", cfg.Namespace)
	}
	if cfg.DefaultTTLMinutes != 60 {
		t.Errorf("DefaultTTLMinutes = %d, want 60", cfg.DefaultTTLMinutes)
	}
	if cfg.MaxTrackedKeys != 10000 {
		t.Errorf("MaxTrackedKeys = %d, want 10000", cfg.MaxTrackedKeys)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APROVAFACIL_CACHE_BACKEND", "redis")
	t.Setenv("APROVAFACIL_REDIS_URL", "redis.internal:6380")
	t.Setenv("APROVAFACIL_CACHE_NAMESPACE", "staging")
	t.Setenv("APROVAFACIL_CACHE_TTL_MINUTES", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.CacheBackend != BackendRedis {
		t.Errorf("CacheBackend = %q, want redis", cfg.CacheBackend)
	}
	if cfg.RedisURL != "redis.internal:6380" {
		t.Errorf("RedisURL = %q, want redis.internal:6380", cfg.RedisURL)
	}
	if cfg.Namespace != "staging" {
		t.Errorf("Namespace = %q, want staging", cfg.Namespace)
	}
	if cfg.DefaultTTL() != 15*time.Minute {
		t.Errorf("DefaultTTL = %v, want 15m", cfg.DefaultTTL())
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("APROVAFACIL_CACHE_BACKEND", "memcached")

	if _, err := Load(); err == nil {
		t.Error("Load should reject an unknown backend")
	}
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("APROVAFACIL_CACHE_TTL_MINUTES", "0")

	if _, err := Load(); err == nil {
		t.Error("Load should reject a non-positive TTL")
	}
}
