// Package config loads service configuration from the environment.
// Configuration is read once at startup; there is no hot-reload.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Cache backend selectors.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds the environment-supplied settings for the cache layer.
// Every field maps to an APROVAFACIL_* environment variable.
type Config struct {
	// CacheBackend selects the store implementation: "memory" or
	// "redis" (APROVAFACIL_CACHE_BACKEND).
	CacheBackend string

	// RedisURL is the backend address, host:port
	// (APROVAFACIL_REDIS_URL).
	RedisURL string

	// RedisPassword is optional (APROVAFACIL_REDIS_PASSWORD).
	RedisPassword string

	// RedisDB selects the logical database (APROVAFACIL_REDIS_DB).
	RedisDB int

	// Namespace prefixes every cache key (APROVAFACIL_CACHE_NAMESPACE).
	Namespace string

	// DefaultTTLMinutes applies when a caller stores a value without a
	// TTL (APROVAFACIL_CACHE_TTL_MINUTES).
	DefaultTTLMinutes int

	// MaxTrackedKeys bounds the in-process store
	// (APROVAFACIL_CACHE_MAX_KEYS).
	MaxTrackedKeys int

	// LogLevel is debug, info, warn or error (APROVAFACIL_LOG_LEVEL).
	LogLevel string

	// LogPretty switches to console output (APROVAFACIL_LOG_PRETTY).
	LogPretty bool
}

// DefaultTTL returns the default TTL as a duration.
func (c Config) DefaultTTL() time.Duration {
	return time.Duration(c.DefaultTTLMinutes) * time.Minute
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("APROVAFACIL")
	v.AutomaticEnv()

	v.SetDefault("cache_backend", BackendMemory)
	v.SetDefault("redis_url", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_namespace", "aprovafacil")
	v.SetDefault("cache_ttl_minutes", 60)
	v.SetDefault("cache_max_keys", 10000)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)

	cfg := Config{
		CacheBackend:      v.GetString("cache_backend"),
		RedisURL:          v.GetString("redis_url"),
		RedisPassword:     v.GetString("redis_password"),
		RedisDB:           v.GetInt("redis_db"),
		Namespace:         v.GetString("cache_namespace"),
		DefaultTTLMinutes: v.GetInt("cache_ttl_minutes"),
		MaxTrackedKeys:    v.GetInt("cache_max_keys"),
		LogLevel:          v.GetString("log_level"),
		LogPretty:         v.GetBool("log_pretty"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.CacheBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("invalid cache backend %q (want %q or %q)", c.CacheBackend, BackendMemory, BackendRedis)
	}
	if c.DefaultTTLMinutes <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %d", c.DefaultTTLMinutes)
	}
	if c.Namespace == "" {
		return fmt.Errorf("cache namespace cannot be empty")
	}
	return nil
}
