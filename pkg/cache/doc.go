// Package cache provides the key-value caching layer that sits in
// front of the AprovaFácil data store.
//
// One Store interface, two interchangeable backends:
//
//   - MemoryStore: a guarded in-process map with lazy expiry and a
//     background sweep. Always reachable; suits tests and
//     single-instance deployments.
//   - RedisStore: a shared Redis database behind a single long-lived
//     client. Expiry is delegated to Redis native TTL eviction;
//     pattern invalidation runs as SCAN plus batched DEL.
//
// Service wraps a Store with the application-facing behavior:
// namespace prefixing, JSON serialization, the 60-minute default TTL,
// per-domain key helpers, and the degraded-connectivity policy.
//
// # Degraded connectivity
//
// Reads fail soft and writes fail loud. A cache miss is harmless (the
// caller falls through to the source of truth), so Get and Exists
// report a miss when the backend is unreachable. A silently dropped
// write or invalidation would leave the cache incoherent with the
// store, so Set, Delete and Clear propagate backend failures.
// GetStatistics never fails; it reports a zeroed snapshot with a
// disconnected status instead.
//
// # Basic usage
//
//	store := cache.NewRedisStore(cache.RedisConfig{
//		Client: redisClient,
//		Logger: logger,
//	})
//	svc := cache.NewService(cache.ServiceConfig{
//		Store:     store,
//		Namespace: "aprovafacil",
//		Logger:    logger,
//	})
//
//	var prog UserProgress
//	err := svc.Get(ctx, cache.UserProgressKey("123"), &prog)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fall through to the database, then:
//		_ = svc.Set(ctx, cache.UserProgressKey("123"), prog)
//	}
//
// Handlers that mutate underlying data invalidate in bulk:
//
//	_ = svc.Clear(ctx, "progresso_usuario")
//
// # Consistency
//
// Operations are single-key or single-pattern; no cross-key
// transaction is offered. Pattern invalidation is not atomic across
// the matched set: a Get racing an in-progress Clear may observe a key
// that is about to be deleted. The cache is advisory, never
// authoritative, so this race is accepted.
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - aprovafacil_cache_hits_total{backend} - cache hits
//   - aprovafacil_cache_misses_total - cache misses
//   - aprovafacil_cache_errors_total{operation} - operation errors
//   - aprovafacil_cache_items{backend} - items held by the backend
package cache
