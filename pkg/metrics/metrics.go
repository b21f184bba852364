// Package metrics provides the central Prometheus registry reference
// for the AprovaFácil backend core. Metrics are defined next to the
// code that updates them (pkg/cache) to keep packages self-contained;
// this package documents what is available.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the backend
// core. All metrics register automatically via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - aprovafacil_cache_hits_total{backend} (Counter): Cache hits by backend
//   - aprovafacil_cache_misses_total (Counter): Cache misses, including
//     reads degraded to a miss while the backend was unreachable
//   - aprovafacil_cache_errors_total{operation} (Counter): Operation errors
//     by operation (get, set, delete, clear, stats)
//   - aprovafacil_cache_items{backend} (Gauge): Items held by the backend,
//     refreshed on statistics snapshots
//
// The retry executor deliberately exports no metrics of its own; it is
// a silent library primitive. Applications that want retry visibility
// attach a Policy.OnRetry hook and count there.
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(aprovafacil_cache_hits_total[5m])) /
//   (sum(rate(aprovafacil_cache_hits_total[5m])) + sum(rate(aprovafacil_cache_misses_total[5m])))
//
//   # Invalidation Failures
//   rate(aprovafacil_cache_errors_total{operation="clear"}[5m])
//
//   # Backend Item Count
//   aprovafacil_cache_items{backend="redis"}
