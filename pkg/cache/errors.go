package cache

import "errors"

var (
	// ErrCacheMiss indicates the requested key was not found or has
	// expired. Service.Get also reports backend failures as a miss,
	// since a cache read is advisory.
	ErrCacheMiss = errors.New("cache miss")

	// ErrBackendUnavailable indicates the backend cannot be reached.
	// Surfaced by mutating operations; reads downgrade it to a miss.
	ErrBackendUnavailable = errors.New("cache backend unavailable")
)
