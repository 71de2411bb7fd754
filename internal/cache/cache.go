// Package cache provides the in-process view cache backing the dashboard.
package cache

// Cache is a generic key/value cache with TTL semantics.
type Cache[T any] interface {
	// Get retrieves a value from the cache.
	Get(key string) (T, bool)

	// Set stores a value in the cache.
	Set(key string, value T)

	// Delete removes a key from the cache.
	Delete(key string)

	// DeletePrefix invalidates every key with the given prefix and
	// returns the number of entries dropped.
	DeletePrefix(prefix string) int

	// Len returns the current number of entries.
	Len() int
}
