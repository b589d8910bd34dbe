// Package cache memoizes solve results keyed by roster fingerprint.
package cache

// Option applies a configuration option to the cache.
type Option func(*lruCache)

// WithCapacity sets the maximum number of results to keep.
// If capacity <= 0 the cache is disabled entirely.
func WithCapacity(capacity int) Option {
	return func(c *lruCache) {
		c.capacity = capacity
	}
}
