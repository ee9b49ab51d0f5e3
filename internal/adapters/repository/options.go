package repository

import "time"

// Option applies a configuration option to the CacheStore.
type Option func(*CacheStore)

// WithTTL sets how long a session lives after its last save.
func WithTTL(ttl time.Duration) Option {
	return func(s *CacheStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithCleanupInterval sets how often expired sessions are purged.
func WithCleanupInterval(interval time.Duration) Option {
	return func(s *CacheStore) {
		if interval > 0 {
			s.cleanupInterval = interval
		}
	}
}
