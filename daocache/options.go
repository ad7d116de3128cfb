package daocache

import (
	"time"

	"github.com/goliatone/go-dao-cache/cache"
)

// UpdateMissPolicy decides what Update does when the record is not cached.
type UpdateMissPolicy int

const (
	// SkipOnMiss leaves the cache untouched. Merging onto nothing would cache
	// a partial record.
	SkipOnMiss UpdateMissPolicy = iota
	// PopulateOnMiss reads the updated record from the delegate and caches it.
	PopulateOnMiss
)

// String returns "skip", "populate" or "unknown" for logging.
func (p UpdateMissPolicy) String() string {
	switch p {
	case SkipOnMiss:
		return "skip"
	case PopulateOnMiss:
		return "populate"
	default:
		return "unknown"
	}
}

// Option configures a Store at construction.
type Option func(*Store)

// WithTTL sets the expiration passed to every cache write. The default,
// cache.NoExpiration, leaves expiry to the backend.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl < 0 {
			ttl = cache.NoExpiration
		}
		s.ttl = ttl
	}
}

// WithKeyDeriver replaces the MD5 key deriver. Nil is ignored.
func WithKeyDeriver(kd cache.KeyDeriver) Option {
	return func(s *Store) {
		if kd != nil {
			s.keys = kd
		}
	}
}

// WithLogger sets the logger for cache activity. Nil is ignored.
func WithLogger(l cache.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithUpdateMissPolicy sets what Update does when the record is not cached.
func WithUpdateMissPolicy(p UpdateMissPolicy) Option {
	return func(s *Store) {
		s.missPolicy = p
	}
}
