package cache

import (
	"context"
	"time"

	"github.com/goliatone/go-dao-cache/dao"
)

// NoExpiration is the ttl passed to KeyValueStore.Set when entries should not expire.
// What "no expiration" means is up to the backend (see each adapter).
const NoExpiration time.Duration = 0

// KeyValueStore is the minimal cache backend contract consumed by caching stores.
// Per key operations are expected to be atomic from the caller's point of view.
type KeyValueStore interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
	// A backend failure is reported as (nil, false, err).
	Get(ctx context.Context, key string) (dao.Record, bool, error)

	// Set stores value under key. A ttl <= 0 requests no expiration.
	Set(ctx context.Context, key string, value dao.Record, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// KeyDeriver maps a store type identity and a record id to a cache key.
// Implementations must be pure: equal inputs always produce equal keys.
type KeyDeriver interface {
	DeriveKey(storeType, id string) string
}
