// Package redis caches encoded records in Redis through go-redis.
//
// A ttl of 0 stores the key without expiry; Redis keeps it until it is
// deleted or evicted by maxmemory policy. Pair the store with
// kvstore.NewEncoded to use it as a caching domain.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/goliatone/go-dao-cache/kvstore"
)

// ErrNilClient is returned by New when Config.Client is nil.
var ErrNilClient = errors.New("daocache redis: client is required")

// Store is a kvstore.ByteStore over any go-redis client (single node,
// cluster or sentinel).
type Store struct {
	client goredis.UniversalClient
	owned  bool
}

var _ kvstore.ByteStore = (*Store)(nil)

// Config holds the client a Store talks to.
type Config struct {
	Client goredis.UniversalClient

	// OwnsClient makes Close close Client. Leave it false when the client
	// is shared with other components.
	OwnsClient bool
}

// New returns a Store over cfg.Client.
func New(cfg Config) (*Store, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Store{client: cfg.Client, owned: cfg.OwnsClient}, nil
}

// Get returns the bytes under key. A missing key is a miss, not an error.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return b, true, nil
}

// Set writes value under key with SET. A ttl <= 0 writes without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, max(ttl, 0)).Err()
}

// Del removes key with DEL. Redis reports no error for a missing key.
func (s *Store) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Close closes the client when the store owns it. Closing twice is a no-op.
func (s *Store) Close(context.Context) error {
	if !s.owned {
		return nil
	}
	if err := s.client.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}
