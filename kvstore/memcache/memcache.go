// Package memcache caches encoded records in memcached through gomemcache.
//
// A ttl of 0 stores the item without expiry. TTLs are sent in whole seconds,
// and TTLs over 30 days are sent as absolute unix times as memcached expects.
package memcache

import (
	"context"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/goliatone/go-dao-cache/kvstore"
)

// maxRelativeExpiration is the largest expiration memcache treats as relative.
// Larger values are read as absolute unix timestamps.
const maxRelativeExpiration = 30 * 24 * time.Hour

// ErrNilClient is returned by New when client is nil.
var ErrNilClient = errors.New("daocache memcache: client is required")

// Client is the subset of *memcache.Client used by Store.
type Client interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
}

// Store keeps values in memcached.
type Store struct {
	client Client
	now    func() time.Time
}

var _ kvstore.ByteStore = (*Store)(nil)

// New wraps an existing client.
func New(client Client) (*Store, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	return &Store{client: client, now: time.Now}, nil
}

// Dial creates a Store talking to the given memcached servers.
func Dial(servers ...string) (*Store, error) {
	return New(memcache.New(servers...))
}

// Get returns the bytes under key. memcache.ErrCacheMiss is a miss.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	item, err := s.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return item.Value, true, nil
}

// Set stores value under key. A ttl <= 0 stores the item without expiration.
func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: s.expiration(ttl),
	})
}

// Del removes key. Deleting a missing key is not an error.
func (s *Store) Del(_ context.Context, key string) error {
	err := s.client.Delete(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return err
}

// Close closes idle connections when the client supports it.
func (s *Store) Close(context.Context) error {
	if c, ok := s.client.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// expiration converts ttl to memcache seconds. Memcache truncates to whole
// seconds and reads 0 as "never", so sub-second TTLs round up to one second.
func (s *Store) expiration(ttl time.Duration) int32 {
	if ttl <= 0 {
		return 0
	}
	if ttl > maxRelativeExpiration {
		return int32(s.now().Add(ttl).Unix())
	}
	secs := int32(ttl / time.Second)
	if ttl%time.Second != 0 {
		secs++
	}
	return secs
}
