// Package kvstore adapts byte oriented cache backends to cache.KeyValueStore.
//
// A ByteStore only moves bytes; Encoded pairs it with a codec so records can
// be cached in remote or off-heap stores. Backend specific ByteStores live in
// the subpackages (redis, memcache, ristretto, bigcache).
//
// Records read back through Encoded follow the numeric rules of the codec
// (see package codec). With the default msgpack codec every integer field
// is an int64, so a RecordStore that also returns int64 integers reads the
// same on a cache hit and on a miss.
package kvstore

import (
	"context"
	"time"

	"github.com/goliatone/go-dao-cache/cache"
	"github.com/goliatone/go-dao-cache/codec"
	"github.com/goliatone/go-dao-cache/dao"
)

// ByteStore is a minimal byte store with TTLs.
// Get must return exactly the bytes previously passed to Set for the same key.
type ByteStore interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. A ttl <= 0 requests no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes a key. Removing a missing key is not an error.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Encoded stores records in a ByteStore through a codec.
type Encoded struct {
	store ByteStore
	codec codec.Codec[dao.Record]
	log   cache.Logger
}

var _ cache.KeyValueStore = (*Encoded)(nil)

// EncodedOption configures an Encoded store.
type EncodedOption func(*Encoded)

// WithLogger reports dropped entries to l. Nil is ignored.
func WithLogger(l cache.Logger) EncodedOption {
	return func(e *Encoded) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEncoded wraps store. A nil codec defaults to msgpack.
func NewEncoded(store ByteStore, c codec.Codec[dao.Record], opts ...EncodedOption) *Encoded {
	if c == nil {
		c = codec.Msgpack[dao.Record]{}
	}
	e := &Encoded{store: store, codec: c, log: cache.NopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Get decodes the record stored under key. Entries that fail to decode are
// dropped and reported as a miss so the caller falls back to its source.
func (e *Encoded) Get(ctx context.Context, key string) (dao.Record, bool, error) {
	raw, ok, err := e.store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	record, err := e.codec.Decode(raw)
	if err != nil {
		e.log.Warn("dropping undecodable cache entry", cache.Fields{"key": key, "err": err})
		// a failed delete leaves the entry to be overwritten by the next Set
		if derr := e.store.Del(ctx, key); derr != nil {
			e.log.Error("drop of undecodable cache entry failed", cache.Fields{"key": key, "err": derr})
		}
		return nil, false, nil
	}
	return record, true, nil
}

// Set encodes value and stores it under key.
func (e *Encoded) Set(ctx context.Context, key string, value dao.Record, ttl time.Duration) error {
	raw, err := e.codec.Encode(value)
	if err != nil {
		return err
	}
	return e.store.Set(ctx, key, raw, ttl)
}

// Delete removes key from the underlying store.
func (e *Encoded) Delete(ctx context.Context, key string) error {
	return e.store.Del(ctx, key)
}

// Close closes the underlying store.
func (e *Encoded) Close(ctx context.Context) error {
	return e.store.Close(ctx)
}
