// Package ristretto caches encoded records in process with ristretto's
// admission controlled LFU cache.
//
// A ttl of 0 stores the entry without expiry. Ristretto may still refuse or
// evict any entry to stay under MaxCost, so a Set followed by a Get can miss.
package ristretto

import (
	"context"
	"time"

	rc "github.com/dgraph-io/ristretto"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-dao-cache/kvstore"
)

// Store is a kvstore.ByteStore over a ristretto cache keyed by string.
type Store struct {
	c *rc.Cache
}

var _ kvstore.ByteStore = (*Store)(nil)

// Config mirrors the ristretto settings. All sizes must be greater than 0.
type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

// DefaultConfig sizes the cache for roughly 100k records of 1KB.
func DefaultConfig() Config {
	return Config{
		NumCounters: 1_000_000,
		MaxCost:     100 << 20,
		BufferItems: 64,
	}
}

// Validate checks that every size is positive.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.NumCounters, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.MaxCost, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.BufferItems, validation.Required, validation.Min(int64(1))),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid ristretto config").
			WithTextCode("INVALID_RISTRETTO_CONFIG")
	}
	return nil
}

// New validates cfg and builds the ristretto cache.
func New(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

// Get returns the bytes under key. Entries of an unexpected type are dropped.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		s.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set admits value with a cost equal to its size. Ristretto applies writes
// asynchronously and may drop them under contention; call Wait to flush.
func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	s.c.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

// Del removes key.
func (s *Store) Del(_ context.Context, key string) error {
	s.c.Del(key)
	return nil
}

// Wait blocks until buffered writes are applied.
func (s *Store) Wait() { s.c.Wait() }

// Close flushes pending writes and stops ristretto's goroutines.
func (s *Store) Close(_ context.Context) error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Metrics exposes ristretto metrics when enabled in Config.
func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }
