package cacheinfra

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-dao-cache/dao"
	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc backed record store.
type Config struct {
	// Capacity defines the maximum number of records the cache can hold.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Must be greater than 0. Default: 256
	NumShards int

	// TTL is the lifetime of every cached record. sturdyc has no per entry
	// expiration, so this also applies to records written with "no expiration".
	// Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the cache reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often the cache checks for expired entries.
	// Zero value uses the sturdyc default.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          256,
		TTL:                24 * time.Hour,
		EvictionPercentage: 10,
	}
}

// ToSturdycOptions converts the optional parts of Config to sturdyc options.
// Capacity, NumShards, TTL and EvictionPercentage go to sturdyc.New directly.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option
	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}
	return options
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&c.NumShards, validation.Required, validation.Min(1)),
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&c.EvictionPercentage, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.EvictionInterval, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid in-process cache config").
			WithTextCode("INVALID_CACHE_CONFIG")
	}
	return nil
}

// SturdycStore keeps records in a sharded in-process sturdyc client.
type SturdycStore struct {
	client *sturdyc.Client[dao.Record]
}

// NewSturdycStore validates cfg and builds a sturdyc client from it.
func NewSturdycStore(cfg Config) (*SturdycStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[dao.Record](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &SturdycStore{client: client}, nil
}

// Get returns a copy of the record cached under key.
func (s *SturdycStore) Get(_ context.Context, key string) (dao.Record, bool, error) {
	record, ok := s.client.Get(key)
	if !ok {
		return nil, false, nil
	}
	return record.Clone(), true, nil
}

// Set stores a copy of value under key. The ttl argument is ignored, entries
// live for the client wide TTL.
func (s *SturdycStore) Set(_ context.Context, key string, value dao.Record, _ time.Duration) error {
	s.client.Set(key, value.Clone())
	return nil
}

// Delete removes key from the cache.
func (s *SturdycStore) Delete(_ context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// Keys returns the keys currently held by the cache.
func (s *SturdycStore) Keys() []string {
	return s.client.ScanKeys()
}

// Size returns the number of records currently held by the cache.
func (s *SturdycStore) Size() int {
	return s.client.Size()
}
