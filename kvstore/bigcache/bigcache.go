// Package bigcache caches encoded records off the Go heap with bigcache.
//
// bigcache has no per entry expiry: every entry lives for Config.LifeWindow
// whatever ttl the caller passes to Set. Choose the life window as the
// longest acceptable staleness for the domain.
package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-dao-cache/kvstore"
)

// Store is a kvstore.ByteStore over a single bigcache instance.
type Store struct {
	cache *bc.BigCache
}

var _ kvstore.ByteStore = (*Store)(nil)

// Config sizes the bigcache instance. Zero values other than LifeWindow
// keep the bigcache defaults.
type Config struct {
	// LifeWindow is how long every entry lives. Must be greater than 0.
	LifeWindow time.Duration

	// CleanWindow is how often expired entries are removed.
	CleanWindow time.Duration

	// MaxEntriesInWindow and MaxEntrySize size the initial shards.
	MaxEntriesInWindow int
	MaxEntrySize       int

	// HardMaxCacheSizeMB caps memory use in megabytes.
	HardMaxCacheSizeMB int
}

// Validate checks the configured sizes and windows.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.LifeWindow, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&c.CleanWindow, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxEntriesInWindow, validation.Min(0)),
		validation.Field(&c.MaxEntrySize, validation.Min(0)),
		validation.Field(&c.HardMaxCacheSizeMB, validation.Min(0)),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid bigcache config").
			WithTextCode("INVALID_BIGCACHE_CONFIG")
	}
	return nil
}

func (c Config) toBigcache() bc.Config {
	conf := bc.DefaultConfig(c.LifeWindow)
	if c.CleanWindow > 0 {
		conf.CleanWindow = c.CleanWindow
	}
	if c.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = c.MaxEntriesInWindow
	}
	if c.MaxEntrySize > 0 {
		conf.MaxEntrySize = c.MaxEntrySize
	}
	if c.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = c.HardMaxCacheSizeMB
	}
	return conf
}

// New validates cfg and starts a bigcache instance. ctx bounds the
// background cleanup goroutine.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cache, err := bc.New(ctx, cfg.toBigcache())
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache}, nil
}

// Get returns the bytes under key. Missing and expired keys are a miss.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := s.cache.Get(key)
	switch {
	case errors.Is(err, bc.ErrEntryNotFound):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return b, true, nil
}

// Set stores value under key for the configured life window. ttl is not used.
func (s *Store) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	return s.cache.Set(key, value)
}

// Del removes key. A missing key is not an error.
func (s *Store) Del(_ context.Context, key string) error {
	if err := s.cache.Delete(key); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
		return err
	}
	return nil
}

// Close stops the cleanup goroutine and releases the shards.
func (s *Store) Close(context.Context) error {
	return s.cache.Close()
}
