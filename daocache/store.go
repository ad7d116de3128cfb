package daocache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-dao-cache/cache"
	"github.com/goliatone/go-dao-cache/dao"
)

var _ dao.RecordStore = (*Store)(nil)

// Store decorates a dao.RecordStore with a cache-aside KeyValueStore.
//
// Reads are served from the cache when possible. Writes go to the delegate
// first and then update the cached record in place. CountBy and ListBy pass
// straight through.
type Store struct {
	storeType  string
	registry   *Registry
	delegate   atomic.Pointer[delegateRef]
	keys       cache.KeyDeriver
	ttl        time.Duration
	log        cache.Logger
	missPolicy UpdateMissPolicy
	stats      *counters
}

type delegateRef struct {
	dao.RecordStore
}

// New creates a Store for storeType. The KeyValueStore is looked up in
// registry on every call, so Replace and Reset take effect immediately.
// A nil registry gets a private one.
func New(storeType string, registry *Registry, opts ...Option) *Store {
	if registry == nil {
		registry = NewRegistry()
	}
	s := &Store{
		storeType:  storeType,
		registry:   registry,
		keys:       cache.NewDefaultKeyDeriver(),
		ttl:        cache.NoExpiration,
		log:        cache.NopLogger{},
		missPolicy: SkipOnMiss,
		stats:      newCounters(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFor creates a Store whose identity is derived from T.
func NewFor[T any](registry *Registry, opts ...Option) *Store {
	return New(IdentityOf[T](), registry, opts...)
}

// StoreType returns the identity that scopes this store's cache keys and domain.
func (s *Store) StoreType() string { return s.storeType }

// BindDomain registers kv as the shared cache for this store type.
func (s *Store) BindDomain(kv cache.KeyValueStore) error {
	if err := s.registry.BindDomain(s.storeType, kv); err != nil {
		return err
	}
	s.log.Info("caching domain bound", cache.Fields{"store_type": s.storeType})
	return nil
}

// Bind sets the record store this instance decorates. Binding again
// replaces the previous delegate.
func (s *Store) Bind(delegate dao.RecordStore) error {
	if isNil(delegate) {
		return notBoundError(s.storeType)
	}
	s.delegate.Store(&delegateRef{delegate})
	return nil
}

// Stats returns a snapshot of cache activity since creation or ResetStats.
func (s *Store) Stats() Stats { return s.stats.snapshot() }

// ResetStats zeroes the counters returned by Stats.
func (s *Store) ResetStats() { s.stats.reset() }

// Create stores fields through the delegate and caches the full record under
// the returned id. When the cache write fails the id is still returned
// alongside the error.
func (s *Store) Create(ctx context.Context, fields dao.Record) (string, error) {
	delegate, kv, err := s.resolve()
	if err != nil {
		return "", err
	}

	id, err := delegate.Create(ctx, fields)
	if err != nil {
		return "", err
	}

	record := dao.Merge(fields, dao.Record{dao.IDField: id})
	if err := s.set(ctx, kv, id, record); err != nil {
		return id, err
	}
	return id, nil
}

// Read returns the cached record for id, falling back to the delegate on a
// miss and caching what it returns.
func (s *Store) Read(ctx context.Context, id string) (dao.Record, error) {
	delegate, kv, err := s.resolve()
	if err != nil {
		return nil, err
	}

	key := s.keys.DeriveKey(s.storeType, id)
	cached, ok, err := kv.Get(ctx, key)
	if err != nil {
		s.fail("cache get failed", id, err)
		return nil, err
	}
	if ok {
		s.stats.hits.Inc()
		s.log.Debug("cache hit", cache.Fields{"store_type": s.storeType, "id": id})
		return cached, nil
	}

	s.stats.misses.Inc()
	s.log.Debug("cache miss", cache.Fields{"store_type": s.storeType, "id": id})

	record, err := delegate.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.set(ctx, kv, id, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update writes fields through the delegate and merges them into the cached
// record. Fields absent from fields keep their cached value. What happens
// when the record is not cached depends on the UpdateMissPolicy.
func (s *Store) Update(ctx context.Context, id string, fields dao.Record) error {
	delegate, kv, err := s.resolve()
	if err != nil {
		return err
	}

	if err := delegate.Update(ctx, id, fields); err != nil {
		return err
	}

	key := s.keys.DeriveKey(s.storeType, id)
	cached, ok, err := kv.Get(ctx, key)
	if err != nil {
		s.fail("cache get failed", id, err)
		return err
	}

	if !ok {
		s.stats.misses.Inc()
		s.log.Warn("update found no cached record", cache.Fields{
			"store_type": s.storeType,
			"id":         id,
			"policy":     s.missPolicy.String(),
		})
		if s.missPolicy != PopulateOnMiss {
			return nil
		}
		record, err := delegate.Read(ctx, id)
		if err != nil {
			return err
		}
		return s.set(ctx, kv, id, record)
	}

	s.stats.hits.Inc()
	return s.set(ctx, kv, id, dao.Merge(cached, fields))
}

// Delete removes id from the delegate and then from the cache.
func (s *Store) Delete(ctx context.Context, id string) error {
	delegate, kv, err := s.resolve()
	if err != nil {
		return err
	}

	if err := delegate.Delete(ctx, id); err != nil {
		return err
	}

	if err := kv.Delete(ctx, s.keys.DeriveKey(s.storeType, id)); err != nil {
		s.fail("cache delete failed", id, err)
		return err
	}
	s.stats.deletes.Inc()
	return nil
}

// CountBy is passed to the delegate without touching the cache.
func (s *Store) CountBy(ctx context.Context, criteria dao.Criteria) (int, error) {
	delegate, _, err := s.resolve()
	if err != nil {
		return 0, err
	}
	return delegate.CountBy(ctx, criteria)
}

// ListBy is passed to the delegate without touching the cache.
func (s *Store) ListBy(ctx context.Context, criteria dao.Criteria) ([]dao.Record, error) {
	delegate, _, err := s.resolve()
	if err != nil {
		return nil, err
	}
	return delegate.ListBy(ctx, criteria)
}

func (s *Store) resolve() (dao.RecordStore, cache.KeyValueStore, error) {
	ref := s.delegate.Load()
	if ref == nil {
		return nil, nil, notBoundError(s.storeType)
	}
	kv, err := s.registry.Domain(s.storeType)
	if err != nil {
		return nil, nil, err
	}
	return ref.RecordStore, kv, nil
}

func (s *Store) set(ctx context.Context, kv cache.KeyValueStore, id string, record dao.Record) error {
	if err := kv.Set(ctx, s.keys.DeriveKey(s.storeType, id), record, s.ttl); err != nil {
		s.fail("cache set failed", id, err)
		return err
	}
	s.stats.writes.Inc()
	s.log.Debug("cache write", cache.Fields{"store_type": s.storeType, "id": id})
	return nil
}

func (s *Store) fail(msg, id string, err error) {
	s.stats.errors.Inc()
	s.log.Error(msg, cache.Fields{"store_type": s.storeType, "id": id, "err": err})
}
