// Package di wires the caching components together.
package di

import (
	"errors"

	"github.com/goliatone/go-dao-cache/cache"
	"github.com/goliatone/go-dao-cache/dao"
	"github.com/goliatone/go-dao-cache/daocache"
	"github.com/goliatone/go-dao-cache/repositorydao"
)

// Container owns the domain registry and a shared in-process KeyValueStore.
// Store types without an explicit domain fall back to the in-process store.
type Container struct {
	registry  *daocache.Registry
	inProcess cache.KeyValueStore
	config    cache.Config
	storeOpts []daocache.Option
}

// NewContainer validates config and creates the in-process store. opts are
// applied to every Store the container creates.
func NewContainer(config cache.Config, opts ...daocache.Option) (*Container, error) {
	inProcess, err := cache.NewInProcessStore(config)
	if err != nil {
		return nil, err
	}

	return &Container{
		registry:  daocache.NewRegistry(),
		inProcess: inProcess,
		config:    config,
		storeOpts: opts,
	}, nil
}

// NewContainerWithDefaults creates a container using cache.DefaultConfig.
func NewContainerWithDefaults(opts ...daocache.Option) (*Container, error) {
	return NewContainer(cache.DefaultConfig(), opts...)
}

func (c *Container) Registry() *daocache.Registry { return c.registry }

// InProcessStore returns the shared sturdyc backed store.
func (c *Container) InProcessStore() cache.KeyValueStore { return c.inProcess }

func (c *Container) Config() cache.Config { return c.config }

// BindDomain registers kv for storeType. Call it before the first
// NewCachingStore for that type, otherwise the in-process store is already bound.
func (c *Container) BindDomain(storeType string, kv cache.KeyValueStore) error {
	return c.registry.BindDomain(storeType, kv)
}

// NewCachingStore returns a Store for storeType decorating delegate. opts
// are applied after the container wide options.
func (c *Container) NewCachingStore(storeType string, delegate dao.RecordStore, opts ...daocache.Option) (*daocache.Store, error) {
	all := make([]daocache.Option, 0, len(c.storeOpts)+len(opts))
	all = append(all, c.storeOpts...)
	all = append(all, opts...)

	store := daocache.New(storeType, c.registry, all...)
	if err := store.BindDomain(c.inProcess); err != nil && !errors.Is(err, daocache.ErrDomainAlreadyBound) {
		return nil, err
	}
	if err := store.Bind(delegate); err != nil {
		return nil, err
	}
	return store, nil
}

// NewCachedRepository adapts repo to a RecordStore and wraps it in a Store
// whose identity is derived from T.
//
// Since Go methods cannot have type parameters, this is a package-level function.
// Example: NewCachedRepository[User](container, userRepository)
func NewCachedRepository[T any](container *Container, repo repositorydao.Repository[T], opts ...daocache.Option) (*daocache.Store, error) {
	return container.NewCachingStore(daocache.IdentityOf[T](), repositorydao.New(repo), opts...)
}
