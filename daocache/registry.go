package daocache

import (
	"reflect"
	"sort"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-dao-cache/cache"
)

// Registry maps store type identities to the KeyValueStore shared by every
// Store of that type. Create one at composition time and hand it to New.
type Registry struct {
	domains *xsync.MapOf[string, cache.KeyValueStore]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{domains: xsync.NewMapOf[string, cache.KeyValueStore]()}
}

// BindDomain registers kv for storeType. Each store type can be bound once;
// a second call fails with ErrDomainAlreadyBound.
func (r *Registry) BindDomain(storeType string, kv cache.KeyValueStore) error {
	if err := validateDomain(storeType, kv); err != nil {
		return err
	}
	if _, loaded := r.domains.LoadOrStore(storeType, kv); loaded {
		return domainAlreadyBoundError(storeType)
	}
	return nil
}

// Replace binds kv for storeType whether or not a domain is already bound.
// It reports whether a previous binding was replaced.
func (r *Registry) Replace(storeType string, kv cache.KeyValueStore) (bool, error) {
	if err := validateDomain(storeType, kv); err != nil {
		return false, err
	}
	_, replaced := r.domains.LoadAndStore(storeType, kv)
	return replaced, nil
}

// Reset removes the binding for storeType so it can be bound again.
func (r *Registry) Reset(storeType string) bool {
	_, existed := r.domains.LoadAndDelete(storeType)
	return existed
}

// Domain returns the KeyValueStore bound to storeType.
func (r *Registry) Domain(storeType string) (cache.KeyValueStore, error) {
	kv, ok := r.domains.Load(storeType)
	if !ok {
		return nil, domainNotBoundError(storeType)
	}
	return kv, nil
}

// StoreTypes lists the bound store types in lexical order.
func (r *Registry) StoreTypes() []string {
	out := make([]string, 0, r.domains.Size())
	r.domains.Range(func(k string, _ cache.KeyValueStore) bool {
		out = append(out, k)
		return true
	})
	sort.Strings(out)
	return out
}

func validateDomain(storeType string, kv cache.KeyValueStore) error {
	if storeType == "" {
		return invalidDomainError(storeType, "store type identity is empty")
	}
	if isNil(kv) {
		return invalidDomainError(storeType, "key value store is nil")
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
