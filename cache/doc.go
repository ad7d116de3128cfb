// Package cache defines the contracts a caching record store is built on.
//
// # Overview
//
// The package exports three contracts and their defaults:
//
//   - KeyValueStore: the cache backend, Get/Set/Delete of dao.Record values
//   - KeyDeriver: maps a store type identity and a record id to a cache key
//   - Logger: the structured logging surface used by caching stores
//
// Backends live under kvstore/ (redis, memcache, ristretto, bigcache). The
// in-process default is built on sturdyc and is returned by NewInProcessStore:
//
//	kv, err := cache.NewInProcessStore(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
// # Keys
//
// The default deriver renders md5(storeType + "-" + id) as 32 lowercase hex
// characters, so keys stay compatible with other writers using the same
// scheme. NewKeyDeriver(XXHasher) produces shorter 16 character keys:
//
//	keys := cache.NewDefaultKeyDeriver()
//	key := keys.DeriveKey("user_store", "111") // 71e719944f07fddffaea288549008b80
//
// # Expiration
//
// Set receives NoExpiration (0) unless the caching store is configured with a
// ttl. What no expiration means is backend defined: the in-process store falls
// back to Config.TTL, bigcache applies its LifeWindow, redis and memcache keep
// the entry until evicted.
//
// # Configuration
//
// Config is validated with ozzo-validation; failures are go-errors validation
// errors carrying one field error per invalid option:
//
//	cfg := cache.DefaultConfig()
//	cfg.Capacity = 50000
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//
// See the daocache package for the caching record store itself.
package cache
