// Package daocache decorates a dao.RecordStore with a cache-aside
// cache.KeyValueStore.
//
// Every Store has a store type identity. All Stores sharing an identity share
// one KeyValueStore, registered once in a Registry:
//
//	registry := daocache.NewRegistry()
//	posts := daocache.New("post_store", registry)
//	if err := posts.BindDomain(kv); err != nil {
//		return err
//	}
//	if err := posts.Bind(postDao); err != nil {
//		return err
//	}
//
// Cache keys are DeriveKey(storeType, id), by default the MD5 hex digest of
// storeType + "-" + id.
//
// Read checks the cache first and only calls the delegate on a miss, caching
// the result. Create, Update and Delete write to the delegate first. Create
// caches the new record with its id, Update merges the changed fields into
// the cached record, and Delete removes the entry. CountBy and ListBy never
// touch the cache.
//
// Calling a CRUD method before Bind fails with ErrNotBound. Using a store type
// with no registered KeyValueStore fails with ErrDomainNotBound. Errors from
// the delegate or the cache are returned unchanged and nothing is retried.
//
// Concurrent updates to the same id race: Update is a plain get followed by
// a set.
package daocache
