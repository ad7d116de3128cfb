package di

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-dao-cache/cache"
	"github.com/goliatone/go-dao-cache/dao"
	"github.com/goliatone/go-dao-cache/daocache"
	"github.com/goliatone/go-dao-cache/pkg/testsupport"
)

func TestNewContainer(t *testing.T) {
	config := cache.Config{
		Capacity:           1000,
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
		EvictionInterval:   0,
	}

	container, err := NewContainer(config)
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}

	if container == nil {
		t.Fatal("NewContainer() returned nil container")
	}

	if container.InProcessStore() == nil {
		t.Error("Container should have a non-nil in-process store")
	}

	if container.Registry() == nil {
		t.Error("Container should have a non-nil registry")
	}

	storedConfig := container.Config()
	if storedConfig.Capacity != config.Capacity {
		t.Errorf("Expected capacity %d, got %d", config.Capacity, storedConfig.Capacity)
	}

	if storedConfig.TTL != config.TTL {
		t.Errorf("Expected TTL %v, got %v", config.TTL, storedConfig.TTL)
	}
}

func TestNewContainerWithDefaults(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	config := container.Config()
	defaultConfig := cache.DefaultConfig()

	if config.Capacity != defaultConfig.Capacity {
		t.Errorf("Expected default capacity %d, got %d", defaultConfig.Capacity, config.Capacity)
	}

	if config.TTL != defaultConfig.TTL {
		t.Errorf("Expected default TTL %v, got %v", defaultConfig.TTL, config.TTL)
	}
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	invalidConfig := cache.Config{
		Capacity:           0, // Invalid: must be > 0
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}

	_, err := NewContainer(invalidConfig)
	if err == nil {
		t.Fatal("NewContainer() should fail with invalid config")
	}
	if !goerrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestContainer_StoresShareInProcessDomain(t *testing.T) {
	ctx := context.Background()
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	delegate := testsupport.NewFakeRecordStore()
	delegate.Backing.Put(dao.Record{"id": "111", "title": "hello"})

	first, err := container.NewCachingStore("post_store", delegate)
	if err != nil {
		t.Fatalf("NewCachingStore: %v", err)
	}
	second, err := container.NewCachingStore("post_store", delegate)
	if err != nil {
		t.Fatalf("second NewCachingStore: %v", err)
	}

	if _, err := first.Read(ctx, "111"); err != nil {
		t.Fatalf("first.Read: %v", err)
	}
	if _, err := second.Read(ctx, "111"); err != nil {
		t.Fatalf("second.Read: %v", err)
	}
	if n := delegate.Count("Read"); n != 1 {
		t.Errorf("stores of one type should share the in-process cache, got %d delegate reads", n)
	}

	kv, err := container.Registry().Domain("post_store")
	if err != nil {
		t.Fatalf("Domain: %v", err)
	}
	if kv != container.InProcessStore() {
		t.Error("expected the in-process store as default domain")
	}
}

func TestContainer_ExplicitDomainWins(t *testing.T) {
	ctx := context.Background()
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	kv := testsupport.NewFakeKeyValueStore()
	if err := container.BindDomain("post_store", kv); err != nil {
		t.Fatalf("BindDomain: %v", err)
	}

	delegate := testsupport.NewFakeRecordStore("111")
	store, err := container.NewCachingStore("post_store", delegate)
	if err != nil {
		t.Fatalf("NewCachingStore: %v", err)
	}
	if _, err := store.Create(ctx, dao.Record{"title": "hello"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if n := len(kv.Calls()); n != 1 {
		t.Errorf("expected the explicit domain to receive the write, got %v", kv.Methods())
	}
}

func TestContainer_OptionsApplyToStores(t *testing.T) {
	ctx := context.Background()
	container, err := NewContainerWithDefaults(daocache.WithTTL(time.Minute))
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	kv := testsupport.NewFakeKeyValueStore()
	_ = container.BindDomain("post_store", kv)

	store, err := container.NewCachingStore("post_store", testsupport.NewFakeRecordStore("1"))
	if err != nil {
		t.Fatalf("NewCachingStore: %v", err)
	}
	if _, err := store.Create(ctx, dao.Record{}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	calls := kv.Calls()
	if len(calls) != 1 || calls[0].TTL != time.Minute {
		t.Errorf("expected container TTL on writes, got %+v", calls)
	}
}

func TestContainer_NilDelegate(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	if _, err := container.NewCachingStore("post_store", nil); !errors.Is(err, daocache.ErrNotBound) {
		t.Errorf("expected ErrNotBound, got %v", err)
	}
}

func TestContainer_EmptyStoreType(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	_, err = container.NewCachingStore("", testsupport.NewFakeRecordStore())
	if !errors.Is(err, daocache.ErrInvalidCachingDomain) {
		t.Errorf("expected ErrInvalidCachingDomain, got %v", err)
	}
}
