package bigcache

import (
	"context"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

func TestStore_GetSetDel(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, Config{LifeWindow: time.Minute, MaxEntriesInWindow: 100, MaxEntrySize: 256})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(ctx) })

	if _, ok, err := store.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "k", []byte("payload"), time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || string(got) != "payload" {
		t.Fatalf("expected hit with payload, got %q ok=%v err=%v", got, ok, err)
	}

	if err := store.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Error("expected miss after Del")
	}
	if err := store.Del(ctx, "k"); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "life window only", cfg: Config{LifeWindow: time.Minute}},
		{name: "zero life window", cfg: Config{}, wantErr: true},
		{name: "negative clean window", cfg: Config{LifeWindow: time.Minute, CleanWindow: -time.Second}, wantErr: true},
		{name: "negative size", cfg: Config{LifeWindow: time.Minute, HardMaxCacheSizeMB: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !goerrors.IsValidation(err) {
				t.Errorf("expected validation category, got %v", err)
			}
		})
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	store, err := New(context.Background(), Config{})
	if err == nil {
		t.Fatal("expected error for zero life window")
	}
	if store != nil {
		t.Errorf("expected nil store, got %v", store)
	}
}
