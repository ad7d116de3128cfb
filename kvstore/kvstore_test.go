package kvstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dao-cache/cache"
	"github.com/goliatone/go-dao-cache/codec"
	"github.com/goliatone/go-dao-cache/dao"
)

type memoryByteStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	dels   []string
	getErr error
	delErr error
	closed int
}

func newMemoryByteStore() *memoryByteStore {
	return &memoryByteStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryByteStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *memoryByteStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memoryByteStore) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dels = append(m.dels, key)
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, key)
	return nil
}

type logEntry struct {
	level string
	msg   string
	f     cache.Fields
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string, f cache.Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, f: f})
}

func (l *recordingLogger) levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.level)
	}
	return out
}

func (l *recordingLogger) Debug(msg string, f cache.Fields) { l.add("debug", msg, f) }
func (l *recordingLogger) Info(msg string, f cache.Fields)  { l.add("info", msg, f) }
func (l *recordingLogger) Warn(msg string, f cache.Fields)  { l.add("warn", msg, f) }
func (l *recordingLogger) Error(msg string, f cache.Fields) { l.add("error", msg, f) }

func (m *memoryByteStore) Close(context.Context) error {
	m.closed++
	return nil
}

func TestEncoded_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	bs := newMemoryByteStore()
	store := NewEncoded(bs, codec.JSON[dao.Record]{})

	want := dao.Record{"id": "111", "title": "hello", "description": "world"}
	if err := store.Set(ctx, "k", want, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if bs.ttls["k"] != time.Minute {
		t.Errorf("expected ttl to reach the byte store, got %v", bs.ttls["k"])
	}

	got, ok, err := store.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Error("expected miss after delete")
	}
}

func TestEncoded_MissIsNotAnError(t *testing.T) {
	store := NewEncoded(newMemoryByteStore(), nil)

	got, ok, err := store.Get(context.Background(), "missing")
	if err != nil || ok || got != nil {
		t.Errorf("expected clean miss, got record=%v ok=%v err=%v", got, ok, err)
	}
}

func TestEncoded_DefaultsToMsgpack(t *testing.T) {
	ctx := context.Background()
	bs := newMemoryByteStore()
	store := NewEncoded(bs, nil)

	if err := store.Set(ctx, "k", dao.Record{"id": "1"}, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	decoded, err := (codec.Msgpack[dao.Record]{}).Decode(bs.data["k"])
	if err != nil {
		t.Fatalf("stored bytes are not msgpack: %v", err)
	}
	if decoded["id"] != "1" {
		t.Errorf("unexpected decoded record: %v", decoded)
	}
}

func TestEncoded_CorruptEntryIsDroppedAndMissed(t *testing.T) {
	ctx := context.Background()
	bs := newMemoryByteStore()
	bs.data["k"] = []byte("{not json")
	store := NewEncoded(bs, codec.JSON[dao.Record]{})

	got, ok, err := store.Get(ctx, "k")
	if err != nil || ok || got != nil {
		t.Fatalf("expected miss for corrupt entry, got record=%v ok=%v err=%v", got, ok, err)
	}
	if diff := cmp.Diff([]string{"k"}, bs.dels); diff != "" {
		t.Errorf("expected corrupt key to be deleted (-want +got):\n%s", diff)
	}
}

func TestEncoded_CorruptEntryIsLogged(t *testing.T) {
	ctx := context.Background()
	bs := newMemoryByteStore()
	bs.data["k"] = []byte{0xc1}
	logger := &recordingLogger{}
	store := NewEncoded(bs, nil, WithLogger(logger))

	if _, ok, err := store.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff([]string{"warn"}, logger.levels()); diff != "" {
		t.Errorf("log levels mismatch (-want +got):\n%s", diff)
	}
}

func TestEncoded_CorruptEntryDeleteFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	bs := newMemoryByteStore()
	bs.data["k"] = []byte{0xc1}
	bs.delErr = errors.New("read only replica")
	logger := &recordingLogger{}
	store := NewEncoded(bs, nil, WithLogger(logger))

	got, ok, err := store.Get(ctx, "k")
	if err != nil || ok || got != nil {
		t.Fatalf("delete failure must still report a miss, got record=%v ok=%v err=%v", got, ok, err)
	}
	if diff := cmp.Diff([]string{"warn", "error"}, logger.levels()); diff != "" {
		t.Errorf("log levels mismatch (-want +got):\n%s", diff)
	}
	if logger.entries[1].f["err"] != bs.delErr {
		t.Errorf("expected delete error in log fields, got %v", logger.entries[1].f)
	}
}

func TestEncoded_MsgpackIntegerTypesAreStable(t *testing.T) {
	ctx := context.Background()
	store := NewEncoded(newMemoryByteStore(), nil)

	for _, views := range []int{5, 200, 70000, -1} {
		if err := store.Set(ctx, "k", dao.Record{"id": "1", "views": views}, 0); err != nil {
			t.Fatalf("Set(%d): %v", views, err)
		}
		got, ok, err := store.Get(ctx, "k")
		if err != nil || !ok {
			t.Fatalf("Get(%d): ok=%v err=%v", views, ok, err)
		}
		if got["views"] != int64(views) {
			t.Errorf("views %d came back as %T(%v), want int64", views, got["views"], got["views"])
		}
	}
}

func TestEncoded_PropagatesBackendErrors(t *testing.T) {
	bs := newMemoryByteStore()
	boom := errors.New("connection refused")
	bs.getErr = boom

	_, _, err := NewEncoded(bs, nil).Get(context.Background(), "k")
	if !errors.Is(err, boom) {
		t.Errorf("expected backend error, got %v", err)
	}
}

func TestEncoded_Close(t *testing.T) {
	bs := newMemoryByteStore()
	if err := NewEncoded(bs, nil).Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if bs.closed != 1 {
		t.Errorf("expected underlying store to be closed once, got %d", bs.closed)
	}
}
