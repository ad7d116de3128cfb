package testsupport

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-dao-cache/cache"
	"github.com/goliatone/go-dao-cache/dao"
)

// KVCall is one recorded call on a FakeKeyValueStore.
type KVCall struct {
	Method string
	Key    string
	Value  dao.Record
	TTL    time.Duration
}

// FakeKeyValueStore is an in-memory cache.KeyValueStore that records every call.
// Setting GetErr, SetErr or DeleteErr makes the matching method fail.
type FakeKeyValueStore struct {
	mu        sync.Mutex
	data      map[string]dao.Record
	calls     []KVCall
	GetErr    error
	SetErr    error
	DeleteErr error
}

var _ cache.KeyValueStore = (*FakeKeyValueStore)(nil)

func NewFakeKeyValueStore() *FakeKeyValueStore {
	return &FakeKeyValueStore{data: make(map[string]dao.Record)}
}

func (f *FakeKeyValueStore) Get(_ context.Context, key string) (dao.Record, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, KVCall{Method: "Get", Key: key})
	if f.GetErr != nil {
		return nil, false, f.GetErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, false, nil
	}
	return v.Clone(), true, nil
}

func (f *FakeKeyValueStore) Set(_ context.Context, key string, value dao.Record, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, KVCall{Method: "Set", Key: key, Value: value.Clone(), TTL: ttl})
	if f.SetErr != nil {
		return f.SetErr
	}
	f.data[key] = value.Clone()
	return nil
}

func (f *FakeKeyValueStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, KVCall{Method: "Delete", Key: key})
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.data, key)
	return nil
}

// Seed stores value under key without recording a call.
func (f *FakeKeyValueStore) Seed(key string, value dao.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value.Clone()
}

// Entry returns the stored value for key without recording a call.
func (f *FakeKeyValueStore) Entry(key string) (dao.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v.Clone(), ok
}

func (f *FakeKeyValueStore) Calls() []KVCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]KVCall(nil), f.calls...)
}

// Methods returns the recorded method names in call order.
func (f *FakeKeyValueStore) Methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Method
	}
	return out
}

func (f *FakeKeyValueStore) ClearCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// StoreCall is one recorded call on a FakeRecordStore.
type StoreCall struct {
	Method   string
	ID       string
	Fields   dao.Record
	Criteria dao.Criteria
}

// FakeRecordStore records calls and forwards them to a MemoryRecordStore.
// Errs maps a method name to the error it should return instead.
type FakeRecordStore struct {
	mu      sync.Mutex
	calls   []StoreCall
	Backing *MemoryRecordStore
	Errs    map[string]error
}

var _ dao.RecordStore = (*FakeRecordStore)(nil)

// NewFakeRecordStore returns a fake whose Create assigns ids from ids in
// order, then falls back to UUIDs.
func NewFakeRecordStore(ids ...string) *FakeRecordStore {
	return &FakeRecordStore{
		Backing: NewMemoryRecordStore(SequenceIDs(ids...)),
		Errs:    make(map[string]error),
	}
}

func (f *FakeRecordStore) record(c StoreCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.Errs[c.Method]
}

func (f *FakeRecordStore) Create(ctx context.Context, fields dao.Record) (string, error) {
	if err := f.record(StoreCall{Method: "Create", Fields: fields.Clone()}); err != nil {
		return "", err
	}
	return f.Backing.Create(ctx, fields)
}

func (f *FakeRecordStore) Read(ctx context.Context, id string) (dao.Record, error) {
	if err := f.record(StoreCall{Method: "Read", ID: id}); err != nil {
		return nil, err
	}
	return f.Backing.Read(ctx, id)
}

func (f *FakeRecordStore) Update(ctx context.Context, id string, fields dao.Record) error {
	if err := f.record(StoreCall{Method: "Update", ID: id, Fields: fields.Clone()}); err != nil {
		return err
	}
	return f.Backing.Update(ctx, id, fields)
}

func (f *FakeRecordStore) Delete(ctx context.Context, id string) error {
	if err := f.record(StoreCall{Method: "Delete", ID: id}); err != nil {
		return err
	}
	return f.Backing.Delete(ctx, id)
}

func (f *FakeRecordStore) CountBy(ctx context.Context, criteria dao.Criteria) (int, error) {
	if err := f.record(StoreCall{Method: "CountBy", Criteria: criteria}); err != nil {
		return 0, err
	}
	return f.Backing.CountBy(ctx, criteria)
}

func (f *FakeRecordStore) ListBy(ctx context.Context, criteria dao.Criteria) ([]dao.Record, error) {
	if err := f.record(StoreCall{Method: "ListBy", Criteria: criteria}); err != nil {
		return nil, err
	}
	return f.Backing.ListBy(ctx, criteria)
}

func (f *FakeRecordStore) Calls() []StoreCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]StoreCall(nil), f.calls...)
}

// Methods returns the recorded method names in call order.
func (f *FakeRecordStore) Methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Method
	}
	return out
}

// Count returns how many times method was called.
func (f *FakeRecordStore) Count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *FakeRecordStore) ClearCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}
