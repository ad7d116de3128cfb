package testsupport

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-dao-cache/dao"
)

var ErrRecordNotFound = errors.New("record not found")

// IDFunc produces the id for a newly created record.
type IDFunc func() string

// SequenceIDs hands out ids in order and then falls back to random UUIDs.
func SequenceIDs(ids ...string) IDFunc {
	var mu sync.Mutex
	queue := append([]string(nil), ids...)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		if len(queue) == 0 {
			return uuid.NewString()
		}
		id := queue[0]
		queue = queue[1:]
		return id
	}
}

// MemoryRecordStore is a map backed dao.RecordStore.
type MemoryRecordStore struct {
	mu      sync.RWMutex
	records map[string]dao.Record
	nextID  IDFunc
}

var _ dao.RecordStore = (*MemoryRecordStore)(nil)

// NewMemoryRecordStore creates an empty store. A nil nextID uses uuid.NewString.
func NewMemoryRecordStore(nextID IDFunc) *MemoryRecordStore {
	if nextID == nil {
		nextID = uuid.NewString
	}
	return &MemoryRecordStore{records: make(map[string]dao.Record), nextID: nextID}
}

func (m *MemoryRecordStore) Create(_ context.Context, fields dao.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID()
	m.records[id] = dao.Merge(fields, dao.Record{dao.IDField: id})
	return id, nil
}

func (m *MemoryRecordStore) Read(_ context.Context, id string) (dao.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[id]
	if !ok {
		return nil, notFound(id)
	}
	return r.Clone(), nil
}

func (m *MemoryRecordStore) Update(_ context.Context, id string, fields dao.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return notFound(id)
	}
	m.records[id] = dao.Merge(r, fields)
	return nil
}

func (m *MemoryRecordStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return notFound(id)
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryRecordStore) CountBy(_ context.Context, criteria dao.Criteria) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.match(criteria.Where)), nil
}

func (m *MemoryRecordStore) ListBy(_ context.Context, criteria dao.Criteria) ([]dao.Record, error) {
	m.mu.RLock()
	out := m.match(criteria.Where)
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		for _, o := range criteria.OrderBy {
			c := compare(out[i][o.Field], out[j][o.Field])
			if c == 0 {
				continue
			}
			if o.Direction == dao.Desc {
				return c > 0
			}
			return c < 0
		}
		return out[i].ID() < out[j].ID()
	})

	if criteria.Offset > 0 {
		if criteria.Offset >= len(out) {
			return []dao.Record{}, nil
		}
		out = out[criteria.Offset:]
	}
	if criteria.Limit > 0 && criteria.Limit < len(out) {
		out = out[:criteria.Limit]
	}
	return out, nil
}

// Len returns the number of stored records.
func (m *MemoryRecordStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Put stores record under its id, replacing any previous record.
func (m *MemoryRecordStore) Put(record dao.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID()] = record.Clone()
}

func (m *MemoryRecordStore) match(where map[string]any) []dao.Record {
	out := make([]dao.Record, 0, len(m.records))
	for _, r := range m.records {
		ok := true
		for field, want := range where {
			if !reflect.DeepEqual(r[field], want) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, r.Clone())
		}
	}
	return out
}

func notFound(id string) error {
	return goerrors.Wrap(ErrRecordNotFound, goerrors.CategoryNotFound, "no record with this id").
		WithTextCode("RECORD_NOT_FOUND").
		WithMetadata(map[string]any{"id": id})
}

func compare(a, b any) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
