// Package testsupport holds fakes and fixture helpers shared by tests.
package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-dao-cache/dao"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t testing.TB, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
func LoadFixtureJSON(t testing.TB, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// LoadRecords loads a JSON array of records. Numbers decode as float64.
func LoadRecords(t testing.TB, path string) []dao.Record {
	t.Helper()

	var records []dao.Record
	LoadFixtureJSON(t, path, &records)
	return records
}

// SeedRecords creates every record in store and returns the assigned ids in order.
func SeedRecords(t testing.TB, store dao.RecordStore, records []dao.Record) []string {
	t.Helper()

	ids := make([]string, 0, len(records))
	for i, r := range records {
		id, err := store.Create(context.Background(), r)
		if err != nil {
			t.Fatalf("failed to seed record %d: %v", i, err)
		}
		ids = append(ids, id)
	}
	return ids
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}
