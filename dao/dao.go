// Package dao defines the record access contract that caching stores wrap.
//
// A RecordStore is the source of truth for records. Records are plain field
// maps keyed by field name; the identifier lives under IDField and is assigned
// by the RecordStore on Create.
package dao

import (
	"context"
	"fmt"
)

// IDField is the field name that carries a record identifier.
const IDField = "id"

// Record is a field name to scalar value mapping.
type Record map[string]any

// ID returns the record identifier rendered as a string, or "" when absent.
func (r Record) ID() string {
	v, ok := r[IDField]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Clone returns a shallow copy of the record. A nil record clones to nil.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a new record holding base overwritten field by field with patch.
// Fields absent from patch keep their base value. Neither input is modified.
func Merge(base, patch Record) Record {
	out := make(Record, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Direction is the sort direction of an Order clause.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order sorts listed records by a field.
type Order struct {
	Field     string
	Direction Direction
}

// Criteria selects records for CountBy and ListBy.
// Where holds field equality conditions. CountBy ignores OrderBy, Offset and Limit.
// A zero Limit means no limit.
type Criteria struct {
	Where   map[string]any
	OrderBy []Order
	Offset  int
	Limit   int
}

// Where is a shorthand for criteria made of equality conditions only.
func Where(conditions map[string]any) Criteria {
	return Criteria{Where: conditions}
}

// RecordStore is the authoritative CRUD contract for records.
type RecordStore interface {
	// Create persists fields as a new record and returns the assigned id.
	Create(ctx context.Context, fields Record) (string, error)
	// Read returns the record stored under id.
	Read(ctx context.Context, id string) (Record, error)
	// Update overwrites the given fields of the record stored under id.
	Update(ctx context.Context, id string, fields Record) error
	// Delete removes the record stored under id.
	Delete(ctx context.Context, id string) error
	// CountBy returns the number of records matching criteria.
	CountBy(ctx context.Context, criteria Criteria) (int, error)
	// ListBy returns the records matching criteria.
	ListBy(ctx context.Context, criteria Criteria) ([]Record, error)
}
