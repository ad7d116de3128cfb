package repositorydao

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/goliatone/go-dao-cache/codec"
	"github.com/goliatone/go-dao-cache/dao"
)

// Mapper converts between a repository model and a dao.Record.
type Mapper[T any] interface {
	ToRecord(model T) (dao.Record, error)
	FromRecord(record dao.Record) (T, error)
}

// MsgpackMapper maps models through msgpack using their json tags as field
// names, so record keys match the JSON representation of the model.
//
// Records come out with the numeric rules of codec.Msgpack: integers as
// int64, floats as float64, uuid.UUID as its string form. A record read
// from the repository therefore equals the same record read back from a
// msgpack encoded cache.
type MsgpackMapper[T any] struct{}

// ToRecord flattens model into a record keyed by json tag names.
func (MsgpackMapper[T]) ToRecord(model T) (dao.Record, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.SetOmitEmpty(false)
	if err := enc.Encode(model); err != nil {
		return nil, err
	}

	var record dao.Record
	if err := codec.DecodeMsgpack(msgpack.NewDecoder(&buf), &record); err != nil {
		return nil, err
	}
	return record, nil
}

// FromRecord fills a model from record. Unknown fields are ignored and
// string ids decode into uuid.UUID fields.
func (MsgpackMapper[T]) FromRecord(record dao.Record) (T, error) {
	var model T

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(map[string]any(record)); err != nil {
		return model, err
	}

	dec := msgpack.NewDecoder(&buf)
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&model); err != nil {
		return model, err
	}
	return model, nil
}
