package codec

import (
	"bytes"
	"math"
	"reflect"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	msgpack.Register(uuid.UUID{}, encodeUUID, decodeUUID)
}

// Msgpack is the default record codec. The zero value is ready to use.
//
// Integers inside decoded maps and slices always come back as int64
// (uint64 only above math.MaxInt64) and floats as float64, whatever the
// magnitude of the value. uuid.UUID values travel as their canonical
// string form.
type Msgpack[V any] struct{}

var _ Codec[struct{}] = Msgpack[struct{}]{}

// Encode marshals v with msgpack.
func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode unmarshals b with the numeric rules described on Msgpack.
func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := DecodeMsgpack(msgpack.NewDecoder(bytes.NewReader(b)), &v)
	return v, err
}

// DecodeMsgpack decodes the next value from dec into ptr with the numeric
// rules of the Msgpack codec. ptr must be a non-nil pointer.
func DecodeMsgpack(dec *msgpack.Decoder, ptr any) error {
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(ptr); err != nil {
		return err
	}
	rv := reflect.ValueOf(ptr).Elem()
	if rv.Kind() == reflect.Map && rv.Type().ConvertibleTo(mapStringAny) && !rv.IsNil() {
		foldUints(rv.Convert(mapStringAny).Interface())
	}
	return nil
}

// foldUints rewrites uint64 values that fit into int64 in place. msgpack
// writes every non-negative int as an unsigned integer.
func foldUints(v any) any {
	switch t := v.(type) {
	case uint64:
		if t <= math.MaxInt64 {
			return int64(t)
		}
	case map[string]any:
		for k, e := range t {
			t[k] = foldUints(e)
		}
	case []any:
		for i, e := range t {
			t[i] = foldUints(e)
		}
	}
	return v
}

func encodeUUID(e *msgpack.Encoder, v reflect.Value) error {
	return e.EncodeString(v.Interface().(uuid.UUID).String())
}

// decodeUUID accepts the string form and the raw 16 byte form.
func decodeUUID(d *msgpack.Decoder, v reflect.Value) error {
	s, err := d.DecodeString()
	if err != nil {
		return err
	}

	var id uuid.UUID
	switch len(s) {
	case 0:
	case 16:
		id, err = uuid.FromBytes([]byte(s))
	default:
		id, err = uuid.Parse(s)
	}
	if err != nil {
		return err
	}
	v.Set(reflect.ValueOf(id))
	return nil
}
