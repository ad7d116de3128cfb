// Package codec turns records into bytes for the byte oriented backends
// under kvstore.
//
// A record that went through a codec is not always deep-equal to the record
// that went in. Field names and string, bool and nil values survive every
// codec. Numbers are normalized: Msgpack and CBOR return integers as int64
// and floats as float64. JSON returns every number as float64.
package codec

import "reflect"

// Codec encodes and decodes values of type V.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

var mapStringAny = reflect.TypeOf(map[string]any(nil))
