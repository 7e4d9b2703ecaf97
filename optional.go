// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package jmap

import (
	"fmt"
	"reflect"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

type presence uint8

const (
	absent presence = iota
	null
	present
)

// Optional is a record field with three observable wire states: absent,
// present as null, and present with a value.
//
// The zero Optional is absent. Tag the field with `omitzero` to leave absent
// values out of the encoded object; without it an absent value is encoded as
// null. Decoding never yields absent for a member that was on the wire, so a
// decoded explicit null stays distinguishable from a member the server did
// not send.
type Optional[T any] struct {
	value    T
	presence presence
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, presence: present}
}

// Null returns an Optional that encodes as JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{presence: null}
}

// Get returns the value and whether one is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.presence == present
}

// Value returns the value, or the zero T when absent or null.
func (o Optional[T]) Value() T {
	return o.value
}

// IsSet reports whether the Optional holds a value.
func (o Optional[T]) IsSet() bool { return o.presence == present }

// IsNull reports whether the Optional is an explicit null.
func (o Optional[T]) IsNull() bool { return o.presence == null }

// IsZero reports whether the Optional is absent. It is what `omitzero` consults.
func (o Optional[T]) IsZero() bool { return o.presence == absent }

// Equal reports whether o and other are in the same state with deeply equal
// values. go-cmp uses it to compare records holding Optional fields.
func (o Optional[T]) Equal(other Optional[T]) bool {
	return o.presence == other.presence && reflect.DeepEqual(o.value, other.value)
}

// String implements [fmt.Stringer].
func (o Optional[T]) String() string {
	switch o.presence {
	case present:
		return fmt.Sprint(o.value)
	case null:
		return "null"
	default:
		return "absent"
	}
}

// MarshalJSONTo implements [json.MarshalerTo].
func (o Optional[T]) MarshalJSONTo(enc *jsontext.Encoder) error {
	if o.presence != present {
		return enc.WriteToken(jsontext.Null)
	}
	return json.MarshalEncode(enc, o.value)
}

// UnmarshalJSONFrom implements [json.UnmarshalerFrom].
func (o *Optional[T]) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	if dec.PeekKind() == 'n' {
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
		*o = Null[T]()
		return nil
	}

	var v T
	if err := json.UnmarshalDecode(dec, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
