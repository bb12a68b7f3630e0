// Package optional models request fields that may be absent, explicitly null or set.
package optional

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	unset state = iota
	null
	set
)

// Value distinguishes a key missing from a payload from one sent as null.
// The zero Value is unset.
type Value[T any] struct {
	v     T
	state state
}

func Some[T any](v T) Value[T] {
	return Value[T]{v: v, state: set}
}

func Null[T any]() Value[T] {
	return Value[T]{state: null}
}

func Unset[T any]() Value[T] {
	return Value[T]{}
}

// Present reports whether the field was supplied at all, null included.
func (o Value[T]) Present() bool { return o.state != unset }

func (o Value[T]) IsNull() bool { return o.state == null }

// Get returns the value and true only when a non-null value was supplied.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.state == set
}

// Or returns the value when set, otherwise fallback.
func (o Value[T]) Or(fallback T) T {
	if o.state == set {
		return o.v
	}
	return fallback
}

// Ptr returns nil for unset and null values.
func (o Value[T]) Ptr() *T {
	if o.state != set {
		return nil
	}
	v := o.v
	return &v
}

func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.v, o.state = zero, null
		return nil
	}
	if err := json.Unmarshal(data, &o.v); err != nil {
		return err
	}
	o.state = set
	return nil
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if o.state != set {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}
