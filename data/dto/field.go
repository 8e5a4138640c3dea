package dto

import (
	"bytes"
	"encoding/json"
)

// Field is a PATCH field that remembers whether the client sent it and
// whether it was an explicit null. A plain pointer cannot tell
// {"title":null} apart from {}.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// NewField returns a Field holding value, as if the client had sent it.
func NewField[T any](value T) Field[T] {
	return Field[T]{Set: true, Value: value}
}

// UnmarshalJSON is only called for keys present in the body, null included.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

// Ptr returns the sent value, or nil when the field was absent or null.
func (f Field[T]) Ptr() *T {
	if !f.Set || f.Null {
		return nil
	}
	v := f.Value
	return &v
}
