package model

import "encoding/json"

// Nullable records whether a JSON key was present at all, and if so whether
// it was null. A missing key leaves Set false; `null` sets Set with a nil Value.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
