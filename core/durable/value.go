package durable

import (
	"context"
	"encoding/json"
	"errors"
)

// Value is a typed view over a named durable value. The value round-trips
// through JSON; an absent or unparsable stored value decodes to the default
// supplied at construction, so readers never fail on corrupt data.
type Value[T any] struct {
	store Store
	name  string
	def   T
}

// NewValue binds a typed value to a name in the given store.
// def is returned whenever the stored bytes are missing or corrupt.
func NewValue[T any](store Store, name string, def T) *Value[T] {
	return &Value[T]{
		store: store,
		name:  name,
		def:   def,
	}
}

// Name returns the durable name the value is stored under.
func (v *Value[T]) Name() string {
	return v.name
}

// Get returns the current value, or the default when the stored value is
// absent or cannot be decoded.
func (v *Value[T]) Get(ctx context.Context) (T, error) {
	data, err := v.store.Load(ctx, v.name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return v.def, nil
		}
		return v.def, err
	}
	return v.decode(data), nil
}

// Set replaces the current value.
func (v *Value[T]) Set(ctx context.Context, val T) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return v.store.Save(ctx, v.name, data)
}

// Update applies fn to the current value under the store's Update mutual
// exclusion and returns the value that was persisted.
func (v *Value[T]) Update(ctx context.Context, fn func(T) (T, error)) (T, error) {
	var result T
	err := v.store.Update(ctx, v.name, func(data []byte, found bool) ([]byte, error) {
		cur := v.def
		if found {
			cur = v.decode(data)
		}
		next, err := fn(cur)
		if err != nil {
			return nil, err
		}
		result = next
		return json.Marshal(next)
	})
	if err != nil {
		return v.def, err
	}
	return result, nil
}

// decode falls back to the default on any parse failure; partial data loss
// is accepted over failing the request.
func (v *Value[T]) decode(data []byte) T {
	var val T
	if err := json.Unmarshal(data, &val); err != nil {
		return v.def
	}
	return val
}
