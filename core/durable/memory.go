package durable

import (
	"context"
	"sync"
)

// Memory is an in-memory Store. It exists so session components can be
// tested without touching the filesystem; it is still safe for concurrent
// use within a single process.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.values[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memory) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[name] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Update(ctx context.Context, name string, fn func(data []byte, found bool) ([]byte, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	data, found := m.values[name]
	next, err := fn(append([]byte(nil), data...), found)
	if err != nil {
		return err
	}
	m.values[name] = next
	return nil
}
