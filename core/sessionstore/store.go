package sessionstore

import (
	"context"
	"time"

	"github.com/currykit/websession/core/durable"
)

// entry is one persisted (identity, lastWrite, value) triple.
// LastWrite is integer seconds since epoch, the same representation the
// identity counter uses.
type entry[V any] struct {
	ID        string `json:"id"`
	LastWrite int64  `json:"last_write"`
	Value     V      `json:"value"`
}

// Store is a durable mapping from session identity to a value of type V
// with lazy TTL eviction. At most one entry exists per identity.
type Store[V any] struct {
	data *durable.Value[[]entry[V]]
	def  V
	cfg  config
}

// New binds a store to a durable name. def is the value returned by
// GetOrDefault for absent identities and the starting point for Modify.
func New[V any](store durable.Store, name string, def V, opts ...Option) *Store[V] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store[V]{
		data: durable.NewValue(store, name, []entry[V](nil)),
		def:  def,
		cfg:  cfg,
	}
}

// Name returns the durable name the store persists under.
func (s *Store[V]) Name() string {
	return s.data.Name()
}

// Get returns the value for id, reporting whether an entry exists.
// The scan is read-only: nothing is pruned or rewritten. When the store
// was built with WithPruneOnRead, entries past the TTL cutoff are treated
// as absent.
func (s *Store[V]) Get(ctx context.Context, id string) (V, bool, error) {
	entries, err := s.data.Get(ctx)
	if err != nil {
		return s.def, false, err
	}

	cutoff := int64(-1)
	if s.cfg.pruneOnRead {
		cutoff = s.cutoff(s.cfg.now())
	}

	for _, e := range entries {
		if e.ID != id {
			continue
		}
		if e.LastWrite <= cutoff {
			return s.def, false, nil
		}
		return e.Value, true, nil
	}
	return s.def, false, nil
}

// GetOrDefault returns the value for id, or the store default when absent.
func (s *Store[V]) GetOrDefault(ctx context.Context, id string) (V, error) {
	val, ok, err := s.Get(ctx, id)
	if err != nil || !ok {
		return s.def, err
	}
	return val, nil
}

// Put stores val under id. Dead entries are pruned first; an existing
// entry for id keeps its slot, a new one is prepended.
func (s *Store[V]) Put(ctx context.Context, id string, val V) error {
	now := s.cfg.now().Unix()
	_, err := s.data.Update(ctx, func(entries []entry[V]) ([]entry[V], error) {
		return upsert(s.prune(entries, now), id, val, now), nil
	})
	return err
}

// Modify applies fn to the current value for id (the store default when
// absent) and persists the result. The read and the write happen as one
// atomic durable update.
func (s *Store[V]) Modify(ctx context.Context, id string, fn func(V) V) error {
	now := s.cfg.now().Unix()
	_, err := s.data.Update(ctx, func(entries []entry[V]) ([]entry[V], error) {
		cur := s.def
		for _, e := range entries {
			if e.ID != id {
				continue
			}
			if !s.cfg.pruneOnRead || e.LastWrite > s.cutoff(time.Unix(now, 0)) {
				cur = e.Value
			}
			break
		}
		return upsert(s.prune(entries, now), id, fn(cur), now), nil
	})
	return err
}

// Remove drops the entry for id, pruning dead entries along the way.
// Removing an absent identity is not an error.
func (s *Store[V]) Remove(ctx context.Context, id string) error {
	now := s.cfg.now().Unix()
	_, err := s.data.Update(ctx, func(entries []entry[V]) ([]entry[V], error) {
		live := s.prune(entries, now)
		out := live[:0]
		for _, e := range live {
			if e.ID != id {
				out = append(out, e)
			}
		}
		return out, nil
	})
	return err
}

// prune drops entries whose last write is at or before the TTL cutoff.
func (s *Store[V]) prune(entries []entry[V], now int64) []entry[V] {
	cutoff := s.cutoff(time.Unix(now, 0))
	out := entries[:0]
	for _, e := range entries {
		if e.LastWrite > cutoff {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store[V]) cutoff(now time.Time) int64 {
	return now.Unix() - int64(s.cfg.lifespan/time.Second)
}

// upsert replaces the entry for id in place or prepends a new one.
func upsert[V any](entries []entry[V], id string, val V, now int64) []entry[V] {
	for i := range entries {
		if entries[i].ID == id {
			entries[i] = entry[V]{ID: id, LastWrite: now, Value: val}
			return entries
		}
	}
	return append([]entry[V]{{ID: id, LastWrite: now, Value: val}}, entries...)
}
