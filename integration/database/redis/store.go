package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/currykit/websession/core/durable"
)

// maxUpdateRetries bounds optimistic transaction retries under contention.
const maxUpdateRetries = 16

// Store is a Redis-backed durable.Store. Each named value lives under
// "<prefix>:<name>"; values carry no Redis-side TTL because session entry
// expiry is handled by the session store's own pruning.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore creates a durable store over an established Redis client.
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "websession"
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(name string) string {
	return s.prefix + ":" + name
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, durable.ErrNotFound
		}
		return nil, errors.Join(durable.ErrStorageUnavailable, err)
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return errors.Join(durable.ErrStorageUnavailable, err)
	}
	return nil
}

// Update applies fn inside an optimistic WATCH transaction: if a concurrent
// writer touches the key between the read and the write, the transaction
// fails and is retried with the fresh value.
func (s *Store) Update(ctx context.Context, name string, fn func(data []byte, found bool) ([]byte, error)) error {
	key := s.key(name)

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		found := true
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				return err
			}
			data, found = nil, false
		}

		next, err := fn(data, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrUpdateConflict
}
