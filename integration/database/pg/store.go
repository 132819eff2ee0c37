package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/currykit/websession/core/durable"
)

const schema = `
CREATE TABLE IF NOT EXISTS durable_values (
    name       text PRIMARY KEY,
    data       bytea NOT NULL,
    updated_at timestamptz NOT NULL DEFAULT NOW()
);
`

// Store is a Postgres-backed durable.Store keeping each named value in the
// durable_values table.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a durable store over an established connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the backing table if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return errors.Join(durable.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.row(ctx, name).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, durable.ErrNotFound
		}
		return nil, errors.Join(durable.ErrStorageUnavailable, err)
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	const upsert = `
		INSERT INTO durable_values (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`

	var err error
	if tx, ok := TxFromContext(ctx); ok {
		_, err = tx.Exec(ctx, upsert, name, data)
	} else {
		_, err = s.pool.Exec(ctx, upsert, name, data)
	}
	if err != nil {
		return errors.Join(durable.ErrStorageUnavailable, err)
	}
	return nil
}

// Update reads the value under a row lock, applies fn, and writes the
// result back in the same transaction, serializing concurrent updaters.
// When the context carries a transaction via WithTx, that transaction is
// used and left open for the caller to commit.
func (s *Store) Update(ctx context.Context, name string, fn func(data []byte, found bool) ([]byte, error)) error {
	if tx, ok := TxFromContext(ctx); ok {
		return s.updateInTx(ctx, tx, name, fn)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Join(durable.ErrStorageUnavailable, err)
	}
	// Rollback is a no-op after a successful commit.
	defer tx.Rollback(ctx)

	if err := s.updateInTx(ctx, tx, name, fn); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Join(durable.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) updateInTx(ctx context.Context, tx pgx.Tx, name string, fn func(data []byte, found bool) ([]byte, error)) error {
	// FOR UPDATE cannot lock a row that does not exist yet, so two first
	// creations of the same name would both read the empty state and the
	// second upsert would drop the first writer's result. An advisory
	// transaction lock keyed on the name serializes creations too; it is
	// released automatically at commit or rollback.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, name); err != nil {
		return errors.Join(durable.ErrStorageUnavailable, err)
	}

	var data []byte
	found := true
	err := tx.QueryRow(ctx, `SELECT data FROM durable_values WHERE name = $1 FOR UPDATE`, name).Scan(&data)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return errors.Join(durable.ErrStorageUnavailable, err)
		}
		data, found = nil, false
	}

	next, err := fn(data, found)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO durable_values (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		name, next)
	if err != nil {
		return errors.Join(durable.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) row(ctx context.Context, name string) pgx.Row {
	const query = `SELECT data FROM durable_values WHERE name = $1`
	if tx, ok := TxFromContext(ctx); ok {
		return tx.QueryRow(ctx, query, name)
	}
	return s.pool.QueryRow(ctx, query, name)
}
