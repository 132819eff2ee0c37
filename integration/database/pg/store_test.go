package pg_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/currykit/websession/core/durable"
	"github.com/currykit/websession/integration/database/pg"
)

// newTestStore connects to the database named by TEST_DATABASE_URL.
// Tests are skipped when the variable is unset.
func newTestStore(t *testing.T) *pg.Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.Connect(ctx, pg.Config{
		ConnectionURL:  url,
		ConnectTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := pg.NewStore(pool)
	require.NoError(t, store.EnsureSchema(ctx))
	return store
}

// freshName keeps parallel test runs from colliding on table rows.
func freshName() string {
	return "test_" + uuid.NewString()
}

func TestStore_LoadMissing(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Load(context.Background(), freshName())
	assert.ErrorIs(t, err, durable.ErrNotFound)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	name := freshName()

	require.NoError(t, store.Save(ctx, name, []byte(`{"epoch":12,"seq":3}`)))

	data, err := store.Load(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, `{"epoch":12,"seq":3}`, string(data))
}

func TestStore_UpdateSerializesWriters(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	name := freshName()

	require.NoError(t, store.Save(ctx, name, []byte{'0'}))

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, name, func(data []byte, found bool) ([]byte, error) {
				return append(data, 'x'), nil
			})
		}()
	}
	wg.Wait()

	data, err := store.Load(ctx, name)
	require.NoError(t, err)
	assert.Len(t, data, 1+writers, "every update must be applied exactly once")
}

func TestStore_UpdateSerializesFirstCreation(t *testing.T) {
	t.Parallel()

	// The value does not exist yet, so no row lock is available; the
	// advisory lock must still serialize the racing creators.
	store := newTestStore(t)
	ctx := context.Background()
	name := freshName()

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, name, func(data []byte, found bool) ([]byte, error) {
				return append(data, 'x'), nil
			})
		}()
	}
	wg.Wait()

	data, err := store.Load(ctx, name)
	require.NoError(t, err)
	assert.Len(t, data, writers, "concurrent first creations must not lose updates")
}
