package durable_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/currykit/websession/core/durable"
)

func TestNewFS_CreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "sessiondata")
	store, err := durable.NewFS(dir)
	require.NoError(t, err)
	require.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestNewFS_EmptyDir(t *testing.T) {
	t.Parallel()

	_, err := durable.NewFS("")
	require.Error(t, err)
	assert.ErrorIs(t, err, durable.ErrStorageUnavailable)
}

func TestFS_LoadMissing(t *testing.T) {
	t.Parallel()

	store, err := durable.NewFS(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "absent")
	assert.ErrorIs(t, err, durable.ErrNotFound)
}

func TestFS_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := durable.NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "counter", []byte(`{"epoch":12,"seq":3}`)))

	data, err := store.Load(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, `{"epoch":12,"seq":3}`, string(data))
}

func TestFS_SaveOverwrites(t *testing.T) {
	t.Parallel()

	store, err := durable.NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "v", []byte("one")))
	require.NoError(t, store.Save(ctx, "v", []byte("two")))

	data, err := store.Load(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestFS_InvalidNames(t *testing.T) {
	t.Parallel()

	store, err := durable.NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"", "a/b", `a\b`, "..", "x.lock", "y.tmp-1"} {
		err := store.Save(ctx, name, []byte("x"))
		assert.ErrorIs(t, err, durable.ErrInvalidName, "name %q", name)
	}
}

func TestFS_UpdateMissingValue(t *testing.T) {
	t.Parallel()

	store, err := durable.NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	err = store.Update(ctx, "v", func(data []byte, found bool) ([]byte, error) {
		assert.False(t, found)
		assert.Empty(t, data)
		return []byte("init"), nil
	})
	require.NoError(t, err)

	data, err := store.Load(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, "init", string(data))
}

func TestFS_UpdateSerializesWriters(t *testing.T) {
	t.Parallel()

	store, err := durable.NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "n", []byte{'0'}))

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, "n", func(data []byte, found bool) ([]byte, error) {
				return append(data, 'x'), nil
			})
		}()
	}
	wg.Wait()

	data, err := store.Load(ctx, "n")
	require.NoError(t, err)
	assert.Len(t, data, 1+writers, "every update must be applied exactly once")
}

func TestFS_CanceledContext(t *testing.T) {
	t.Parallel()

	store, err := durable.NewFS(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Load(ctx, "v")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, "v", nil), context.Canceled)
}
