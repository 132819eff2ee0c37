package identity_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/currykit/websession/core/durable"
	"github.com/currykit/websession/core/identity"
)

func fixedClock(sec int64) func() time.Time {
	return func() time.Time { return time.Unix(sec, 0) }
}

func TestGenerator_New_Format(t *testing.T) {
	t.Parallel()

	gen := identity.NewGenerator(durable.NewMemory(), identity.WithClock(fixedClock(1700000000)))

	id, err := gen.New(context.Background())
	require.NoError(t, err)

	parts := strings.SplitN(id, "-", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "1700000000", parts[0])
	assert.Equal(t, "0", parts[1], "first identity of a new epoch starts the sequence at 0")
	assert.GreaterOrEqual(t, len(parts[2]), 30, "random suffix must be at least 30 characters")
}

func TestGenerator_New_SequenceWithinSameEpoch(t *testing.T) {
	t.Parallel()

	// Default deployment starting state: counter at (0, 0), clock frozen at
	// the same epoch second. Consecutive identities carry sequences 1 and 2.
	gen := identity.NewGenerator(durable.NewMemory(), identity.WithClock(fixedClock(0)))
	ctx := context.Background()

	first, err := gen.New(ctx)
	require.NoError(t, err)
	second, err := gen.New(ctx)
	require.NoError(t, err)

	assert.Equal(t, "1", strings.SplitN(first, "-", 3)[1])
	assert.Equal(t, "2", strings.SplitN(second, "-", 3)[1])
}

func TestGenerator_New_SequenceResetsOnEpochAdvance(t *testing.T) {
	t.Parallel()

	store := durable.NewMemory()
	ctx := context.Background()

	gen := identity.NewGenerator(store, identity.WithClock(fixedClock(100)))
	_, err := gen.New(ctx)
	require.NoError(t, err)
	id, err := gen.New(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", strings.SplitN(id, "-", 3)[1])

	later := identity.NewGenerator(store, identity.WithClock(fixedClock(101)))
	id, err = later.New(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0", strings.SplitN(id, "-", 3)[1], "sequence resets when the epoch advances")
}

func TestGenerator_New_Unique(t *testing.T) {
	t.Parallel()

	gen := identity.NewGenerator(durable.NewMemory())
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := gen.New(ctx)
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate identity %q", id)
		seen[id] = struct{}{}
	}
}

func TestGenerator_New_RecoversFromCorruptCounter(t *testing.T) {
	t.Parallel()

	store := durable.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, identity.CounterName, []byte("garbage")))

	gen := identity.NewGenerator(store, identity.WithClock(fixedClock(200)))

	id, err := gen.New(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "200-0-"), "corrupt counter falls back to (0,0)")
}

func TestGenerator_New_SurvivesProcessRestart(t *testing.T) {
	t.Parallel()

	// Two generators over the same backing store stand in for two
	// independent process invocations within one second.
	store := durable.NewMemory()
	ctx := context.Background()

	a := identity.NewGenerator(store, identity.WithClock(fixedClock(300)))
	b := identity.NewGenerator(store, identity.WithClock(fixedClock(300)))

	idA, err := a.New(ctx)
	require.NoError(t, err)
	idB, err := b.New(ctx)
	require.NoError(t, err)

	assert.Equal(t, "0", strings.SplitN(idA, "-", 3)[1])
	assert.Equal(t, "1", strings.SplitN(idB, "-", 3)[1], "counter state is shared through the durable store")
}
