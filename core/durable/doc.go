// Package durable provides named durable values shared across independent
// request-handling executions. It is the persistence substrate for session
// identity counters and session stores: every read re-derives state from the
// backing storage, nothing is cached in process memory.
//
// # Core Components
//
// The package provides three main pieces:
//
//   - Store: Interface for loading, saving, and atomically updating named
//     byte values (filesystem, in-memory, Redis, Postgres implementations)
//   - FS: Filesystem-backed store keeping each value in a dedicated
//     non-public-readable directory, created on first use
//   - Value[T]: Generic typed wrapper that round-trips a value through JSON
//     and falls back to a documented default when the stored bytes are
//     absent or corrupt
//
// # Basic Usage
//
// Create a filesystem store and a typed value:
//
//	import "github.com/currykit/websession/core/durable"
//
//	store, err := durable.NewFS("/var/lib/myapp/sessions")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	counter := durable.NewValue[int](store, "visits", 0)
//
//	n, err := counter.Update(ctx, func(v int) (int, error) {
//		return v + 1, nil
//	})
//
// Update is atomic with respect to other Update calls on the same store:
// the filesystem implementation serializes updates with an advisory file
// lock, the Redis implementation uses optimistic WATCH transactions, and
// the Postgres implementation takes a row lock. Plain Save after an
// independent Load remains last-writer-wins.
package durable
