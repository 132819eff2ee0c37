// Package sessionstore provides a generic, durable key-value store keyed by
// session identity with time-to-live eviction.
//
// Each logical store is identified by a distinct durable name and an empty
// default value. State is never cached in process memory: every operation
// re-reads and re-writes the backing durable value, which makes the store
// usable from independent, short-lived executions.
//
// Expired entries are pruned lazily as a side effect of Put, Modify, and
// Remove. Get is read-only; by default it follows the original semantics
// and may return a technically expired entry until the next write prunes
// it. Enable WithPruneOnRead to apply the TTL cutoff on reads as well.
//
//	store, _ := durable.NewFS(dir)
//	carts := sessionstore.New(store, "carts", []string(nil),
//		sessionstore.WithLifespan(time.Hour),
//	)
//
//	err := carts.Modify(ctx, sid, func(items []string) []string {
//		return append(items, "apple")
//	})
package sessionstore
