// Package identity generates opaque session identifiers that stay unique
// across independent, short-lived process invocations.
//
// An identifier combines three parts: the current epoch second, a sequence
// number drawn from a persisted counter, and a random suffix. Time plus
// sequence makes identifiers from the same second distinct; the random
// suffix guards against separate processes racing on the counter. The
// counter lives in a durable.Store so no in-process state is required
// between requests.
//
//	store, _ := durable.NewFS(dir)
//	gen := identity.NewGenerator(store)
//	id, err := gen.New(ctx)
package identity
