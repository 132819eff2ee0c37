// Package pg provides a Postgres-backed durable.Store for session state
// using jackc/pgx. Each named durable value is one row in a key-value
// table; Update takes a row lock inside a transaction so concurrent
// executions serialize instead of losing writes.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := pg.NewStore(pool)
//	if err := store.EnsureSchema(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// A pgx.Tx placed in the context via WithTx is used for all queries of an
// operation, letting callers fold session writes into a larger transaction.
package pg
