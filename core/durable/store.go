package durable

import "context"

// Store defines the persistence interface for named durable values.
// Implementations must be safe for use by concurrent executions.
type Store interface {
	// Load returns the current bytes of the named value.
	// Returns ErrNotFound if the value has never been saved.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save replaces the named value. The write must be atomic: a concurrent
	// Load observes either the previous or the new bytes, never a mix.
	Save(ctx context.Context, name string, data []byte) error

	// Update applies fn to the current bytes under mutual exclusion with
	// other Update calls for the same name. fn receives the current bytes
	// and found=false when the value does not exist yet; the returned bytes
	// are persisted before Update returns.
	Update(ctx context.Context, name string, fn func(data []byte, found bool) ([]byte, error)) error
}
