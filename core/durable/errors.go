package durable

import "errors"

var (
	// ErrNotFound is returned when a named value does not exist in the store.
	ErrNotFound = errors.New("durable value not found")
	// ErrStorageUnavailable is returned when the backing storage location
	// cannot be created or accessed. Callers treat this as fatal for the request.
	ErrStorageUnavailable = errors.New("durable storage unavailable")
	// ErrInvalidName is returned when a value name contains characters that
	// cannot be mapped to the backing storage.
	ErrInvalidName = errors.New("invalid durable value name")
)
