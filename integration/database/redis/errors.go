package redis

import "errors"

// Domain-specific Redis errors for consistent error handling.
// Use errors.Is() to check error types for retry logic.
var (
	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
	// ErrUpdateConflict is returned when an optimistic Update transaction
	// keeps colliding with concurrent writers and runs out of retries.
	ErrUpdateConflict = errors.New("redis update conflicted too many times")
)
