package sessionstore

import "time"

// DefaultLifespan is the idle time after which an entry is considered dead.
const DefaultLifespan = time.Hour

type config struct {
	lifespan    time.Duration
	pruneOnRead bool
	now         func() time.Time
}

func defaultConfig() config {
	return config{
		lifespan: DefaultLifespan,
		now:      time.Now,
	}
}

// Option is a functional option for configuring a session store.
type Option func(*config)

// WithLifespan sets the entry time-to-live.
func WithLifespan(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.lifespan = d
		}
	}
}

// WithPruneOnRead makes Get and GetOrDefault honor the TTL cutoff instead
// of returning entries that expired but were not yet pruned by a write.
func WithPruneOnRead(enabled bool) Option {
	return func(c *config) {
		c.pruneOnRead = enabled
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
