package sessiontransport

import (
	"time"

	"github.com/currykit/websession/core/identity"
)

const (
	// DefaultCookieName is the fixed name of the session cookie.
	DefaultCookieName = "currySessionId"
	// DefaultLifespan is the session cookie lifetime; it matches the
	// session store TTL so cookie and entries expire together.
	DefaultLifespan = time.Hour
)

// Config provides environment-based configuration for the cookie binder.
type Config struct {
	// CookieName is the name of the session cookie
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"currySessionId"`

	// Lifespan is the cookie (and session) time-to-live
	Lifespan time.Duration `env:"SESSION_LIFESPAN" envDefault:"1h"`

	// ScriptPath is the CGI-style script path the deployment is mounted
	// under; the cookie path scope is derived from it
	ScriptPath string `env:"SCRIPT_NAME" envDefault:""`
}

// DefaultConfig returns a Config with the fixed defaults.
func DefaultConfig() Config {
	return Config{
		CookieName: DefaultCookieName,
		Lifespan:   DefaultLifespan,
	}
}

// NewBinderFromConfig creates a Binder from configuration.
// The identity generator must be provided by the caller.
func NewBinderFromConfig(cfg Config, gen *identity.Generator) *Binder {
	return NewBinder(gen,
		WithCookieName(cfg.CookieName),
		WithLifespan(cfg.Lifespan),
		WithMountScript(cfg.ScriptPath),
	)
}
