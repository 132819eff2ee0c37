package sessiontransport

import (
	"context"
	"strings"
	"time"

	"github.com/currykit/websession/core/identity"
)

// SessionCookie carries the parameters of the outgoing session cookie.
// It is recreated on every request/response cycle and never persisted.
type SessionCookie struct {
	Name    string
	Value   string
	Path    string
	Expires time.Time
}

// Binder resolves session identities from inbound cookie mappings and
// builds the response cookie.
type Binder struct {
	gen       *identity.Generator
	name      string
	lifespan  time.Duration
	mountPath string
	now       func() time.Time
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) BinderOption {
	return func(b *Binder) {
		if name != "" {
			b.name = name
		}
	}
}

// WithLifespan overrides the cookie lifespan.
func WithLifespan(d time.Duration) BinderOption {
	return func(b *Binder) {
		if d > 0 {
			b.lifespan = d
		}
	}
}

// WithMountScript derives the cookie path scope from a CGI-style script
// path such as "/a/b/script". An empty script path scopes the cookie to "/".
func WithMountScript(scriptPath string) BinderOption {
	return func(b *Binder) {
		b.mountPath = MountPath(scriptPath)
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) BinderOption {
	return func(b *Binder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBinder creates a Binder around the given identity generator.
func NewBinder(gen *identity.Generator, opts ...BinderOption) *Binder {
	b := &Binder{
		gen:      gen,
		name:     DefaultCookieName,
		lifespan: DefaultLifespan,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CookieName returns the session cookie name the binder operates on.
func (b *Binder) CookieName() string {
	return b.name
}

// Has reports whether the inbound cookie mapping already carries a session.
func (b *Binder) Has(cookies map[string]string) bool {
	_, ok := cookies[b.name]
	return ok
}

// Resolve returns the session identity bound to the inbound cookies,
// generating a new one when absent. The persisted counter is only touched
// on the generation path, so Resolve is idempotent for a mapping that
// already carries the cookie.
func (b *Binder) Resolve(ctx context.Context, cookies map[string]string) (string, error) {
	if id, ok := cookies[b.name]; ok {
		return id, nil
	}
	return b.gen.New(ctx)
}

// ResponseCookie builds the cookie that must accompany the outgoing page:
// the resolved identity, scoped to the mount path, expiring one lifespan
// from now.
func (b *Binder) ResponseCookie(ctx context.Context, cookies map[string]string) (SessionCookie, error) {
	id, err := b.Resolve(ctx, cookies)
	if err != nil {
		return SessionCookie{}, err
	}

	path := b.mountPath
	if path == "" {
		path = "/"
	}

	return SessionCookie{
		Name:    b.name,
		Value:   id,
		Path:    path,
		Expires: b.now().Add(b.lifespan),
	}, nil
}

// MountPath derives the cookie path scope from a script path of the form
// "/a/b/.../script": the trailing script segment is dropped, yielding
// "/a/b/...". A script mounted at the root (or a missing script path)
// yields "".
func MountPath(scriptPath string) string {
	trimmed := strings.Trim(scriptPath, "/")
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(trimmed, "/")
	if len(segments) == 1 {
		return ""
	}
	return "/" + strings.Join(segments[:len(segments)-1], "/")
}
