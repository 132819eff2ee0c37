package middleware

import (
	"context"
	"net/http"

	"github.com/currykit/websession/core/sessiontransport"
)

type sessionIDKey struct{}

// defaultExplainPage is served to first-time visitors whose browser has not
// yet echoed back the session cookie. It carries the cookie itself, so a
// retry succeeds.
const defaultExplainPage = `<!DOCTYPE html>
<html>
<head><title>Cookies required</title></head>
<body>
<h1>Cookies required</h1>
<p>This site uses a session cookie to correlate your requests.
The cookie has been set; please reload the page to continue.
No personal data is stored in the cookie itself.</p>
</body>
</html>
`

// Session attaches the response session cookie to every request and stores
// the resolved session identity in the request context. The intended page
// is always served. When an enclosing Session already decorated the
// request, the middleware passes through so the response carries a single
// session cookie.
func Session(binder *sessiontransport.Binder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetSessionID(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			cookies := sessiontransport.CookiesFromRequest(r)

			cookie, err := binder.ResponseCookie(r.Context(), cookies)
			if err != nil {
				http.Error(w, "session unavailable", http.StatusInternalServerError)
				return
			}
			sessiontransport.Apply(w, cookie)

			ctx := context.WithValue(r.Context(), sessionIDKey{}, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSessionCookieConfig configures the cookie-required gate.
type RequireSessionCookieConfig struct {
	// Binder resolves and issues session cookies
	Binder *sessiontransport.Binder
	// ExplainPage is the substitute HTML served when the request carries
	// no session cookie yet (default: a generic cookie notice)
	ExplainPage string
}

// RequireSessionCookie serves pages that depend on session continuity.
// A request that does not echo back the session cookie yet receives a
// substitute informational page instead of the real one; the response
// still carries the cookie so the retry succeeds. Requests with the
// cookie pass through decorated, identical to Session.
func RequireSessionCookie(binder *sessiontransport.Binder) func(http.Handler) http.Handler {
	return RequireSessionCookieWithConfig(RequireSessionCookieConfig{Binder: binder})
}

// RequireSessionCookieWithConfig is RequireSessionCookie with a custom
// explain page.
func RequireSessionCookieWithConfig(cfg RequireSessionCookieConfig) func(http.Handler) http.Handler {
	page := cfg.ExplainPage
	if page == "" {
		page = defaultExplainPage
	}

	return func(next http.Handler) http.Handler {
		decorated := Session(cfg.Binder)(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookies := sessiontransport.CookiesFromRequest(r)
			if cfg.Binder.Has(cookies) {
				decorated.ServeHTTP(w, r)
				return
			}

			// An enclosing Session already attached the cookie; only
			// attach it here when serving the explain page undecorated.
			if _, ok := GetSessionID(r.Context()); !ok {
				cookie, err := cfg.Binder.ResponseCookie(r.Context(), cookies)
				if err != nil {
					http.Error(w, "session unavailable", http.StatusInternalServerError)
					return
				}
				sessiontransport.Apply(w, cookie)
			}

			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(page))
		})
	}
}

// GetSessionID retrieves the session identity stored by Session.
// Returns the identity and whether it was found.
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(string)
	return id, ok
}
