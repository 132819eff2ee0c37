package sessiontransport

import "net/http"

// CookiesFromRequest flattens the request cookies into the mapping the
// Binder operates on. When a cookie name repeats, the first value wins,
// matching net/http lookup order.
func CookiesFromRequest(r *http.Request) map[string]string {
	cookies := r.Cookies()
	m := make(map[string]string, len(cookies))
	for _, c := range cookies {
		if _, ok := m[c.Name]; !ok {
			m[c.Name] = c.Value
		}
	}
	return m
}

// HTTPCookie converts the session cookie into its transport-level form.
func (c SessionCookie) HTTPCookie() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Expires:  c.Expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Apply attaches the session cookie to the response. It must run before
// the first body write.
func Apply(w http.ResponseWriter, c SessionCookie) {
	http.SetCookie(w, c.HTTPCookie())
}
