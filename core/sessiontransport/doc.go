// Package sessiontransport binds session identities to HTTP cookies.
//
// The Binder reads an inbound cookie mapping to discover an existing
// session identity, generates a fresh one through core/identity when none
// is present, and produces the outgoing session cookie (name, value, path
// scope, absolute expiry) that must accompany every response.
//
// The path scope is derived from the deployment's mount path so the cookie
// is not leaked to sibling deployments sharing a host. The cookie expiry
// is always request time plus the configured lifespan, matching the
// session store TTL.
//
//	gen := identity.NewGenerator(store)
//	binder := sessiontransport.NewBinder(gen,
//		sessiontransport.WithMountScript(os.Getenv("SCRIPT_NAME")),
//	)
//
//	cookies := sessiontransport.CookiesFromRequest(r)
//	sid, err := binder.Resolve(r.Context(), cookies)
package sessiontransport
