// Package middleware provides net/http middleware for session-aware
// request handling: session cookie decoration, a cookie-required gate that
// serves an informational page to first-time visitors, request IDs, and
// structured request logging.
//
// Middleware follows the standard func(http.Handler) http.Handler shape
// and composes with any router:
//
//	binder := sessiontransport.NewBinder(gen)
//	mux := http.NewServeMux()
//	mux.Handle("/", handler)
//
//	wrapped := middleware.RequestID()(
//		middleware.Session(binder)(
//			middleware.Logging(log)(mux),
//		),
//	)
//
// Logging sits inside Session so the access log can include the resolved
// session identity.
package middleware
