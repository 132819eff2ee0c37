package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/currykit/websession/middleware"
)

func TestRequestID_GeneratesUUID(t *testing.T) {
	t.Parallel()

	var got string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = middleware.GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, got)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
	assert.Equal(t, got, w.Header().Get("X-Request-ID"))
}

func TestRequestID_IgnoresClientHeaderByDefault(t *testing.T) {
	t.Parallel()

	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "client-chosen")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.NotEqual(t, "client-chosen", w.Header().Get("X-Request-ID"))
}

func TestRequestIDWithConfig_UseExisting(t *testing.T) {
	t.Parallel()

	handler := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		UseExisting: true,
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "client-chosen")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, "client-chosen", w.Header().Get("X-Request-ID"))
}

func TestRequestIDWithConfig_CustomGeneratorAndHeader(t *testing.T) {
	t.Parallel()

	handler := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:  func() string { return "fixed" },
		HeaderName: "X-Trace-ID",
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "fixed", w.Header().Get("X-Trace-ID"))
}
