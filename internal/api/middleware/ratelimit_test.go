package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitedServer(t *testing.T, ratePerMinute, burst int) http.Handler {
	t.Helper()
	rl := NewRateLimiter(ratePerMinute, burst)
	t.Cleanup(rl.Stop)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return rl.Limit(next)
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	handler := rateLimitedServer(t, 1, 3)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/signin", nil)
		req.RemoteAddr = "10.0.0.1:50000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d within burst", i+1)
	}

	req := httptest.NewRequest(http.MethodPost, "/signin", nil)
	req.RemoteAddr = "10.0.0.1:50000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "Too many requests")
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	handler := rateLimitedServer(t, 1, 1)

	first := httptest.NewRequest(http.MethodPost, "/signin", nil)
	first.RemoteAddr = "10.0.0.1:50000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	exhausted := httptest.NewRequest(http.MethodPost, "/signin", nil)
	exhausted.RemoteAddr = "10.0.0.1:50001" // same host, new port
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, exhausted)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "limit keys on host, not port")

	other := httptest.NewRequest(http.MethodPost, "/signin", nil)
	other.RemoteAddr = "10.0.0.2:50000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code, "a different client gets its own budget")
}

func TestRateLimiter_TracksClients(t *testing.T) {
	rl := NewRateLimiter(60, 10)
	defer rl.Stop()

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.1:2"} {
		req := httptest.NewRequest(http.MethodPost, "/signup", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 2, rl.ClientCount())
}
