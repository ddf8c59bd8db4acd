package ratelimit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_AllowsUpToLimit(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 3, result.Limit)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Zero(t, result.Remaining)
	assert.Greater(t, result.RetryAfter, time.Duration(0))
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	first, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	second, err := limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
}

func TestMemoryLimiter_WindowResets(t *testing.T) {
	limiter := NewMemoryLimiter(1, time.Minute)
	current := time.Now()
	limiter.now = func() time.Time { return current }
	ctx := context.Background()

	result, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	current = current.Add(2 * time.Minute)
	result, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, result.Allowed, "a new window starts after reset")
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (Result, error) {
	return Result{}, context.DeadlineExceeded
}

func TestMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("limits per client ip", func(t *testing.T) {
		mw := NewMiddleware(NewMemoryLimiter(1, time.Minute), logger)
		handler := mw.Handler(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/v1/identities/x/status", nil)
		req.RemoteAddr = "10.0.0.1:51234"

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "rate_limit_exceeded", body["error"])

		other := httptest.NewRequest(http.MethodGet, "/v1/identities/x/status", nil)
		other.RemoteAddr = "10.0.0.2:51234"
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, other)
		assert.Equal(t, http.StatusOK, w.Code, "another client has its own window")
	})

	t.Run("honors forwarded client address", func(t *testing.T) {
		mw := NewMiddleware(NewMemoryLimiter(1, time.Minute), logger)
		handler := mw.Handler(okHandler)

		for i, remote := range []string{"10.0.0.1:1111", "10.0.0.2:2222"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = remote
			req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.9")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if i == 0 {
				assert.Equal(t, http.StatusOK, w.Code)
			} else {
				assert.Equal(t, http.StatusTooManyRequests, w.Code,
					"both requests count against the forwarded address")
			}
		}
	})

	t.Run("fails open on limiter errors", func(t *testing.T) {
		mw := NewMiddleware(failingLimiter{}, logger)
		handler := mw.Handler(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
