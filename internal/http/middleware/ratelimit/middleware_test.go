package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"cargo-platform-go/internal/logx"
	"cargo-platform-go/internal/testutil/testlog"
)

type stubLimiter struct {
	decision Decision
	keys     []string
}

func (s *stubLimiter) Take(key string) Decision {
	s.keys = append(s.keys, key)
	return s.decision
}

func TestMiddleware_Allows_RequestPassesToNext(t *testing.T) {
	t.Parallel()

	nextCalled := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled++
		w.WriteHeader(http.StatusOK)
	})

	lim := &stubLimiter{decision: Decision{Allowed: true}}
	h := New(logx.Nop(), nil, lim).Handler()(next)

	r := httptest.NewRequest(http.MethodGet, "http://example/cargos", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, nextCalled)
	require.Equal(t, []string{"ip:1.2.3.4"}, lim.keys)
}

func TestMiddleware_Blocks_Returns429AndIncrementsCounter(t *testing.T) {
	t.Parallel()

	nextCalled := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled++
	})
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "ratelimit_denied_total", Help: "denied requests"})
	rec := testlog.New()
	h := New(rec.Logger(), counter, &stubLimiter{decision: Decision{RetryAfter: 2500 * time.Millisecond}}).Handler()(next)

	r := httptest.NewRequest(http.MethodGet, "http://example/cargos", nil)
	r.Header.Set(ActorHeader, "7")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Zero(t, nextCalled)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Equal(t, "3", w.Header().Get("Retry-After"))
	require.JSONEq(t, `{"error":"too many requests","code":"rate_limited"}`, w.Body.String())
	require.Equal(t, float64(1), testutil.ToFloat64(counter))

	e, ok := rec.Find("rate limit exceeded")
	require.True(t, ok)
	key, _ := e.Field("key")
	require.Equal(t, "user:7", key)
}

func TestRequestKey(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	require.Equal(t, "ip:10.0.0.1", requestKey(r))

	r.Header.Set(ActorHeader, "not-a-number")
	require.Equal(t, "ip:10.0.0.1", requestKey(r))

	r.Header.Set(ActorHeader, " 42 ")
	require.Equal(t, "user:42", requestKey(r))
}

func TestRetryAfterSeconds(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1", retryAfterSeconds(0))
	require.Equal(t, "1", retryAfterSeconds(200*time.Millisecond))
	require.Equal(t, "1", retryAfterSeconds(time.Second))
	require.Equal(t, "2", retryAfterSeconds(1001*time.Millisecond))
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)

	r.RemoteAddr = "[::1]:8080"
	require.Equal(t, "::1", clientIP(r))

	r.RemoteAddr = "not-a-hostport"
	require.Equal(t, "not-a-hostport", clientIP(r))

	r.RemoteAddr = ""
	require.Equal(t, "unknown", clientIP(r))
}

func TestMiddleware_NilLimiterAllowsEverything(t *testing.T) {
	t.Parallel()

	h := New(nil, nil, nil).Handler()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
}
