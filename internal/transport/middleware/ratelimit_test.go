package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/tezaurs-gateway/pkg/ctxutil"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(t *testing.T) (*RateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(time.Hour)
	rl.now = clock.Now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func get(h http.Handler, remote string, client string) int {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyze/jura", nil)
	req.RemoteAddr = remote
	if client != "" {
		req = req.WithContext(ctxutil.WithClient(req.Context(), client))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(10)(okHandler())

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, get(handler, "1.2.3.4:1234", ""), "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(5)(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(handler, "1.2.3.4:1234", ""))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyze/jura", nil)
	req.RemoteAddr = "1.2.3.4:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "13", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_SameHostDifferentPorts(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(2)(okHandler())

	assert.Equal(t, http.StatusOK, get(handler, "1.1.1.1:1000", ""))
	assert.Equal(t, http.StatusOK, get(handler, "1.1.1.1:1001", ""))
	assert.Equal(t, http.StatusTooManyRequests, get(handler, "1.1.1.1:1002", ""))
	assert.Equal(t, http.StatusOK, get(handler, "2.2.2.2:5678", ""))
}

func TestRateLimiter_KeyedByClient(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(1)(okHandler())

	assert.Equal(t, http.StatusOK, get(handler, "1.1.1.1:1000", "reader"))
	// Same client from another address shares the bucket.
	assert.Equal(t, http.StatusTooManyRequests, get(handler, "9.9.9.9:1000", "reader"))
	// Another client behind the same address does not.
	assert.Equal(t, http.StatusOK, get(handler, "1.1.1.1:1000", "writer"))
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl, clock := newTestLimiter(t)
	// 60 per minute = 1 per second
	handler := rl.Limit(60)(okHandler())

	for i := 0; i < 60; i++ {
		get(handler, "3.3.3.3:1234", "")
	}
	assert.Equal(t, http.StatusTooManyRequests, get(handler, "3.3.3.3:1234", ""))

	clock.Advance(1100 * time.Millisecond)
	assert.Equal(t, http.StatusOK, get(handler, "3.3.3.3:1234", ""))
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl, clock := newTestLimiter(t)
	handler := rl.Limit(1)(okHandler())

	get(handler, "4.4.4.4:1", "")
	clock.Advance(bucketIdleTTL + time.Second)
	rl.evictIdle(clock.Now())

	_, ok := rl.buckets.Load("ip:4.4.4.4")
	assert.False(t, ok, "idle bucket should be evicted")
}
