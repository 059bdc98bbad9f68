package middleware

import (
	"context"
	"errors"
	"lojastreet_server/structs"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
)

type countingLimiter struct {
	counts    map[string]int
	err       error
	endpoints []string
}

func (l *countingLimiter) IncrementRateLimit(_ context.Context, ip, endpoint string, _ time.Duration) (int, error) {
	if l.err != nil {
		return 0, l.err
	}
	l.endpoints = append(l.endpoints, endpoint)
	l.counts[ip+endpoint]++
	return l.counts[ip+endpoint], nil
}

func newRateLimitedHandler(limiter RateLimiter) http.Handler {
	cfg := &structs.Config{RateLimit: &structs.RateLimitConfig{
		Enabled:        true,
		AuthLimit:      2,
		AuthWindow:     time.Minute,
		AdminLimit:     5,
		AdminWindow:    time.Minute,
		CheckoutLimit:  3,
		CheckoutWindow: time.Minute,
		GeneralLimit:   10,
		GeneralWindow:  time.Minute,
	}}
	logger := gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
	mw := NewMiddleware(cfg, logger, nil, limiter, nil)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return mw.RateLimitMiddleware()(ok)
}

func send(h http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:51234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_LoginLimit(t *testing.T) {
	limiter := &countingLimiter{counts: map[string]int{}}
	h := newRateLimitedHandler(limiter)

	assert.Equal(t, http.StatusOK, send(h, http.MethodPost, "/api/admin/login").Code)
	w := send(h, http.MethodPost, "/api/admin/login")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = send(h, http.MethodPost, "/api/admin/login")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_SkipsHealthAndWebhooks(t *testing.T) {
	limiter := &countingLimiter{counts: map[string]int{}}
	h := newRateLimitedHandler(limiter)

	send(h, http.MethodGet, "/api/health")
	send(h, http.MethodGet, "/health/database")
	send(h, http.MethodPost, "/api/webhooks/mp")

	assert.Empty(t, limiter.endpoints)
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	h := newRateLimitedHandler(&countingLimiter{err: errors.New("redis down")})

	for range 20 {
		assert.Equal(t, http.StatusOK, send(h, http.MethodPost, "/api/checkout/pix").Code)
	}
}

func TestRateLimitMiddleware_NoLimiter(t *testing.T) {
	h := newRateLimitedHandler(nil)
	assert.Equal(t, http.StatusOK, send(h, http.MethodGet, "/api/products").Code)
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "/api/products/:id", normalizeEndpoint("/api/products/12"))
	assert.Equal(t, "/api/products/:id/toggle", normalizeEndpoint("/api/products/12/toggle"))
	assert.Equal(t, "/api/products", normalizeEndpoint("/api/products/"))
}
