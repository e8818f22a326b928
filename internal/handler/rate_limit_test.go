package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/ajaymaurya90/ecompointer-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubLimiter struct {
	result *service.RateLimitResult
	err    error
	keys   []string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (*service.RateLimitResult, error) {
	s.keys = append(s.keys, key)
	return s.result, s.err
}

func limitedRouter(limiter Limiter) *gin.Engine {
	router := gin.New()
	router.POST("/auth/login", RateLimitMiddleware(limiter, 5, time.Minute, RouteAndIPKey, zap.NewNop()), okHandler)
	return router
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		limiter := &stubLimiter{result: &service.RateLimitResult{Allowed: true, Limit: 5, Remaining: 4}}

		w := doRequest(limitedRouter(limiter), http.MethodPost, "/auth/login", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, []string{"/auth/login:192.0.2.1"}, limiter.keys)
	})

	t.Run("exceeded", func(t *testing.T) {
		limiter := &stubLimiter{result: &service.RateLimitResult{Limit: 5, RetryAfter: 1500 * time.Millisecond}}

		w := doRequest(limitedRouter(limiter), http.MethodPost, "/auth/login", nil)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Retry-After"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("limiter failure lets the request through", func(t *testing.T) {
		limiter := &stubLimiter{err: errors.New("redis: connection refused")}

		w := doRequest(limitedRouter(limiter), http.MethodPost, "/auth/login", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	})
}
