package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/ajaymaurya90/ecompointer-backend/internal/dto"
	"github.com/ajaymaurya90/ecompointer-backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limiter decides whether a request identified by key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*service.RateLimitResult, error)
}

// RateLimitMiddleware creates a rate limiting middleware. When the limiter
// itself fails the request is let through and the failure is logged.
func RateLimitMiddleware(limiter Limiter, limit int, window time.Duration, keyFunc func(*gin.Context) string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)

		result, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("Rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := strconv.Itoa(int(math.Ceil(result.RetryAfter.Seconds())))
			c.Header("Retry-After", retryAfter)
			c.Header("X-RateLimit-Retry-After", retryAfter)

			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:   "Too Many Requests",
				Message: "Rate limit exceeded, try again in " + result.RetryAfter.Round(time.Second).String(),
			})
			return
		}

		c.Next()
	}
}

// RouteAndIPKey scopes the limit to one route and client address, so login
// attempts do not eat into the registration budget.
func RouteAndIPKey(c *gin.Context) string {
	return c.FullPath() + ":" + c.ClientIP()
}
