package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports whether the credential store and the rate limiter store respond.
type HealthChecker struct {
	components map[string]pinger
}

func NewHealthChecker(infra Infrastructure) *HealthChecker {
	return &HealthChecker{
		components: map[string]pinger{
			"postgres": infra.Postgres(),
			"redis":    infra.Redis(),
		},
	}
}

func (h *HealthChecker) check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	type result struct {
		name string
		err  error
	}

	results := make(chan result, len(h.components))
	for name, p := range h.components {
		go func() {
			results <- result{name: name, err: p.Ping(ctx)}
		}()
	}

	statuses := make(map[string]string, len(h.components))
	healthy := true
	for range h.components {
		r := <-results
		if r.err != nil {
			statuses[r.name] = "fail: " + r.err.Error()
			healthy = false
			continue
		}
		statuses[r.name] = "pass"
	}

	return statuses, healthy
}

func (h *HealthChecker) Handler(c *gin.Context) {
	components, healthy := h.check(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "fail",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "pass",
		"components": components,
	})
}
