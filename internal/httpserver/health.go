package httpserver

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck verifies that a dependency is reachable. Implementations should
// honor the context deadline.
type HealthCheck func(ctx context.Context) error

const healthCheckTimeout = 5 * time.Second

// RegisterHealthRoutes installs /health and /ready endpoints. Readiness
// executes the registered checks; health reports process liveness only.
func RegisterHealthRoutes(router *gin.Engine, serviceName, version string, checks map[string]HealthCheck) {
	started := time.Now()

	router.GET("/health", func(c *gin.Context) {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"service":       serviceName,
			"version":       version,
			"uptime":        time.Since(started).String(),
			"goroutines":    runtime.NumGoroutine(),
			"heap_alloc_mb": mem.HeapAlloc / 1024 / 1024,
			"num_gc":        mem.NumGC,
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		results := make(map[string]string, len(checks))
		ready := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				ready = false
				continue
			}
			results[name] = "ok"
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not ready"
		}
		c.JSON(status, gin.H{"status": state, "checks": results})
	})
}
