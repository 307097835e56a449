package api

import (
	"github.com/gin-gonic/gin"

	"github.com/papertrail/classifier/internal/httpserver"
	"github.com/papertrail/classifier/internal/logger"
	"github.com/papertrail/classifier/internal/telemetry"
)

// ServerOptions configures the API server beyond the base HTTP settings.
type ServerOptions struct {
	JWTSecret string
	Checks    map[string]httpserver.HealthCheck
}

// NewServer builds the full HTTP server with middleware, health routes, and
// the API surface wired in.
func NewServer(
	cfg httpserver.Config,
	h *Handler,
	tp *telemetry.Provider,
	log logger.Logger,
	opts ServerOptions,
) *httpserver.Server {
	builder := httpserver.NewBuilder(cfg).
		WithLogger(log).
		WithRoutes(func(router *gin.Engine) {
			RegisterRoutes(router, h, tp, opts.JWTSecret)
		})

	for name, check := range opts.Checks {
		builder.WithHealthCheck(name, check)
	}

	return builder.Build()
}
