package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/papertrail/classifier/internal/logger"
)

// Server wraps an http.Server with graceful shutdown handling.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	config     Config
	logger     logger.Logger
}

// Builder assembles a Server step by step.
type Builder struct {
	config Config
	logger logger.Logger
	checks map[string]HealthCheck
	routes func(*gin.Engine)
}

// NewBuilder creates a server builder for the given config.
func NewBuilder(cfg Config) *Builder {
	cfg.SetDefaults()
	return &Builder{
		config: cfg,
		logger: logger.NewNop(),
		checks: make(map[string]HealthCheck),
	}
}

// WithLogger sets the logger used by middleware and lifecycle events.
func (b *Builder) WithLogger(log logger.Logger) *Builder {
	b.logger = log
	return b
}

// WithHealthCheck registers a named readiness check.
func (b *Builder) WithHealthCheck(name string, check HealthCheck) *Builder {
	b.checks[name] = check
	return b
}

// WithRoutes registers the application route setup callback.
func (b *Builder) WithRoutes(setup func(*gin.Engine)) *Builder {
	b.routes = setup
	return b
}

// Build constructs the server with middleware and routes applied.
func (b *Builder) Build() *Server {
	if b.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(Recovery(b.logger))
	router.Use(RequestID())
	router.Use(RequestLogger(b.logger))
	router.Use(CORS(b.config.AllowedOrigins))

	RegisterHealthRoutes(router, b.config.ServiceName, b.config.ServiceVersion, b.checks)

	if b.routes != nil {
		b.routes(router)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", b.config.Port),
			Handler:      router,
			ReadTimeout:  b.config.ReadTimeout,
			WriteTimeout: b.config.WriteTimeout,
			IdleTimeout:  b.config.IdleTimeout,
		},
		router: router,
		config: b.config,
		logger: b.logger,
	}
}

// Router exposes the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("http server starting",
		logger.String("addr", s.httpServer.Addr),
		logger.String("service", s.config.ServiceName),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Run starts the server and blocks until SIGINT or SIGTERM, then shuts
// down gracefully within the configured shutdown timeout.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		s.logger.Info("signal received", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
