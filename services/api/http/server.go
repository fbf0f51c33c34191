package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/02loveslollipop/campus-pulse/services/api/campus"
	"github.com/02loveslollipop/campus-pulse/services/api/chat"
	"github.com/02loveslollipop/campus-pulse/services/api/config"
	"github.com/02loveslollipop/campus-pulse/services/api/metrics"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
)

// Deps are the collaborators the handlers call into.
type Deps struct {
	Campus    *campus.Service
	Assistant *chat.Assistant
	Registry  *registry.Registry
	Metrics   *metrics.Metrics
	Log       logrus.FieldLogger
}

// Server bundles router and dependencies for the REST API.
type Server struct {
	cfg    config.Config
	deps   Deps
	engine *gin.Engine
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(requestLogMiddleware(deps.Log, deps.Metrics))
	engine.Use(corsMiddleware())

	limit := rate.Inf
	if cfg.RateLimitRPS > 0 {
		limit = rate.Limit(cfg.RateLimitRPS)
	}
	engine.Use(rateLimitMiddleware(rate.NewLimiter(limit, max(cfg.RateLimitBurst, 1))))

	server := &Server{cfg: cfg, deps: deps, engine: engine}
	server.registerRoutes()
	server.registerV1Routes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))
}
