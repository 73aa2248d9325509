package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutrilens/backend/config"
	"github.com/pageza/nutrilens/backend/internal/api"
	"github.com/pageza/nutrilens/backend/internal/middleware"
	"github.com/pageza/nutrilens/backend/internal/slogx"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 5 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *slog.Logger
}

// New builds the router with logging, recovery and CORS in front of the API
// routes.
func New(cfg *config.Config, logger *slog.Logger, svc api.Services) *Server {
	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// Forwarding headers are honoured only from the configured proxies.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn("invalid trusted proxies, trusting none", "error", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(
		slogx.GinMiddleware(logger),
		middleware.ErrorHandler(),
		middleware.CORS(cfg.CORSOrigins),
	)
	api.RegisterRoutes(router, svc)

	return &Server{
		router: router,
		logger: logger,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
