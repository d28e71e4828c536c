package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/engine/infra/server/routes"
	"github.com/docbridge/docbridge/pkg/config"
	"github.com/docbridge/docbridge/pkg/logger"
	"github.com/docbridge/docbridge/pkg/version"
)

const (
	serverShutdownTimeout = 5 * time.Second
	httpReadTimeout       = 15 * time.Second
	httpWriteTimeout      = 15 * time.Second
	httpIdleTimeout       = 60 * time.Second
	hostAny               = "0.0.0.0"
	hostLoopback          = "127.0.0.1"
)

// Server owns the HTTP surface and the default backend connection. The
// logger and configuration are taken from the context given to NewServer.
type Server struct {
	router  *gin.Engine
	ctx     context.Context
	cancel  context.CancelFunc
	connect backend.Connector
}

// NewServer creates a server bound to ctx. Cancellation of ctx triggers a
// graceful shutdown.
func NewServer(ctx context.Context) *Server {
	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		ctx:     serverCtx,
		cancel:  cancel,
		connect: backend.Connect,
	}
}

// Run dials the default backend, builds the router, and serves until a
// shutdown signal or a fatal listener error.
func (s *Server) Run() error {
	deps, cleanupFuncs, err := s.setupDependencies()
	if err != nil {
		return err
	}
	defer s.cleanup(cleanupFuncs)

	s.buildRouter(deps)

	return s.startAndRunServer()
}

func (s *Server) buildRouter(deps *Deps) {
	cfg := config.FromContext(s.ctx)
	log := logger.FromContext(s.ctx)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(ContextMiddleware(log, cfg))
	r.Use(LoggerMiddleware())
	if cfg.Server.CORSEnabled {
		r.Use(CORSMiddleware(cfg.Server.CORS))
	}
	RegisterRoutes(s.ctx, r, deps)
	s.router = r
}

func (s *Server) startAndRunServer() error {
	srv := s.createHTTPServer()
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return s.handleGracefulShutdown(srv, errCh)
}

func (s *Server) createHTTPServer() *http.Server {
	cfg := config.FromContext(s.ctx)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	s.logStartupBanner(cfg)
	return &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: httpWriteTimeout,
		IdleTimeout:  httpIdleTimeout,
	}
}

func (s *Server) logStartupBanner(cfg *config.Config) {
	log := logger.FromContext(s.ctx)
	httpURL := fmt.Sprintf("http://%s:%d", friendlyHost(cfg.Server.Host), cfg.Server.Port)
	log.Info("Starting docbridge server",
		"version", version.Get().Version,
		"api", httpURL+routes.Base(),
		"health", httpURL+routes.Health(),
	)
}

// friendlyHost rewrites wildcard bind addresses into something clickable.
func friendlyHost(h string) string {
	if h == hostAny || h == "::" || h == "" {
		return hostLoopback
	}
	return h
}

func (s *Server) handleGracefulShutdown(srv *http.Server, errCh <-chan error) error {
	log := logger.FromContext(s.ctx)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
		log.Debug("Received shutdown signal, initiating graceful shutdown")
	case <-s.ctx.Done():
		log.Debug("Context canceled, initiating graceful shutdown")
	}
	s.cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("Server shutdown completed successfully")
	return nil
}
