package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wellsgz/pingpong/internal/config"
	"github.com/wellsgz/pingpong/internal/logging"
)

// Server exposes the latest snapshot over HTTP
type Server struct {
	config     *config.Config
	router     *gin.Engine
	httpServer *http.Server
	handler    *Handler
	hub        *Hub
	onError    func(error)
}

// NewServer creates a new API server with the given configuration
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.Use(RequestLogger())
	router.Use(CORS())

	hub := NewHub()
	handler := NewHandler(cfg, hub)

	registry := prometheus.NewRegistry()
	registry.MustRegister(NewSnapshotCollector(hub, cfg.Target))

	SetupRoutes(router, handler, hub, registry)

	return &Server{
		config:  cfg,
		router:  router,
		handler: handler,
		hub:     hub,
	}
}

// Serve runs the hub and serves on ln until Shutdown is called
func (s *Server) Serve(ln net.Listener) error {
	go s.hub.Run()

	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logging.Info("API", "Serving on "+ln.Addr().String(), nil)
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// StartAsync binds address and serves in a goroutine. Binding errors are
// returned; later serve errors are logged.
func (s *Server) StartAsync(address string) error {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	go func() {
		if err := s.Serve(ln); err != nil {
			logging.Error("API", "Server error", err)
			if s.onError != nil {
				s.onError(err)
			}
		}
	}()
	return nil
}

// OnError sets a callback for serve errors that happen after StartAsync
// returned. It must be set before StartAsync.
func (s *Server) OnError(fn func(error)) {
	s.onError = fn
}

// Shutdown gracefully shuts down the server with a timeout
func (s *Server) Shutdown(timeout time.Duration) error {
	s.hub.Stop()

	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logging.Info("API", "Server stopped", nil)
	return nil
}

// Router returns the underlying Gin router for testing or extension
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Hub returns the snapshot hub; it is the renderer to register with the
// reporter
func (s *Server) Hub() *Hub {
	return s.hub
}
