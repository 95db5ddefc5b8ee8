package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"sales-forecast/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server owns the HTTP listener.
type Server struct {
	server *http.Server
	logger *zap.Logger
}

// NewServer wraps router in an http.Server configured from cfg.
func NewServer(cfg *config.Config, router *gin.Engine, logger *zap.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		logger: logger,
	}
}

// Start blocks serving requests until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
