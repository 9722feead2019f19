package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/wonny/sensai/pkg/config"
	"github.com/wonny/sensai/pkg/database"
	"github.com/wonny/sensai/pkg/logger"
)

// DatabaseChecker is satisfied by *database.DB
type DatabaseChecker interface {
	HealthCheck(ctx context.Context) (*database.HealthStatus, error)
}

// Health describes the running pipeline for GET /health
type Health struct {
	Env      string
	Source   string // csv or api
	Sink     string // export sink kind
	Narrator bool   // S3 narrative available
	Database DatabaseChecker
}

// NewHealth builds the health descriptor from config.
// db is nil unless the export sink is postgres.
func NewHealth(cfg *config.Config, source string, db DatabaseChecker) Health {
	return Health{
		Env:      cfg.Env,
		Source:   source,
		Sink:     cfg.Export.Sink,
		Narrator: cfg.LLM.Enabled(),
		Database: db,
	}
}

// Server represents the HTTP API server
// ⭐ SSOT: API 서버 설정은 이 파일에서만
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	health     Health
}

// New creates a new API server
func New(cfg *config.Config, log *logger.Logger, router http.Handler, health Health) *Server {
	writeTimeout := 15 * time.Second
	if health.Narrator {
		// POST /api/strategy waits on the LLM
		writeTimeout = 90 * time.Second
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: writeTimeout,
			IdleTimeout:  60 * time.Second,
		},
		logger: log.WithField("module", "api"),
		health: health,
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until Shutdown
func (s *Server) Start() error {
	s.logger.WithFields(map[string]interface{}{
		"addr":          s.httpServer.Addr,
		"env":           s.health.Env,
		"source":        s.health.Source,
		"sink":          s.health.Sink,
		"narrator":      s.health.Narrator,
		"write_timeout": s.httpServer.WriteTimeout.String(),
	}).Info("Serving lineup API")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown drains in-flight pipeline runs until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Draining lineup API")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
