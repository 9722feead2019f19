package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/sensai/internal/api"
	"github.com/wonny/sensai/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET  /health                     - Health check
  GET  /metrics                    - Prometheus (METRICS_ENABLED)
  GET  /api/players/metrics?top=N  - cost_benefit 상위 선수 + 요약
  POST /api/lineup                 - 라인업 구성
  POST /api/strategy               - 라인업 + 전술 서술
  GET  /api/standings?top=N        - 순위표
  GET  /api/matches/next?round=R   - 라운드 경기 목록
  GET  /api/teams/{id}/results?n=N - 팀 최근 결과
  POST /api/export                 - 지표 테이블 저장

Example:
  go run ./cmd/sensai api
  go run ./cmd/sensai api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: $PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== sensai API Server ===")

	a, err := newApp(cmd.Context(), appOptions{withSink: true})
	if err != nil {
		return err
	}
	defer a.Close()

	// Override port if flag is set
	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	log := a.log
	log.WithFields(map[string]interface{}{
		"port":   a.cfg.Port,
		"env":    a.cfg.Env,
		"source": sourceKind,
	}).Info("Initializing API server")

	pipelineHandler := handlers.NewPipelineHandler(a.orchestrator, a.profiles, a.cfg.Futebol.CampeonatoID, log)
	footballHandler := handlers.NewFootballHandler(a.futebol, a.cfg.Futebol.CampeonatoID, log)
	var db api.DatabaseChecker
	if a.db != nil {
		db = a.db
	}
	health := api.NewHealth(a.cfg, sourceKind, db)
	router := api.NewRouter(health, pipelineHandler, footballHandler, a.recorder, log)
	server := api.New(a.cfg, log, router, health)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
