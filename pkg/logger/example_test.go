package logger_test

import (
	"errors"

	"github.com/wonny/sensai/pkg/config"
	"github.com/wonny/sensai/pkg/logger"
)

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Add multiple fields
	log.WithFields(map[string]interface{}{
		"budget":    150.0,
		"formation": "4-3-3",
		"picked":    10,
	}).Info("Lineup assembled")
}

// Example_withError demonstrates error logging
func Example_withError() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	err := errors.New("api-futebol returned 429")
	log.WithError(err).
		WithField("endpoint", "campeonatos/10/classificacao").
		Error("Failed to fetch standings")
}
