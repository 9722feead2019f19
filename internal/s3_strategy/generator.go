// Package s3_strategy produces the free-text tactical narrative (S3).
package s3_strategy

import (
	"context"
	"fmt"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/pkg/logger"
)

// Completer is the text-generation backend
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Generator renders the strategy prompt and returns the backend's text untouched
// ⭐ SSOT: S3 전략 서술은 여기서만
type Generator struct {
	completer Completer
	logger    *logger.Logger
}

// NewGenerator creates a narrative generator
func NewGenerator(completer Completer, log *logger.Logger) *Generator {
	return &Generator{
		completer: completer,
		logger:    log.WithField("module", "strategy"),
	}
}

// GenerateStrategy implements contracts.Narrator
func (g *Generator) GenerateStrategy(ctx context.Context, req contracts.StrategyRequest) (string, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", err
	}

	g.logger.WithFields(map[string]interface{}{
		"budget":    req.Budget,
		"formation": req.Formation.String(),
		"standings": len(req.Standings),
		"players":   req.Summary.Players,
	}).Info("Generating strategy")

	text, err := g.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("generate strategy: %w", err)
	}
	return text, nil
}

// Disabled is the narrator used when no backend is configured
type Disabled struct{}

// GenerateStrategy always fails with contracts.ErrNarratorDisabled
func (Disabled) GenerateStrategy(ctx context.Context, req contracts.StrategyRequest) (string, error) {
	return "", contracts.ErrNarratorDisabled
}
