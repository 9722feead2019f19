package brain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/s0_data/quality"
	"github.com/wonny/sensai/internal/s1_metrics"
	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
	"github.com/wonny/sensai/pkg/metrics"
)

// Orchestrator coordinates the S0 → S1 → S2 (→ S3) pipeline
// ⭐ SSOT: 파이프라인 조율은 여기서만
type Orchestrator struct {
	// Stage components
	source      contracts.PlayerSource
	normalizer  contracts.Normalizer
	qualityGate *quality.QualityGate
	calculator  contracts.MetricsCalculator
	assembler   contracts.LineupAssembler
	standings   contracts.StandingsProvider
	narrator    contracts.Narrator
	sink        contracts.Sink

	recorder *metrics.Recorder
	logger   *logger.Logger
}

// Components groups the orchestrator's collaborators.
// Standings, Narrator and Sink are optional; the stages that need them fail without them.
type Components struct {
	Source      contracts.PlayerSource
	Normalizer  contracts.Normalizer
	QualityGate *quality.QualityGate
	Calculator  contracts.MetricsCalculator
	Assembler   contracts.LineupAssembler
	Standings   contracts.StandingsProvider
	Narrator    contracts.Narrator
	Sink        contracts.Sink
	Recorder    *metrics.Recorder
}

// RunConfig holds configuration for a pipeline run
type RunConfig struct {
	RunID        string
	Profile      string // logged only
	Budget       float64
	Formation    contracts.Formation
	TopN         int  // standings rows given to the narrator
	CampeonatoID int  // standings source
	WithStrategy bool // run S3 after the lineup
}

// RunResult holds the results of a pipeline run
type RunResult struct {
	RunID           string                         `json:"run_id"`
	Source          string                         `json:"source"`
	Success         bool                           `json:"success"`
	Error           error                          `json:"-"`
	CompletedStages []contracts.Stage              `json:"completed_stages"`
	Stages          []contracts.StageResult        `json:"stages"`
	QualitySnapshot *contracts.DataQualitySnapshot `json:"quality"`
	Summary         contracts.MetricsSummary       `json:"summary"`
	Lineup          *contracts.Lineup              `json:"lineup"`
	Strategy        string                         `json:"strategy,omitempty"`
	Duration        time.Duration                  `json:"duration"`

	metricsTable *table.Table
}

// MetricsTable returns the S1 output of the run (nil if S1 did not complete)
func (r *RunResult) MetricsTable() *table.Table {
	return r.metricsTable
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(c Components, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		source:      c.Source,
		normalizer:  c.Normalizer,
		qualityGate: c.QualityGate,
		calculator:  c.Calculator,
		assembler:   c.Assembler,
		standings:   c.Standings,
		narrator:    c.Narrator,
		sink:        c.Sink,
		recorder:    c.Recorder,
		logger:      log.WithField("module", "orchestrator"),
	}
}

// Run executes S0 → S1 → S2 and, when requested, S3.
// On error the returned result still carries every stage that completed.
func (o *Orchestrator) Run(ctx context.Context, config RunConfig) (*RunResult, error) {
	startTime := time.Now()

	if config.RunID == "" {
		config.RunID = uuid.NewString()
	}
	log := o.logger.WithRun(config.RunID).WithProfile(config.Profile, config.Formation.String())

	result := &RunResult{
		RunID:           config.RunID,
		Source:          o.source.Name(),
		CompletedStages: make([]contracts.Stage, 0, 5),
	}

	log.WithFields(map[string]interface{}{
		"source":   result.Source,
		"budget":   config.Budget,
		"strategy": config.WithStrategy,
	}).Info("Starting pipeline run")

	// S0 + S1
	if err := o.runMetrics(ctx, result); err != nil {
		return o.fail(log, result, err)
	}

	// S2: Lineup
	err := o.stage(result, contracts.StageLineup, func() (int, error) {
		lineup, err := o.assembler.Assemble(result.metricsTable, config.Budget, config.Formation)
		if err != nil {
			return 0, err
		}
		result.Lineup = lineup
		return lineup.Size(), nil
	})
	if err != nil {
		return o.fail(log, result, fmt.Errorf("S2 failed: %w", err))
	}
	result.CompletedStages = append(result.CompletedStages, contracts.StageLineup)

	// S3: Strategy
	if config.WithStrategy {
		if err := o.runStrategy(ctx, config, result); err != nil {
			return o.fail(log, result, fmt.Errorf("S3 failed: %w", err))
		}
		result.CompletedStages = append(result.CompletedStages, contracts.StageStrategy)
	}

	result.Success = true
	result.Duration = time.Since(startTime)

	log.WithFields(map[string]interface{}{
		"duration": result.Duration.Seconds(),
		"stages":   len(result.CompletedStages),
		"picked":   result.Lineup.Size(),
	}).Info("Pipeline run completed successfully")

	return result, nil
}

// Metrics runs S0 and S1 only
func (o *Orchestrator) Metrics(ctx context.Context) (*RunResult, error) {
	result := &RunResult{
		RunID:  uuid.NewString(),
		Source: o.source.Name(),
	}
	startTime := time.Now()
	if err := o.runMetrics(ctx, result); err != nil {
		return o.fail(o.logger.WithRun(result.RunID), result, err)
	}
	result.Success = true
	result.Duration = time.Since(startTime)
	return result, nil
}

// ExportMetrics runs S0 and S1 and saves the metrics table to the sink
func (o *Orchestrator) ExportMetrics(ctx context.Context, category, filename string) (string, error) {
	if o.sink == nil {
		return "", errors.New("no export sink configured")
	}

	result, err := o.Metrics(ctx)
	if err != nil {
		return "", err
	}

	var location string
	err = o.stage(result, contracts.StageExport, func() (int, error) {
		loc, err := o.sink.Save(ctx, result.metricsTable, category, filename)
		location = loc
		return result.metricsTable.Len(), err
	})
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	return location, nil
}

// runMetrics executes S0 (load, normalize, quality) and S1
func (o *Orchestrator) runMetrics(ctx context.Context, result *RunResult) error {
	var raw, normalized *table.Table

	// S0: Load
	err := o.stage(result, contracts.StageLoad, func() (int, error) {
		t, err := o.source.Load(ctx)
		if err != nil {
			return 0, err
		}
		raw = t
		return t.Len(), nil
	})
	if err != nil {
		return fmt.Errorf("S0 load failed: %w", err)
	}
	result.CompletedStages = append(result.CompletedStages, contracts.StageLoad)

	// S0: Normalize
	err = o.stage(result, contracts.StageNormalize, func() (int, error) {
		t, err := o.normalizer.Normalize(raw)
		if err != nil {
			return 0, err
		}
		normalized = t
		return t.Len(), nil
	})
	if err != nil {
		return fmt.Errorf("S0 normalize failed: %w", err)
	}
	result.CompletedStages = append(result.CompletedStages, contracts.StageNormalize)

	// 품질 게이트: 경고만, 실행은 계속
	if o.qualityGate != nil {
		result.QualitySnapshot = o.qualityGate.Check(normalized)
	}

	// S1: Metrics
	err = o.stage(result, contracts.StageMetrics, func() (int, error) {
		t, err := o.calculator.Calculate(normalized)
		if err != nil {
			return 0, err
		}
		result.metricsTable = t
		return t.Len(), nil
	})
	if err != nil {
		return fmt.Errorf("S1 failed: %w", err)
	}
	result.Summary = s1_metrics.Summarize(result.metricsTable)
	result.CompletedStages = append(result.CompletedStages, contracts.StageMetrics)

	return nil
}

// runStrategy fetches standings and asks the narrator for a strategy
func (o *Orchestrator) runStrategy(ctx context.Context, config RunConfig, result *RunResult) error {
	if o.narrator == nil {
		return contracts.ErrNarratorDisabled
	}

	return o.stage(result, contracts.StageStrategy, func() (int, error) {
		var standings []contracts.Standing
		if o.standings != nil {
			all, err := o.standings.FetchStandings(ctx, config.CampeonatoID)
			if err != nil {
				return 0, fmt.Errorf("fetch standings: %w", err)
			}
			standings = all
			if config.TopN > 0 && len(standings) > config.TopN {
				standings = standings[:config.TopN]
			}
		}

		text, err := o.narrator.GenerateStrategy(ctx, contracts.StrategyRequest{
			Summary:   result.Summary,
			Standings: standings,
			Budget:    config.Budget,
			Formation: config.Formation,
			TopN:      config.TopN,
		})
		if err != nil {
			return 0, err
		}
		result.Strategy = text
		return len(standings), nil
	})
}

// stage times fn and records its outcome on result
func (o *Orchestrator) stage(result *RunResult, name contracts.Stage, fn func() (int, error)) error {
	started := time.Now()
	rows, err := fn()
	o.recorder.ObserveStage(name.String(), started, rows, err)

	sr := contracts.StageResult{
		Stage:      name,
		Success:    err == nil,
		Rows:       rows,
		DurationMs: time.Since(started).Milliseconds(),
	}
	if err != nil {
		sr.Error = err.Error()
	}
	result.Stages = append(result.Stages, sr)

	entry := o.logger.WithStage(name.String(), name.ShortName()).WithFields(map[string]interface{}{
		"rows":     rows,
		"duration": time.Since(started).String(),
	})
	if err != nil {
		entry.WithError(err).Warn("Stage failed")
	} else {
		entry.Debug("Stage completed")
	}
	return err
}

func (o *Orchestrator) fail(log *logger.Logger, result *RunResult, err error) (*RunResult, error) {
	result.Error = err
	log.WithError(err).WithField("stages", result.CompletedStages).Error("Pipeline run failed")
	return result, err
}
