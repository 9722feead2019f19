package commands

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/sensai/internal/brain"
	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/export"
	"github.com/wonny/sensai/internal/external/futebol"
	"github.com/wonny/sensai/internal/external/llm"
	"github.com/wonny/sensai/internal/profile"
	"github.com/wonny/sensai/internal/s0_data"
	"github.com/wonny/sensai/internal/s0_data/quality"
	"github.com/wonny/sensai/internal/s1_metrics"
	"github.com/wonny/sensai/internal/s2_lineup"
	"github.com/wonny/sensai/internal/s3_strategy"
	"github.com/wonny/sensai/pkg/config"
	"github.com/wonny/sensai/pkg/database"
	"github.com/wonny/sensai/pkg/httputil"
	"github.com/wonny/sensai/pkg/logger"
	"github.com/wonny/sensai/pkg/metrics"
	"github.com/wonny/sensai/pkg/redis"
)

// app holds the wired dependencies shared by all commands
type app struct {
	cfg          *config.Config
	log          *logger.Logger
	recorder     *metrics.Recorder
	profiles     *profile.File
	futebol      *futebol.Client
	orchestrator *brain.Orchestrator
	db           *database.DB // set only for EXPORT_SINK=postgres

	closers []func()
}

// appOptions selects optional dependencies
type appOptions struct {
	withSink bool
}

// newApp loads config and wires every pipeline stage
func newApp(ctx context.Context, opts appOptions) (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	a := &app{cfg: cfg, log: log}
	if cfg.MetricsEnabled {
		a.recorder = metrics.New()
	}

	// 3. Profiles
	a.profiles, err = loadProfiles(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range profile.Warn(a.profiles) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	// 4. Redis (optional)
	rdb, err := redis.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, caching disabled")
		rdb = redis.Disabled()
	}
	a.closers = append(a.closers, func() { _ = rdb.Close() })

	// 5. External clients
	futebolHTTP := httputil.New(cfg, log).
		WithRateLimit(cfg.Futebol.RateLimit).
		WithHeader("Authorization", "Bearer "+cfg.Futebol.APIKey)
	a.futebol = futebol.NewClient(futebolHTTP, cfg.Futebol.BaseURL, log).
		WithCache(redis.NewCache(rdb, "sensai"), cfg.Redis.TTL).
		WithMetrics(a.recorder)

	var narrator contracts.Narrator = s3_strategy.Disabled{}
	if cfg.LLM.Enabled() {
		llmHTTP := httputil.NewWithTimeout(cfg, log, 60*time.Second).
			DisableRetry().
			WithHeader("Authorization", "Bearer "+cfg.LLM.APIKey)
		narrator = s3_strategy.NewGenerator(llm.NewClient(llmHTTP, cfg.LLM, log).WithMetrics(a.recorder), log)
	}

	// 6. Player source
	source, err := a.playerSource()
	if err != nil {
		return nil, err
	}

	// 7. Export sink (optional)
	var sink contracts.Sink
	if opts.withSink {
		var db *database.DB
		if cfg.Export.Sink == "postgres" {
			db, err = database.New(ctx, cfg)
			if err != nil {
				a.Close()
				return nil, fmt.Errorf("connect to database: %w", err)
			}
			a.closers = append(a.closers, db.Close)
			a.db = db
		}
		sink, err = export.NewSink(ctx, cfg, db, log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("init export sink: %w", err)
		}
	}

	// 8. Stages
	var calcOpts []s1_metrics.Option
	if strictPrice {
		calcOpts = append(calcOpts, s1_metrics.WithStrictPrice())
	}

	a.orchestrator = brain.NewOrchestrator(brain.Components{
		Source:      source,
		Normalizer:  s0_data.NewNormalizer(log),
		QualityGate: quality.NewQualityGate(a.profiles.Quality, log),
		Calculator:  s1_metrics.NewCalculator(log, calcOpts...),
		Assembler:   s2_lineup.NewAssembler(log).WithMetrics(a.recorder),
		Standings:   a.futebol,
		Narrator:    narrator,
		Sink:        sink,
		Recorder:    a.recorder,
	}, log)

	return a, nil
}

// Close releases connections in reverse order
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *app) playerSource() (contracts.PlayerSource, error) {
	switch sourceKind {
	case "csv":
		return s0_data.NewCSVSource(a.cfg.Data.CartolaCSVDir, a.log), nil
	case "api":
		src := s0_data.NewAPISource(a.futebol, apiEndpoint, url.Values{}, a.log)
		if len(apiRounds) > 0 {
			src = src.WithRounds(apiRounds, a.cfg.Futebol.RateLimit)
		}
		return src, nil
	}
	return nil, fmt.Errorf("unknown source %q (valid: csv, api)", sourceKind)
}

func loadProfiles(cfg *config.Config) (*profile.File, error) {
	path := profilesFile
	if path == "" {
		path = cfg.Data.ProfilesFile
	}
	if path == "" {
		return profile.Default(cfg.Lineup.Budget, cfg.Lineup.Formation, cfg.Lineup.TopN), nil
	}

	f, err := profile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load profiles %s: %w", path, err)
	}
	return f, nil
}

// resolveRun merges the selected profile with explicit command flags
func (a *app) resolveRun(cmd *cobra.Command, withStrategy bool) (brain.RunConfig, profile.Profile, error) {
	p, ok := a.profiles.Get(profileName)
	if !ok {
		return brain.RunConfig{}, p, fmt.Errorf("unknown profile %q (available: %v)", profileName, a.profiles.Names())
	}

	flags := cmd.Flags()
	if flags.Changed("budget") {
		p.Budget, _ = flags.GetFloat64("budget")
	}
	if flags.Changed("formation") {
		p.Formation, _ = flags.GetString("formation")
	}
	if flags.Changed("top-n") {
		p.TopN, _ = flags.GetInt("top-n")
	}

	formation, err := p.ParsedFormation()
	if err != nil {
		return brain.RunConfig{}, p, err
	}

	campeonatoID := a.cfg.Futebol.CampeonatoID
	if p.CampeonatoID > 0 {
		campeonatoID = p.CampeonatoID
	}

	return brain.RunConfig{
		Profile:      profileName,
		Budget:       p.Budget,
		Formation:    formation,
		TopN:         p.TopN,
		CampeonatoID: campeonatoID,
		WithStrategy: withStrategy || p.Strategy,
	}, p, nil
}

// addRunFlags registers the per-run overrides shared by lineup and strategy
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("budget", 0, "budget in cartoletas (default: profile)")
	cmd.Flags().String("formation", "", `formation, e.g. "4-3-3", "1-4-3-3" or "G:1,D:4,M:3,A:3" (default: profile)`)
	cmd.Flags().Int("top-n", 0, "standings rows given to the narrator (default: profile)")
}

func itoa(v int) string { return strconv.Itoa(v) }
