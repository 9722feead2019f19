package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/sensai/pkg/logger"
)

// MetricsExporter runs S0 and S1 and saves the metrics table
type MetricsExporter interface {
	ExportMetrics(ctx context.Context, category, filename string) (string, error)
}

// MetricsRefreshJob re-exports the player metrics table on a schedule
type MetricsRefreshJob struct {
	exporter MetricsExporter
	schedule string
	category string
	dated    bool
	now      func() time.Time
	logger   *logger.Logger
}

// NewMetricsRefreshJob creates a new metrics refresh job
func NewMetricsRefreshJob(exporter MetricsExporter, schedule, category string, log *logger.Logger) *MetricsRefreshJob {
	return &MetricsRefreshJob{
		exporter: exporter,
		schedule: schedule,
		category: category,
		now:      time.Now,
		logger:   log,
	}
}

// Dated keeps one file per day (player_metrics_YYYYMMDD.csv) instead of overwriting
func (j *MetricsRefreshJob) Dated() *MetricsRefreshJob {
	j.dated = true
	return j
}

// Name returns the job name
func (j *MetricsRefreshJob) Name() string {
	return "metrics_refresh"
}

// Schedule returns the cron schedule
func (j *MetricsRefreshJob) Schedule() string {
	return j.schedule
}

// Filename returns the export file name for the current run
func (j *MetricsRefreshJob) Filename() string {
	if j.dated {
		return fmt.Sprintf("player_metrics_%s.csv", j.now().Format("20060102"))
	}
	return "player_metrics.csv"
}

// Run executes the export
func (j *MetricsRefreshJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled metrics refresh")

	location, err := j.exporter.ExportMetrics(ctx, j.category, j.Filename())
	if err != nil {
		return fmt.Errorf("metrics refresh: %w", err)
	}

	j.logger.WithField("location", location).Info("Metrics refresh completed")
	return nil
}
