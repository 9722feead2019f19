package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/pkg/logger"
)

// StandingsWarmJob fetches the championship table so the response cache stays warm
type StandingsWarmJob struct {
	provider     contracts.StandingsProvider
	campeonatoID int
	logger       *logger.Logger
}

// NewStandingsWarmJob creates a new standings warm-up job
func NewStandingsWarmJob(provider contracts.StandingsProvider, campeonatoID int, log *logger.Logger) *StandingsWarmJob {
	return &StandingsWarmJob{
		provider:     provider,
		campeonatoID: campeonatoID,
		logger:       log,
	}
}

// Name returns the job name
func (j *StandingsWarmJob) Name() string {
	return "standings_warm"
}

// Schedule returns the cron schedule (every 30 minutes)
func (j *StandingsWarmJob) Schedule() string {
	return "0 */30 * * * *"
}

// Run fetches the standings once
func (j *StandingsWarmJob) Run(ctx context.Context) error {
	standings, err := j.provider.FetchStandings(ctx, j.campeonatoID)
	if err != nil {
		return fmt.Errorf("warm standings: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"campeonato_id": j.campeonatoID,
		"teams":         len(standings),
	}).Debug("Standings cache warmed")
	return nil
}
