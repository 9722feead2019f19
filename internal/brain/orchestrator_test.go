package brain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/s0_data"
	"github.com/wonny/sensai/internal/s0_data/quality"
	"github.com/wonny/sensai/internal/s1_metrics"
	"github.com/wonny/sensai/internal/s2_lineup"
	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
	"github.com/wonny/sensai/pkg/metrics"
)

type fakeSource struct {
	t   *table.Table
	err error
}

func (f *fakeSource) Load(ctx context.Context) (*table.Table, error) { return f.t, f.err }
func (f *fakeSource) Name() string                                   { return "fake" }

type fakeStandings struct {
	rows  []contracts.Standing
	err   error
	calls int
}

func (f *fakeStandings) FetchStandings(ctx context.Context, campeonatoID int) ([]contracts.Standing, error) {
	f.calls++
	return f.rows, f.err
}

type fakeNarrator struct {
	req   contracts.StrategyRequest
	reply string
	err   error
}

func (f *fakeNarrator) GenerateStrategy(ctx context.Context, req contracts.StrategyRequest) (string, error) {
	f.req = req
	return f.reply, f.err
}

type fakeSink struct {
	saved *table.Table
	err   error
}

func (f *fakeSink) Save(ctx context.Context, t *table.Table, category, filename string) (string, error) {
	f.saved = t
	return "mem://" + category + "/" + filename, f.err
}

// rawRounds uses raw Cartola column names so the normalizer is exercised
func rawRounds() *table.Table {
	tb := table.New("atleta_id", "apelido", "atletas.posicao_id", "pontuacao", "preco", "rodada")
	tb.AppendRow(1.0, "Goleiro", 1.0, 4.0, 5.0, 1.0)
	tb.AppendRow(1.0, "Goleiro", 1.0, 6.0, 5.0, 2.0)
	tb.AppendRow(2.0, "Zagueiro A", 2.0, 8.0, 4.0, 1.0)
	tb.AppendRow(3.0, "Zagueiro B", 2.0, 2.0, 2.0, 1.0)
	tb.AppendRow(4.0, "Meia", 3.0, 9.0, 3.0, 1.0)
	return tb
}

func newTestOrchestrator(src contracts.PlayerSource, c Components) *Orchestrator {
	log := logger.Nop()
	c.Source = src
	c.Normalizer = s0_data.NewNormalizer(log)
	c.QualityGate = quality.NewQualityGate(quality.DefaultConfig(), log)
	c.Calculator = s1_metrics.NewCalculator(log)
	c.Assembler = s2_lineup.NewAssembler(log)
	return NewOrchestrator(c, log)
}

func mustFormation(t *testing.T, s string) contracts.Formation {
	t.Helper()
	f, err := s2_lineup.ParseFormation(s)
	require.NoError(t, err)
	return f
}

func TestRun_LineupWithoutStrategy(t *testing.T) {
	rec := metrics.New()
	o := newTestOrchestrator(&fakeSource{t: rawRounds()}, Components{Recorder: rec})

	result, err := o.Run(context.Background(), RunConfig{
		RunID:     "run-1",
		Budget:    10,
		Formation: mustFormation(t, "G:1,D:1,M:1"),
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, "fake", result.Source)
	assert.Equal(t, []contracts.Stage{contracts.StageLoad, contracts.StageNormalize, contracts.StageMetrics, contracts.StageLineup}, result.CompletedStages)
	require.Len(t, result.Stages, 4)
	assert.True(t, result.Stages[3].Success)
	assert.Equal(t, 2, result.Stages[3].Rows)
	require.NotNil(t, result.QualitySnapshot)
	assert.Equal(t, 5, result.QualitySnapshot.TotalRows)

	// avg_points: 1→5, 2→8, 3→2, 4→9
	require.NotNil(t, result.MetricsTable())
	assert.True(t, result.MetricsTable().Has(contracts.ColAvgPoints))
	assert.Equal(t, 4, result.Summary.Players)

	// G: 1 (5), D: 2 (4, cb 2), M: 4 (3) = 12 > 10, so M is skipped
	ids := make([]string, 0, result.Lineup.Size())
	for _, p := range result.Lineup.Picks {
		ids = append(ids, p.PlayerID)
	}
	assert.Equal(t, []string{"1", "2"}, ids)
	assert.InDelta(t, 1.0, result.Lineup.RemainingBudget, 1e-9)
	assert.Empty(t, result.Strategy)
}

func TestRun_GeneratesRunID(t *testing.T) {
	o := newTestOrchestrator(&fakeSource{t: rawRounds()}, Components{})

	result, err := o.Run(context.Background(), RunConfig{Budget: 100, Formation: mustFormation(t, "4-3-3")})
	require.NoError(t, err)
	assert.Len(t, result.RunID, 36)
}

func TestRun_WithStrategy(t *testing.T) {
	standings := &fakeStandings{rows: []contracts.Standing{
		{Posicao: 1, Time: "A"}, {Posicao: 2, Time: "B"}, {Posicao: 3, Time: "C"},
	}}
	narrator := &fakeNarrator{reply: "Aposte nos meias."}
	o := newTestOrchestrator(&fakeSource{t: rawRounds()}, Components{Standings: standings, Narrator: narrator})

	result, err := o.Run(context.Background(), RunConfig{
		Budget:       100,
		Formation:    mustFormation(t, "G:1,D:2,M:1"),
		TopN:         2,
		CampeonatoID: 10,
		WithStrategy: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Aposte nos meias.", result.Strategy)
	assert.Contains(t, result.CompletedStages, contracts.StageStrategy)
	assert.Equal(t, 1, standings.calls)
	assert.Len(t, narrator.req.Standings, 2)
	assert.Equal(t, 100.0, narrator.req.Budget)
	assert.Equal(t, 4, narrator.req.Summary.Players)
	assert.Equal(t, 4, result.Lineup.Size())
}

func TestRun_StrategyFailureKeepsLineup(t *testing.T) {
	narrator := &fakeNarrator{err: errors.New("llm down")}
	o := newTestOrchestrator(&fakeSource{t: rawRounds()}, Components{Narrator: narrator})

	result, err := o.Run(context.Background(), RunConfig{
		Budget:       100,
		Formation:    mustFormation(t, "G:1"),
		WithStrategy: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3 failed")
	assert.False(t, result.Success)
	require.NotNil(t, result.Lineup)
	assert.Equal(t, 1, result.Lineup.Size())
	assert.NotContains(t, result.CompletedStages, contracts.StageStrategy)
}

func TestRun_NarratorMissing(t *testing.T) {
	o := newTestOrchestrator(&fakeSource{t: rawRounds()}, Components{})

	_, err := o.Run(context.Background(), RunConfig{Budget: 10, Formation: mustFormation(t, "G:1"), WithStrategy: true})
	assert.True(t, errors.Is(err, contracts.ErrNarratorDisabled))
}

func TestRun_StandingsFailure(t *testing.T) {
	o := newTestOrchestrator(&fakeSource{t: rawRounds()}, Components{
		Standings: &fakeStandings{err: errors.New("403")},
		Narrator:  &fakeNarrator{reply: "x"},
	})

	_, err := o.Run(context.Background(), RunConfig{Budget: 10, Formation: mustFormation(t, "G:1"), WithStrategy: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch standings")
}

func TestRun_StageErrors(t *testing.T) {
	noPoints := table.New("player_id", "price")
	noPoints.AppendRow("1", 5.0)

	tests := []struct {
		name   string
		source *fakeSource
		check  func(t *testing.T, err error)
		stages int
	}{
		{
			name:   "load error",
			source: &fakeSource{err: &contracts.EmptySourceDataError{Source: "fake"}},
			check: func(t *testing.T, err error) {
				var empty *contracts.EmptySourceDataError
				assert.True(t, errors.As(err, &empty))
				assert.Contains(t, err.Error(), "S0 load failed")
			},
			stages: 0,
		},
		{
			name:   "normalize error",
			source: &fakeSource{t: noPoints},
			check: func(t *testing.T, err error) {
				var missing *contracts.MissingRequiredFieldError
				require.True(t, errors.As(err, &missing))
				assert.Contains(t, missing.Fields, "points")
			},
			stages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrchestrator(tt.source, Components{})
			result, err := o.Run(context.Background(), RunConfig{Budget: 10, Formation: mustFormation(t, "G:1")})
			require.Error(t, err)
			tt.check(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, err, result.Error)
			assert.Len(t, result.CompletedStages, tt.stages)
			require.Len(t, result.Stages, tt.stages+1)
			failed := result.Stages[tt.stages]
			assert.False(t, failed.Success)
			assert.NotEmpty(t, failed.Error)
		})
	}
}

func TestMetrics(t *testing.T) {
	o := newTestOrchestrator(&fakeSource{t: rawRounds()}, Components{})

	result, err := o.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []contracts.Stage{contracts.StageLoad, contracts.StageNormalize, contracts.StageMetrics}, result.CompletedStages)
	assert.Equal(t, 5, result.MetricsTable().Len())
	assert.Nil(t, result.Lineup)
}

func TestExportMetrics(t *testing.T) {
	sink := &fakeSink{}
	o := newTestOrchestrator(&fakeSource{t: rawRounds()}, Components{Sink: sink})

	loc, err := o.ExportMetrics(context.Background(), "metrics", "players.csv")
	require.NoError(t, err)
	assert.Equal(t, "mem://metrics/players.csv", loc)
	require.NotNil(t, sink.saved)
	assert.True(t, sink.saved.Has(contracts.ColCostBenefit))

	o = newTestOrchestrator(&fakeSource{t: rawRounds()}, Components{})
	_, err = o.ExportMetrics(context.Background(), "metrics", "players.csv")
	assert.Error(t, err)

	o = newTestOrchestrator(&fakeSource{t: rawRounds()}, Components{Sink: &fakeSink{err: errors.New("disk full")}})
	_, err = o.ExportMetrics(context.Background(), "metrics", "players.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export failed")
}
