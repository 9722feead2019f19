package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
)

func TestQualityGate_Check(t *testing.T) {
	tb := table.New("player_id", "points", "price", "atletas.posicao_id")
	tb.AppendRow(1.0, 5.0, 10.0, 1.0)
	tb.AppendRow(2.0, nil, 8.0, 2.0)
	tb.AppendRow(3.0, 7.0, 12.0, 9.0)
	tb.AppendRow(nil, 4.0, 6.0, 4.0)

	gate := NewQualityGate(DefaultConfig(), logger.Nop())
	snapshot := gate.Check(tb)

	require.NotNil(t, snapshot)
	assert.Equal(t, 4, snapshot.TotalRows)
	assert.Equal(t, 2, snapshot.ValidRows)
	assert.InDelta(t, 0.75, snapshot.Coverage[contracts.ColPlayerID], 1e-9)
	assert.InDelta(t, 0.75, snapshot.Coverage[contracts.ColPoints], 1e-9)
	assert.InDelta(t, 1.0, snapshot.Coverage[contracts.ColPrice], 1e-9)
	assert.InDelta(t, 0.75, snapshot.Coverage[contracts.ColPosition], 1e-9)
	assert.False(t, snapshot.Passed, "player_id coverage below 100%")
}

func TestQualityGate_CheckPerfect(t *testing.T) {
	tb := table.New("player_id", "points", "price", "position")
	tb.AppendRow("a", 5.0, 10.0, "G")
	tb.AppendRow("b", 3.0, 8.0, "d")

	snapshot := NewQualityGate(DefaultConfig(), logger.Nop()).Check(tb)

	assert.InDelta(t, 1.0, snapshot.QualityScore, 1e-9)
	assert.Equal(t, 2, snapshot.ValidRows)
	assert.True(t, snapshot.Passed)
	assert.True(t, snapshot.IsValid())
}

func TestQualityGate_NoPositionColumns(t *testing.T) {
	tb := table.New("player_id", "points", "price")
	tb.AppendRow("a", 5.0, 10.0)

	snapshot := NewQualityGate(DefaultConfig(), logger.Nop()).Check(tb)

	assert.Equal(t, 0.0, snapshot.Coverage[contracts.ColPosition])
	assert.InDelta(t, 0.85, snapshot.QualityScore, 1e-9)
	assert.False(t, snapshot.Passed)
}

func TestQualityGate_EmptyTable(t *testing.T) {
	snapshot := NewQualityGate(DefaultConfig(), logger.Nop()).Check(table.New("player_id", "points", "price"))

	assert.Equal(t, 0, snapshot.TotalRows)
	assert.Equal(t, 0.0, snapshot.QualityScore)
	assert.Len(t, snapshot.Coverage, 4)
	assert.False(t, snapshot.Passed)
}

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name     string
		coverage map[string]float64
		wantMin  float64
		wantMax  float64
	}{
		{
			name: "perfect coverage",
			coverage: map[string]float64{
				contracts.ColPlayerID: 1.0,
				contracts.ColPoints:   1.0,
				contracts.ColPrice:    1.0,
				contracts.ColPosition: 1.0,
			},
			wantMin: 0.99,
			wantMax: 1.01,
		},
		{
			name: "good coverage",
			coverage: map[string]float64{
				contracts.ColPlayerID: 1.0,
				contracts.ColPoints:   0.90,
				contracts.ColPrice:    0.95,
				contracts.ColPosition: 0.80,
			},
			wantMin: 0.85,
			wantMax: 0.95,
		},
		{
			name: "poor coverage",
			coverage: map[string]float64{
				contracts.ColPlayerID: 0.60,
				contracts.ColPoints:   0.50,
				contracts.ColPrice:    0.50,
				contracts.ColPosition: 0.20,
			},
			wantMin: 0.40,
			wantMax: 0.50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := calculateScore(tt.coverage)
			assert.GreaterOrEqual(t, score, tt.wantMin)
			assert.LessOrEqual(t, score, tt.wantMax)
		})
	}
}
