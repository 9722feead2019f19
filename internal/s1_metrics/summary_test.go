package s1_metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
)

func TestDescribe(t *testing.T) {
	tb := table.New("v")
	for _, v := range []interface{}{4.0, 1.0, nil, 3.0, math.NaN(), 2.0} {
		tb.AppendRow(v)
	}

	s := Describe(tb, "v")

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, float64(s.Mean), 1e-9)
	assert.InDelta(t, 1.2909944, float64(s.Std), 1e-6)
	assert.Equal(t, contracts.Float(1), s.Min)
	assert.InDelta(t, 1.75, float64(s.P25), 1e-9)
	assert.InDelta(t, 2.5, float64(s.P50), 1e-9)
	assert.InDelta(t, 3.25, float64(s.P75), 1e-9)
	assert.Equal(t, contracts.Float(4), s.Max)
}

func TestDescribe_Degenerate(t *testing.T) {
	one := table.New("v")
	one.AppendRow(5.0)
	s := Describe(one, "v")
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, contracts.Float(5), s.P75)
	assert.True(t, math.IsNaN(float64(s.Std)), "sample std of one value")

	s = Describe(table.New("v"), "v")
	assert.Equal(t, 0, s.Count)
	assert.True(t, math.IsNaN(float64(s.Mean)))

	s = Describe(one, "absent")
	assert.Equal(t, 0, s.Count)
}

func TestSummarize(t *testing.T) {
	in := metricsInput(
		[]interface{}{1.0, 2.0, 2.0},
		[]interface{}{1.0, 4.0, 2.0},
		[]interface{}{2.0, 6.0, 3.0},
	)
	out, err := NewCalculator(nopLogger()).Calculate(in)
	require.NoError(t, err)

	sum := Summarize(out)
	assert.Equal(t, 3, sum.Rows)
	assert.Equal(t, 2, sum.Players)
	assert.Equal(t, 3, sum.AvgPoints.Count)
	assert.Equal(t, contracts.Float(6), sum.AvgPoints.Max)
	assert.Equal(t, contracts.Float(1.5), sum.CostBenefit.Min)
}
