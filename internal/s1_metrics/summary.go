package s1_metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
)

// Describe computes count, mean, sample std, min, quartiles and max of col.
// Null and NaN cells are ignored. Quartiles interpolate linearly between ranks.
func Describe(t *table.Table, col string) contracts.Stats {
	var values []float64
	for i := 0; i < t.Len(); i++ {
		if v, ok := t.Float(i, col); ok && !math.IsNaN(v) {
			values = append(values, v)
		}
	}

	nan := contracts.Float(math.NaN())
	stats := contracts.Stats{
		Count: len(values),
		Mean:  nan, Std: nan, Min: nan, P25: nan, P50: nan, P75: nan, Max: nan,
	}
	if len(values) == 0 {
		return stats
	}

	sort.Float64s(values)

	// gonum StdDev는 n-1 (표본 표준편차)
	mean, std := stat.MeanStdDev(values, nil)
	stats.Mean = contracts.Float(mean)
	if len(values) > 1 {
		stats.Std = contracts.Float(std)
	}

	stats.Min = contracts.Float(values[0])
	stats.Max = contracts.Float(values[len(values)-1])
	stats.P25 = contracts.Float(quantile(values, 0.25))
	stats.P50 = contracts.Float(quantile(values, 0.50))
	stats.P75 = contracts.Float(quantile(values, 0.75))

	return stats
}

// quantile expects sorted, non-empty values.
// Linear between ranks at (n-1)q, which no stat.Quantile kind matches.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Summarize describes a metrics table for the narrative generator
func Summarize(t *table.Table) contracts.MetricsSummary {
	players := make(map[string]struct{})
	for i := 0; i < t.Len(); i++ {
		if key, ok := table.Key(t.Get(i, contracts.ColPlayerID)); ok {
			players[key] = struct{}{}
		}
	}

	return contracts.MetricsSummary{
		Rows:        t.Len(),
		Players:     len(players),
		AvgPoints:   Describe(t, contracts.ColAvgPoints),
		CostBenefit: Describe(t, contracts.ColCostBenefit),
	}
}
