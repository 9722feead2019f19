package s1_metrics

import (
	"math"
	"sort"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/s0_data"
	"github.com/wonny/sensai/internal/table"
)

// RankByCostBenefit returns row indexes sorted by cost_benefit descending.
// The sort is stable; NaN and missing values come after every number.
func RankByCostBenefit(t *table.Table, rows []int) []int {
	out := make([]int, len(rows))
	copy(out, rows)

	score := func(i int) (float64, bool) {
		v, ok := t.Float(i, contracts.ColCostBenefit)
		if !ok || math.IsNaN(v) {
			return 0, false
		}
		return v, true
	}

	sort.SliceStable(out, func(a, b int) bool {
		va, okA := score(out[a])
		vb, okB := score(out[b])
		if okA != okB {
			return okA
		}
		return okA && va > vb
	})
	return out
}

// BestPerPlayer keeps one row per player_id: the one with the highest
// cost_benefit, earliest row on ties. Rows with a null player_id are dropped.
// The result is ordered by cost_benefit descending.
func BestPerPlayer(t *table.Table) []int {
	all := make([]int, t.Len())
	for i := range all {
		all[i] = i
	}

	seen := make(map[string]bool)
	var best []int
	for _, i := range RankByCostBenefit(t, all) {
		key, ok := table.Key(t.Get(i, contracts.ColPlayerID))
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		best = append(best, i)
	}
	return best
}

// Top returns the n best distinct players by cost_benefit (n <= 0 returns all).
// Position is filled when the table carries position information.
func Top(t *table.Table, n int) []contracts.Pick {
	rows := BestPerPlayer(t)
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}

	positions, _ := s0_data.ResolvePositions(t)

	picks := make([]contracts.Pick, len(rows))
	for k, i := range rows {
		var pos contracts.Position
		if positions != nil {
			pos = positions[i]
		}
		picks[k] = PickFromRow(t, i, pos)
	}
	return picks
}

// PickFromRow builds the output record of row i
func PickFromRow(t *table.Table, i int, pos contracts.Position) contracts.Pick {
	id, _ := table.Key(t.Get(i, contracts.ColPlayerID))
	price, ok := t.Float(i, contracts.ColPrice)
	if !ok {
		price = math.NaN()
	}
	avg, ok := t.Float(i, contracts.ColAvgPoints)
	if !ok {
		avg = math.NaN()
	}
	cb, ok := t.Float(i, contracts.ColCostBenefit)
	if !ok {
		cb = math.NaN()
	}
	return contracts.Pick{
		PlayerID:    id,
		Name:        s0_data.DisplayName(t, i),
		Position:    pos,
		Price:       contracts.Float(price),
		AvgPoints:   contracts.Float(avg),
		CostBenefit: contracts.Float(cb),
	}
}
