// Package s2_lineup assembles a budget-constrained lineup (S2).
package s2_lineup

import (
	"math"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/s0_data"
	"github.com/wonny/sensai/internal/s1_metrics"
	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
	"github.com/wonny/sensai/pkg/metrics"
)

// Assembler picks players greedily by cost-benefit under a budget and a formation quota
// ⭐ SSOT: S2 라인업 구성 로직은 여기서만
type Assembler struct {
	logger   *logger.Logger
	recorder *metrics.Recorder
}

// NewAssembler creates a new lineup assembler
func NewAssembler(log *logger.Logger) *Assembler {
	return &Assembler{logger: log.WithField("module", "assembler")}
}

// WithMetrics records fill ratios
func (a *Assembler) WithMetrics(rec *metrics.Recorder) *Assembler {
	a.recorder = rec
	return a
}

// Assemble selects players from a metrics table.
//
//  1. one row per player_id (highest cost_benefit)
//  2. position from "position" or a posicao_id code; unmappable rows are dropped
//  3. candidates ranked by cost_benefit descending, NaN last
//  4. per formation slot, in order: take a candidate iff its price fits the
//     remaining budget; candidates that do not fit are skipped, not deferred
//
// A partially filled lineup is a valid result. Budget <= 0 yields no picks.
func (a *Assembler) Assemble(t *table.Table, budget float64, formation contracts.Formation) (*contracts.Lineup, error) {
	var missing []string
	for _, col := range []string{contracts.ColPlayerID, contracts.ColPrice, contracts.ColCostBenefit} {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &contracts.MissingRequiredFieldError{Fields: missing}
	}

	positions, err := s0_data.ResolvePositions(t)
	if err != nil {
		return nil, err
	}

	// 1~3. 중복 제거 + 순위 + 포지션별 후보
	pool := make(map[contracts.Position][]int)
	unmapped := 0
	for _, i := range s1_metrics.BestPerPlayer(t) {
		pos := positions[i]
		if pos == "" {
			unmapped++
			continue
		}
		pool[pos] = append(pool[pos], i)
	}

	lineup := &contracts.Lineup{
		Picks:     []contracts.Pick{},
		Formation: formation,
		Budget:    budget,
		Filled:    make(map[contracts.Position]int, len(formation.Slots)),
	}
	for _, slot := range formation.Slots {
		lineup.Filled[slot.Position] = 0
	}

	// 4. 탐욕적 선택
	remaining := budget
	if budget > 0 {
		picked := make(map[int]bool)
		for _, slot := range formation.Slots {
			for _, i := range pool[slot.Position] {
				if lineup.Filled[slot.Position] >= formation.Count(slot.Position) {
					break
				}
				if picked[i] {
					continue
				}
				// 음수 가격은 잔여 예산을 늘리므로 선발 불가
				price, ok := t.Float(i, contracts.ColPrice)
				if !ok || math.IsNaN(price) || price < 0 || price > remaining {
					continue
				}

				remaining -= price
				picked[i] = true
				lineup.Filled[slot.Position]++
				lineup.TotalPrice += price
				lineup.Picks = append(lineup.Picks, s1_metrics.PickFromRow(t, i, slot.Position))
			}
		}
	}
	lineup.RemainingBudget = remaining

	a.recorder.ObserveLineup(lineup.Size(), formation.Total())

	a.logger.WithFields(map[string]interface{}{
		"budget":      budget,
		"formation":   formation.String(),
		"requested":   formation.Total(),
		"picked":      lineup.Size(),
		"total_price": lineup.TotalPrice,
		"remaining":   remaining,
		"unmapped":    unmapped,
		"complete":    lineup.Complete(),
	}).Info("Lineup assembled")

	return lineup, nil
}
