package quality

import (
	"time"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/s0_data"
	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
)

// QualityGate reports column coverage of a normalized table
type QualityGate struct {
	config Config
	logger *logger.Logger
}

// Config holds quality gate thresholds
type Config struct {
	MinPlayerIDCoverage float64 `yaml:"min_player_id_coverage"` // 1.0 (100%)
	MinPointsCoverage   float64 `yaml:"min_points_coverage"`    // 0.80
	MinPriceCoverage    float64 `yaml:"min_price_coverage"`     // 0.95
	MinPositionCoverage float64 `yaml:"min_position_coverage"`  // 0.95
	MinScore            float64 `yaml:"min_score"`              // 0.70
}

// DefaultConfig returns the thresholds used when a profile sets none
func DefaultConfig() Config {
	return Config{
		MinPlayerIDCoverage: 1.0,
		MinPointsCoverage:   0.80,
		MinPriceCoverage:    0.95,
		MinPositionCoverage: 0.95,
		MinScore:            0.70,
	}
}

// 가중치 (합계 = 1.0)
var weights = map[string]float64{
	contracts.ColPlayerID: 0.25,
	contracts.ColPoints:   0.30, // 평균 점수 계산 필수
	contracts.ColPrice:    0.30, // 예산 제약 필수
	contracts.ColPosition: 0.15,
}

// NewQualityGate creates a new QualityGate instance
func NewQualityGate(config Config, log *logger.Logger) *QualityGate {
	return &QualityGate{
		config: config,
		logger: log.WithField("module", "quality_gate"),
	}
}

// Check computes coverage for a normalized table
// ⭐ SSOT: S0 → S1 품질 검증
func (g *QualityGate) Check(t *table.Table) *contracts.DataQualitySnapshot {
	snapshot := &contracts.DataQualitySnapshot{
		CheckedAt: time.Now(),
		TotalRows: t.Len(),
		Coverage:  g.checkCoverage(t),
	}

	snapshot.ValidRows = countValidRows(t)
	snapshot.QualityScore = calculateScore(snapshot.Coverage)
	snapshot.Passed = g.passed(snapshot)

	entry := g.logger.WithFields(map[string]interface{}{
		"rows":       snapshot.TotalRows,
		"valid_rows": snapshot.ValidRows,
		"score":      snapshot.QualityScore,
	})
	if snapshot.Passed {
		entry.Debug("Quality gate passed")
	} else {
		entry.WithField("coverage", snapshot.Coverage).Warn("Quality gate below threshold")
	}

	return snapshot
}

// checkCoverage calculates the non-null share of each canonical column
func (g *QualityGate) checkCoverage(t *table.Table) map[string]float64 {
	coverage := make(map[string]float64, len(weights))
	if t.Len() == 0 {
		for col := range weights {
			coverage[col] = 0
		}
		return coverage
	}

	coverage[contracts.ColPlayerID] = columnCoverage(t, contracts.ColPlayerID, func(v interface{}) bool {
		_, ok := table.Key(v)
		return ok
	})
	coverage[contracts.ColPoints] = columnCoverage(t, contracts.ColPoints, isNumber)
	coverage[contracts.ColPrice] = columnCoverage(t, contracts.ColPrice, isNumber)

	// 포지션: position 컬럼 또는 posicao_id 코드
	positions, err := s0_data.ResolvePositions(t)
	if err == nil {
		mapped := 0
		for _, p := range positions {
			if p != "" {
				mapped++
			}
		}
		coverage[contracts.ColPosition] = float64(mapped) / float64(t.Len())
	} else {
		coverage[contracts.ColPosition] = 0
	}

	return coverage
}

func (g *QualityGate) passed(s *contracts.DataQualitySnapshot) bool {
	if s.ValidRows == 0 || s.QualityScore < g.config.MinScore {
		return false
	}
	return s.Coverage[contracts.ColPlayerID] >= g.config.MinPlayerIDCoverage &&
		s.Coverage[contracts.ColPoints] >= g.config.MinPointsCoverage &&
		s.Coverage[contracts.ColPrice] >= g.config.MinPriceCoverage &&
		s.Coverage[contracts.ColPosition] >= g.config.MinPositionCoverage
}

func columnCoverage(t *table.Table, col string, present func(interface{}) bool) float64 {
	values, ok := t.Column(col)
	if !ok {
		return 0
	}
	n := 0
	for _, v := range values {
		if present(v) {
			n++
		}
	}
	return float64(n) / float64(len(values))
}

func isNumber(v interface{}) bool {
	_, ok := table.ToFloat(v)
	return ok
}

// countValidRows counts rows usable by S1 and S2
func countValidRows(t *table.Table) int {
	n := 0
	for i := 0; i < t.Len(); i++ {
		if _, ok := table.Key(t.Get(i, contracts.ColPlayerID)); !ok {
			continue
		}
		if !isNumber(t.Get(i, contracts.ColPoints)) || !isNumber(t.Get(i, contracts.ColPrice)) {
			continue
		}
		n++
	}
	return n
}

// calculateScore calculates overall quality score using weighted average
func calculateScore(coverage map[string]float64) float64 {
	score := 0.0
	for key, weight := range weights {
		if cov, exists := coverage[key]; exists {
			score += cov * weight
		}
	}
	return score
}
