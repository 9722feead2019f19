package contracts

import (
	"context"

	"github.com/wonny/sensai/internal/table"
)

// PlayerSource loads raw player observations (S0)
// ⭐ SSOT: S0 원천 데이터 로딩 인터페이스
type PlayerSource interface {
	Load(ctx context.Context) (*table.Table, error)
	Name() string
}

// Normalizer maps source columns onto the canonical schema (S0)
// ⭐ SSOT: S0 컬럼 정규화 인터페이스
type Normalizer interface {
	Normalize(t *table.Table) (*table.Table, error)
}

// MetricsCalculator adds avg_points and cost_benefit (S1)
// ⭐ SSOT: S1 지표 계산 인터페이스
type MetricsCalculator interface {
	Calculate(t *table.Table) (*table.Table, error)
}

// LineupAssembler picks a budget-constrained lineup (S2)
// ⭐ SSOT: S2 라인업 구성 인터페이스
type LineupAssembler interface {
	Assemble(t *table.Table, budget float64, formation Formation) (*Lineup, error)
}

// StandingsProvider supplies the championship table used as narrative context
type StandingsProvider interface {
	FetchStandings(ctx context.Context, campeonatoID int) ([]Standing, error)
}

// Narrator produces a free-text tactical strategy (S3)
// ⭐ SSOT: S3 전략 서술 인터페이스
type Narrator interface {
	GenerateStrategy(ctx context.Context, req StrategyRequest) (string, error)
}

// StrategyRequest carries the narrative inputs
type StrategyRequest struct {
	Summary   MetricsSummary
	Standings []Standing
	Budget    float64
	Formation Formation
	TopN      int
}

// Sink persists a processed table under category/filename
// ⭐ SSOT: 결과 저장 인터페이스
type Sink interface {
	Save(ctx context.Context, t *table.Table, category, filename string) (string, error)
}
