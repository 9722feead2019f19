// Package s1_metrics derives per-player averages and cost-benefit (S1).
package s1_metrics

import (
	"math"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
)

// Calculator adds avg_points and cost_benefit to a normalized table
// ⭐ SSOT: S1 지표 계산은 여기서만
type Calculator struct {
	strictPrice bool
	logger      *logger.Logger
}

// Option configures a Calculator
type Option func(*Calculator)

// WithStrictPrice rejects rows whose price is not positive instead of
// letting the division produce ±Inf or NaN
func WithStrictPrice() Option {
	return func(c *Calculator) {
		c.strictPrice = true
	}
}

// NewCalculator creates a new metrics calculator
func NewCalculator(log *logger.Logger, opts ...Option) *Calculator {
	c := &Calculator{logger: log.WithField("module", "metrics")}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// group accumulates the numeric points of one player
type group struct {
	sum   float64
	count int
}

func (g group) mean() float64 {
	if g.count == 0 {
		return math.NaN()
	}
	return g.sum / float64(g.count)
}

// Calculate returns a copy of t with avg_points and cost_benefit.
// avg_points is the mean of all numeric points of the row's player, broadcast to
// every row of that player; the row count never changes. price is rewritten as
// float64, with unparseable cells as NaN.
func (c *Calculator) Calculate(t *table.Table) (*table.Table, error) {
	var missing []string
	for _, col := range contracts.RequiredColumns {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &contracts.MissingRequiredFieldError{Fields: missing}
	}

	n := t.Len()

	// 1. 집계: player_id별 평균
	groups := make(map[string]*group)
	keys := make([]string, n)
	hasKey := make([]bool, n)
	for i := 0; i < n; i++ {
		key, ok := table.Key(t.Get(i, contracts.ColPlayerID))
		if !ok {
			continue
		}
		keys[i], hasKey[i] = key, true

		g, exists := groups[key]
		if !exists {
			g = &group{}
			groups[key] = g
		}
		if p, ok := t.Float(i, contracts.ColPoints); ok && !math.IsNaN(p) {
			g.sum += p
			g.count++
		}
	}

	// 2. 행 단위 조회 (broadcast)
	prices := make([]interface{}, n)
	avgs := make([]interface{}, n)
	ratios := make([]interface{}, n)
	nonFinite := 0
	for i := 0; i < n; i++ {
		price, ok := t.Float(i, contracts.ColPrice)
		if !ok {
			price = math.NaN()
		}
		prices[i] = price

		avg := math.NaN()
		if hasKey[i] {
			avg = groups[keys[i]].mean()
		}

		if c.strictPrice && !(price > 0) {
			id, _ := table.Key(t.Get(i, contracts.ColPlayerID))
			return nil, &contracts.NonPositivePriceError{PlayerID: id, Price: price}
		}

		ratio := avg / price
		if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
			nonFinite++
		}
		avgs[i] = avg
		ratios[i] = ratio
	}

	out, err := t.WithColumn(contracts.ColPrice, prices)
	if err != nil {
		return nil, err
	}
	if out, err = out.WithColumn(contracts.ColAvgPoints, avgs); err != nil {
		return nil, err
	}
	if out, err = out.WithColumn(contracts.ColCostBenefit, ratios); err != nil {
		return nil, err
	}

	entry := c.logger.WithFields(map[string]interface{}{
		"rows":    n,
		"players": len(groups),
	})
	if nonFinite > 0 {
		entry.WithField("non_finite", nonFinite).Warn("Cost-benefit has non-finite values")
	} else {
		entry.Debug("Metrics calculated")
	}

	return out, nil
}
