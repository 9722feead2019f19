package contracts

import "time"

// DataQualitySnapshot is the column coverage report passed from S0 to S1
// ⭐ SSOT: S0 → S1 데이터 품질 정보 전달
type DataQualitySnapshot struct {
	CheckedAt    time.Time          `json:"checked_at"`
	TotalRows    int                `json:"total_rows"`
	ValidRows    int                `json:"valid_rows"`    // player_id, points, price 모두 존재
	Coverage     map[string]float64 `json:"coverage"`      // 컬럼별 non-null 비율
	QualityScore float64            `json:"quality_score"` // 0.0 ~ 1.0
	Passed       bool               `json:"passed"`
}

// IsValid checks if the snapshot meets the minimum bar for running the pipeline
func (d *DataQualitySnapshot) IsValid() bool {
	return d.QualityScore >= 0.7 && d.ValidRows > 0
}

// CoverageRate returns the average coverage across all checked columns
func (d *DataQualitySnapshot) CoverageRate() float64 {
	if len(d.Coverage) == 0 {
		return 0.0
	}

	total := 0.0
	for _, rate := range d.Coverage {
		total += rate
	}

	return total / float64(len(d.Coverage))
}
