package profile

import (
	"fmt"
	"sort"

	"github.com/wonny/sensai/internal/contracts"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
func Validate(f *File) error {
	if len(f.Profiles) == 0 {
		return ValidationError{"profiles", "at least one profile is required"}
	}

	for _, name := range f.Names() {
		p := f.Profiles[name]
		field := "profiles." + name

		if p.Budget <= 0 {
			return ValidationError{field + ".budget", "must be > 0"}
		}
		if _, err := p.ParsedFormation(); err != nil {
			return ValidationError{field + ".formation", err.Error()}
		}
		if p.TopN < 0 {
			return ValidationError{field + ".top_n", "must be >= 0"}
		}
	}

	// 품질 임계값 (0~1)
	q := f.Quality
	thresholds := map[string]float64{
		"quality.min_player_id_coverage": q.MinPlayerIDCoverage,
		"quality.min_points_coverage":    q.MinPointsCoverage,
		"quality.min_price_coverage":     q.MinPriceCoverage,
		"quality.min_position_coverage":  q.MinPositionCoverage,
		"quality.min_score":              q.MinScore,
	}
	fields := make([]string, 0, len(thresholds))
	for k := range thresholds {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for _, k := range fields {
		if err := validatePctRange(thresholds[k], k); err != nil {
			return err
		}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(f *File) []Warning {
	var warnings []Warning

	for _, name := range f.Names() {
		p := f.Profiles[name]
		formation, err := p.ParsedFormation()
		if err != nil {
			continue
		}

		// 골키퍼 없는 포메이션
		if formation.Count(contracts.Goalkeeper) == 0 {
			warnings = append(warnings, Warning{
				Code:    "NO_GOALKEEPER",
				Message: fmt.Sprintf("profile %s: formation %q has no goalkeeper slot", name, p.Formation),
			})
		}

		// 12명 초과 요청
		if formation.Total() > 12 {
			warnings = append(warnings, Warning{
				Code:    "OVERSIZED_SQUAD",
				Message: fmt.Sprintf("profile %s: formation requests %d players", name, formation.Total()),
			})
		}

		if p.Strategy && p.TopN == 0 {
			warnings = append(warnings, Warning{
				Code:    "EMPTY_STANDINGS",
				Message: fmt.Sprintf("profile %s: strategy enabled with top_n=0 sends no standings", name),
			})
		}
	}

	return warnings
}

// validatePctRange는 비율 값이 0~1 범위인지 검증
func validatePctRange(pct float64, field string) error {
	if pct < 0 || pct > 1 {
		return ValidationError{field, "must be in range [0, 1]"}
	}
	return nil
}
