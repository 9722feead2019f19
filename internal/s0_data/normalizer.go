package s0_data

import (
	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
)

// fallback is one candidate source column for a canonical field.
// copy keeps the source column (nested "estatisticas.*" fields); otherwise it is renamed in place.
type fallback struct {
	source string
	copy   bool
}

// Candidate source columns per canonical field, in priority order.
// ⭐ SSOT: 컬럼 매핑 우선순위는 여기서만 정의
var (
	playerIDFallbacks = []fallback{
		{source: "atleta_id"},
	}
	pointsFallbacks = []fallback{
		{source: "pontuacao"},
		{source: "pontos"},
		{source: "estatisticas.pontos", copy: true},
	}
	priceFallbacks = []fallback{
		{source: "preco"},
		{source: "valor"},
		{source: "estatisticas.preco", copy: true},
	}
)

// PositionCodeColumns are categorical position code columns, in priority order
var PositionCodeColumns = []string{"atletas.posicao_id", "posicao_id"}

// Normalizer maps heterogeneous source columns onto player_id, points and price
// ⭐ SSOT: S0 컬럼 정규화
type Normalizer struct {
	logger *logger.Logger
}

// NewNormalizer creates a Normalizer
func NewNormalizer(log *logger.Logger) *Normalizer {
	return &Normalizer{logger: log.WithField("module", "normalizer")}
}

// Normalize returns a copy of t with canonical player_id, points and price columns.
// The input is never modified. When any of the three cannot be resolved, it returns a
// *contracts.MissingRequiredFieldError naming every missing field.
// Position is resolved later by the assembler and is not required here.
func (n *Normalizer) Normalize(t *table.Table) (*table.Table, error) {
	out := t.Clone()
	var missing []string

	var ok bool
	if out, ok = resolve(out, contracts.ColPlayerID, playerIDFallbacks); !ok {
		missing = append(missing, contracts.ColPlayerID)
	}
	if out, ok = resolve(out, contracts.ColPoints, pointsFallbacks); !ok {
		missing = append(missing, contracts.ColPoints)
	}
	if out, ok = resolve(out, contracts.ColPrice, priceFallbacks); !ok {
		missing = append(missing, contracts.ColPrice)
	}

	if len(missing) > 0 {
		n.logger.WithFields(map[string]interface{}{
			"missing": missing,
			"columns": t.Columns(),
		}).Warn("Normalization failed")
		return nil, &contracts.MissingRequiredFieldError{Fields: missing}
	}

	n.logger.WithFields(map[string]interface{}{
		"rows":    out.Len(),
		"columns": len(out.Columns()),
	}).Debug("Table normalized")

	return out, nil
}

// resolve takes the first matching fallback. A table whose only match is the
// canonical name itself is already normalized.
func resolve(t *table.Table, canonical string, fallbacks []fallback) (*table.Table, bool) {
	for _, fb := range fallbacks {
		if !t.Has(fb.source) {
			continue
		}
		if !fb.copy {
			return t.Rename(fb.source, canonical), true
		}
		values, _ := t.Column(fb.source)
		out, err := t.WithColumn(canonical, values)
		if err != nil {
			return t, false
		}
		return out, true
	}
	return t, t.Has(canonical)
}
