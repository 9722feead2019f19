package contracts

// Canonical column names produced by S0 normalization and S1 metrics
// ⭐ SSOT: 정규화된 컬럼명은 여기서만 정의
const (
	ColPlayerID    = "player_id"
	ColPoints      = "points"
	ColPrice       = "price"
	ColPosition    = "position"
	ColRodada      = "rodada"
	ColAvgPoints   = "avg_points"
	ColCostBenefit = "cost_benefit"
)

// RequiredColumns are the fields every normalized table must carry, in report order
var RequiredColumns = []string{ColPlayerID, ColPoints, ColPrice}
