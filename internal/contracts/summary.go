package contracts

// Stats are describe()-style statistics of one numeric column
type Stats struct {
	Count int   `json:"count"`
	Mean  Float `json:"mean"`
	Std   Float `json:"std"`
	Min   Float `json:"min"`
	P25   Float `json:"p25"`
	P50   Float `json:"p50"`
	P75   Float `json:"p75"`
	Max   Float `json:"max"`
}

// MetricsSummary describes the metrics table handed to the narrator
type MetricsSummary struct {
	Rows        int   `json:"rows"`
	Players     int   `json:"players"`
	AvgPoints   Stats `json:"avg_points"`
	CostBenefit Stats `json:"cost_benefit"`
}
