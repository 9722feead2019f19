package contracts

// Pick is one selected player
type Pick struct {
	PlayerID    string   `json:"player_id"`
	Name        string   `json:"name"`
	Position    Position `json:"position"`
	Price       Float    `json:"price"`
	AvgPoints   Float    `json:"avg_points"`
	CostBenefit Float    `json:"cost_benefit"`
}

// Lineup is the assembler result.
// Picks are grouped by formation slot order, then by cost-benefit rank.
type Lineup struct {
	Picks           []Pick           `json:"picks"`
	Formation       Formation        `json:"formation"`
	Budget          float64          `json:"budget"`
	TotalPrice      float64          `json:"total_price"`
	RemainingBudget float64          `json:"remaining_budget"`
	Filled          map[Position]int `json:"filled"`
}

// Complete reports whether every formation slot was filled
func (l *Lineup) Complete() bool {
	for _, s := range l.Formation.Slots {
		if l.Filled[s.Position] < s.Count {
			return false
		}
	}
	return true
}

// Size returns the number of picked players
func (l *Lineup) Size() int {
	return len(l.Picks)
}

// ProjectedPoints sums avg_points over the picks
func (l *Lineup) ProjectedPoints() float64 {
	total := 0.0
	for _, p := range l.Picks {
		total += float64(p.AvgPoints)
	}
	return total
}
