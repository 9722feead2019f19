package contracts

import (
	"fmt"
	"strings"

	"github.com/wonny/sensai/internal/table"
)

// Position is a player role on the pitch
type Position string

const (
	Goalkeeper Position = "G"
	Defender   Position = "D"
	Midfielder Position = "M"
	Attacker   Position = "A"
)

// AllPositions in conventional G, D, M, A order
var AllPositions = []Position{Goalkeeper, Defender, Midfielder, Attacker}

// positionCodes maps the Cartola posicao_id codes
var positionCodes = map[int]Position{
	1: Goalkeeper,
	2: Defender,
	3: Midfielder,
	4: Attacker,
}

// ParsePosition accepts "G", "D", "M", "A" (case-insensitive, trimmed)
func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case Goalkeeper, Defender, Midfielder, Attacker:
		return p, nil
	}
	return "", fmt.Errorf("unknown position %q", s)
}

// PositionFromCode maps a categorical code cell (1..4, numeric or string) to a Position
func PositionFromCode(v interface{}) (Position, bool) {
	f, ok := table.ToFloat(v)
	if !ok || f != float64(int(f)) {
		return "", false
	}
	p, ok := positionCodes[int(f)]
	return p, ok
}

// PositionFromCell reads a direct position cell ("G", "d", ...)
func PositionFromCell(v interface{}) (Position, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	p, err := ParsePosition(s)
	return p, err == nil
}
