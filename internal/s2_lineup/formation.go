package s2_lineup

import (
	"strconv"
	"strings"

	"github.com/wonny/sensai/internal/contracts"
)

// dashOrders maps a dash formation's length to its position order
var dashOrders = map[int][]contracts.Position{
	3: {contracts.Defender, contracts.Midfielder, contracts.Attacker},
	4: {contracts.Goalkeeper, contracts.Defender, contracts.Midfielder, contracts.Attacker},
}

// ParseFormation accepts "1-4-3-3" (G-D-M-A), "4-3-3" (D-M-A, no goalkeeper)
// or explicit pairs "G:1,D:4,M:3,A:3" whose order is kept as the fill order.
func ParseFormation(s string) (contracts.Formation, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return contracts.Formation{}, invalid(s, "empty formation")
	}

	var f contracts.Formation
	var err error
	if strings.Contains(in, ":") {
		f, err = parsePairs(s, in)
	} else {
		f, err = parseDashes(s, in)
	}
	if err != nil {
		return contracts.Formation{}, err
	}
	if f.Total() == 0 {
		return contracts.Formation{}, invalid(s, "formation requests no players")
	}
	return f, nil
}

func parseDashes(raw, in string) (contracts.Formation, error) {
	parts := strings.Split(in, "-")
	order, ok := dashOrders[len(parts)]
	if !ok {
		return contracts.Formation{}, invalid(raw, "expected D-M-A or G-D-M-A counts")
	}

	f := contracts.Formation{Slots: make([]contracts.Slot, len(parts))}
	for i, p := range parts {
		n, err := parseCount(p)
		if err != nil {
			return contracts.Formation{}, invalid(raw, err.Error())
		}
		f.Slots[i] = contracts.Slot{Position: order[i], Count: n}
	}
	return f, nil
}

func parsePairs(raw, in string) (contracts.Formation, error) {
	var f contracts.Formation
	seen := make(map[contracts.Position]bool)

	for _, pair := range strings.Split(in, ",") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			return contracts.Formation{}, invalid(raw, "expected POSITION:COUNT pairs")
		}
		pos, err := contracts.ParsePosition(kv[0])
		if err != nil {
			return contracts.Formation{}, invalid(raw, err.Error())
		}
		if seen[pos] {
			return contracts.Formation{}, invalid(raw, "position "+string(pos)+" repeated")
		}
		seen[pos] = true

		n, err := parseCount(kv[1])
		if err != nil {
			return contracts.Formation{}, invalid(raw, err.Error())
		}
		f.Slots = append(f.Slots, contracts.Slot{Position: pos, Count: n})
	}
	return f, nil
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, &countError{s}
	}
	return n, nil
}

type countError struct{ input string }

func (e *countError) Error() string {
	return "count " + strconv.Quote(e.input) + " is not a non-negative integer"
}

func invalid(input, reason string) error {
	return &contracts.InvalidFormationError{Input: input, Reason: reason}
}
