package contracts

import (
	"fmt"
	"strings"
)

// Slot is a quota of players for one position
type Slot struct {
	Position Position `json:"position"`
	Count    int      `json:"count"`
}

// Formation is an ordered position→count quota.
// Slot order is the order in which the assembler fills positions.
type Formation struct {
	Slots []Slot `json:"slots"`
}

// Count returns the quota for p (0 if absent)
func (f Formation) Count(p Position) int {
	for _, s := range f.Slots {
		if s.Position == p {
			return s.Count
		}
	}
	return 0
}

// Total returns the number of requested players
func (f Formation) Total() int {
	n := 0
	for _, s := range f.Slots {
		n += s.Count
	}
	return n
}

// String renders the formation as "G:1,D:4,M:3,A:3"
func (f Formation) String() string {
	parts := make([]string, len(f.Slots))
	for i, s := range f.Slots {
		parts[i] = fmt.Sprintf("%s:%d", s.Position, s.Count)
	}
	return strings.Join(parts, ",")
}
