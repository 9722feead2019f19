package s0_data

import (
	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
)

// ResolvePositions maps every row to a Position.
// A direct "position" column wins (letters, or codes stored there); otherwise the first present code column in
// PositionCodeColumns is mapped through {1:G, 2:D, 3:M, 4:A}. Rows that cannot be
// mapped get "" (callers exclude them). With neither kind of column the table is
// missing the position field.
func ResolvePositions(t *table.Table) ([]contracts.Position, error) {
	out := make([]contracts.Position, t.Len())

	if t.Has(contracts.ColPosition) {
		for i := range out {
			v := t.Get(i, contracts.ColPosition)
			if p, ok := contracts.PositionFromCell(v); ok {
				out[i] = p
			} else if p, ok := contracts.PositionFromCode(v); ok {
				out[i] = p
			}
		}
		return out, nil
	}

	for _, col := range PositionCodeColumns {
		if !t.Has(col) {
			continue
		}
		for i := range out {
			if p, ok := contracts.PositionFromCode(t.Get(i, col)); ok {
				out[i] = p
			}
		}
		return out, nil
	}

	return nil, &contracts.MissingRequiredFieldError{Fields: []string{contracts.ColPosition}}
}
