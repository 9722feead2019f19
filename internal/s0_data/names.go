package s0_data

import (
	"strings"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
)

// NameColumns are display-name columns, in priority order
var NameColumns = []string{"atletas.apelido", "atletas.nome", "apelido", "nome"}

// DisplayName returns the first non-empty name cell of row i, else the player id
func DisplayName(t *table.Table, i int) string {
	for _, col := range NameColumns {
		if s, ok := t.Get(i, col).(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	id, _ := table.Key(t.Get(i, contracts.ColPlayerID))
	return id
}
