package s0_data

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
)

func TestNormalize_RenamesPrimaryFallbacks(t *testing.T) {
	in := table.New("atleta_id", "pontuacao", "preco")
	in.AppendRow(7.0, 10.0, 5.0)

	out, err := NewNormalizer(logger.Nop()).Normalize(in)
	require.NoError(t, err)

	assert.Equal(t, []string{"player_id", "points", "price"}, out.Columns())
	assert.Equal(t, 7.0, out.Get(0, contracts.ColPlayerID))
	assert.Equal(t, 10.0, out.Get(0, contracts.ColPoints))
	assert.Equal(t, 5.0, out.Get(0, contracts.ColPrice))

	// input untouched
	assert.Equal(t, []string{"atleta_id", "pontuacao", "preco"}, in.Columns())
}

func TestNormalize_FallbackPriority(t *testing.T) {
	tests := []struct {
		name       string
		columns    []string
		row        []interface{}
		wantPoints interface{}
		wantPrice  interface{}
		keeps      []string
	}{
		{
			name:       "pontuacao wins over pontos",
			columns:    []string{"player_id", "pontuacao", "pontos", "valor"},
			row:        []interface{}{1.0, 3.0, 99.0, 4.0},
			wantPoints: 3.0,
			wantPrice:  4.0,
			keeps:      []string{"pontos"},
		},
		{
			name:       "nested statistics are copied",
			columns:    []string{"atleta_id", "estatisticas.pontos", "estatisticas.preco"},
			row:        []interface{}{1.0, 6.5, 12.0},
			wantPoints: 6.5,
			wantPrice:  12.0,
			keeps:      []string{"estatisticas.pontos", "estatisticas.preco"},
		},
		{
			name:       "preco wins over valor",
			columns:    []string{"atleta_id", "pontos", "valor", "preco"},
			row:        []interface{}{1.0, 2.0, 50.0, 8.0},
			wantPoints: 2.0,
			wantPrice:  8.0,
			keeps:      []string{"valor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := table.New(tt.columns...)
			in.AppendRow(tt.row...)

			out, err := NewNormalizer(logger.Nop()).Normalize(in)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPoints, out.Get(0, contracts.ColPoints))
			assert.Equal(t, tt.wantPrice, out.Get(0, contracts.ColPrice))
			for _, col := range tt.keeps {
				assert.True(t, out.Has(col), "expected %s to survive", col)
			}
		})
	}
}

func TestNormalize_MissingPoints(t *testing.T) {
	in := table.New("atleta_id", "preco", "clube")
	in.AppendRow(7.0, 5.0, "FLA")

	_, err := NewNormalizer(logger.Nop()).Normalize(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrMissingRequiredField))

	var missing *contracts.MissingRequiredFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"points"}, missing.Fields)
}

func TestNormalize_MissingEverything(t *testing.T) {
	_, err := NewNormalizer(logger.Nop()).Normalize(table.New("clube"))

	var missing *contracts.MissingRequiredFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"player_id", "points", "price"}, missing.Fields)
	assert.Contains(t, err.Error(), "player_id, points, price")
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []*table.Table{
		table.New("atleta_id", "pontuacao", "preco"),
		table.New("atleta_id", "estatisticas.pontos", "estatisticas.preco"),
		table.New("player_id", "points", "price", "position"),
	}
	inputs[0].AppendRow(1.0, 2.0, 3.0)
	inputs[1].AppendRow(1.0, 2.0, 3.0)
	inputs[2].AppendRow("x", 2.0, 3.0, "G")

	n := NewNormalizer(logger.Nop())
	for _, in := range inputs {
		once, err := n.Normalize(in)
		require.NoError(t, err)
		twice, err := n.Normalize(once)
		require.NoError(t, err)
		assert.True(t, once.Equal(twice), "columns %v", in.Columns())
	}
}

func TestResolvePositions(t *testing.T) {
	t.Run("direct column", func(t *testing.T) {
		tb := table.New("position", "posicao_id")
		tb.AppendRow("g", 4.0)
		tb.AppendRow(3.0, 1.0)
		tb.AppendRow("X", 1.0)

		got, err := ResolvePositions(tb)
		require.NoError(t, err)
		assert.Equal(t, []contracts.Position{contracts.Goalkeeper, contracts.Midfielder, ""}, got)
	})

	t.Run("code column priority", func(t *testing.T) {
		tb := table.New("posicao_id", "atletas.posicao_id")
		tb.AppendRow(1.0, 2.0)
		tb.AppendRow(1.0, "4")
		tb.AppendRow(1.0, 6.0)

		got, err := ResolvePositions(tb)
		require.NoError(t, err)
		assert.Equal(t, []contracts.Position{contracts.Defender, contracts.Attacker, ""}, got)
	})

	t.Run("no position information", func(t *testing.T) {
		_, err := ResolvePositions(table.New("player_id"))
		assert.True(t, errors.Is(err, contracts.ErrMissingRequiredField))
	})
}
