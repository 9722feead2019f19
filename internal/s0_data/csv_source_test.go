package s0_data

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/pkg/logger"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReadCSV(t *testing.T) {
	in := "\ufeffid,nome,preco,id\n1,Gabigol,10.5,9\n2,,x,8\n"

	tb, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "nome", "preco", "id.1"}, tb.Columns())
	assert.Equal(t, 2, tb.Len())
	assert.Equal(t, 1.0, tb.Get(0, "id"))
	assert.Equal(t, "Gabigol", tb.Get(0, "nome"))
	assert.Nil(t, tb.Get(1, "nome"))
	// mixed column stays text
	assert.Equal(t, "10.5", tb.Get(0, "preco"))
	assert.Equal(t, 9.0, tb.Get(0, "id.1"))
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, errEmptyFile)
}

func TestCSVSource_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rodada_2.csv",
		"Unnamed: 0,atletas.atleta_id,atletas.apelido,atletas.posicao_id,atletas.preco_num,atletas.pontos_num,atletas.rodada_id\n"+
			"0,42,Arrascaeta,3,18.5,12.3,2\n")
	writeFile(t, dir, "rodada_1.csv",
		"Unnamed: 0,atletas.atleta_id,atletas.apelido,atletas.posicao_id,atletas.preco_num,atletas.pontos_num,atletas.rodada_id\n"+
			"0,42,Arrascaeta,3,17.0,8.1,1\n"+
			"1,7,Hulk,4,15.0,,1\n")
	writeFile(t, dir, "rodada_3.csv", "")
	writeFile(t, dir, "notes.txt", "ignored")

	tb, err := NewCSVSource(dir, logger.Nop()).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, tb.Len())
	assert.False(t, tb.Has("Unnamed: 0"))
	assert.Equal(t,
		[]string{"player_id", "atletas.apelido", "atletas.posicao_id", "price", "points", "rodada"},
		tb.Columns())

	// lexical file order: rodada_1 first
	assert.Equal(t, 1.0, tb.Get(0, contracts.ColRodada))
	assert.Equal(t, 17.0, tb.Get(0, contracts.ColPrice))
	assert.Nil(t, tb.Get(1, contracts.ColPoints))
	assert.Equal(t, 2.0, tb.Get(2, contracts.ColRodada))
}

func TestCSVSource_NoFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := NewCSVSource(dir, logger.Nop()).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrEmptySourceData))

	var empty *contracts.EmptySourceDataError
	require.True(t, errors.As(err, &empty))
	assert.Empty(t, empty.Skipped)
	assert.Equal(t, dir, empty.Source)
}

func TestCSVSource_AllEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rodada_1.csv", "")
	writeFile(t, dir, "rodada_2.csv", "")

	_, err := NewCSVSource(dir, logger.Nop()).Load(context.Background())

	var empty *contracts.EmptySourceDataError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, []string{"rodada_1.csv", "rodada_2.csv"}, empty.Skipped)
	assert.Contains(t, err.Error(), "rodada_1.csv, rodada_2.csv")
}

func TestCSVSource_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rodada_1.csv", "atletas.atleta_id,atletas.preco_num,atletas.pontos_num\n")

	tb, err := NewCSVSource(dir, logger.Nop()).Load(context.Background())
	assert.Nil(t, tb)
	require.ErrorIs(t, err, contracts.ErrEmptySourceData)

	var empty *contracts.EmptySourceDataError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, []string{"rodada_1.csv"}, empty.Skipped)
}

func TestCSVSource_HeaderOnlyMixed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rodada_1.csv", "atletas.atleta_id,atletas.pontos_num\n")
	writeFile(t, dir, "rodada_2.csv", "atletas.atleta_id,atletas.pontos_num\n42,7.5\n")

	tb, err := NewCSVSource(dir, logger.Nop()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tb.Len())
}

func TestCSVSource_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rodada_1.csv", "a\n1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVSource(dir, logger.Nop()).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVSource_FeedsNormalizer(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rodada_1.csv",
		"atletas.atleta_id,atletas.preco_num,atletas.pontos_num,atletas.posicao_id\n"+
			"1,5,3,1\n")

	raw, err := NewCSVSource(dir, logger.Nop()).Load(context.Background())
	require.NoError(t, err)

	out, err := NewNormalizer(logger.Nop()).Normalize(raw)
	require.NoError(t, err)
	assert.True(t, out.Equal(raw), "round files are already canonical")

	positions, err := ResolvePositions(out)
	require.NoError(t, err)
	assert.Equal(t, []contracts.Position{contracts.Goalkeeper}, positions)
}
