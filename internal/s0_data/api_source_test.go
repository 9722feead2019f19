package s0_data

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls []url.Values
	fn    func(params url.Values) (*table.Table, error)
}

func (f *fakeFetcher) FetchTable(ctx context.Context, endpoint string, params url.Values) (*table.Table, error) {
	f.mu.Lock()
	f.calls = append(f.calls, params)
	f.mu.Unlock()
	return f.fn(params)
}

func TestAPISource_Single(t *testing.T) {
	f := &fakeFetcher{fn: func(url.Values) (*table.Table, error) {
		tb := table.New("atleta_id", "pontos", "preco")
		tb.AppendRow(1.0, 2.0, 3.0)
		return tb, nil
	}}

	src := NewAPISource(f, "atletas/mercado", url.Values{"status": {"7"}}, logger.Nop())
	assert.Equal(t, "api:atletas/mercado?status=7", src.Name())

	tb, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tb.Len())
	require.Len(t, f.calls, 1)
	assert.Equal(t, "7", f.calls[0].Get("status"))
}

func TestAPISource_EmptyResponse(t *testing.T) {
	f := &fakeFetcher{fn: func(url.Values) (*table.Table, error) {
		return table.New(), nil
	}}

	_, err := NewAPISource(f, "atletas/mercado", nil, logger.Nop()).Load(context.Background())
	assert.True(t, errors.Is(err, contracts.ErrEmptySourceData))
}

func TestAPISource_FetchError(t *testing.T) {
	f := &fakeFetcher{fn: func(url.Values) (*table.Table, error) {
		return nil, errors.New("boom")
	}}

	_, err := NewAPISource(f, "atletas/mercado", nil, logger.Nop()).Load(context.Background())
	assert.ErrorContains(t, err, "load api:atletas/mercado: boom")
}

func TestAPISource_Rounds(t *testing.T) {
	f := &fakeFetcher{fn: func(params url.Values) (*table.Table, error) {
		switch params.Get("rodada") {
		case "2":
			return nil, fmt.Errorf("unexpected status 500")
		case "3":
			return table.New("atleta_id"), nil
		}
		tb := table.New("atleta_id", "pontos")
		tb.AppendRow(params.Get("rodada"), 1.0)
		return tb, nil
	}}

	src := NewAPISource(f, "atletas/pontuados", url.Values{"status": {"7"}}, logger.Nop()).
		WithRounds([]int{4, 1, 2, 3}, 3)

	tb, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, tb.Len())
	assert.Equal(t, "4", tb.Get(0, "atleta_id"))
	assert.Equal(t, 4.0, tb.Get(0, contracts.ColRodada))
	assert.Equal(t, 1.0, tb.Get(1, contracts.ColRodada))

	assert.Len(t, f.calls, 4)
	for _, c := range f.calls {
		assert.Equal(t, "7", c.Get("status"), "fixed params are kept on every round")
	}
}

func TestAPISource_AllRoundsFail(t *testing.T) {
	f := &fakeFetcher{fn: func(url.Values) (*table.Table, error) {
		return nil, errors.New("down")
	}}

	_, err := NewAPISource(f, "atletas/pontuados", nil, logger.Nop()).
		WithRounds([]int{1, 2}, 0).
		Load(context.Background())

	var empty *contracts.EmptySourceDataError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, []string{"rodada=1", "rodada=2"}, empty.Skipped)
}
