package s3_strategy

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/pkg/logger"
)

type fakeCompleter struct {
	system, prompt string
	reply          string
	err            error
}

func (f *fakeCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	f.system, f.prompt = system, prompt
	return f.reply, f.err
}

func strategyRequest() contracts.StrategyRequest {
	return contracts.StrategyRequest{
		Summary: contracts.MetricsSummary{
			Rows:    10,
			Players: 4,
			AvgPoints: contracts.Stats{
				Count: 10, Mean: 3.5, Std: contracts.Float(math.NaN()),
			},
		},
		Standings: []contracts.Standing{
			{Posicao: 1, TimeID: 1, Time: "Flamengo", Pontos: 33},
		},
		Budget: 150,
		Formation: contracts.Formation{Slots: []contracts.Slot{
			{Position: contracts.Defender, Count: 4},
			{Position: contracts.Midfielder, Count: 3},
			{Position: contracts.Attacker, Count: 3},
		}},
		TopN: 5,
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(strategyRequest())
	require.NoError(t, err)

	assert.Contains(t, prompt, "Orçamento máximo: R$150")
	assert.Contains(t, prompt, "Esquema tático: D:4,M:3,A:3")
	assert.Contains(t, prompt, "(top 5)")
	assert.Contains(t, prompt, `"Flamengo"`)
	assert.Contains(t, prompt, `"std":"NaN"`)
	assert.Contains(t, prompt, "Pontos de atenção para as próximas rodadas.")
}

func TestBuildPrompt_NoStandings(t *testing.T) {
	req := strategyRequest()
	req.Standings = nil

	prompt, err := BuildPrompt(req)
	require.NoError(t, err)
	assert.Contains(t, prompt, "(top 5):\n[]")
}

func TestGenerator(t *testing.T) {
	fc := &fakeCompleter{reply: "Aposte na defesa do líder."}

	text, err := NewGenerator(fc, logger.Nop()).GenerateStrategy(context.Background(), strategyRequest())
	require.NoError(t, err)

	assert.Equal(t, "Aposte na defesa do líder.", text)
	assert.Equal(t, systemPrompt, fc.system)
	assert.Contains(t, fc.prompt, "R$150")
}

func TestGenerator_BackendError(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("circuit breaker is open")}

	_, err := NewGenerator(fc, logger.Nop()).GenerateStrategy(context.Background(), strategyRequest())
	assert.ErrorContains(t, err, "generate strategy: circuit breaker is open")
}

func TestDisabled(t *testing.T) {
	var n contracts.Narrator = Disabled{}

	_, err := n.GenerateStrategy(context.Background(), strategyRequest())
	assert.ErrorIs(t, err, contracts.ErrNarratorDisabled)
}
