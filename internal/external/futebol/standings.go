package futebol

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/wonny/sensai/internal/contracts"
)

// standingRow mirrors one classificacao entry. Older payloads use "posição"
// and "ultimas"; newer ones "posicao" and "ultimos_jogos".
type standingRow struct {
	Posicao       *int `json:"posicao"`
	PosicaoAcento *int `json:"posição"`
	Pontos        int  `json:"pontos"`
	Time          struct {
		TimeID      int    `json:"time_id"`
		NomePopular string `json:"nome_popular"`
	} `json:"time"`
	Jogos        int      `json:"jogos"`
	Vitorias     int      `json:"vitorias"`
	Empates      int      `json:"empates"`
	Derrotas     int      `json:"derrotas"`
	GolsPro      int      `json:"gols_pro"`
	GolsContra   int      `json:"gols_contra"`
	SaldoGols    int      `json:"saldo_gols"`
	Ultimas      []string `json:"ultimas"`
	UltimosJogos []string `json:"ultimos_jogos"`
}

func (r standingRow) toStanding() contracts.Standing {
	s := contracts.Standing{
		TimeID:   r.Time.TimeID,
		Time:     r.Time.NomePopular,
		Pontos:   r.Pontos,
		Jogos:    r.Jogos,
		Vitorias: r.Vitorias,
		Empates:  r.Empates,
		Derrotas: r.Derrotas,
		GM:       r.GolsPro,
		GC:       r.GolsContra,
		SG:       r.SaldoGols,
		Ultimas5: r.Ultimas,
	}
	switch {
	case r.Posicao != nil:
		s.Posicao = *r.Posicao
	case r.PosicaoAcento != nil:
		s.Posicao = *r.PosicaoAcento
	}
	if len(s.Ultimas5) == 0 {
		s.Ultimas5 = r.UltimosJogos
	}
	return s
}

// FetchStandings returns the championship table sorted by position
func (c *Client) FetchStandings(ctx context.Context, campeonatoID int) ([]contracts.Standing, error) {
	endpoint := fmt.Sprintf("campeonatos/%d/classificacao", campeonatoID)
	raw, err := c.FetchRaw(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	standings, err := ParseStandings(raw)
	if err != nil {
		return nil, fmt.Errorf("api-futebol %s: %w", endpoint, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"campeonato_id": campeonatoID,
		"teams":         len(standings),
	}).Debug("Fetched standings")

	return standings, nil
}

// ParseStandings decodes a classificacao payload
func ParseStandings(raw []byte) ([]contracts.Standing, error) {
	var rows []standingRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode standings: %w", err)
	}

	out := make([]contracts.Standing, len(rows))
	for i, r := range rows {
		out[i] = r.toStanding()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Posicao < out[j].Posicao
	})
	return out, nil
}

// TopStandings returns at most n leading rows
func TopStandings(standings []contracts.Standing, n int) []contracts.Standing {
	if n < 0 {
		n = 0
	}
	if n > len(standings) {
		n = len(standings)
	}
	return standings[:n]
}
