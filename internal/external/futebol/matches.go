package futebol

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
)

var roundKeyRe = regexp.MustCompile(`^(\d+)a-rodada$`)

// detailConcurrency bounds parallel partidas/{id} lookups
const detailConcurrency = 4

type teamRef struct {
	TimeID      int    `json:"time_id"`
	NomePopular string `json:"nome_popular"`
}

type matchRow struct {
	PartidaID         int     `json:"partida_id"`
	TimeMandante      teamRef `json:"time_mandante"`
	TimeVisitante     teamRef `json:"time_visitante"`
	PlacarMandante    *int    `json:"placar_mandante"`
	PlacarVisitante   *int    `json:"placar_visitante"`
	Status            string  `json:"status"`
	DataRealizacaoISO string  `json:"data_realizacao_iso"`
	Estadio           struct {
		NomePopular string `json:"nome_popular"`
	} `json:"estadio"`
}

func (r matchRow) toMatch(rodada int) contracts.Match {
	m := contracts.Match{
		PartidaID:   r.PartidaID,
		Rodada:      rodada,
		MandanteID:  r.TimeMandante.TimeID,
		Mandante:    r.TimeMandante.NomePopular,
		VisitanteID: r.TimeVisitante.TimeID,
		Visitante:   r.TimeVisitante.NomePopular,
		PlacarCasa:  r.PlacarMandante,
		PlacarFora:  r.PlacarVisitante,
		Status:      r.Status,
		Estadio:     r.Estadio.NomePopular,
	}
	if ts, err := time.Parse(time.RFC3339, r.DataRealizacaoISO); err == nil {
		m.DataRealizada = ts
	}
	return m
}

// Schedule is every fixture of a championship keyed by round number
type Schedule map[int][]contracts.Match

// Rounds returns the round numbers in ascending order
func (s Schedule) Rounds() []int {
	out := make([]int, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// FetchSchedule returns all rounds from campeonatos/{id}/partidas
func (c *Client) FetchSchedule(ctx context.Context, campeonatoID int) (Schedule, error) {
	endpoint := fmt.Sprintf("campeonatos/%d/partidas", campeonatoID)
	raw, err := c.FetchRaw(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	schedule, err := ParseSchedule(raw)
	if err != nil {
		return nil, fmt.Errorf("api-futebol %s: %w", endpoint, err)
	}
	return schedule, nil
}

// ParseSchedule reads {"partidas": {"fase-unica": {"<n>a-rodada": [...]}}}
func ParseSchedule(raw []byte) (Schedule, error) {
	var payload struct {
		Partidas map[string]map[string]json.RawMessage `json:"partidas"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}

	phase, ok := payload.Partidas["fase-unica"]
	if !ok {
		return nil, fmt.Errorf("no round columns found (partidas.fase-unica missing)")
	}

	schedule := Schedule{}
	for key, rawRound := range phase {
		m := roundKeyRe.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		rodada, _ := strconv.Atoi(m[1])

		var rows []matchRow
		if err := json.Unmarshal(rawRound, &rows); err != nil {
			return nil, fmt.Errorf("decode round %s: %w", key, err)
		}
		matches := make([]contracts.Match, len(rows))
		for i, r := range rows {
			matches[i] = r.toMatch(rodada)
		}
		schedule[rodada] = matches
	}

	if len(schedule) == 0 {
		return nil, fmt.Errorf("no round columns found")
	}
	return schedule, nil
}

// FetchNextRoundMatches returns the fixtures of one round
func (c *Client) FetchNextRoundMatches(ctx context.Context, campeonatoID, round int) ([]contracts.Match, error) {
	schedule, err := c.FetchSchedule(ctx, campeonatoID)
	if err != nil {
		return nil, err
	}

	matches, ok := schedule[round]
	if !ok {
		return nil, fmt.Errorf("round %d not found (expected partidas.fase-unica.%da-rodada)", round, round)
	}
	return matches, nil
}

// FetchLastResults returns the latest n played matches of teamID, newest round first.
// Scores come from each match's detail endpoint; matches without a score are skipped.
func (c *Client) FetchLastResults(ctx context.Context, campeonatoID, teamID, n int) ([]contracts.TeamResult, error) {
	schedule, err := c.FetchSchedule(ctx, campeonatoID)
	if err != nil {
		return nil, err
	}

	var games []contracts.Match
	for _, matches := range schedule {
		for _, m := range matches {
			if m.MandanteID == teamID || m.VisitanteID == teamID {
				games = append(games, m)
			}
		}
	}
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Rodada != games[j].Rodada {
			return games[i].Rodada > games[j].Rodada
		}
		return games[i].PartidaID > games[j].PartidaID
	})

	results := make([]contracts.TeamResult, 0, n)
	for start := 0; start < len(games) && len(results) < n; start += detailConcurrency {
		end := start + detailConcurrency
		if end > len(games) {
			end = len(games)
		}
		batch := games[start:end]

		scores := make([]*Score, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		for i := range batch {
			i := i
			g.Go(func() error {
				s, err := c.fetchScore(gctx, batch[i].PartidaID)
				if err != nil {
					return err
				}
				scores[i] = s
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for i, m := range batch {
			if scores[i] == nil || len(results) >= n {
				continue
			}
			results = append(results, toTeamResult(m, *scores[i], teamID))
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"team_id": teamID,
		"results": len(results),
	}).Debug("Fetched last results")

	return results, nil
}

// Score is an official final score
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// fetchScore reads a match detail and returns nil when the match has no official score yet
func (c *Client) fetchScore(ctx context.Context, partidaID int) (*Score, error) {
	raw, err := c.FetchRaw(ctx, fmt.Sprintf("partidas/%d", partidaID), nil)
	if err != nil {
		return nil, err
	}
	detail, err := table.FromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("decode partida %d: %w", partidaID, err)
	}
	return ScoreFromDetail(detail), nil
}

// ScoreFromDetail locates the score columns by name, since the detail payload
// layout varies between placar_mandante and placar_oficial_mandante.
func ScoreFromDetail(detail *table.Table) *Score {
	if detail.Len() == 0 {
		return nil
	}
	homeCol := findScoreColumn(detail.Columns(), "mandante")
	awayCol := findScoreColumn(detail.Columns(), "visitante")
	if homeCol == "" || awayCol == "" {
		return nil
	}

	home, ok := detail.Float(0, homeCol)
	if !ok {
		return nil
	}
	away, ok := detail.Float(0, awayCol)
	if !ok {
		return nil
	}
	return &Score{Home: int(home), Away: int(away)}
}

func findScoreColumn(cols []string, side string) string {
	for _, c := range cols {
		lc := strings.ToLower(c)
		if strings.Contains(lc, side) && strings.Contains(lc, "placar") {
			return c
		}
	}
	return ""
}

func toTeamResult(m contracts.Match, s Score, teamID int) contracts.TeamResult {
	r := contracts.TeamResult{
		PartidaID: m.PartidaID,
		Rodada:    m.Rodada,
	}
	if m.MandanteID == teamID {
		r.Mando = "casa"
		r.Adversario = m.Visitante
		r.GolsPro, r.GolsContra = s.Home, s.Away
	} else {
		r.Mando = "fora"
		r.Adversario = m.Mandante
		r.GolsPro, r.GolsContra = s.Away, s.Home
	}
	switch {
	case r.GolsPro > r.GolsContra:
		r.Resultado = "V"
	case r.GolsPro < r.GolsContra:
		r.Resultado = "D"
	default:
		r.Resultado = "E"
	}
	return r
}
