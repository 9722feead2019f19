package s0_data

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
)

// TableFetcher fetches one api-futebol endpoint as a flattened table
type TableFetcher interface {
	FetchTable(ctx context.Context, endpoint string, params url.Values) (*table.Table, error)
}

// APISource loads player observations from an api-futebol endpoint.
// With rounds set, the endpoint is fetched once per round (param "rodada")
// by a pool of workers and the results are stacked in round order.
// ⭐ SSOT: API 기반 S0 수집
type APISource struct {
	fetcher  TableFetcher
	endpoint string
	params   url.Values
	rounds   []int
	workers  int
	logger   *logger.Logger
}

// NewAPISource creates a source for endpoint with fixed query params
func NewAPISource(fetcher TableFetcher, endpoint string, params url.Values, log *logger.Logger) *APISource {
	return &APISource{
		fetcher:  fetcher,
		endpoint: endpoint,
		params:   params,
		workers:  1,
		logger:   log.WithFields(map[string]interface{}{"module": "api_source", "endpoint": endpoint}),
	}
}

// WithRounds fetches each round separately using workers concurrent requests
func (s *APISource) WithRounds(rounds []int, workers int) *APISource {
	s.rounds = rounds
	if workers < 1 {
		workers = 1
	}
	s.workers = workers
	return s
}

// Name identifies the source in logs and run results
func (s *APISource) Name() string {
	if len(s.params) == 0 {
		return "api:" + s.endpoint
	}
	return "api:" + s.endpoint + "?" + s.params.Encode()
}

// roundResult is the outcome of one round fetch
type roundResult struct {
	index int
	round int
	table *table.Table
	err   error
}

// Load fetches the endpoint. An empty response (or every round failing) is a
// *contracts.EmptySourceDataError.
func (s *APISource) Load(ctx context.Context) (*table.Table, error) {
	if len(s.rounds) == 0 {
		t, err := s.fetcher.FetchTable(ctx, s.endpoint, s.params)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", s.Name(), err)
		}
		if t.Len() == 0 {
			return nil, &contracts.EmptySourceDataError{Source: s.Name()}
		}
		return t, nil
	}

	s.logger.WithFields(map[string]interface{}{
		"rounds":  len(s.rounds),
		"workers": s.workers,
	}).Info("Starting round collection")

	results := s.fetchRounds(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		tables  []*table.Table
		skipped []string
	)
	for _, r := range results {
		label := "rodada=" + strconv.Itoa(r.round)
		if r.err != nil {
			s.logger.WithError(r.err).WithField("rodada", r.round).Warn("Skipping round")
			skipped = append(skipped, label)
			continue
		}
		if r.table.Len() == 0 {
			skipped = append(skipped, label)
			continue
		}
		tables = append(tables, r.table)
	}

	if len(tables) == 0 {
		return nil, &contracts.EmptySourceDataError{Source: s.Name(), Skipped: skipped}
	}

	out := table.Concat(tables...)
	s.logger.WithFields(map[string]interface{}{
		"success": len(tables),
		"failed":  len(skipped),
		"rows":    out.Len(),
	}).Info("Round collection completed")

	return out, nil
}

// fetchRounds runs the worker pool; results keep the order of s.rounds
func (s *APISource) fetchRounds(ctx context.Context) []roundResult {
	jobs := make(chan int, len(s.rounds))
	resultCh := make(chan roundResult, len(s.rounds))

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				resultCh <- s.fetchRound(ctx, idx)
			}
		}()
	}

	for idx := range s.rounds {
		jobs <- idx
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]roundResult, len(s.rounds))
	for r := range resultCh {
		results[r.index] = r
	}
	return results
}

func (s *APISource) fetchRound(ctx context.Context, idx int) roundResult {
	round := s.rounds[idx]
	res := roundResult{index: idx, round: round}

	if err := ctx.Err(); err != nil {
		res.err = err
		return res
	}

	params := url.Values{}
	for k, v := range s.params {
		params[k] = v
	}
	params.Set("rodada", strconv.Itoa(round))

	t, err := s.fetcher.FetchTable(ctx, s.endpoint, params)
	if err != nil {
		res.err = err
		return res
	}

	// 응답에 라운드 번호가 없으면 채움
	if !t.Has(contracts.ColRodada) {
		values := make([]interface{}, t.Len())
		for i := range values {
			values[i] = float64(round)
		}
		t, _ = t.WithColumn(contracts.ColRodada, values)
	}
	res.table = t
	return res
}
