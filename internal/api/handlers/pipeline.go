package handlers

import (
	"context"
	"net/http"

	"github.com/wonny/sensai/internal/brain"
	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/profile"
	"github.com/wonny/sensai/internal/s1_metrics"
	"github.com/wonny/sensai/pkg/logger"
)

// Runner executes pipeline runs
type Runner interface {
	Run(ctx context.Context, config brain.RunConfig) (*brain.RunResult, error)
	Metrics(ctx context.Context) (*brain.RunResult, error)
	ExportMetrics(ctx context.Context, category, filename string) (string, error)
}

// PipelineHandler handles metrics, lineup, strategy and export endpoints
// ⭐ SSOT: 파이프라인 API 핸들러는 이 구조체에서만
type PipelineHandler struct {
	runner       Runner
	profiles     *profile.File
	campeonatoID int
	logger       *logger.Logger
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(runner Runner, profiles *profile.File, campeonatoID int, log *logger.Logger) *PipelineHandler {
	return &PipelineHandler{
		runner:       runner,
		profiles:     profiles,
		campeonatoID: campeonatoID,
		logger:       log,
	}
}

// RunRequest selects a profile and optionally overrides its parameters.
// Budget and TopN are pointers so an explicit 0 still overrides.
type RunRequest struct {
	Profile   string   `json:"profile"`
	Budget    *float64 `json:"budget"`
	Formation string   `json:"formation"`
	TopN      *int     `json:"top_n"`
}

// MetricsResponse is the body of GET /api/players/metrics
type MetricsResponse struct {
	RunID   string                         `json:"run_id"`
	Summary contracts.MetricsSummary       `json:"summary"`
	Quality *contracts.DataQualitySnapshot `json:"quality,omitempty"`
	Top     []contracts.Pick               `json:"top"`
}

// LineupResponse is the body of POST /api/lineup and POST /api/strategy
type LineupResponse struct {
	RunID           string            `json:"run_id"`
	Profile         string            `json:"profile"`
	Lineup          *contracts.Lineup `json:"lineup"`
	Complete        bool              `json:"complete"`
	ProjectedPoints contracts.Float   `json:"projected_points"`
	Strategy        string            `json:"strategy,omitempty"`
}

// ExportRequest names the exported file
type ExportRequest struct {
	Category string `json:"category"`
	Filename string `json:"filename"`
}

// GetPlayerMetrics returns the top players by cost-benefit with the metrics summary
// GET /api/players/metrics?top=N
func (h *PipelineHandler) GetPlayerMetrics(w http.ResponseWriter, r *http.Request) {
	top, err := queryInt(r, "top", 20)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.runner.Metrics(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute metrics")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, MetricsResponse{
		RunID:   result.RunID,
		Summary: result.Summary,
		Quality: result.QualitySnapshot,
		Top:     s1_metrics.Top(result.MetricsTable(), top),
	})
}

// PostLineup assembles a lineup
// POST /api/lineup
func (h *PipelineHandler) PostLineup(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, false)
}

// PostStrategy assembles a lineup and narrates a strategy for it
// POST /api/strategy
func (h *PipelineHandler) PostStrategy(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, true)
}

func (h *PipelineHandler) run(w http.ResponseWriter, r *http.Request, withStrategy bool) {
	var req RunRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := req.Profile
	if name == "" {
		name = profile.DefaultName
	}
	p, ok := h.profiles.Get(name)
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown profile: "+name)
		return
	}
	if req.Budget != nil {
		p.Budget = *req.Budget
	}
	if req.Formation != "" {
		p.Formation = req.Formation
	}
	if req.TopN != nil {
		if *req.TopN < 0 {
			respondError(w, http.StatusBadRequest, "top_n must be >= 0")
			return
		}
		p.TopN = *req.TopN
	}

	formation, err := p.ParsedFormation()
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	campeonatoID := h.campeonatoID
	if p.CampeonatoID > 0 {
		campeonatoID = p.CampeonatoID
	}

	result, err := h.runner.Run(r.Context(), brain.RunConfig{
		Profile:      name,
		Budget:       p.Budget,
		Formation:    formation,
		TopN:         p.TopN,
		CampeonatoID: campeonatoID,
		WithStrategy: withStrategy,
	})
	if err != nil {
		h.logger.WithError(err).WithField("profile", name).Error("Pipeline run failed")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, LineupResponse{
		RunID:           result.RunID,
		Profile:         name,
		Lineup:          result.Lineup,
		Complete:        result.Lineup.Complete(),
		ProjectedPoints: contracts.Float(result.Lineup.ProjectedPoints()),
		Strategy:        result.Strategy,
	})
}

// PostExport writes the metrics table to the configured sink
// POST /api/export
func (h *PipelineHandler) PostExport(w http.ResponseWriter, r *http.Request) {
	req := ExportRequest{Category: "metrics", Filename: "player_metrics.csv"}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	location, err := h.runner.ExportMetrics(r.Context(), req.Category, req.Filename)
	if err != nil {
		h.logger.WithError(err).Error("Failed to export metrics")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":   "success",
		"location": location,
	})
}
