package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/pkg/logger"
)

// FootballProvider serves championship data
type FootballProvider interface {
	FetchStandings(ctx context.Context, campeonatoID int) ([]contracts.Standing, error)
	FetchNextRoundMatches(ctx context.Context, campeonatoID, round int) ([]contracts.Match, error)
	FetchLastResults(ctx context.Context, campeonatoID, teamID, n int) ([]contracts.TeamResult, error)
}

// FootballHandler handles standings and match endpoints
type FootballHandler struct {
	provider     FootballProvider
	campeonatoID int
	logger       *logger.Logger
}

// NewFootballHandler creates a new football handler
func NewFootballHandler(provider FootballProvider, campeonatoID int, log *logger.Logger) *FootballHandler {
	return &FootballHandler{
		provider:     provider,
		campeonatoID: campeonatoID,
		logger:       log,
	}
}

// GetStandings returns the leading rows of the championship table
// GET /api/standings?top=N (0 = all)
func (h *FootballHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	top, err := queryInt(r, "top", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	standings, err := h.provider.FetchStandings(r.Context(), h.campeonatoID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch standings")
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	if top > 0 && top < len(standings) {
		standings = standings[:top]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"campeonato_id": h.campeonatoID,
		"standings":     standings,
	})
}

// GetNextMatches returns the fixtures of one round
// GET /api/matches/next?round=R
func (h *FootballHandler) GetNextMatches(w http.ResponseWriter, r *http.Request) {
	round, err := queryInt(r, "round", 0)
	if err != nil || round == 0 {
		respondError(w, http.StatusBadRequest, "Missing or invalid 'round'")
		return
	}

	matches, err := h.provider.FetchNextRoundMatches(r.Context(), h.campeonatoID, round)
	if err != nil {
		h.logger.WithError(err).WithField("round", round).Error("Failed to fetch matches")
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"round":   round,
		"matches": matches,
	})
}

// GetTeamResults returns the last n played matches of a team
// GET /api/teams/{id}/results?n=N
func (h *FootballHandler) GetTeamResults(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team id")
		return
	}
	n, err := queryInt(r, "n", 5)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.provider.FetchLastResults(r.Context(), h.campeonatoID, teamID, n)
	if err != nil {
		h.logger.WithError(err).WithField("team_id", teamID).Error("Failed to fetch team results")
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team_id": teamID,
		"results": results,
	})
}
