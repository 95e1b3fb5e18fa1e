package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spaceblaster/scorekeeper/internal/api/middleware"
	"github.com/spaceblaster/scorekeeper/internal/api/request"
	"github.com/spaceblaster/scorekeeper/internal/api/response"
	"github.com/spaceblaster/scorekeeper/internal/model"
	"github.com/spaceblaster/scorekeeper/internal/services/identity"
	"github.com/spaceblaster/scorekeeper/internal/services/leaderboard"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	identityService    *identity.Service
	leaderboardService *leaderboard.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(identityService *identity.Service, leaderboardService *leaderboard.Service) *PlayerHandler {
	return &PlayerHandler{
		identityService:    identityService,
		leaderboardService: leaderboardService,
	}
}

// GetOrCreate handles POST /api/v1/players
func (h *PlayerHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	var req request.GetOrCreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.identityService.GetOrCreatePlayer(r.Context(), middleware.GetIdentity(r.Context()), req.Nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Stats handles GET /api/v1/players/{player_id}/stats
func (h *PlayerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	summary, err := h.leaderboardService.PlayerStats(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStatsFromSummary(summary))
}

// RecentScores handles GET /api/v1/players/{player_id}/scores
func (h *PlayerHandler) RecentScores(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	limit, err := parseLimit(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	records, err := h.leaderboardService.RecentScores(r.Context(), playerID, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreRecordsFromModel(records))
}
