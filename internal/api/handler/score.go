package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spaceblaster/scorekeeper/internal/api/request"
	"github.com/spaceblaster/scorekeeper/internal/api/response"
	"github.com/spaceblaster/scorekeeper/internal/model"
	"github.com/spaceblaster/scorekeeper/internal/services/stats"
)

// ScoreHandler handles score submission endpoints
type ScoreHandler struct {
	statsService *stats.Service
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(statsService *stats.Service) *ScoreHandler {
	return &ScoreHandler{
		statsService: statsService,
	}
}

// Submit handles POST /api/v1/players/{player_id}/scores: it appends the
// match to the ledger and returns the updated aggregate
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.statsService.RecordMatch(r.Context(), playerID, model.MatchResult{
		Score:              req.Score,
		DurationSeconds:    req.DurationSeconds,
		EnemiesKilled:      req.EnemiesKilled,
		AsteroidsDestroyed: req.AsteroidsDestroyed,
		NukesUsed:          req.NukesUsed,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerStatsFromModel(updated))
}
