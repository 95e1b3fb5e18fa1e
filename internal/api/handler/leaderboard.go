package handler

import (
	"net/http"
	"strconv"

	"github.com/spaceblaster/scorekeeper/internal/api/response"
	"github.com/spaceblaster/scorekeeper/internal/services/leaderboard"
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Top handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	entries, err := h.leaderboardService.TopScores(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}

// parseLimit reads the optional ?limit= query parameter; 0 means "use the
// service default"
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewInvalidRequestError("limit must be an integer")
	}
	if limit <= 0 {
		return 0, NewInvalidRequestError("limit must be positive")
	}
	return limit, nil
}
