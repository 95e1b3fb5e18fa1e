package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spaceblaster/scorekeeper/internal/api/handler"
	"github.com/spaceblaster/scorekeeper/internal/api/middleware"
	"github.com/spaceblaster/scorekeeper/internal/services/auth"
	"github.com/spaceblaster/scorekeeper/internal/services/identity"
	"github.com/spaceblaster/scorekeeper/internal/services/leaderboard"
	"github.com/spaceblaster/scorekeeper/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	IdentityService    *identity.Service
	StatsService       *stats.Service
	LeaderboardService *leaderboard.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.AuthService)
	playerHandler := handler.NewPlayerHandler(cfg.IdentityService, cfg.LeaderboardService)
	scoreHandler := handler.NewScoreHandler(cfg.StatsService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session route (no auth required; this is how you get a token)
	api.HandleFunc("/session", sessionHandler.SignIn).Methods(http.MethodPost)

	// Write routes require an authenticated identity
	writes := api.NewRoute().Subrouter()
	writes.Use(authMiddleware)
	writes.HandleFunc("/players", playerHandler.GetOrCreate).Methods(http.MethodPost)
	writes.HandleFunc("/players/{player_id}/scores", scoreHandler.Submit).Methods(http.MethodPost)

	// Read routes (leaderboard and stats are public)
	api.HandleFunc("/players/{player_id}/stats", playerHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/players/{player_id}/scores", playerHandler.RecentScores).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", leaderboardHandler.Top).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
