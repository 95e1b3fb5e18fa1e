package request

// GetOrCreatePlayerRequest is the request body for resolving the caller's
// player profile
type GetOrCreatePlayerRequest struct {
	Nickname string `json:"nickname"`
}

// SubmitScoreRequest is the request body for recording a completed match
type SubmitScoreRequest struct {
	Score              int64 `json:"score"`
	DurationSeconds    int64 `json:"duration_seconds"`
	EnemiesKilled      int64 `json:"enemies_killed"`
	AsteroidsDestroyed int64 `json:"asteroids_destroyed"`
	NukesUsed          int64 `json:"nukes_used"`
}
