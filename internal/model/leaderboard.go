package model

import "time"

// LeaderboardEntry is one row of the global ranked leaderboard: a ledger
// entry joined with the submitting player's nickname
type LeaderboardEntry struct {
	Nickname           string
	Score              int64
	DurationSeconds    int64
	EnemiesKilled      int64
	AsteroidsDestroyed int64
	CreatedAt          time.Time
}
