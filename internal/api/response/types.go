package response

import (
	"time"

	"github.com/spaceblaster/scorekeeper/internal/model"
	"github.com/spaceblaster/scorekeeper/internal/services/auth"
)

// Session is the response for anonymous sign-in
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionFromModel converts an auth.Session to a response Session
func SessionFromModel(s *auth.Session) Session {
	return Session{
		Token:     s.Token,
		UserID:    string(s.UserID),
		ExpiresAt: s.ExpiresAt,
	}
}

// Player represents a player in API responses
type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:       string(p.ID),
		Nickname: p.Nickname,
	}
}

// ScoreRecord represents a ledger entry in API responses
type ScoreRecord struct {
	ID                 string    `json:"id"`
	Score              int64     `json:"score"`
	DurationSeconds    int64     `json:"duration_seconds"`
	EnemiesKilled      int64     `json:"enemies_killed"`
	AsteroidsDestroyed int64     `json:"asteroids_destroyed"`
	NukesUsed          int64     `json:"nukes_used"`
	CreatedAt          time.Time `json:"created_at"`
}

// ScoreRecordFromModel converts a model.ScoreRecord
func ScoreRecordFromModel(r *model.ScoreRecord) ScoreRecord {
	return ScoreRecord{
		ID:                 string(r.ID),
		Score:              r.Score,
		DurationSeconds:    r.DurationSeconds,
		EnemiesKilled:      r.EnemiesKilled,
		AsteroidsDestroyed: r.AsteroidsDestroyed,
		NukesUsed:          r.NukesUsed,
		CreatedAt:          r.CreatedAt,
	}
}

// ScoreRecordsFromModel converts a slice of ledger entries
func ScoreRecordsFromModel(records []*model.ScoreRecord) []ScoreRecord {
	out := make([]ScoreRecord, len(records))
	for i, r := range records {
		out[i] = ScoreRecordFromModel(r)
	}
	return out
}

// PlayerStats represents a player's aggregate in API responses
type PlayerStats struct {
	PlayerID                string `json:"player_id"`
	Nickname                string `json:"nickname,omitempty"`
	TotalGames              int64  `json:"total_games"`
	BestScore               int64  `json:"best_score"`
	TotalScore              int64  `json:"total_score"`
	TotalEnemiesKilled      int64  `json:"total_enemies_killed"`
	TotalAsteroidsDestroyed int64  `json:"total_asteroids_destroyed"`
	TotalNukesUsed          int64  `json:"total_nukes_used"`
	TotalPlaytimeSeconds    int64  `json:"total_playtime_seconds"`
	AverageScore            int64  `json:"average_score"`
}

// PlayerStatsFromModel converts the raw aggregate (e.g. the result of a
// score submission)
func PlayerStatsFromModel(s *model.PlayerStats) PlayerStats {
	return PlayerStats{
		PlayerID:                string(s.PlayerID),
		TotalGames:              s.TotalGames,
		BestScore:               s.BestScore,
		TotalScore:              s.TotalScore,
		TotalEnemiesKilled:      s.TotalEnemiesKilled,
		TotalAsteroidsDestroyed: s.TotalAsteroidsDestroyed,
		TotalNukesUsed:          s.TotalNukesUsed,
		TotalPlaytimeSeconds:    s.TotalPlaytimeSeconds,
		AverageScore:            s.AverageScore(),
	}
}

// PlayerStatsFromSummary converts the nickname-joined stats projection
func PlayerStatsFromSummary(s *model.StatsSummary) PlayerStats {
	return PlayerStats{
		PlayerID:                string(s.PlayerID),
		Nickname:                s.Nickname,
		TotalGames:              s.TotalGames,
		BestScore:               s.BestScore,
		TotalScore:              s.TotalScore,
		TotalEnemiesKilled:      s.TotalEnemiesKilled,
		TotalAsteroidsDestroyed: s.TotalAsteroidsDestroyed,
		TotalNukesUsed:          s.TotalNukesUsed,
		TotalPlaytimeSeconds:    s.TotalPlaytimeSeconds,
		AverageScore:            s.AverageScore,
	}
}

// LeaderboardEntry is one leaderboard row in API responses
type LeaderboardEntry struct {
	Rank               int       `json:"rank"`
	Nickname           string    `json:"nickname"`
	Score              int64     `json:"score"`
	DurationSeconds    int64     `json:"duration_seconds"`
	EnemiesKilled      int64     `json:"enemies_killed"`
	AsteroidsDestroyed int64     `json:"asteroids_destroyed"`
	CreatedAt          time.Time `json:"created_at"`
}

// LeaderboardFromModel converts leaderboard entries, assigning 1-based ranks
func LeaderboardFromModel(entries []model.LeaderboardEntry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntry{
			Rank:               i + 1,
			Nickname:           e.Nickname,
			Score:              e.Score,
			DurationSeconds:    e.DurationSeconds,
			EnemiesKilled:      e.EnemiesKilled,
			AsteroidsDestroyed: e.AsteroidsDestroyed,
			CreatedAt:          e.CreatedAt,
		}
	}
	return out
}
