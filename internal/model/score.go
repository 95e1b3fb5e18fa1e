package model

import "time"

// ScoreID uniquely identifies a ledger entry
type ScoreID string

// MatchResult is the payload submitted for one completed match.
// All counters must be non-negative.
type MatchResult struct {
	Score              int64
	DurationSeconds    int64
	EnemiesKilled      int64
	AsteroidsDestroyed int64
	NukesUsed          int64
}

// Validate checks that all counters are non-negative
func (m MatchResult) Validate() error {
	switch {
	case m.Score < 0:
		return invalidArgumentf("score must be non-negative, got %d", m.Score)
	case m.DurationSeconds < 0:
		return invalidArgumentf("duration must be non-negative, got %d", m.DurationSeconds)
	case m.EnemiesKilled < 0:
		return invalidArgumentf("enemies_killed must be non-negative, got %d", m.EnemiesKilled)
	case m.AsteroidsDestroyed < 0:
		return invalidArgumentf("asteroids_destroyed must be non-negative, got %d", m.AsteroidsDestroyed)
	case m.NukesUsed < 0:
		return invalidArgumentf("nukes_used must be non-negative, got %d", m.NukesUsed)
	}
	return nil
}

// ScoreRecord is one immutable ledger entry for a completed match.
// Records are append-only and never updated or deleted.
type ScoreRecord struct {
	ID                 ScoreID
	PlayerID           PlayerID
	Score              int64
	DurationSeconds    int64
	EnemiesKilled      int64
	AsteroidsDestroyed int64
	NukesUsed          int64
	CreatedAt          time.Time
}

// NewScoreRecord builds a ledger entry from a match result
func NewScoreRecord(id ScoreID, playerID PlayerID, result MatchResult, createdAt time.Time) *ScoreRecord {
	return &ScoreRecord{
		ID:                 id,
		PlayerID:           playerID,
		Score:              result.Score,
		DurationSeconds:    result.DurationSeconds,
		EnemiesKilled:      result.EnemiesKilled,
		AsteroidsDestroyed: result.AsteroidsDestroyed,
		NukesUsed:          result.NukesUsed,
		CreatedAt:          createdAt,
	}
}
