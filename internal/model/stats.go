package model

import "math"

// PlayerStats is the per-player aggregate derived from the score ledger.
// Exactly one row exists per player, created zeroed alongside the player.
// Invariant: every field equals the corresponding sum/max/count over the
// player's ledger entries.
type PlayerStats struct {
	PlayerID                PlayerID
	TotalGames              int64
	BestScore               int64
	TotalScore              int64
	TotalEnemiesKilled      int64
	TotalAsteroidsDestroyed int64
	TotalNukesUsed          int64
	TotalPlaytimeSeconds    int64
}

// NewPlayerStats returns a zeroed aggregate for a new player
func NewPlayerStats(playerID PlayerID) *PlayerStats {
	return &PlayerStats{PlayerID: playerID}
}

// StatsDelta is the increment applied to an aggregate for one new ledger
// entry. Score doubles as the candidate for the best-score max.
type StatsDelta struct {
	Score              int64
	DurationSeconds    int64
	EnemiesKilled      int64
	AsteroidsDestroyed int64
	NukesUsed          int64
}

// DeltaFromResult derives the aggregate increment for one match
func DeltaFromResult(result MatchResult) StatsDelta {
	return StatsDelta{
		Score:              result.Score,
		DurationSeconds:    result.DurationSeconds,
		EnemiesKilled:      result.EnemiesKilled,
		AsteroidsDestroyed: result.AsteroidsDestroyed,
		NukesUsed:          result.NukesUsed,
	}
}

// Apply mutates the aggregate in place with one match's delta.
// Callers must hold whatever serialization the backing store requires.
func (s *PlayerStats) Apply(d StatsDelta) {
	s.TotalGames++
	s.TotalScore += d.Score
	if d.Score > s.BestScore {
		s.BestScore = d.Score
	}
	s.TotalEnemiesKilled += d.EnemiesKilled
	s.TotalAsteroidsDestroyed += d.AsteroidsDestroyed
	s.TotalNukesUsed += d.NukesUsed
	s.TotalPlaytimeSeconds += d.DurationSeconds
}

// AverageScore returns the rounded mean score, 0 when no games played
func (s *PlayerStats) AverageScore() int64 {
	if s.TotalGames == 0 {
		return 0
	}
	return int64(math.Round(float64(s.TotalScore) / float64(s.TotalGames)))
}

// StatsSummary is the read-side projection of an aggregate joined with the
// player's nickname
type StatsSummary struct {
	PlayerID                PlayerID
	Nickname                string
	TotalGames              int64
	BestScore               int64
	TotalScore              int64
	TotalEnemiesKilled      int64
	TotalAsteroidsDestroyed int64
	TotalNukesUsed          int64
	TotalPlaytimeSeconds    int64
	AverageScore            int64
}
