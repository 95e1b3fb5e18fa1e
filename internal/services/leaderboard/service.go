package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spaceblaster/scorekeeper/internal/model"
	"github.com/spaceblaster/scorekeeper/internal/storage"
)

// Config holds configuration for the leaderboard service
type Config struct {
	// DefaultTopLimit is used when TopScores is called without a limit
	DefaultTopLimit int
	// DefaultRecentLimit is used when RecentScores is called without a limit
	DefaultRecentLimit int
}

// DefaultConfig returns default leaderboard configuration
func DefaultConfig() Config {
	return Config{
		DefaultTopLimit:    10,
		DefaultRecentLimit: 5,
	}
}

// Service serves the read paths over the ledger and the stats aggregate:
// the global leaderboard, per-player score history and per-player stats.
type Service struct {
	storage storage.Storage
	cfg     Config
	logger  *slog.Logger
}

// New creates a new LeaderboardService
func New(storage storage.Storage, cfg Config, logger *slog.Logger) *Service {
	if cfg.DefaultTopLimit == 0 {
		cfg.DefaultTopLimit = DefaultConfig().DefaultTopLimit
	}
	if cfg.DefaultRecentLimit == 0 {
		cfg.DefaultRecentLimit = DefaultConfig().DefaultRecentLimit
	}
	return &Service{
		storage: storage,
		cfg:     cfg,
		logger:  logger,
	}
}

// TopScores returns the global leaderboard: up to limit entries ordered by
// score descending, ties broken by earliest submission. A zero limit uses
// the configured default; a negative limit is ErrInvalidArgument.
func (s *Service) TopScores(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	limit, err := s.resolveLimit(limit, s.cfg.DefaultTopLimit)
	if err != nil {
		return nil, err
	}

	records, err := s.storage.TopScores(ctx, limit)
	if err != nil {
		return nil, err
	}

	return s.joinNicknames(ctx, records)
}

// RecentScores returns a player's most recent ledger entries, newest first
func (s *Service) RecentScores(ctx context.Context, playerID model.PlayerID, limit int) ([]*model.ScoreRecord, error) {
	limit, err := s.resolveLimit(limit, s.cfg.DefaultRecentLimit)
	if err != nil {
		return nil, err
	}

	if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	return s.storage.RecentScores(ctx, playerID, limit)
}

// PlayerStats returns a player's aggregate joined with their nickname and
// the derived average score
func (s *Service) PlayerStats(ctx context.Context, playerID model.PlayerID) (*model.StatsSummary, error) {
	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	stats, err := s.storage.GetStats(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return &model.StatsSummary{
		PlayerID:                stats.PlayerID,
		Nickname:                player.Nickname,
		TotalGames:              stats.TotalGames,
		BestScore:               stats.BestScore,
		TotalScore:              stats.TotalScore,
		TotalEnemiesKilled:      stats.TotalEnemiesKilled,
		TotalAsteroidsDestroyed: stats.TotalAsteroidsDestroyed,
		TotalNukesUsed:          stats.TotalNukesUsed,
		TotalPlaytimeSeconds:    stats.TotalPlaytimeSeconds,
		AverageScore:            stats.AverageScore(),
	}, nil
}

func (s *Service) resolveLimit(limit, fallback int) (int, error) {
	if limit == 0 {
		return fallback, nil
	}
	if limit < 0 {
		return 0, fmt.Errorf("%w: limit must be positive, got %d", model.ErrInvalidArgument, limit)
	}
	return limit, nil
}

// joinNicknames resolves nicknames for leaderboard rows. Records whose
// player row has vanished are dropped (inner join semantics).
func (s *Service) joinNicknames(ctx context.Context, records []*model.ScoreRecord) ([]model.LeaderboardEntry, error) {
	nicknames := make(map[model.PlayerID]string)
	entries := make([]model.LeaderboardEntry, 0, len(records))

	for _, rec := range records {
		nickname, ok := nicknames[rec.PlayerID]
		if !ok {
			player, err := s.storage.GetPlayer(ctx, rec.PlayerID)
			if err != nil {
				if errors.Is(err, model.ErrPlayerNotFound) {
					s.logger.Warn("score record without player",
						slog.String("score_id", string(rec.ID)),
						slog.String("player_id", string(rec.PlayerID)),
					)
					continue
				}
				return nil, err
			}
			nickname = player.Nickname
			nicknames[rec.PlayerID] = nickname
		}

		entries = append(entries, model.LeaderboardEntry{
			Nickname:           nickname,
			Score:              rec.Score,
			DurationSeconds:    rec.DurationSeconds,
			EnemiesKilled:      rec.EnemiesKilled,
			AsteroidsDestroyed: rec.AsteroidsDestroyed,
			CreatedAt:          rec.CreatedAt,
		})
	}

	return entries, nil
}
