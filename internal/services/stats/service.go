package stats

import (
	"context"
	"log/slog"

	"github.com/spaceblaster/scorekeeper/internal/model"
	"github.com/spaceblaster/scorekeeper/internal/services/ledger"
	"github.com/spaceblaster/scorekeeper/internal/storage"
)

// Service maintains the per-player aggregate derived from the score ledger.
//
// The delta update goes through Storage.ApplyStatsDelta, which every
// backend implements as a single atomic operation (Lua script on Redis,
// mutation under the store mutex in memory). Concurrent RecordMatch calls
// for the same player therefore both land; there is no read-modify-write
// window to lose.
type Service struct {
	storage storage.Storage
	ledger  *ledger.Service
	logger  *slog.Logger
}

// New creates a new StatsService
func New(storage storage.Storage, ledger *ledger.Service, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		ledger:  ledger,
		logger:  logger,
	}
}

// RecordMatch appends one completed match to the ledger and folds it into
// the player's aggregate, returning the updated aggregate.
//
// The ledger append happens first: a failed append never bumps stats. A
// failed delta after a successful append surfaces the error to the caller;
// the append is not idempotent, so a blind retry after an ambiguous failure
// may double-count (callers needing exactly-once must deduplicate
// upstream).
func (s *Service) RecordMatch(ctx context.Context, playerID model.PlayerID, result model.MatchResult) (*model.PlayerStats, error) {
	record, err := s.ledger.Append(ctx, playerID, result)
	if err != nil {
		return nil, err
	}

	stats, err := s.storage.ApplyStatsDelta(ctx, playerID, model.DeltaFromResult(result))
	if err != nil {
		s.logger.Error("score appended but stats update failed",
			slog.String("player_id", string(playerID)),
			slog.String("score_id", string(record.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("match recorded",
		slog.String("player_id", string(playerID)),
		slog.String("score_id", string(record.ID)),
		slog.Int64("score", result.Score),
		slog.Int64("total_games", stats.TotalGames),
	)

	return stats, nil
}

// Stats returns the current aggregate for a player
func (s *Service) Stats(ctx context.Context, playerID model.PlayerID) (*model.PlayerStats, error) {
	return s.storage.GetStats(ctx, playerID)
}
