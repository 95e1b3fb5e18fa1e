package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/spaceblaster/scorekeeper/internal/dependencies/clock"
	"github.com/spaceblaster/scorekeeper/internal/model"
	"github.com/spaceblaster/scorekeeper/internal/storage"
)

// Service is the append-only score ledger. Every completed match becomes
// one immutable record; nothing here ever updates or deletes.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new LedgerService
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Append validates a match result and writes it to the ledger with a
// server-assigned timestamp. Fails with ErrPlayerNotFound for an unknown
// player and ErrInvalidArgument for negative counters; nothing is written
// on failure.
func (s *Service) Append(ctx context.Context, playerID model.PlayerID, result model.MatchResult) (*model.ScoreRecord, error) {
	if err := result.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	record := model.NewScoreRecord(
		model.ScoreID("sc_"+uuid.NewString()),
		playerID,
		result,
		s.clock.Now(),
	)

	if err := s.storage.AppendScore(ctx, record); err != nil {
		s.logger.Error("failed to append score",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return record, nil
}
