package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/spaceblaster/scorekeeper/internal/dependencies/clock"
	"github.com/spaceblaster/scorekeeper/internal/model"
	"github.com/spaceblaster/scorekeeper/internal/storage"
)

// Service maps authenticated identities to player profiles
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new IdentityService
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// GetOrCreatePlayer resolves the player profile for an authenticated
// identity, creating it (with a zeroed stats row) on first sight and
// renaming it in place when the trimmed nickname differs from the stored
// one. At most one player ever exists per user id.
func (s *Service) GetOrCreatePlayer(ctx context.Context, userID model.UserID, nickname string) (*model.Player, error) {
	if userID == "" {
		return nil, model.ErrUnauthenticated
	}

	trimmed := strings.TrimSpace(nickname)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: nickname must not be empty", model.ErrInvalidArgument)
	}

	player, err := s.storage.GetPlayerByUserID(ctx, userID)
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		created, err := s.createPlayer(ctx, userID, trimmed)
		if err != nil {
			return nil, err
		}
		if created != nil {
			return created, nil
		}
		// Lost the create race; the winner's row is authoritative
		player, err = s.storage.GetPlayerByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if player.Nickname != trimmed {
		if err := s.storage.UpdateNickname(ctx, player.ID, trimmed); err != nil {
			return nil, err
		}
		s.logger.Info("player renamed",
			slog.String("player_id", string(player.ID)),
			slog.String("nickname", trimmed),
		)
		player.Nickname = trimmed
	}

	return player, nil
}

// createPlayer inserts a new player; returns (nil, nil) when a concurrent
// create for the same user id won the uniqueness race
func (s *Service) createPlayer(ctx context.Context, userID model.UserID, nickname string) (*model.Player, error) {
	player := &model.Player{
		ID:        model.PlayerID("p_" + uuid.NewString()),
		UserID:    userID,
		Nickname:  nickname,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		if errors.Is(err, model.ErrPlayerExists) {
			return nil, nil
		}
		s.logger.Error("failed to create player",
			slog.String("user_id", string(userID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("player created",
		slog.String("player_id", string(player.ID)),
		slog.String("nickname", nickname),
	)
	return player, nil
}
