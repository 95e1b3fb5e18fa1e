package storage

import (
	"context"

	"github.com/spaceblaster/scorekeeper/internal/model"
)

// Storage defines the interface for data persistence.
//
// Implementations must make CreatePlayer atomic (player row, zeroed stats
// row and user_id uniqueness index land together or not at all) and must
// make ApplyStatsDelta atomic with respect to concurrent calls for the same
// player; everything else is plain per-row reads and writes.
type Storage interface {
	// Player operations
	CreatePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByUserID(ctx context.Context, userID model.UserID) (*model.Player, error)
	UpdateNickname(ctx context.Context, id model.PlayerID, nickname string) error

	// Score ledger operations (append-only)
	AppendScore(ctx context.Context, record *model.ScoreRecord) error
	RecentScores(ctx context.Context, playerID model.PlayerID, limit int) ([]*model.ScoreRecord, error)
	TopScores(ctx context.Context, limit int) ([]*model.ScoreRecord, error)

	// Stats aggregate operations
	GetStats(ctx context.Context, playerID model.PlayerID) (*model.PlayerStats, error)
	ApplyStatsDelta(ctx context.Context, playerID model.PlayerID, delta model.StatsDelta) (*model.PlayerStats, error)
}
