package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/spaceblaster/scorekeeper/internal/model"
	"github.com/spaceblaster/scorekeeper/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
//
// A single mutex guards all maps, so the stats delta update is applied in
// place under the write lock; concurrent RecordMatch calls for one player
// are serialized here and cannot lose updates.
type Storage struct {
	mu sync.RWMutex

	players     map[model.PlayerID]*model.Player
	userIDIndex map[model.UserID]model.PlayerID
	scores      []*model.ScoreRecord
	stats       map[model.PlayerID]*model.PlayerStats
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:     make(map[model.PlayerID]*model.Player),
		userIDIndex: make(map[model.UserID]model.PlayerID),
		stats:       make(map[model.PlayerID]*model.PlayerStats),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userIDIndex[player.UserID]; ok {
		return model.ErrPlayerExists
	}

	p := *player
	s.players[p.ID] = &p
	s.userIDIndex[p.UserID] = p.ID
	s.stats[p.ID] = model.NewPlayerStats(p.ID)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) GetPlayerByUserID(ctx context.Context, userID model.UserID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.userIDIndex[userID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *s.players[id]
	return &p, nil
}

func (s *Storage) UpdateNickname(ctx context.Context, id model.PlayerID, nickname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.Nickname = nickname
	return nil
}

// Score ledger operations

func (s *Storage) AppendScore(ctx context.Context, record *model.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *record
	s.scores = append(s.scores, &r)
	return nil
}

func (s *Storage) RecentScores(ctx context.Context, playerID model.PlayerID, limit int) ([]*model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*model.ScoreRecord
	for _, rec := range s.scores {
		if rec.PlayerID == playerID {
			r := *rec
			records = append(records, &r)
		}
	}

	// Ledger order is insertion order; newest first
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *Storage) TopScores(ctx context.Context, limit int) ([]*model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*model.ScoreRecord, 0, len(s.scores))
	for _, rec := range s.scores {
		r := *rec
		records = append(records, &r)
	}

	// Score descending, ties broken by earliest submission
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Stats aggregate operations

func (s *Storage) GetStats(ctx context.Context, playerID model.PlayerID) (*model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[playerID]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	st := *stats
	return &st, nil
}

func (s *Storage) ApplyStatsDelta(ctx context.Context, playerID model.PlayerID, delta model.StatsDelta) (*model.PlayerStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, ok := s.stats[playerID]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	stats.Apply(delta)
	st := *stats
	return &st, nil
}
