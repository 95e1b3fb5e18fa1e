package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/spaceblaster/scorekeeper/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newPlayer(id model.PlayerID, userID model.UserID, nickname string) *model.Player {
	return &model.Player{
		ID:        id,
		UserID:    userID,
		Nickname:  nickname,
		CreatedAt: time.Now(),
	}
}

// Player tests

func (s *StorageSuite) TestCreateAndGetPlayer() {
	player := s.newPlayer("p1", "u1", "Alice")

	err := s.storage.CreatePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.Nickname, retrieved.Nickname)
}

func (s *StorageSuite) TestCreatePlayerCreatesZeroedStats() {
	_ = s.storage.CreatePlayer(s.ctx, s.newPlayer("p1", "u1", "Alice"))

	stats, err := s.storage.GetStats(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(int64(0), stats.TotalGames)
	s.Equal(int64(0), stats.BestScore)
	s.Equal(int64(0), stats.TotalScore)
}

func (s *StorageSuite) TestCreatePlayerDuplicateUserID() {
	_ = s.storage.CreatePlayer(s.ctx, s.newPlayer("p1", "u1", "Alice"))

	err := s.storage.CreatePlayer(s.ctx, s.newPlayer("p2", "u1", "Bob"))
	s.ErrorIs(err, model.ErrPlayerExists)

	// The original row is untouched
	retrieved, err := s.storage.GetPlayerByUserID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), retrieved.ID)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByUserIDNotFound() {
	_, err := s.storage.GetPlayerByUserID(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestUpdateNickname() {
	_ = s.storage.CreatePlayer(s.ctx, s.newPlayer("p1", "u1", "Alice"))

	err := s.storage.UpdateNickname(s.ctx, "p1", "Bob")
	s.Require().NoError(err)

	retrieved, _ := s.storage.GetPlayer(s.ctx, "p1")
	s.Equal("Bob", retrieved.Nickname)
}

func (s *StorageSuite) TestUpdateNicknameNotFound() {
	err := s.storage.UpdateNickname(s.ctx, "nonexistent", "Bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Ledger tests

func (s *StorageSuite) appendScore(id model.ScoreID, playerID model.PlayerID, score int64, at time.Time) {
	record := model.NewScoreRecord(id, playerID, model.MatchResult{Score: score}, at)
	s.Require().NoError(s.storage.AppendScore(s.ctx, record))
}

func (s *StorageSuite) TestRecentScoresNewestFirst() {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.appendScore("s1", "p1", 10, base)
	s.appendScore("s2", "p1", 20, base.Add(time.Minute))
	s.appendScore("s3", "p2", 30, base.Add(2*time.Minute))
	s.appendScore("s4", "p1", 40, base.Add(3*time.Minute))

	records, err := s.storage.RecentScores(s.ctx, "p1", 2)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(model.ScoreID("s4"), records[0].ID)
	s.Equal(model.ScoreID("s2"), records[1].ID)
}

func (s *StorageSuite) TestRecentScoresEmpty() {
	records, err := s.storage.RecentScores(s.ctx, "p1", 5)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *StorageSuite) TestTopScoresOrderingAndTies() {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.appendScore("s1", "p1", 50, base)
	s.appendScore("s2", "p2", 80, base.Add(time.Minute))
	s.appendScore("s3", "p1", 80, base.Add(2*time.Minute))
	s.appendScore("s4", "p2", 30, base.Add(3*time.Minute))

	records, err := s.storage.TopScores(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	// Earlier of the two 80s wins the tie
	s.Equal(model.ScoreID("s2"), records[0].ID)
	s.Equal(model.ScoreID("s3"), records[1].ID)
	s.Equal(model.ScoreID("s1"), records[2].ID)
}

// Stats tests

func (s *StorageSuite) TestGetStatsNotFound() {
	_, err := s.storage.GetStats(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrStatsNotFound)
}

func (s *StorageSuite) TestApplyStatsDelta() {
	_ = s.storage.CreatePlayer(s.ctx, s.newPlayer("p1", "u1", "Alice"))

	stats, err := s.storage.ApplyStatsDelta(s.ctx, "p1", model.StatsDelta{
		Score:              100,
		DurationSeconds:    60,
		EnemiesKilled:      5,
		AsteroidsDestroyed: 3,
		NukesUsed:          1,
	})
	s.Require().NoError(err)
	s.Equal(int64(1), stats.TotalGames)
	s.Equal(int64(100), stats.BestScore)
	s.Equal(int64(100), stats.TotalScore)
	s.Equal(int64(5), stats.TotalEnemiesKilled)
	s.Equal(int64(3), stats.TotalAsteroidsDestroyed)
	s.Equal(int64(1), stats.TotalNukesUsed)
	s.Equal(int64(60), stats.TotalPlaytimeSeconds)
}

func (s *StorageSuite) TestApplyStatsDeltaBestScoreMonotonic() {
	_ = s.storage.CreatePlayer(s.ctx, s.newPlayer("p1", "u1", "Alice"))

	_, _ = s.storage.ApplyStatsDelta(s.ctx, "p1", model.StatsDelta{Score: 100})
	stats, err := s.storage.ApplyStatsDelta(s.ctx, "p1", model.StatsDelta{Score: 40})
	s.Require().NoError(err)
	s.Equal(int64(100), stats.BestScore)
	s.Equal(int64(140), stats.TotalScore)
	s.Equal(int64(2), stats.TotalGames)
}

func (s *StorageSuite) TestApplyStatsDeltaNotFound() {
	_, err := s.storage.ApplyStatsDelta(s.ctx, "nonexistent", model.StatsDelta{Score: 1})
	s.ErrorIs(err, model.ErrStatsNotFound)
}

func (s *StorageSuite) TestApplyStatsDeltaConcurrent() {
	_ = s.storage.CreatePlayer(s.ctx, s.newPlayer("p1", "u1", "Alice"))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(score int64) {
			defer wg.Done()
			_, err := s.storage.ApplyStatsDelta(s.ctx, "p1", model.StatsDelta{Score: score})
			s.NoError(err)
		}(int64(i + 1))
	}
	wg.Wait()

	stats, err := s.storage.GetStats(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(int64(n), stats.TotalGames)
	s.Equal(int64(n*(n+1)/2), stats.TotalScore)
	s.Equal(int64(n), stats.BestScore)
}
