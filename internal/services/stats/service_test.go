package stats

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/spaceblaster/scorekeeper/internal/dependencies/mocks"
	"github.com/spaceblaster/scorekeeper/internal/model"
	"github.com/spaceblaster/scorekeeper/internal/services/ledger"
	"github.com/spaceblaster/scorekeeper/internal/storage/memory"
	"github.com/spaceblaster/scorekeeper/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	ledgerService := ledger.New(s.storage, s.clock, testutil.NopLogger())
	s.service = New(s.storage, ledgerService, testutil.NopLogger())
	s.ctx = context.Background()

	err := s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", UserID: "u1", Nickname: "Alice"})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestRecordMatchUpdatesAggregate() {
	stats, err := s.service.RecordMatch(s.ctx, "p1", model.MatchResult{
		Score:              150,
		DurationSeconds:    120,
		EnemiesKilled:      9,
		AsteroidsDestroyed: 6,
		NukesUsed:          2,
	})
	s.Require().NoError(err)

	s.Equal(int64(1), stats.TotalGames)
	s.Equal(int64(150), stats.BestScore)
	s.Equal(int64(150), stats.TotalScore)
	s.Equal(int64(9), stats.TotalEnemiesKilled)
	s.Equal(int64(6), stats.TotalAsteroidsDestroyed)
	s.Equal(int64(2), stats.TotalNukesUsed)
	s.Equal(int64(120), stats.TotalPlaytimeSeconds)
}

func (s *ServiceSuite) TestRecordMatchAppendsToLedger() {
	_, err := s.service.RecordMatch(s.ctx, "p1", model.MatchResult{Score: 50})
	s.Require().NoError(err)

	records, err := s.storage.RecentScores(s.ctx, "p1", 10)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(int64(50), records[0].Score)
}

func (s *ServiceSuite) TestAggregateConsistencyOverSequence() {
	results := []model.MatchResult{
		{Score: 50, DurationSeconds: 40, EnemiesKilled: 4, AsteroidsDestroyed: 2, NukesUsed: 1},
		{Score: 80, DurationSeconds: 65, EnemiesKilled: 7, AsteroidsDestroyed: 3, NukesUsed: 0},
		{Score: 30, DurationSeconds: 20, EnemiesKilled: 1, AsteroidsDestroyed: 0, NukesUsed: 0},
		{Score: 80, DurationSeconds: 55, EnemiesKilled: 6, AsteroidsDestroyed: 5, NukesUsed: 2},
		{Score: 10, DurationSeconds: 15, EnemiesKilled: 0, AsteroidsDestroyed: 1, NukesUsed: 0},
	}
	for _, result := range results {
		_, err := s.service.RecordMatch(s.ctx, "p1", result)
		s.Require().NoError(err)
	}

	stats, err := s.service.Stats(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(int64(len(results)), stats.TotalGames)
	s.Equal(int64(250), stats.TotalScore)
	s.Equal(int64(80), stats.BestScore)

	// The aggregate must be re-derivable from the ledger
	records, err := s.storage.RecentScores(s.ctx, "p1", len(results)+1)
	s.Require().NoError(err)
	s.Require().Len(records, len(results))

	replay := model.NewPlayerStats("p1")
	for _, rec := range records {
		replay.Apply(model.StatsDelta{
			Score:              rec.Score,
			DurationSeconds:    rec.DurationSeconds,
			EnemiesKilled:      rec.EnemiesKilled,
			AsteroidsDestroyed: rec.AsteroidsDestroyed,
			NukesUsed:          rec.NukesUsed,
		})
	}
	s.Equal(*stats, *replay)
}

func (s *ServiceSuite) TestConcurrentSubmissionsNoLostUpdates() {
	const k = 25
	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(score int64) {
			defer wg.Done()
			_, err := s.service.RecordMatch(s.ctx, "p1", model.MatchResult{Score: score})
			s.NoError(err)
		}(int64(i + 1))
	}
	wg.Wait()

	stats, err := s.service.Stats(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(int64(k), stats.TotalGames)
	s.Equal(int64(k*(k+1)/2), stats.TotalScore)
	s.Equal(int64(k), stats.BestScore)

	records, err := s.storage.RecentScores(s.ctx, "p1", k+1)
	s.Require().NoError(err)
	s.Len(records, k)
}

func (s *ServiceSuite) TestRecordMatchUnknownPlayer() {
	_, err := s.service.RecordMatch(s.ctx, "nonexistent", model.MatchResult{Score: 10})
	s.ErrorIs(err, model.ErrPlayerNotFound)

	records, err := s.storage.TopScores(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *ServiceSuite) TestRecordMatchInvalidInputLeavesStateUnchanged() {
	_, err := s.service.RecordMatch(s.ctx, "p1", model.MatchResult{Score: -1})
	s.ErrorIs(err, model.ErrInvalidArgument)

	stats, err := s.service.Stats(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(int64(0), stats.TotalGames)

	records, err := s.storage.RecentScores(s.ctx, "p1", 10)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *ServiceSuite) TestStatsUnknownPlayer() {
	_, err := s.service.Stats(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrStatsNotFound)
}
