package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/spaceblaster/scorekeeper/internal/dependencies/mocks"
	"github.com/spaceblaster/scorekeeper/internal/model"
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
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()

	err := s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", UserID: "u1", Nickname: "Alice"})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestAppendWritesRecord() {
	record, err := s.service.Append(s.ctx, "p1", model.MatchResult{
		Score:              120,
		DurationSeconds:    95,
		EnemiesKilled:      7,
		AsteroidsDestroyed: 4,
		NukesUsed:          1,
	})
	s.Require().NoError(err)

	s.NotEmpty(record.ID)
	s.Equal(model.PlayerID("p1"), record.PlayerID)
	s.Equal(int64(120), record.Score)
	s.Equal(s.clock.Now(), record.CreatedAt)

	recent, err := s.storage.RecentScores(s.ctx, "p1", 10)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal(record.ID, recent[0].ID)
}

func (s *ServiceSuite) TestAppendAssignsServerTimestamps() {
	first, _ := s.service.Append(s.ctx, "p1", model.MatchResult{Score: 10})
	s.clock.Advance(time.Minute)
	second, _ := s.service.Append(s.ctx, "p1", model.MatchResult{Score: 20})

	s.True(second.CreatedAt.After(first.CreatedAt))
}

func (s *ServiceSuite) TestAppendUnknownPlayer() {
	_, err := s.service.Append(s.ctx, "nonexistent", model.MatchResult{Score: 10})
	s.ErrorIs(err, model.ErrPlayerNotFound)

	// Nothing written
	records, err := s.storage.TopScores(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *ServiceSuite) TestAppendNegativeScore() {
	_, err := s.service.Append(s.ctx, "p1", model.MatchResult{Score: -1})
	s.ErrorIs(err, model.ErrInvalidArgument)
}

func (s *ServiceSuite) TestAppendNegativeCounters() {
	cases := []model.MatchResult{
		{Score: 10, DurationSeconds: -1},
		{Score: 10, EnemiesKilled: -1},
		{Score: 10, AsteroidsDestroyed: -1},
		{Score: 10, NukesUsed: -1},
	}

	for _, result := range cases {
		_, err := s.service.Append(s.ctx, "p1", result)
		s.ErrorIs(err, model.ErrInvalidArgument)
	}

	records, err := s.storage.RecentScores(s.ctx, "p1", 10)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *ServiceSuite) TestAppendZeroScoreAllowed() {
	record, err := s.service.Append(s.ctx, "p1", model.MatchResult{Score: 0})
	s.Require().NoError(err)
	s.Equal(int64(0), record.Score)
}
