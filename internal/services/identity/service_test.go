package identity

import (
	"context"
	"sync"
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
}

func (s *ServiceSuite) TestGetOrCreatePlayerCreates() {
	player, err := s.service.GetOrCreatePlayer(s.ctx, "u1", "Alice")
	s.Require().NoError(err)

	s.NotEmpty(player.ID)
	s.Equal(model.UserID("u1"), player.UserID)
	s.Equal("Alice", player.Nickname)
	s.Equal(s.clock.Now(), player.CreatedAt)
}

func (s *ServiceSuite) TestGetOrCreatePlayerCreatesZeroedStats() {
	player, err := s.service.GetOrCreatePlayer(s.ctx, "u1", "Alice")
	s.Require().NoError(err)

	stats, err := s.storage.GetStats(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), stats.TotalGames)
	s.Equal(int64(0), stats.BestScore)
}

func (s *ServiceSuite) TestGetOrCreatePlayerIdempotent() {
	first, err := s.service.GetOrCreatePlayer(s.ctx, "u1", "Alice")
	s.Require().NoError(err)

	second, err := s.service.GetOrCreatePlayer(s.ctx, "u1", "Alice")
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
}

func (s *ServiceSuite) TestGetOrCreatePlayerTrimsNickname() {
	player, err := s.service.GetOrCreatePlayer(s.ctx, "u1", "  Alice  ")
	s.Require().NoError(err)
	s.Equal("Alice", player.Nickname)

	// Trim-compared: whitespace variants are not a rename
	again, err := s.service.GetOrCreatePlayer(s.ctx, "u1", "Alice ")
	s.Require().NoError(err)
	s.Equal("Alice", again.Nickname)
}

func (s *ServiceSuite) TestGetOrCreatePlayerRenames() {
	first, err := s.service.GetOrCreatePlayer(s.ctx, "u1", "Alice")
	s.Require().NoError(err)

	renamed, err := s.service.GetOrCreatePlayer(s.ctx, "u1", "Bob")
	s.Require().NoError(err)

	s.Equal(first.ID, renamed.ID)
	s.Equal("Bob", renamed.Nickname)

	stored, err := s.storage.GetPlayer(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal("Bob", stored.Nickname)
}

func (s *ServiceSuite) TestRenameDoesNotResetStats() {
	player, _ := s.service.GetOrCreatePlayer(s.ctx, "u1", "Alice")
	_, err := s.storage.ApplyStatsDelta(s.ctx, player.ID, model.StatsDelta{Score: 100})
	s.Require().NoError(err)

	_, err = s.service.GetOrCreatePlayer(s.ctx, "u1", "Bob")
	s.Require().NoError(err)

	stats, err := s.storage.GetStats(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), stats.TotalGames)
	s.Equal(int64(100), stats.TotalScore)
}

func (s *ServiceSuite) TestGetOrCreatePlayerUnauthenticated() {
	_, err := s.service.GetOrCreatePlayer(s.ctx, "", "Alice")
	s.ErrorIs(err, model.ErrUnauthenticated)
}

func (s *ServiceSuite) TestGetOrCreatePlayerEmptyNickname() {
	_, err := s.service.GetOrCreatePlayer(s.ctx, "u1", "   ")
	s.ErrorIs(err, model.ErrInvalidArgument)
}

func (s *ServiceSuite) TestGetOrCreatePlayerConcurrentSameUser() {
	const n = 10
	ids := make([]model.PlayerID, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			player, err := s.service.GetOrCreatePlayer(s.ctx, "u1", "Alice")
			if s.NoError(err) {
				ids[i] = player.ID
			}
		}(i)
	}
	wg.Wait()

	// Every call resolved to the same single player
	for i := 1; i < n; i++ {
		s.Equal(ids[0], ids[i])
	}
}
