package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/spaceblaster/scorekeeper/internal/dependencies/mocks"
	"github.com/spaceblaster/scorekeeper/internal/model"
	"github.com/spaceblaster/scorekeeper/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestSignInAnonymously() {
	session, err := s.service.SignInAnonymously(s.ctx)
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.NotEmpty(session.UserID)
	s.True(session.ExpiresAt.After(session.CreatedAt))
}

func (s *ServiceSuite) TestSignInAnonymouslyDistinctIdentities() {
	first, _ := s.service.SignInAnonymously(s.ctx)
	second, _ := s.service.SignInAnonymously(s.ctx)

	s.NotEqual(first.UserID, second.UserID)
	s.NotEqual(first.Token, second.Token)
}

func (s *ServiceSuite) TestCurrentIdentityResolvesToken() {
	session, _ := s.service.SignInAnonymously(s.ctx)

	identity := s.service.CurrentIdentity(session.Token)
	s.Equal(session.UserID, identity)
}

func (s *ServiceSuite) TestCurrentIdentityUnknownTokenIsEmpty() {
	// Absence is an explicit empty value, not an error
	s.Equal(model.UserID(""), s.service.CurrentIdentity("unknown"))
	s.Equal(model.UserID(""), s.service.CurrentIdentity(""))
}

func (s *ServiceSuite) TestCurrentIdentityExpiredTokenIsEmpty() {
	session, _ := s.service.SignInAnonymously(s.ctx)

	s.clock.Advance(25 * time.Hour)

	s.Equal(model.UserID(""), s.service.CurrentIdentity(session.Token))
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, _ := s.service.SignInAnonymously(s.ctx)

	s.service.InvalidateSession(session.Token)

	s.Equal(model.UserID(""), s.service.CurrentIdentity(session.Token))
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	expired, _ := s.service.SignInAnonymously(s.ctx)
	s.clock.Advance(25 * time.Hour)
	fresh, _ := s.service.SignInAnonymously(s.ctx)

	s.service.CleanExpiredSessions()

	s.Equal(model.UserID(""), s.service.CurrentIdentity(expired.Token))
	s.Equal(fresh.UserID, s.service.CurrentIdentity(fresh.Token))
}
