package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spaceblaster/scorekeeper/internal/dependencies/clock"
	"github.com/spaceblaster/scorekeeper/internal/model"
)

// Session represents an anonymous authenticated session. The UserID is the
// opaque stable identity the rest of the system keys players on; the token
// is the bearer credential presented by the client.
type Session struct {
	Token     string
	UserID    model.UserID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service is the session/auth gateway: it issues anonymous identities and
// resolves bearer tokens back to them. The core never validates or
// interprets identities beyond this boundary.
type Service struct {
	clock  clock.Clock
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new AuthService
func New(clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		clock:           clock,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// SignInAnonymously creates a fresh anonymous identity and a session for it
func (s *Service) SignInAnonymously(ctx context.Context) (*Session, error) {
	now := s.clock.Now()

	session := &Session{
		Token:     "tok_" + uuid.NewString(),
		UserID:    model.UserID("u_" + uuid.NewString()),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	s.logger.Info("anonymous sign-in",
		slog.String("user_id", string(session.UserID)),
	)

	return session, nil
}

// CurrentIdentity resolves a bearer token to its identity. An unknown or
// expired token yields the empty identity, not an error; callers decide
// whether absence is fatal.
func (s *Service) CurrentIdentity(token string) model.UserID {
	if token == "" {
		return ""
	}

	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return ""
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return ""
	}

	return session.UserID
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
