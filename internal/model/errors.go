package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// ErrUnauthenticated indicates no authenticated identity is available
	ErrUnauthenticated = errors.New("not authenticated")

	// Entity errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrStatsNotFound  = errors.New("player stats not found")
	ErrScoreNotFound  = errors.New("score record not found")

	// ErrPlayerExists signals a lost create race on the user_id uniqueness
	// constraint; callers should re-read the winner's row
	ErrPlayerExists = errors.New("player already exists for user")

	// ErrInvalidArgument covers negative counters, empty nicknames after
	// trimming and non-positive limits
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict indicates a concurrent-update conflict that persisted
	// past the bounded retry budget
	ErrConflict = errors.New("concurrent update conflict")

	// ErrStoreUnavailable wraps transient record-store failures; callers
	// may retry the operation
	ErrStoreUnavailable = errors.New("store unavailable")
)

func invalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
