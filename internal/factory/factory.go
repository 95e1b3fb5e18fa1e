package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spaceblaster/scorekeeper/internal/dependencies/clock"
	"github.com/spaceblaster/scorekeeper/internal/services/auth"
	"github.com/spaceblaster/scorekeeper/internal/services/identity"
	"github.com/spaceblaster/scorekeeper/internal/services/leaderboard"
	"github.com/spaceblaster/scorekeeper/internal/services/ledger"
	"github.com/spaceblaster/scorekeeper/internal/services/stats"
	"github.com/spaceblaster/scorekeeper/internal/storage"
	"github.com/spaceblaster/scorekeeper/internal/storage/memory"
	redisstorage "github.com/spaceblaster/scorekeeper/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService        *auth.Service
	IdentityService    *identity.Service
	LedgerService      *ledger.Service
	StatsService       *stats.Service
	LeaderboardService *leaderboard.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth gateway (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// LeaderboardConfig holds query limit defaults (optional)
	// If zero value, defaults to leaderboard.DefaultConfig()
	LeaderboardConfig leaderboard.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, logger)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()

	// Use default configs if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	lbCfg := cfg.LeaderboardConfig
	if lbCfg.DefaultTopLimit == 0 {
		lbCfg = leaderboard.DefaultConfig()
	}

	return newWithDependencies(store, clk, authCfg, lbCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, lbCfg leaderboard.Config, logger *slog.Logger) *App {
	// Create services
	authService := auth.New(clk, authCfg, logger)
	identityService := identity.New(store, clk, logger)
	ledgerService := ledger.New(store, clk, logger)
	statsService := stats.New(store, ledgerService, logger)
	leaderboardService := leaderboard.New(store, lbCfg, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		AuthService:        authService,
		IdentityService:    identityService,
		LedgerService:      ledgerService,
		StatsService:       statsService,
		LeaderboardService: leaderboardService,
	}
}
