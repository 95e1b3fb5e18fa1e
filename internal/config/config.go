package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server holds server configuration loaded from the environment
type Server struct {
	Host string `env:"HOST" envDefault:""`
	Port int    `env:"PORT" envDefault:"8080"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	// RedisURL is required when StorageType is "redis"
	RedisURL string `env:"REDIS_URL"`

	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"24h"`

	LeaderboardLimit  int `env:"LEADERBOARD_LIMIT" envDefault:"10"`
	RecentScoresLimit int `env:"RECENT_SCORES_LIMIT" envDefault:"5"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses server configuration from environment variables
func Load() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
