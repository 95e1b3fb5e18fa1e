package redis

import (
	"fmt"

	"github.com/spaceblaster/scorekeeper/internal/model"
)

// Key prefix for all scorekeeper data
const keyPrefix = "skgame"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// userIndexKey returns the Redis key for the user_id -> player_id index.
// The key doubles as the uniqueness constraint on user_id.
func userIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:user:%s", keyPrefix, userID)
}

// scoreKey returns the Redis key for a ScoreRecord
func scoreKey(id model.ScoreID) string {
	return fmt.Sprintf("%s:score:%s", keyPrefix, id)
}

// leaderboardKey returns the Redis key for the global leaderboard ZSET
// (member: score id, score: match score)
func leaderboardKey() string {
	return fmt.Sprintf("%s:idx:leaderboard", keyPrefix)
}

// playerScoresKey returns the Redis key for a player's score history ZSET
// (member: score id, score: created_at unix micros)
func playerScoresKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:player_scores:%s", keyPrefix, playerID)
}

// statsKey returns the Redis key for a player's stats HASH
func statsKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, playerID)
}
