package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spaceblaster/scorekeeper/internal/model"
	"github.com/spaceblaster/scorekeeper/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
//
// Players and score records are stored as JSON values. The user_id
// uniqueness constraint is a SETNX index key. The global leaderboard and
// per-player histories are ZSETs over score ids. Stats live in a HASH and
// are mutated only by an atomic Lua script, so concurrent delta updates for
// the same player can never interleave a read-modify-write.
type Storage struct {
	client *redis.Client
	cfg    Config
	logger *slog.Logger
}

// New creates a new Redis storage instance
func New(cfg Config, logger *slog.Logger) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, storeErr(err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, logger *slog.Logger) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// storeErr marks a Redis failure as transient so callers can branch on the
// error taxonomy rather than on driver internals
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
}

// Player operations

// createPlayerScript claims the user index and writes the player row and the
// zeroed stats row in one atomic step. The SETNX is the uniqueness
// constraint on user_id; a nil reply means another create for the same
// user already landed. Keeping all three writes in the script means a
// failure can never leave the index behind without its rows.
var createPlayerScript = redis.NewScript(`
if redis.call("SETNX", KEYS[1], ARGV[1]) == 0 then
  return false
end
redis.call("SET", KEYS[2], ARGV[2])
redis.call("HSET", KEYS[3],
  "total_games", 0,
  "best_score", 0,
  "total_score", 0,
  "total_enemies_killed", 0,
  "total_asteroids_destroyed", 0,
  "total_nukes_used", 0,
  "total_playtime", 0)
return 1
`)

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	err = createPlayerScript.Run(ctx, s.client,
		[]string{userIndexKey(player.UserID), playerKey(player.ID), statsKey(player.ID)},
		string(player.ID),
		data,
	).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ErrPlayerExists
		}
		return storeErr(err)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, storeErr(err)
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByUserID(ctx context.Context, userID model.UserID) (*model.Player, error) {
	playerID, err := s.client.Get(ctx, userIndexKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, storeErr(err)
	}

	return s.GetPlayer(ctx, model.PlayerID(playerID))
}

func (s *Storage) UpdateNickname(ctx context.Context, id model.PlayerID, nickname string) error {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return err
	}

	player.Nickname = nickname
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, playerKey(id), data, 0).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

// Score ledger operations

func (s *Storage) AppendScore(ctx context.Context, record *model.ScoreRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	// Record plus both ranking indexes land in one transaction
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, scoreKey(record.ID), data, 0)
	pipe.ZAdd(ctx, leaderboardKey(), redis.Z{
		Score:  float64(record.Score),
		Member: string(record.ID),
	})
	pipe.ZAdd(ctx, playerScoresKey(record.PlayerID), redis.Z{
		Score:  float64(record.CreatedAt.UnixMicro()),
		Member: string(record.ID),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *Storage) RecentScores(ctx context.Context, playerID model.PlayerID, limit int) ([]*model.ScoreRecord, error) {
	ids, err := s.client.ZRevRange(ctx, playerScoresKey(playerID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(ids) == 0 {
		return []*model.ScoreRecord{}, nil
	}

	records, err := s.fetchScores(ctx, ids)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *Storage) TopScores(ctx context.Context, limit int) ([]*model.ScoreRecord, error) {
	entries, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey(), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(entries) == 0 {
		return []*model.ScoreRecord{}, nil
	}

	ids := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		id := e.Member.(string)
		ids = append(ids, id)
		seen[id] = true
	}

	// The ZSET orders equal scores by member, not by submission time. Pull
	// in every entry tied with the cutoff score so the deterministic
	// (score desc, created_at asc) sort below sees all candidates.
	if len(entries) == limit {
		cutoff := strconv.FormatFloat(entries[len(entries)-1].Score, 'f', -1, 64)
		tied, err := s.client.ZRangeByScore(ctx, leaderboardKey(), &redis.ZRangeBy{
			Min: cutoff,
			Max: cutoff,
		}).Result()
		if err != nil {
			return nil, storeErr(err)
		}
		for _, id := range tied {
			if !seen[id] {
				ids = append(ids, id)
				seen[id] = true
			}
		}
	}

	records, err := s.fetchScores(ctx, ids)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// fetchScores loads score records by id in a single MGET
func (s *Storage) fetchScores(ctx context.Context, ids []string) ([]*model.ScoreRecord, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = scoreKey(model.ScoreID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storeErr(err)
	}

	records := make([]*model.ScoreRecord, 0, len(values))
	for i, val := range values {
		if val == nil {
			continue // Index entry without a record; skip
		}
		var record model.ScoreRecord
		if err := json.Unmarshal([]byte(val.(string)), &record); err != nil {
			s.logger.Warn("skipping unreadable score record",
				slog.String("score_id", ids[i]),
				slog.String("error", err.Error()),
			)
			continue
		}
		records = append(records, &record)
	}
	return records, nil
}

// Stats aggregate operations

// Stats HASH field names (match the logical schema)
const (
	fieldTotalGames              = "total_games"
	fieldBestScore               = "best_score"
	fieldTotalScore              = "total_score"
	fieldTotalEnemiesKilled      = "total_enemies_killed"
	fieldTotalAsteroidsDestroyed = "total_asteroids_destroyed"
	fieldTotalNukesUsed          = "total_nukes_used"
	fieldTotalPlaytime           = "total_playtime"
)

// statsDeltaScript applies one match's delta to the stats HASH atomically:
// counter increments plus a conditional best-score max, returning the
// updated hash. A nil reply means the stats row does not exist.
var statsDeltaScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return false
end
redis.call("HINCRBY", KEYS[1], "total_games", 1)
redis.call("HINCRBY", KEYS[1], "total_score", ARGV[1])
local best = tonumber(redis.call("HGET", KEYS[1], "best_score")) or 0
if tonumber(ARGV[1]) > best then
  redis.call("HSET", KEYS[1], "best_score", ARGV[1])
end
redis.call("HINCRBY", KEYS[1], "total_enemies_killed", ARGV[2])
redis.call("HINCRBY", KEYS[1], "total_asteroids_destroyed", ARGV[3])
redis.call("HINCRBY", KEYS[1], "total_nukes_used", ARGV[4])
redis.call("HINCRBY", KEYS[1], "total_playtime", ARGV[5])
return redis.call("HGETALL", KEYS[1])
`)

func (s *Storage) GetStats(ctx context.Context, playerID model.PlayerID) (*model.PlayerStats, error) {
	fields, err := s.client.HGetAll(ctx, statsKey(playerID)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(fields) == 0 {
		return nil, model.ErrStatsNotFound
	}
	return statsFromFields(playerID, fields)
}

func (s *Storage) ApplyStatsDelta(ctx context.Context, playerID model.PlayerID, delta model.StatsDelta) (*model.PlayerStats, error) {
	result, err := statsDeltaScript.Run(ctx, s.client,
		[]string{statsKey(playerID)},
		delta.Score,
		delta.EnemiesKilled,
		delta.AsteroidsDestroyed,
		delta.NukesUsed,
		delta.DurationSeconds,
	).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStatsNotFound
		}
		return nil, storeErr(err)
	}

	// HGETALL via EVAL yields a flat [field, value, ...] array
	flat, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected stats script reply type %T", result)
	}
	fields := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		fields[flat[i].(string)] = flat[i+1].(string)
	}
	return statsFromFields(playerID, fields)
}

// statsFromFields parses a stats HASH into the aggregate model
func statsFromFields(playerID model.PlayerID, fields map[string]string) (*model.PlayerStats, error) {
	parse := func(field string) (int64, error) {
		val, ok := fields[field]
		if !ok {
			return 0, nil
		}
		return strconv.ParseInt(val, 10, 64)
	}

	stats := &model.PlayerStats{PlayerID: playerID}
	var err error
	if stats.TotalGames, err = parse(fieldTotalGames); err != nil {
		return nil, err
	}
	if stats.BestScore, err = parse(fieldBestScore); err != nil {
		return nil, err
	}
	if stats.TotalScore, err = parse(fieldTotalScore); err != nil {
		return nil, err
	}
	if stats.TotalEnemiesKilled, err = parse(fieldTotalEnemiesKilled); err != nil {
		return nil, err
	}
	if stats.TotalAsteroidsDestroyed, err = parse(fieldTotalAsteroidsDestroyed); err != nil {
		return nil, err
	}
	if stats.TotalNukesUsed, err = parse(fieldTotalNukesUsed); err != nil {
		return nil, err
	}
	if stats.TotalPlaytimeSeconds, err = parse(fieldTotalPlaytime); err != nil {
		return nil, err
	}
	return stats, nil
}
