package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/boko-runner/internal/profile"
)

const defaultLeaderboardPrefix = "boko-runner:leaderboard:"

// NewRedisClient creates a client for a single Redis instance. Redis
// connects lazily, so an unreachable address only fails on first use.
func NewRedisClient(addr string) (redis.UniversalClient, error) {
	if addr == "" {
		return nil, errors.New("storage: redis address is required")
	}
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
		ReadTimeout: time.Second,
		MaxRetries:  1,
	}), nil
}

// RedisConfig contains configuration for the Redis leaderboard mirror.
type RedisConfig struct {
	Client    redis.UniversalClient
	KeyPrefix string
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.New("storage: redis config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.New("storage: redis client cannot be nil")
	}
	return nil
}

// RedisLeaderboard mirrors the leaderboards into one sorted set per
// difficulty so other processes can read them.
type RedisLeaderboard struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisLeaderboard creates the mirror.
func NewRedisLeaderboard(cfg *RedisConfig) (*RedisLeaderboard, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultLeaderboardPrefix
	}
	return &RedisLeaderboard{client: cfg.Client, prefix: prefix}, nil
}

func (r *RedisLeaderboard) key(d profile.Difficulty) string {
	return r.prefix + d.String()
}

// PublishLeaderboard replaces the sorted set of d with scores.
func (r *RedisLeaderboard) PublishLeaderboard(ctx context.Context, d profile.Difficulty, scores []int) error {
	key := r.key(d)

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if members := zMembers(scores); len(members) > 0 {
		pipe.ZAdd(ctx, key, members...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storage: cannot publish %s leaderboard: %w", d, err)
	}
	return nil
}

func zMembers(scores []int) []redis.Z {
	members := make([]redis.Z, 0, len(scores))
	for _, sc := range scores {
		if sc <= 0 {
			continue
		}
		members = append(members, redis.Z{Score: float64(sc), Member: strconv.Itoa(sc)})
	}
	return members
}

// Top returns up to limit mirrored scores of d, best first.
func (r *RedisLeaderboard) Top(ctx context.Context, d profile.Difficulty, limit int) ([]int, error) {
	if limit <= 0 {
		limit = profile.MaxScores
	}
	zs, err := r.client.ZRevRangeWithScores(ctx, r.key(d), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s leaderboard: %w", d, err)
	}
	scores := make([]int, 0, len(zs))
	for _, z := range zs {
		scores = append(scores, int(z.Score))
	}
	return scores, nil
}

// Clear removes every mirrored leaderboard.
func (r *RedisLeaderboard) Clear(ctx context.Context) error {
	keys := make([]string, 0, len(profile.Difficulties))
	for _, d := range profile.Difficulties {
		keys = append(keys, r.key(d))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("storage: cannot clear leaderboards: %w", err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (r *RedisLeaderboard) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("storage: redis unreachable: %w", err)
	}
	return nil
}
