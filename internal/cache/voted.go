// Package cache keeps a per-election set of voters known to have voted.
// It only ever short-circuits a request that the store would reject
// anyway; the store's unique index stays authoritative.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/vietanh2810/evoting-api/internal/config"
)

const votedKeyPrefix = "evoting:voted:"

type VotedCache interface {
	HasVoted(ctx context.Context, electionID, voterID int64) (bool, error)
	MarkVoted(ctx context.Context, electionID, voterID int64) error
	Forget(ctx context.Context, electionID int64) error
}

type RedisVotedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisVotedCache(client *redis.Client, ttl time.Duration) *RedisVotedCache {
	return &RedisVotedCache{
		client: client,
		ttl:    ttl,
	}
}

func NewRedisClient(ctx context.Context, conf *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("client.Ping -> %w", err)
	}

	return client, nil
}

func votedKey(electionID int64) string {
	return votedKeyPrefix + strconv.FormatInt(electionID, 10)
}

func (c *RedisVotedCache) HasVoted(ctx context.Context, electionID, voterID int64) (bool, error) {
	ok, err := c.client.SIsMember(ctx, votedKey(electionID), voterID).Result()
	if err != nil {
		return false, fmt.Errorf("c.client.SIsMember -> %w", err)
	}

	return ok, nil
}

func (c *RedisVotedCache) MarkVoted(ctx context.Context, electionID, voterID int64) error {
	key := votedKey(electionID)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, voterID)
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("c.client.TxPipelined -> %w", err)
	}

	return nil
}

func (c *RedisVotedCache) Forget(ctx context.Context, electionID int64) error {
	if err := c.client.Del(ctx, votedKey(electionID)).Err(); err != nil {
		return fmt.Errorf("c.client.Del -> %w", err)
	}

	return nil
}

// NopVotedCache never reports a hit.
type NopVotedCache struct{}

func (NopVotedCache) HasVoted(context.Context, int64, int64) (bool, error) { return false, nil }
func (NopVotedCache) MarkVoted(context.Context, int64, int64) error        { return nil }
func (NopVotedCache) Forget(context.Context, int64) error                  { return nil }
