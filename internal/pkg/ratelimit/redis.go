package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gp:rate:"

// RedisStore shares windows across instances. The window starts at the first
// INCR of a key and ends when the key expires.
type RedisStore struct {
	rdb redis.Cmdable
}

// NewRedisStore creates a RedisStore on top of rdb.
func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Increment implements Store.
func (s *RedisStore) Increment(ctx context.Context, subject, endpoint string, length time.Duration, now time.Time) (Window, error) {
	key := redisKeyPrefix + storeKey(subject, endpoint)

	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return Window{}, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 {
		if err := s.rdb.PExpire(ctx, key, length).Err(); err != nil {
			return Window{}, fmt.Errorf("pexpire %s: %w", key, err)
		}
	}

	ttl, err := s.rdb.PTTL(ctx, key).Result()
	if err != nil {
		return Window{}, fmt.Errorf("pttl %s: %w", key, err)
	}
	if ttl <= 0 {
		// The expiry from the first hit was lost; restart the window here.
		if err := s.rdb.PExpire(ctx, key, length).Err(); err != nil {
			return Window{}, fmt.Errorf("pexpire %s: %w", key, err)
		}
		ttl = length
	}

	return Window{
		Subject:  subject,
		Endpoint: endpoint,
		Count:    count,
		Start:    now.Add(ttl - length),
		Length:   length,
	}, nil
}
