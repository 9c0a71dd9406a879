package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPrefix namespaces every key written by RedisStore.
const RedisPrefix = "gp:cache:"

type redisEnvelope struct {
	CreatedAt     int64  `json:"created_at"`
	ExpiresAt     int64  `json:"expires_at"`
	PayloadBase64 string `json:"payload_base64"`
}

// RedisStore keeps entries in Redis. Keys carry a native expiry; the
// envelope's expires_at is checked as well so clock skew never serves a stale
// entry.
type RedisStore struct {
	rdb redis.Cmdable
	now func() time.Time
}

// NewRedisStore creates a RedisStore on top of rdb.
func NewRedisStore(rdb redis.Cmdable, opts ...Option) *RedisStore {
	o := buildOptions(opts)
	return &RedisStore{rdb: rdb, now: o.now}
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := s.rdb.Get(ctx, RedisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}

	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("cache decode %s: %w", key, err)
	}
	payload, err := base64.StdEncoding.DecodeString(env.PayloadBase64)
	if err != nil {
		return nil, fmt.Errorf("cache decode %s: %w", key, err)
	}
	e := &Entry{
		Key:       key,
		Payload:   payload,
		CreatedAt: time.UnixMilli(env.CreatedAt),
		ExpiresAt: time.UnixMilli(env.ExpiresAt),
	}
	if e.Expired(s.now()) {
		return nil, nil
	}
	return e, nil
}

// Put implements Store.
func (s *RedisStore) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	now := s.now()
	raw, err := json.Marshal(redisEnvelope{
		CreatedAt:     now.UnixMilli(),
		ExpiresAt:     now.Add(ttl).UnixMilli(),
		PayloadBase64: base64.StdEncoding.EncodeToString(payload),
	})
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, RedisPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache put %s: %w", key, err)
	}
	return nil
}
