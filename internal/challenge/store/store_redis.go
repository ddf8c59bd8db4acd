package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"credstate/internal/domain"
	"credstate/pkg/platform/sentinel"
)

const redisKeyPrefix = "credstate:responses:"

// RedisStore persists response records as JSON documents in Redis. Records
// have no TTL; enrollment survives until explicitly replaced or deleted.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedis constructs a Redis-backed response record store.
func NewRedis(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Find(ctx context.Context, identity domain.Identity) (*domain.ResponseInfo, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+identity.DN).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find response record: %w", err)
	}
	var record domain.ResponseInfo
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode response record: %w", err)
	}
	return &record, nil
}

func (s *RedisStore) Save(ctx context.Context, record domain.ResponseInfo) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode response record: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+record.Identity.DN, raw, 0).Err(); err != nil {
		return fmt.Errorf("save response record: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, identity domain.Identity) error {
	if err := s.client.Del(ctx, redisKeyPrefix+identity.DN).Err(); err != nil {
		return fmt.Errorf("delete response record: %w", err)
	}
	return nil
}
