package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"claimbot/internal/database/redis"

	redis_v9 "github.com/redis/go-redis/v9"
)

type RedisRepo struct {
	client *redis_v9.Client
}

func NewRedisRepo() *RedisRepo {
	return &RedisRepo{
		client: redis.Redis_Client,
	}
}

func (rr *RedisRepo) SaveStructCached(ctx context.Context, key string, model any, ttl time.Duration) error {
	val, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("error saving struct to cache: %s", err)
	}
	if err := rr.client.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("error saving struct to cache: %s", err)
	}
	return nil
}

func (rr *RedisRepo) GetStructCached(ctx context.Context, key string, model any) error {
	raw, err := rr.client.Get(ctx, key).Bytes()
	if err != nil {
		return fmt.Errorf("error get struct in cache: %s", err)
	}
	return json.Unmarshal(raw, model)
}

func (rr *RedisRepo) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rr.client.Del(ctx, keys...).Err()
}
