package cache

import (
	"MedWarehouse/internal/pkg/redis"
	"context"
	"time"
)

// Store 缓存后端的最小接口，生产环境使用 Redis 实现
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	DelPattern(ctx context.Context, pattern string) (int64, error)
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type redisStore struct{}

// NewRedisStore 基于全局 Redis 客户端的 Store
func NewRedisStore() Store {
	return redisStore{}
}

func (redisStore) Get(ctx context.Context, key string) (string, error) {
	return redis.GetValue(ctx, key)
}

func (redisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return redis.SetWithExpiration(ctx, key, value, ttl)
}

func (redisStore) Del(ctx context.Context, key string) error {
	return redis.DeleteKey(ctx, key)
}

func (redisStore) DelPattern(ctx context.Context, pattern string) (int64, error) {
	return redis.DeleteByPattern(ctx, pattern)
}

func (redisStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return redis.IncrWithExpiration(ctx, key, ttl)
}
