package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// CacheRepository wraps Redis access for cached dashboard payloads.
type CacheRepository struct {
	client *redis.Client
}

func NewCacheRepository(client *redis.Client) *CacheRepository {
	return &CacheRepository{client: client}
}

func (r *CacheRepository) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", appErrors.ErrCacheMiss
	}
	if err != nil {
		return "", appErrors.Wrap(err, "cache get failed")
	}
	return val, nil
}

func (r *CacheRepository) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return appErrors.Wrap(err, "cache set failed")
	}
	return nil
}

func (r *CacheRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return appErrors.Wrap(err, "cache delete failed")
	}
	return nil
}

func (r *CacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
