package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/pkg/errors"
	"github.com/quantgov/mrm/pkg/logger"
)

type redisCache struct {
	client redis.UniversalClient
	log    logger.Logger
}

// NewRedisCache creates a Redis-backed TieringCache.
func NewRedisCache(client redis.UniversalClient, log logger.Logger) TieringCache {
	return &redisCache{
		client: client,
		log:    log.WithComponent("redis_cache"),
	}
}

func (c *redisCache) GetLatest(ctx context.Context, modelID string) (*models.TieringRecord, error) {
	val, err := c.client.Get(ctx, latestKey(modelID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, errors.ErrCache.WithError(err)
	}

	var record models.TieringRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		// A corrupt entry behaves like a miss; the caller falls back to storage.
		c.log.Warn(ctx, "dropping corrupt cache entry", logger.String("model_id", modelID))
		_ = c.client.Del(ctx, latestKey(modelID)).Err()
		return nil, nil
	}
	return &record, nil
}

func (c *redisCache) SetLatest(ctx context.Context, record *models.TieringRecord, ttl time.Duration) error {
	bytes, err := json.Marshal(record)
	if err != nil {
		return errors.ErrCache.WithError(err)
	}
	if err := c.client.Set(ctx, latestKey(record.ModelID), bytes, ttl).Err(); err != nil {
		return errors.ErrCache.WithError(err)
	}
	return nil
}

func (c *redisCache) Invalidate(ctx context.Context, modelID string) error {
	if err := c.client.Del(ctx, latestKey(modelID)).Err(); err != nil {
		return errors.ErrCache.WithError(err)
	}
	return nil
}
