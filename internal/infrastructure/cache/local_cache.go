package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/quantgov/mrm/internal/domain/models"
)

type localCache struct {
	store *gocache.Cache
}

// NewLocalCache creates an in-process TieringCache. Used when no Redis
// endpoint is configured, typically single-node and development setups.
func NewLocalCache(defaultTTL time.Duration) TieringCache {
	return &localCache{
		store: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func (c *localCache) GetLatest(ctx context.Context, modelID string) (*models.TieringRecord, error) {
	val, found := c.store.Get(latestKey(modelID))
	if !found {
		return nil, nil
	}
	record, ok := val.(models.TieringRecord)
	if !ok {
		c.store.Delete(latestKey(modelID))
		return nil, nil
	}
	return &record, nil
}

func (c *localCache) SetLatest(ctx context.Context, record *models.TieringRecord, ttl time.Duration) error {
	// Stored by value so cached entries stay immutable to callers.
	c.store.Set(latestKey(record.ModelID), *record, ttl)
	return nil
}

func (c *localCache) Invalidate(ctx context.Context, modelID string) error {
	c.store.Delete(latestKey(modelID))
	return nil
}
