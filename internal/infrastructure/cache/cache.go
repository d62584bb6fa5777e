// Package cache provides the latest-tiering read cache. Two implementations
// exist: a Redis-backed cache for deployments and an in-process cache for
// single-node and test setups. The cache is strictly best effort; repository
// reads remain the source of truth and cache failures never fail a request.
package cache

import (
	"context"
	"time"

	"github.com/quantgov/mrm/internal/domain/models"
)

// TieringCache caches the most recent tiering record per model.
type TieringCache interface {
	// GetLatest returns the cached record, or (nil, nil) on a miss.
	GetLatest(ctx context.Context, modelID string) (*models.TieringRecord, error)

	// SetLatest stores the record under the model's key with the given TTL.
	SetLatest(ctx context.Context, record *models.TieringRecord, ttl time.Duration) error

	// Invalidate drops the cached record for the model.
	Invalidate(ctx context.Context, modelID string) error
}

// latestKey builds the cache key for a model's latest tiering record.
func latestKey(modelID string) string {
	return "tiering:latest:" + modelID
}
