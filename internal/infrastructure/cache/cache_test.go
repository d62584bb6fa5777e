package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/pkg/logger"
)

func sampleRecord() *models.TieringRecord {
	return &models.TieringRecord{
		TieringID: "t-1",
		ModelID:   "m-1",
		Timestamp: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
		Score:     79,
		Tier:      models.Tier{Rank: 1, Label: "Tier 1"},
		Rationale: "Model: Credit Risk Scoring Model",
		Controls:  []string{"Independent Validation Required"},
	}
}

func newTestRedisCache(t *testing.T) (TieringCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(client, logger.NewNoopLogger()), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	// Miss before set.
	got, err := c.GetLatest(ctx, "m-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.SetLatest(ctx, sampleRecord(), time.Minute))

	got, err = c.GetLatest(ctx, "m-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "t-1", got.TieringID)
	assert.Equal(t, 79.0, got.Score)
	assert.Equal(t, "Tier 1", got.Tier.Label)
}

func TestRedisCacheInvalidate(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetLatest(ctx, sampleRecord(), time.Minute))
	require.NoError(t, c.Invalidate(ctx, "m-1"))

	got, err := c.GetLatest(ctx, "m-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCacheExpiry(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetLatest(ctx, sampleRecord(), time.Second))
	mr.FastForward(2 * time.Second)

	got, err := c.GetLatest(ctx, "m-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCacheCorruptEntryBehavesAsMiss(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("tiering:latest:m-1", "{not-json"))

	got, err := c.GetLatest(ctx, "m-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLocalCacheRoundTrip(t *testing.T) {
	c := NewLocalCache(time.Minute)
	ctx := context.Background()

	got, err := c.GetLatest(ctx, "m-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.SetLatest(ctx, sampleRecord(), time.Minute))

	got, err = c.GetLatest(ctx, "m-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "t-1", got.TieringID)

	// The cached copy is detached from the caller's record.
	got.Score = 0
	again, err := c.GetLatest(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, 79.0, again.Score)

	require.NoError(t, c.Invalidate(ctx, "m-1"))
	got, err = c.GetLatest(ctx, "m-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
