package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quantgov/mrm/internal/config"
	"github.com/quantgov/mrm/pkg/logger"
)

// NewRedisClient connects to Redis per the configuration and verifies the
// connection with a ping.
func NewRedisClient(cfg *config.RedisConfig, log logger.Logger) (redis.UniversalClient, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        cfg.Addresses,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	log.Info(context.Background(), "redis connected",
		logger.Any("addresses", cfg.Addresses),
	)
	return client, nil
}
