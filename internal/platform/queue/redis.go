package queue

import (
	"context"
	"fmt"

	"docuverify/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// Connect builds and pings a Redis client for the decision-event queue.
func Connect(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	return rdb, nil
}
