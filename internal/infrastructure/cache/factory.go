package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	customerapp "github.com/storefront/backend/internal/application/customer"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewRedisClient connects a Redis client and verifies the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewResetTokenStore creates a reset-token store backed by Redis, falling
// back to the in-memory store when Redis is unavailable. The fallback does
// not share state across instances.
func NewResetTokenStore(cfg config.RedisConfig, logger *zap.Logger) customerapp.ResetTokenStore {
	client, err := NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory reset-token store",
			zap.Error(err))
		return NewInMemoryResetTokenStore()
	}
	logger.Info("using Redis reset-token store")
	return NewRedisResetTokenStore(client)
}
