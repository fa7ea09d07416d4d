package database

import (
	"context"
	"fmt"
	"time"

	"lms_admin_backend/internal/config"
	"lms_admin_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// InitRedis 建连并探活。调用方决定失败后是否降级运行。
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	logger.Log.Info("Redis connection established")
	return rdb, nil
}
