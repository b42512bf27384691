package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adamanr/workflow_portal/internal/config"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

// NewRedisConn opens the client backing the token store. Token keys live
// for the session timeout, so the client needs no keyspace of its own.
func NewRedisConn(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Redis.RedisAddr,
		Password:    cfg.Redis.RedisPassword,
		DB:          cfg.Redis.RedisDB,
		DialTimeout: redisPingTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("Failed to connect to token store", slog.String("addr", cfg.Redis.RedisAddr), slog.String("error", err.Error()))
		_ = rdb.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Redis.RedisAddr, err)
	}

	logger.Info("Token store connected", slog.String("addr", cfg.Redis.RedisAddr), slog.Int("db", cfg.Redis.RedisDB))

	return rdb, nil
}
