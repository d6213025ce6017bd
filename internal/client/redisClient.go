package client

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"book-bazaar/internal/config"
)

// InitRedisClient connects to redis for response caching. Returns nil when no
// address is configured; callers treat a nil client as "cache disabled".
func InitRedisClient(cfg config.Cache) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, caching disabled: %v", err)
		return nil
	}
	return rdb
}
