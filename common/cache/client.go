package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farhanms/playfield/common/config"
)

type RedisClient struct {
	client *redis.Client
}

// NewRedisClient builds the client without touching the network; the
// caller verifies the connection with Ping during startup.
func NewRedisClient(cfg config.RedisConfig) *RedisClient {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Address,
		Password:    cfg.Password,
		DialTimeout: 5 * time.Second,
		ReadTimeout: 3 * time.Second,
	})

	return &RedisClient{client: client}
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
