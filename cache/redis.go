package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for the Redis cache.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Redis is a Cache backed by a Redis server, for deployments where
// several game-server instances share one verification cache.
type Redis struct {
	conn *redis.Client
}

// NewRedis creates a Redis cache from the configuration. The connection
// is verified with a ping.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Redis{conn: conn}, nil
}

// NewRedisWithClient wraps an existing client. Useful for testing.
func NewRedisWithClient(conn *redis.Client) *Redis {
	return &Redis{conn: conn}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.conn.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.conn.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.conn.Del(ctx, key).Err()
}

// Close releases the underlying connection.
func (r *Redis) Close() error {
	return r.conn.Close()
}
