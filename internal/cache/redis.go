package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vastrakart/vastrakart/internal/config"

	"github.com/redis/go-redis/v9"
)

const initPingTimeout = 3 * time.Second

type redisState struct {
	client *redis.Client
	prefix string
}

var state redisState

// InitRedis connects the Redis client and verifies the connection. A disabled
// config is not an error; every helper degrades to a no-op without a client.
func InitRedis(cfg *config.RedisConfig) error {
	state = redisState{}
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	addr := strings.TrimSpace(cfg.Host)
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "vk"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", addr, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), initPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}

	state = redisState{client: client, prefix: prefix}
	return nil
}

// Enabled reports whether the cache is available.
func Enabled() bool {
	return state.client != nil
}

// Client returns the Redis client, nil when the cache is unavailable.
func Client() *redis.Client {
	return state.client
}

// GetJSON reads a JSON cache entry into dest. The bool reports a hit.
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	val, err := state.client.Get(ctx, namespaced(key)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON writes a JSON cache entry with a TTL.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return state.client.Set(ctx, namespaced(key), payload, ttl).Err()
}

// Del removes a cache entry.
func Del(ctx context.Context, key string) error {
	if !Enabled() {
		return nil
	}
	return state.client.Del(ctx, namespaced(key)).Err()
}

func namespaced(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return state.prefix
	}
	return state.prefix + ":" + trimmed
}
