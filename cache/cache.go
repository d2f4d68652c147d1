// Package cache is a small TTL cache for tool results (search and
// fetch output). Cached text is derived data; conversations are never
// stored here.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hamedsh/agentchat/config"
)

// Store is the cache contract shared by the in-memory and Redis
// backends. Get returns ok=false on a miss or expired entry.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type StoreType string

const (
	InMemoryStore StoreType = "memory"
	RedisStore    StoreType = "redis"
)

// New builds a cache store from configuration.
func New(cfg config.CacheConfig) (Store, error) {
	switch StoreType(cfg.Backend) {
	case InMemoryStore, "":
		return NewInMemory(), nil
	case RedisStore:
		return NewRedis(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}
