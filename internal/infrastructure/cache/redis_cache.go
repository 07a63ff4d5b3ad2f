// Package cache adaptadores de ports.ResponseCache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/branch-analytics/internal/application/ports"
	"github.com/jhoicas/branch-analytics/pkg/config"
)

const (
	keyNamespace  = "branch-analytics:"
	scanBatchSize = 100
	defaultTTL    = time.Minute
	pingTimeout   = 5 * time.Second
)

var (
	_ ports.ResponseCache = (*RedisCache)(nil)
	_ ports.ResponseCache = Noop{}
)

// RedisCache respuestas serializadas en JSON con TTL fijo.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New devuelve Noop si la caché está deshabilitada; si no, conecta y hace ping a Redis.
func New(ctx context.Context, cfg config.CacheConfig) (ports.ResponseCache, error) {
	if !cfg.Enabled {
		return Noop{}, nil
	}

	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisCache(client, cfg.TTL), nil
}

// NewRedisCache envuelve un cliente existente. ttl <= 0 usa un minuto.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func redisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opt, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("redis url inválida: %w", err)
		}
		return opt, nil
	}
	return &redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	payload, err := c.client.Get(ctx, keyNamespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("decodificar %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", key, err)
	}
	if err := c.client.Set(ctx, keyNamespace+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidatePrefix recorre con SCAN para no bloquear Redis con KEYS.
func (c *RedisCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	pattern := keyNamespace + prefix + "*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close libera el cliente.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Noop caché deshabilitada: nunca encuentra nada.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any) error         { return nil }
func (Noop) InvalidatePrefix(context.Context, string) error { return nil }
