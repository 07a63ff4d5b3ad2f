package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/branch-analytics/pkg/config"
)

func TestNew_DeshabilitadaDevuelveNoop(t *testing.T) {
	c, err := New(context.Background(), config.CacheConfig{Enabled: false})
	require.NoError(t, err)
	assert.IsType(t, Noop{}, c)

	var dst map[string]any
	found, err := c.Get(context.Background(), "kpis:abc", &dst)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Set(context.Background(), "kpis:abc", map[string]int{"a": 1}))
	assert.NoError(t, c.InvalidatePrefix(context.Background(), "kpis"))
}

func TestRedisOptions_URLTienePrioridad(t *testing.T) {
	opts, err := redisOptions(config.CacheConfig{
		URL:  "redis://:secreto@cache.local:6380/2",
		Host: "ignorado", Port: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "cache.local:6380", opts.Addr)
	assert.Equal(t, "secreto", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestRedisOptions_HostYPuerto(t *testing.T) {
	opts, err := redisOptions(config.CacheConfig{Host: "redis", Port: 6379, DB: 1, Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "redis:6379", opts.Addr)
	assert.Equal(t, 1, opts.DB)
}

func TestRedisOptions_URLInvalida(t *testing.T) {
	_, err := redisOptions(config.CacheConfig{URL: "http://no-es-redis"})
	assert.ErrorContains(t, err, "redis url inválida")
}

func TestNewRedisCache_TTLPorDefecto(t *testing.T) {
	c := NewRedisCache(nil, 0)
	assert.Equal(t, time.Minute, c.ttl)
}
