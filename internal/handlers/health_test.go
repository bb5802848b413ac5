package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		redis  error
		status int
	}{
		{name: "healthy", status: http.StatusOK},
		{name: "redis down", redis: errors.New("redis connection failed"), status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(map[string]Pinger{
				"database": pingerFunc(func(context.Context) error { return nil }),
				"redis":    pingerFunc(func(context.Context) error { return tt.redis }),
			})
			app := fiber.New()
			app.Get("/health", h.Check)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

type pooledPinger struct {
	stats *redis.PoolStats
}

func (pooledPinger) HealthCheck(context.Context) error { return nil }

func (p pooledPinger) GetStats() *redis.PoolStats { return p.stats }

func TestHealthHandler_PoolStats(t *testing.T) {
	h := NewHealthHandler(map[string]Pinger{
		"database": pingerFunc(func(context.Context) error { return nil }),
		"redis":    pooledPinger{stats: &redis.PoolStats{Hits: 7, Misses: 2, TotalConns: 3, IdleConns: 1}},
	})
	app := fiber.New()
	app.Get("/health", h.Check)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Pools map[string]map[string]float64 `json:"pools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Contains(t, body.Pools, "redis")
	assert.NotContains(t, body.Pools, "database")
	assert.Equal(t, float64(7), body.Pools["redis"]["hits"])
	assert.Equal(t, float64(3), body.Pools["redis"]["total_conns"])
}
