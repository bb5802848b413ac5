package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Pinger is a dependency the health check can probe.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// poolReporter is implemented by checks backed by a redis connection pool.
type poolReporter interface {
	GetStats() *redis.PoolStats
}

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	services := fiber.Map{}
	pools := fiber.Map{}
	healthy := true
	for name, p := range h.checks {
		if r, ok := p.(poolReporter); ok {
			if st := r.GetStats(); st != nil {
				pools[name] = fiber.Map{
					"hits":        st.Hits,
					"misses":      st.Misses,
					"timeouts":    st.Timeouts,
					"total_conns": st.TotalConns,
					"idle_conns":  st.IdleConns,
					"stale_conns": st.StaleConns,
				}
			}
		}
		if err := p.HealthCheck(c.UserContext()); err != nil {
			services[name] = err.Error()
			healthy = false
			continue
		}
		services[name] = "connected"
	}

	status, code := "ok", fiber.StatusOK
	if !healthy {
		status, code = "degraded", fiber.StatusServiceUnavailable
	}
	body := fiber.Map{
		"status":   status,
		"version":  "1.0.0",
		"services": services,
	}
	if len(pools) > 0 {
		body["pools"] = pools
	}
	return c.Status(code).JSON(body)
}
