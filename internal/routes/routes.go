// Package routes defines the API routing configuration.
package routes

import (
	"konnadex/internal/handlers"
	"konnadex/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Gateway  *handlers.GatewayHandler
	Accounts *handlers.AccountHandler
	Health   *handlers.HealthHandler
	Auth     *middleware.AuthMiddleware
	// Gatherer backs /metrics; nil leaves it unmounted.
	Gatherer prometheus.Gatherer
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.Check)
	if h.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	setupGatewayRoutes(api, h.Gateway, h.Auth)

	accounts := api.Group("/accounts")
	accounts.Get("/:id/balance", h.Accounts.GetBalance)
	accounts.Get("/:id/transfers", h.Accounts.GetTransfers)
}

func setupGatewayRoutes(api fiber.Router, h *handlers.GatewayHandler, auth *middleware.AuthMiddleware) {
	gw := api.Group("/gateway")

	// Public views
	gw.Get("/owner", h.GetOwner)
	gw.Get("/charge", h.GetGatewayCharge)
	gw.Get("/converter", h.GetGatewayAmountConverter)
	gw.Get("/tokens/:symbol", h.GetToken)
	gw.Get("/balance", h.GetTotalBalance)
	gw.Get("/events", h.ListEvents)

	// Calls that need a caller identity
	gw.Post("/init", auth.Handler, h.Init)
	gw.Put("/owner", auth.Handler, h.SetOwner)
	gw.Put("/charge", auth.Handler, h.SetGatewayCharge)
	gw.Put("/converter", auth.Handler, h.SetGatewayAmountConverter)
	gw.Post("/tokens", auth.Handler, h.AddToken)
	gw.Post("/payments", auth.Handler, h.Pay)
	gw.Post("/sweep", auth.Handler, h.Sweep)
}
