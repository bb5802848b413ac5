// Package main is the entry point of the gateway server. It wires storage,
// settlement, event sinks and the hosted contract, then serves HTTP.
package main

import (
	"log"
	"time"

	"konnadex/internal/config"
	"konnadex/internal/handlers"
	"konnadex/internal/logger"
	"konnadex/internal/metrics"
	"konnadex/internal/middleware"
	"konnadex/internal/repositories"
	"konnadex/internal/repositories/cache"
	"konnadex/internal/routes"
	"konnadex/internal/services/events"
	"konnadex/internal/services/gateway"
	"konnadex/internal/services/settlement"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	zl, err := logger.NewZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Initialize databases (PostgreSQL + Redis)
	db, err := repositories.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			zl.Warn("failed to close database connection", map[string]any{"error": err.Error()})
		}
	}()

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	cacheService := cache.NewCacheService(redisClient, cfg.Gateway.StateCacheTTL)
	defer func() {
		if err := cacheService.Close(); err != nil {
			zl.Warn("failed to close redis connection", map[string]any{"error": err.Error()})
		}
	}()

	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewPrometheusRecorder(registry)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	stateRepo := repositories.NewCachedStateRepository(repositories.NewStateRepository(db), cacheService)
	eventLog := repositories.NewEventLogRepository(db)
	ledger := settlement.NewService(repositories.NewAccountRepository(db), zl)

	sinks := events.Fanout{
		events.NewLogSink(zl),
		events.NewStoreSink(eventLog),
		events.NewRedisSink(cacheService, cfg.Gateway.EventChannel),
	}

	contract := gateway.NewContract(cfg.Gateway.ContractAccount, stateRepo, ledger, sinks, zl, recorder)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,HEAD",
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/gateway/payments", limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Gateway:  handlers.NewGatewayHandler(contract, eventLog, zl),
		Accounts: handlers.NewAccountHandler(ledger, zl),
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"database": repositories.DBHealth{DB: db},
			"redis":    cacheService,
		}),
		Auth:     middleware.NewAuthMiddleware(cfg.JWTSecret, zl),
		Gatherer: registry,
	})

	zl.Info("gateway server starting", map[string]any{
		"port":     cfg.Port,
		"contract": cfg.Gateway.ContractAccount,
	})
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Error("server stopped", map[string]any{"error": err.Error()})
	}
}
