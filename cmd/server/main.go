// Package main is the API server entry point.
package main

import (
	"context"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/logging"
	"fintrack/internal/repositories"
	"fintrack/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()
	logging.Setup()
	log := logging.L()

	if err := repositories.InitDB(); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer closeStores()

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.WithError(err).Fatal("failed to get database instance")
	}
	if err := sqlDB.Ping(); err != nil {
		log.WithError(err).Fatal("failed to ping database")
	}
	log.Info("connected to database")

	// Periodic pool stats, useful when tuning the connection limits.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			stats := sqlDB.Stats()
			log.WithFields(map[string]interface{}{
				"open":    stats.OpenConnections,
				"idle":    stats.Idle,
				"in_use":  stats.InUse,
				"waits":   stats.WaitCount,
				"waiting": stats.WaitDuration.String(),
			}).Debug("db pool stats")
		}
	}()

	// Derived reads are recomputed on demand; stale entries from a previous
	// run are worthless.
	if err := repositories.CacheService.FlushAll(context.Background()); err != nil {
		log.WithError(err).Warn("failed to flush cache on startup")
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/api/register", "/api/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "too many requests, try again later",
				})
			},
		}))
	}

	routes.SetupRoutes(app)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}

func closeStores() {
	log := logging.L()
	if repositories.DB != nil {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.WithError(err).Warn("failed to close database connection")
			}
		}
	}
	if repositories.CacheService != nil {
		if err := repositories.CacheService.Close(); err != nil {
			log.WithError(err).Warn("failed to close cache connection")
		}
	}
}
