package routes

import (
	"time"

	"videoach_backend/internals/configs"
	database "videoach_backend/internals/databases"
	"videoach_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
)

var startTime = time.Now()

func BaseRoutes(app *fiber.App, metrics *middlewares.Metrics) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Videoach API 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if database.DB == nil || database.Ping(c.UserContext()) != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    configs.AppEnv,
		})
	})

	if metrics != nil {
		app.Get("/metrics", metrics.Handler())
	}
}
