package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	databases "github.com/firmantawakal/simak-tracer-study/internals/databases"
)

const ServiceName = "Universitas Dumai Tracer Study"

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Tracer Study API 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		dbStatus := "connected"
		status := "OK"
		httpStatus := fiber.StatusOK
		if err := databases.Ping(ctx, db); err != nil {
			dbStatus = "disconnected"
			status = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         status,
			"message":        "Tracer Study API is running",
			"database":       dbStatus,
			"timestamp":      time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"service":        ServiceName,
		})
	})
}
