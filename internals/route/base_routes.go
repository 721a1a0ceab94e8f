package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
)

func BaseRoutes(app *fiber.App, store docstore.Store, env string, startTime time.Time) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Kelurahan admin API 🚀")
	})

	// ❤️ Health check: ping store bila backend mendukung
	app.Get("/health", func(c *fiber.Ctx) error {
		storeStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if p, ok := store.(docstore.Pinger); ok {
			ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				storeStatus = "Store connection error"
				serverStatus = "DOWN"
				httpStatus = fiber.StatusServiceUnavailable
			}
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"store":          storeStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    env,
		})
	})
}
