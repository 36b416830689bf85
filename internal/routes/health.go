package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// RegisterHealthRoutes adds the root status endpoint and a readiness probe.
func RegisterHealthRoutes(app *fiber.App, d Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).SendString("Secure API running")
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		dbStatus := "ok"

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if d.DB != nil {
			if err := d.DB.Client().Ping(ctx, readpref.Primary()); err != nil {
				dbStatus = err.Error()
			}
		} else {
			dbStatus = "in-memory"
		}
		status := http.StatusOK
		if dbStatus != "ok" && dbStatus != "in-memory" {
			status = http.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status":    fiber.Map{"mongo": dbStatus},
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
}
