package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/payportal/payportal/internal/identity"
)

// RegisterUserRoutes wires customer signup and login. Both share one
// rate-limiter instance, so attempts against either endpoint consume the
// same per-address budget.
func RegisterUserRoutes(app *fiber.App, h *identity.Handler, rateLimiter fiber.Handler) {
	group := app.Group("/user")
	group.Post("/signup", rateLimiter, h.Signup)
	group.Post("/login", rateLimiter, h.Login)
}
