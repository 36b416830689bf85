package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/payportal/payportal/internal/employee"
	"github.com/payportal/payportal/internal/payment"
)

// RegisterEmployeeRoutes wires the employee portal endpoints. Login is
// rate-limited more aggressively than the customer realm; the review
// endpoints sit behind the cookie gate.
func RegisterEmployeeRoutes(app *fiber.App, h *employee.Handler, payments *payment.Handler, rateLimiter, employeeAuth fiber.Handler) {
	group := app.Group("/employee")
	group.Post("/login", rateLimiter, h.Login)
	group.Post("/logout", h.Logout)
	group.Get("/payments", employeeAuth, payments.List)
	group.Patch("/:id/status", employeeAuth, payments.UpdateStatus)
}
