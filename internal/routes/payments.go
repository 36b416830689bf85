package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/payportal/payportal/internal/payment"
)

// RegisterPaymentRoutes wires the customer payment endpoints behind the
// customer bearer-token gate.
func RegisterPaymentRoutes(app *fiber.App, h *payment.Handler, customerAuth fiber.Handler) {
	group := app.Group("/payment", customerAuth)
	group.Get("/", h.List)
	group.Post("/upload", h.Upload)
	group.Delete("/:id", h.Delete)
}
