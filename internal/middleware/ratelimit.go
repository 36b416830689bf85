package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// LoginRateLimit builds a per-client-address sliding-window limiter for
// authentication endpoints. Counters live in process memory and reset when
// the window elapses or the process restarts; this is a single-instance
// design. The limiter runs before any credential verification so rejected
// attempts never reach the password check.
func LoginRateLimit(max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 5
	}
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return fiber.NewError(http.StatusTooManyRequests, "Too many requests, try again later.")
		},
	})
}
