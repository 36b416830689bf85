package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/payportal/payportal/internal/employee"
	"github.com/payportal/payportal/internal/token"
)

// Locals keys under which verified claims are stored for downstream handlers.
const (
	CustomerClaimsKey = "customer_claims"
	EmployeeClaimsKey = "employee_claims"
)

const missingTokenMessage = "Access denied, token missing!"
const badTokenMessage = "Invalid or expired token"

// CustomerAuth gates customer routes. The token travels in the Authorization
// header as a bearer token. The middleware is a pure gate: it verifies the
// token against the customer realm secret and stores the claims, nothing else.
func CustomerAuth(issuer *token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, missingTokenMessage)
		}
		claims, err := issuer.VerifyCustomer(strings.TrimSpace(authz[len("Bearer "):]))
		if err != nil {
			return authError(err)
		}
		c.Locals(CustomerClaimsKey, claims)
		return c.Next()
	}
}

// EmployeeAuth gates employee routes. The token travels in the HTTP-only
// session cookie set by the employee login response.
func EmployeeAuth(issuer *token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(employee.CookieName)
		if cookie == "" {
			return fiber.NewError(http.StatusUnauthorized, missingTokenMessage)
		}
		claims, err := issuer.VerifyEmployee(cookie)
		if err != nil {
			return authError(err)
		}
		c.Locals(EmployeeClaimsKey, claims)
		return c.Next()
	}
}

func authError(err error) error {
	if errors.Is(err, token.ErrTokenMissing) {
		return fiber.NewError(http.StatusUnauthorized, missingTokenMessage)
	}
	return fiber.NewError(http.StatusForbidden, badTokenMessage)
}
