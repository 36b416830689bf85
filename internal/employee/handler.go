package employee

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/payportal/payportal/internal/token"
)

// CookieName is the HTTP-only cookie carrying the employee session token.
const CookieName = "employee_token"

// Handler exposes employee login/logout endpoints. The session token travels
// in an HTTP-only, SameSite=Strict cookie rather than a header, so page
// scripts in the portal never see it.
type Handler struct {
	service       *Service
	issuer        *token.Issuer
	secureCookies bool
}

// NewHandler constructs an employee handler. secureCookies should be true in
// every environment that serves real traffic.
func NewHandler(service *Service, issuer *token.Issuer, secureCookies bool) *Handler {
	return &Handler{service: service, issuer: issuer, secureCookies: secureCookies}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies the employee credential and sets the session cookie.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "Username and password are required.")
	}

	emp, err := h.service.Authenticate(c.UserContext(), req.Username, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.NewError(http.StatusUnauthorized, "Invalid credentials")
	case err != nil:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	signed, err := h.issuer.IssueEmployee(token.EmployeeClaims{Username: emp.Username, Role: emp.Role})
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(h.issuer.TTL().Seconds()),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Login successful"})
}

// Logout clears the employee session cookie. The token itself stays valid
// until expiry; the server keeps no session state to revoke.
func (h *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Logged out successfully"})
}
