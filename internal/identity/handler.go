package identity

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/payportal/payportal/internal/token"
	"github.com/payportal/payportal/internal/validation"
)

// Handler exposes customer signup and login endpoints.
type Handler struct {
	service *Service
	issuer  *token.Issuer
}

// NewHandler constructs a customer-facing identity handler.
func NewHandler(service *Service, issuer *token.Issuer) *Handler {
	return &Handler{service: service, issuer: issuer}
}

type signupRequest struct {
	Username      string `json:"username"`
	FullName      string `json:"fullName"`
	IDNumber      string `json:"idNumber"`
	AccountNumber string `json:"accountNumber"`
	Password      string `json:"password"`
}

// Signup handles customer registration.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "All fields are required.")
	}

	user, err := h.service.Signup(c.UserContext(), SignupInput{
		Username:      req.Username,
		FullName:      req.FullName,
		IDNumber:      req.IDNumber,
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
	})
	switch {
	case errors.Is(err, validation.ErrInvalid):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDuplicateIdentity):
		return fiber.NewError(http.StatusBadRequest, "Username or Account Number already registered.")
	case err != nil:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"userId":  user.ID,
	})
}

type loginRequest struct {
	Username      string `json:"username"`
	AccountNumber string `json:"accountNumber"`
	Password      string `json:"password"`
}

// Login verifies customer credentials and returns a bearer session token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "All fields required.")
	}

	user, err := h.service.Login(c.UserContext(), LoginInput{
		Username:      req.Username,
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
	})
	switch {
	case errors.Is(err, validation.ErrInvalid):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUserNotFound):
		return fiber.NewError(http.StatusNotFound, "User not found.")
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.NewError(http.StatusUnauthorized, "Invalid password")
	case err != nil:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	signed, err := h.issuer.IssueCustomer(token.CustomerClaims{
		UserID:        user.ID,
		Username:      user.Username,
		AccountNumber: user.AccountNumber,
		FullName:      user.FullName,
	})
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"token":   signed,
	})
}
