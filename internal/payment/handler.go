package payment

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/payportal/payportal/internal/validation"
)

// Handler exposes payment endpoints. The same list handler serves the
// customer view and the employee review queue; the route wiring decides which
// auth gate sits in front of it.
type Handler struct {
	service *Service
}

// NewHandler constructs a payment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// flexAmount accepts both JSON numbers and numeric strings, since the SPA
// submits form values as strings.
type flexAmount float64

func (f *flexAmount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	*f = flexAmount(v)
	return nil
}

type uploadRequest struct {
	Name             string     `json:"name"`
	BankName         string     `json:"bankName"`
	AccountNumber    string     `json:"accountNumber"`
	SwiftCode        string     `json:"swiftCode"`
	BankLocation     string     `json:"bankLocation"`
	Amount           flexAmount `json:"amount"`
	Currency         string     `json:"currency"`
	PaymentReference string     `json:"paymentReference"`
}

// Upload submits a new payment instruction on behalf of the customer.
func (h *Handler) Upload(c *fiber.Ctx) error {
	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "All fields are required.")
	}

	p, err := h.service.Create(c.UserContext(), CreateInput{
		Name:             req.Name,
		BankName:         req.BankName,
		AccountNumber:    req.AccountNumber,
		SwiftCode:        req.SwiftCode,
		BankLocation:     req.BankLocation,
		Amount:           float64(req.Amount),
		Currency:         req.Currency,
		PaymentReference: req.PaymentReference,
	})
	switch {
	case errors.Is(err, validation.ErrInvalid):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnknownCurrency):
		return fiber.NewError(http.StatusBadRequest, "Unsupported currency.")
	case err != nil:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(p)
}

// List returns all payments, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	payments, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(payments)
}

// Delete removes a payment by id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	err := h.service.Delete(c.UserContext(), c.Params("id"))
	switch {
	case errors.Is(err, ErrInvalidID):
		return fiber.NewError(http.StatusBadRequest, "Invalid payment id")
	case errors.Is(err, ErrPaymentNotFound):
		return fiber.NewError(http.StatusNotFound, "Payment not found")
	case err != nil:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Payment deleted successfully."})
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus applies an employee accept/decline decision.
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "Invalid status")
	}

	err := h.service.Decide(c.UserContext(), c.Params("id"), req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		return fiber.NewError(http.StatusBadRequest, "Invalid status")
	case errors.Is(err, ErrInvalidID):
		return fiber.NewError(http.StatusBadRequest, "Invalid payment id")
	case errors.Is(err, ErrPaymentNotFound):
		return fiber.NewError(http.StatusNotFound, "Payment not found")
	case errors.Is(err, ErrAlreadyDecided):
		return fiber.NewError(http.StatusConflict, "Payment already decided")
	case err != nil:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Payment %s successfully.", req.Status),
	})
}
