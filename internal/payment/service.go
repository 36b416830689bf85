package payment

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/payportal/payportal/internal/validation"
)

var (
	// ErrInvalidStatus signals a decision other than accepted/declined.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrAlreadyDecided signals a transition from a terminal state while
	// status overrides are disabled.
	ErrAlreadyDecided = errors.New("payment already decided")
	// ErrUnknownCurrency signals an unsupported currency code while unknown
	// currencies are configured to be rejected.
	ErrUnknownCurrency = errors.New("unknown currency")
)

// Options tune lifecycle edge cases that the portal historically left
// implicit. The defaults preserve the inherited behavior.
type Options struct {
	// AllowStatusOverride permits re-deciding a payment that already left
	// pending (last-write-wins). When false the state machine is strict.
	AllowStatusOverride bool
	// RejectUnknownCurrency fails submissions with an unsupported currency
	// code instead of silently applying a multiplier of 1.
	RejectUnknownCurrency bool
}

// Service manages the payment instruction lifecycle.
type Service struct {
	repo     Repository
	validate *validator.Validate
	opts     Options
}

// NewService creates a payment service.
func NewService(repo Repository, opts Options) *Service {
	return &Service{repo: repo, validate: validation.New(), opts: opts}
}

// Create validates a submission, normalizes the amount into ZAR and stores
// the payment as pending with a server-side timestamp.
func (s *Service) Create(ctx context.Context, input CreateInput) (Payment, error) {
	if err := s.validate.Struct(input); err != nil {
		return Payment{}, validation.Wrap(err)
	}

	rate, known := RateToZAR(input.Currency)
	if !known {
		if s.opts.RejectUnknownCurrency {
			return Payment{}, ErrUnknownCurrency
		}
		rate = 1
	}

	p := Payment{
		Name:             input.Name,
		BankName:         input.BankName,
		AccountNumber:    input.AccountNumber,
		SwiftCode:        input.SwiftCode,
		BankLocation:     input.BankLocation,
		Amount:           input.Amount,
		Currency:         input.Currency,
		AmountInZAR:      input.Amount * rate,
		PaymentReference: input.PaymentReference,
		Status:           StatusPending,
		CreatedAt:        time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return Payment{}, err
	}
	p.ID = id
	return p, nil
}

// List returns all payments, newest first.
func (s *Service) List(ctx context.Context) ([]Payment, error) {
	return s.repo.List(ctx)
}

// Delete removes a payment by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Decide applies an employee decision. Only accepted and declined are legal
// target states; pending can never be re-entered.
func (s *Service) Decide(ctx context.Context, id, status string) error {
	if status != StatusAccepted && status != StatusDeclined {
		return ErrInvalidStatus
	}
	if !s.opts.AllowStatusOverride {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != StatusPending {
			return ErrAlreadyDecided
		}
	}
	return s.repo.SetStatus(ctx, id, status)
}
