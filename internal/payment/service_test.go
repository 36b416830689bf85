package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payportal/payportal/internal/validation"
)

func validInput() CreateInput {
	return CreateInput{
		Name:          "Alice Example",
		BankName:      "Barclays",
		AccountNumber: "7654321",
		SwiftCode:     "BARCGB22",
		BankLocation:  "London",
		Amount:        100,
		Currency:      "USD",
	}
}

func newTestService(opts Options) *Service {
	return NewService(NewMemoryRepository(), opts)
}

func TestCreateNormalizesToZAR(t *testing.T) {
	svc := newTestService(Options{AllowStatusOverride: true})
	ctx := context.Background()

	t.Run("USD applies the static rate", func(t *testing.T) {
		p, err := svc.Create(ctx, validInput())
		require.NoError(t, err)
		assert.InDelta(t, 1718.00, p.AmountInZAR, 1e-9)
		assert.Equal(t, StatusPending, p.Status)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("ZAR is identity", func(t *testing.T) {
		in := validInput()
		in.Amount = 500
		in.Currency = "ZAR"
		p, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.InDelta(t, 500, p.AmountInZAR, 1e-9)
	})

	t.Run("unknown currency defaults to multiplier 1", func(t *testing.T) {
		in := validInput()
		in.Currency = "EUR"
		p, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.InDelta(t, in.Amount, p.AmountInZAR, 1e-9)
	})
}

func TestCreateRejectsUnknownCurrencyWhenConfigured(t *testing.T) {
	svc := newTestService(Options{AllowStatusOverride: true, RejectUnknownCurrency: true})
	in := validInput()
	in.Currency = "EUR"

	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(Options{AllowStatusOverride: true})
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing bank name", func(in *CreateInput) { in.BankName = "" }},
		{"bad account number", func(in *CreateInput) { in.AccountNumber = "12345" }},
		{"short bank location", func(in *CreateInput) { in.BankLocation = "L" }},
		{"zero amount", func(in *CreateInput) { in.Amount = 0 }},
		{"negative amount", func(in *CreateInput) { in.Amount = -5 }},
		{"missing currency", func(in *CreateInput) { in.Currency = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, validation.ErrInvalid)
		})
	}
}

func TestDecide(t *testing.T) {
	svc := newTestService(Options{AllowStatusOverride: true})
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	t.Run("accept", func(t *testing.T) {
		require.NoError(t, svc.Decide(ctx, p.ID, StatusAccepted))
		got, err := svc.repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, got.Status)
	})

	t.Run("re-deciding wins last write", func(t *testing.T) {
		// Inherited behavior: terminal states are not guarded by default.
		require.NoError(t, svc.Decide(ctx, p.ID, StatusDeclined))
		got, err := svc.repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusDeclined, got.Status)
	})

	t.Run("pending is not a legal target", func(t *testing.T) {
		assert.ErrorIs(t, svc.Decide(ctx, p.ID, StatusPending), ErrInvalidStatus)
	})

	t.Run("arbitrary status rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.Decide(ctx, p.ID, "approved"), ErrInvalidStatus)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, svc.Decide(ctx, "64f000000000000000000099", StatusAccepted), ErrPaymentNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		assert.ErrorIs(t, svc.Decide(ctx, "zzz", StatusAccepted), ErrInvalidID)
	})
}

func TestDecideStrictMode(t *testing.T) {
	svc := newTestService(Options{AllowStatusOverride: false})
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Decide(ctx, p.ID, StatusAccepted))
	assert.ErrorIs(t, svc.Decide(ctx, p.ID, StatusDeclined), ErrAlreadyDecided)

	got, err := svc.repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, got.Status)
}

func TestDeleteAndList(t *testing.T) {
	svc := newTestService(Options{AllowStatusOverride: true})
	ctx := context.Background()

	first, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	// Force distinct timestamps so the newest-first ordering is observable.
	time.Sleep(2 * time.Millisecond)

	in := validInput()
	in.Name = "Bob Example"
	second, err := svc.Create(ctx, in)
	require.NoError(t, err)

	payments, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, second.ID, payments[0].ID, "newest payment listed first")
	assert.Equal(t, first.ID, payments[1].ID)

	require.NoError(t, svc.Delete(ctx, first.ID))

	payments, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, second.ID, payments[0].ID)

	assert.ErrorIs(t, svc.Delete(ctx, first.ID), ErrPaymentNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "not-an-object-id"), ErrInvalidID)
}
