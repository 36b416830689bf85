package payment

import "time"

// Payment statuses. A payment starts pending and is decided exactly once by
// an employee; by default the store does not guard against re-deciding (see
// Options.AllowStatusOverride).
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Payment is a cross-border payment instruction submitted by a customer.
type Payment struct {
	ID               string    `bson:"-" json:"id"`
	Name             string    `bson:"name" json:"name"`
	BankName         string    `bson:"bankName" json:"bankName"`
	AccountNumber    string    `bson:"accountNumber" json:"accountNumber"`
	SwiftCode        string    `bson:"swiftCode" json:"swiftCode"`
	BankLocation     string    `bson:"bankLocation" json:"bankLocation"`
	Amount           float64   `bson:"amount" json:"amount"`
	Currency         string    `bson:"currency" json:"currency"`
	AmountInZAR      float64   `bson:"amountInZAR" json:"amountInZAR"`
	PaymentReference string    `bson:"paymentReference,omitempty" json:"paymentReference,omitempty"`
	Status           string    `bson:"status" json:"status"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}

// CreateInput carries a payment submission into the service.
type CreateInput struct {
	Name             string  `validate:"required"`
	BankName         string  `validate:"required"`
	AccountNumber    string  `validate:"required,account_number"`
	SwiftCode        string  `validate:"required"`
	BankLocation     string  `validate:"required,min=2"`
	Amount           float64 `validate:"required,gt=0"`
	Currency         string  `validate:"required"`
	PaymentReference string
}
