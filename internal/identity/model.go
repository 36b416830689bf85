package identity

import "time"

// User represents a registered customer. The password is only ever held as
// a bcrypt hash and is excluded from JSON output.
type User struct {
	ID            string    `bson:"-" json:"id"`
	Username      string    `bson:"username" json:"username"`
	FullName      string    `bson:"fullName" json:"fullName"`
	IDNumber      string    `bson:"idNumber" json:"idNumber"`
	AccountNumber string    `bson:"accountNumber" json:"accountNumber"`
	PasswordHash  string    `bson:"password" json:"-"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// SignupInput carries a registration request into the service.
type SignupInput struct {
	Username      string `validate:"required"`
	FullName      string `validate:"required"`
	IDNumber      string `validate:"required,id_number"`
	AccountNumber string `validate:"required,account_number"`
	Password      string `validate:"required,login_password"`
}

// LoginInput carries a login request into the service. Customers authenticate
// with the username and account number pair plus the password.
type LoginInput struct {
	Username      string `validate:"required"`
	AccountNumber string `validate:"required"`
	Password      string `validate:"required"`
}
