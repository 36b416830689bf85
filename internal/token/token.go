package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures are collapsed into three cases so handlers and
// middleware can map them to transport-level responses without inspecting
// library internals.
var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// CustomerClaims identifies a logged-in customer. All fields needed by the
// payment endpoints ride in the token so no store lookup happens per request.
type CustomerClaims struct {
	UserID        string `json:"id"`
	Username      string `json:"username"`
	AccountNumber string `json:"accountNumber"`
	FullName      string `json:"fullName"`
	jwt.RegisteredClaims
}

// EmployeeClaims identifies a logged-in employee.
type EmployeeClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens for the two principal realms.
// The realms use distinct secrets, so a token from one realm never verifies
// in the other.
type Issuer struct {
	customerSecret []byte
	employeeSecret []byte
	ttl            time.Duration
	now            func() time.Time
}

// NewIssuer builds an issuer with the per-realm secrets and session TTL.
func NewIssuer(customerSecret, employeeSecret string, ttl time.Duration) *Issuer {
	return &Issuer{
		customerSecret: []byte(customerSecret),
		employeeSecret: []byte(employeeSecret),
		ttl:            ttl,
		now:            time.Now,
	}
}

// TTL returns the configured session lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// IssueCustomer signs a customer session token.
func (i *Issuer) IssueCustomer(claims CustomerClaims) (string, error) {
	claims.RegisteredClaims = i.registered()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.customerSecret)
}

// IssueEmployee signs an employee session token.
func (i *Issuer) IssueEmployee(claims EmployeeClaims) (string, error) {
	claims.RegisteredClaims = i.registered()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.employeeSecret)
}

// VerifyCustomer checks a customer token's signature and expiry.
func (i *Issuer) VerifyCustomer(tokenStr string) (CustomerClaims, error) {
	if tokenStr == "" {
		return CustomerClaims{}, ErrTokenMissing
	}
	var claims CustomerClaims
	if err := i.parse(tokenStr, &claims, i.customerSecret); err != nil {
		return CustomerClaims{}, err
	}
	return claims, nil
}

// VerifyEmployee checks an employee token's signature and expiry.
func (i *Issuer) VerifyEmployee(tokenStr string) (EmployeeClaims, error) {
	if tokenStr == "" {
		return EmployeeClaims{}, ErrTokenMissing
	}
	var claims EmployeeClaims
	if err := i.parse(tokenStr, &claims, i.employeeSecret); err != nil {
		return EmployeeClaims{}, err
	}
	return claims, nil
}

func (i *Issuer) registered() jwt.RegisteredClaims {
	now := i.now()
	return jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
}

func (i *Issuer) parse(tokenStr string, claims jwt.Claims, secret []byte) error {
	tok, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case err != nil:
		return ErrTokenInvalid
	case !tok.Valid:
		return ErrTokenInvalid
	}
	return nil
}
