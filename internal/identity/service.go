package identity

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/payportal/payportal/internal/validation"
)

// ErrInvalidCredentials signals a password mismatch for an existing user.
var ErrInvalidCredentials = errors.New("invalid password")

// Service manages customer registration and credential verification.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validation.New()}
}

// Signup validates the registration fields, rejects duplicate identities and
// stores the user with a bcrypt password hash.
func (s *Service) Signup(ctx context.Context, input SignupInput) (User, error) {
	if err := s.validate.Struct(input); err != nil {
		return User{}, validation.Wrap(err)
	}

	taken, err := s.repo.Exists(ctx, input.Username, input.AccountNumber)
	if err != nil {
		return User{}, err
	}
	if taken {
		return User{}, ErrDuplicateIdentity
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		Username:      input.Username,
		FullName:      input.FullName,
		IDNumber:      input.IDNumber,
		AccountNumber: input.AccountNumber,
		PasswordHash:  string(hash),
		CreatedAt:     time.Now().UTC(),
	}

	// The store enforces uniqueness as well; the Exists check above only
	// narrows the race window between concurrent signups.
	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.ID = id

	return user, nil
}

// Login verifies the username, account number and password combination.
func (s *Service) Login(ctx context.Context, input LoginInput) (User, error) {
	if err := s.validate.Struct(input); err != nil {
		return User{}, validation.Error("All fields required.")
	}

	user, err := s.repo.FindByLogin(ctx, input.Username, input.AccountNumber)
	if err != nil {
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
