package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any authentication failure. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service verifies employee credentials against the credential table.
type Service struct {
	repo Repository
}

// NewService creates a new employee service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Seed installs the configured employee credential. Either a precomputed
// bcrypt hash or a plaintext password (hashed here, development only) must be
// supplied. Seeding is an upsert, so repeated startups keep a single row.
func (s *Service) Seed(ctx context.Context, username, password, passwordHash string) error {
	if username == "" {
		return fmt.Errorf("employee username is required")
	}
	if passwordHash == "" {
		if password == "" {
			return fmt.Errorf("employee password or password hash is required")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		passwordHash = string(hash)
	}
	return s.repo.Upsert(ctx, Employee{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         RoleEmployee,
		CreatedAt:    time.Now().UTC(),
	})
}

// Authenticate verifies an employee username and password pair.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Employee, error) {
	emp, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, ErrEmployeeNotFound) {
		return Employee{}, ErrInvalidCredentials
	}
	if err != nil {
		return Employee{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)); err != nil {
		return Employee{}, ErrInvalidCredentials
	}
	return emp, nil
}
