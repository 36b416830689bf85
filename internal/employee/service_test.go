package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAndAuthenticate(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, "Employee", "Admin@123", ""))

	emp, err := svc.Authenticate(ctx, "Employee", "Admin@123")
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, emp.Role)
	assert.NotEqual(t, "Admin@123", emp.PasswordHash)
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, "Employee", "Admin@123", ""))
	require.NoError(t, svc.Seed(ctx, "Employee", "Rotated@456", ""))

	_, err := svc.Authenticate(ctx, "Employee", "Admin@123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "Employee", "Rotated@456")
	assert.NoError(t, err)
}

func TestSeedRequiresCredential(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	assert.Error(t, svc.Seed(ctx, "", "Admin@123", ""))
	assert.Error(t, svc.Seed(ctx, "Employee", "", ""))
}

func TestAuthenticateFailuresAreUniform(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, "Employee", "Admin@123", ""))

	_, wrongUser := svc.Authenticate(ctx, "Intruder", "Admin@123")
	_, wrongPass := svc.Authenticate(ctx, "Employee", "guess")

	assert.ErrorIs(t, wrongUser, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.Equal(t, wrongUser.Error(), wrongPass.Error())
}
