package identity

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User // keyed by id
}

// NewMemoryRepository builds an in-memory user store for tests and
// database-less development runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.AccountNumber == user.AccountNumber {
			return "", ErrDuplicateIdentity
		}
	}
	user.ID = primitive.NewObjectID().Hex()
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *memoryRepository) FindByLogin(_ context.Context, username, accountNumber string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username && user.AccountNumber == accountNumber {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *memoryRepository) Exists(_ context.Context, username, accountNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username || user.AccountNumber == accountNumber {
			return true, nil
		}
	}
	return false, nil
}
