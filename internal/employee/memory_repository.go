package employee

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu        sync.RWMutex
	employees map[string]Employee
}

// NewMemoryRepository builds an in-memory employee store for tests and
// database-less development runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{employees: make(map[string]Employee)}
}

func (r *memoryRepository) FindByUsername(_ context.Context, username string) (Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	emp, ok := r.employees[username]
	if !ok {
		return Employee{}, ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *memoryRepository) Upsert(_ context.Context, emp Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[emp.Username] = emp
	return nil
}
