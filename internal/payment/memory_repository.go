package payment

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryRepository struct {
	mu       sync.RWMutex
	payments map[string]Payment
}

// NewMemoryRepository builds an in-memory payment store for tests and
// database-less development runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{payments: make(map[string]Payment)}
}

func (r *memoryRepository) Insert(_ context.Context, p Payment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = primitive.NewObjectID().Hex()
	r.payments[p.ID] = p
	return p.ID, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Payment, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return Payment{}, ErrInvalidID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (r *memoryRepository) SetStatus(_ context.Context, id, status string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return ErrPaymentNotFound
	}
	p.Status = status
	// Clone the key: ids arrive as Fiber route params, which alias the
	// request buffer and mutate once the request completes.
	r.payments[strings.Clone(id)] = p
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[id]; !ok {
		return ErrPaymentNotFound
	}
	delete(r.payments, id)
	return nil
}
