package creditline

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is an in-memory credit-line store. All state is process memory
// and is lost on restart. Thread-safe.
type Repository struct {
	mu    sync.RWMutex
	lines map[string]CreditLine
}

// NewRepository creates an empty Repository.
func NewRepository() *Repository {
	return &Repository{lines: make(map[string]CreditLine)}
}

// Create opens a new active credit line and returns it.
func (r *Repository) Create(customerID string, limit int64, currency string) CreditLine {
	now := time.Now().UTC()
	line := CreditLine{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Limit:      limit,
		Drawn:      0,
		Currency:   currency,
		Status:     StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	r.mu.Lock()
	r.lines[line.ID] = line
	r.mu.Unlock()
	return line
}

// Get returns the credit line with the given id.
func (r *Repository) Get(id string) (CreditLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	line, ok := r.lines[id]
	if !ok {
		return CreditLine{}, ErrNotFound
	}
	return line, nil
}

// List returns all credit lines ordered by creation time.
func (r *Repository) List() []CreditLine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]CreditLine, 0, len(r.lines))
	for _, line := range r.lines {
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Update applies fn to the credit line with the given id under the write
// lock and returns the updated line. fn may mutate any field except ID and
// CreatedAt; UpdatedAt is bumped automatically.
func (r *Repository) Update(id string, fn func(*CreditLine)) (CreditLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line, ok := r.lines[id]
	if !ok {
		return CreditLine{}, ErrNotFound
	}
	fn(&line)
	line.UpdatedAt = time.Now().UTC()
	r.lines[id] = line
	return line, nil
}

// Delete removes the credit line with the given id.
func (r *Repository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lines[id]; !ok {
		return ErrNotFound
	}
	delete(r.lines, id)
	return nil
}
