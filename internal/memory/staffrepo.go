package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/comandaclub/comanda/internal/restaurant"
)

type StaffRepo struct {
	mu    sync.RWMutex
	staff map[uuid.UUID]*restaurant.Staff
}

func NewStaffRepo() *StaffRepo {
	return &StaffRepo{
		staff: make(map[uuid.UUID]*restaurant.Staff),
	}
}

func (r *StaffRepo) Create(ctx context.Context, staff *restaurant.Staff) error {
	if staff == nil {
		return fmt.Errorf("staff is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.staff[staff.ID]; exists {
		return fmt.Errorf("%w: staff %s", restaurant.ErrDuplicateID, staff.ID)
	}

	r.staff[staff.ID] = cloneStaff(staff)
	return nil
}

func (r *StaffRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	staff, ok := r.staff[id]
	if !ok {
		return nil, nil
	}
	return cloneStaff(staff), nil
}

func (r *StaffRepo) GetByUsername(ctx context.Context, username string) (*restaurant.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, staff := range r.staff {
		if staff.Username == username {
			return cloneStaff(staff), nil
		}
	}
	return nil, nil
}

func (r *StaffRepo) List(ctx context.Context) ([]*restaurant.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*restaurant.Staff, 0, len(r.staff))
	for _, staff := range r.staff {
		result = append(result, cloneStaff(staff))
	}
	return result, nil
}

func (r *StaffRepo) Save(ctx context.Context, staff *restaurant.Staff) error {
	if staff == nil {
		return fmt.Errorf("staff is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.staff[staff.ID]; !ok {
		return fmt.Errorf("staff not found")
	}

	r.staff[staff.ID] = cloneStaff(staff)
	return nil
}

func (r *StaffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.staff[id]; !ok {
		return fmt.Errorf("staff not found")
	}

	delete(r.staff, id)
	return nil
}

func cloneStaff(staff *restaurant.Staff) *restaurant.Staff {
	clone := *staff
	return &clone
}
