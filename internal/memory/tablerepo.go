package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/comandaclub/comanda/internal/restaurant"
)

type TableRepo struct {
	mu     sync.RWMutex
	tables map[uuid.UUID]*restaurant.Table
}

func NewTableRepo() *TableRepo {
	return &TableRepo{
		tables: make(map[uuid.UUID]*restaurant.Table),
	}
}

func (r *TableRepo) Create(ctx context.Context, table *restaurant.Table) error {
	if table == nil {
		return fmt.Errorf("table is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tables[table.ID]; exists {
		return fmt.Errorf("%w: table %s", restaurant.ErrDuplicateID, table.ID)
	}

	r.tables[table.ID] = cloneTable(table)
	return nil
}

func (r *TableRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, ok := r.tables[id]
	if !ok {
		return nil, nil
	}
	return cloneTable(table), nil
}

func (r *TableRepo) GetByNumber(ctx context.Context, number string) (*restaurant.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, table := range r.tables {
		if table.Number == number {
			return cloneTable(table), nil
		}
	}
	return nil, nil
}

func (r *TableRepo) List(ctx context.Context) ([]*restaurant.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*restaurant.Table, 0, len(r.tables))
	for _, table := range r.tables {
		result = append(result, cloneTable(table))
	}
	return result, nil
}

func (r *TableRepo) ListByStatus(ctx context.Context, status string) ([]*restaurant.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*restaurant.Table
	for _, table := range r.tables {
		if table.Status == status {
			result = append(result, cloneTable(table))
		}
	}
	return result, nil
}

func (r *TableRepo) Save(ctx context.Context, table *restaurant.Table) error {
	if table == nil {
		return fmt.Errorf("table is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tables[table.ID]; !ok {
		return fmt.Errorf("table not found")
	}

	r.tables[table.ID] = cloneTable(table)
	return nil
}

func (r *TableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tables[id]; !ok {
		return fmt.Errorf("table not found")
	}

	delete(r.tables, id)
	return nil
}

func cloneTable(table *restaurant.Table) *restaurant.Table {
	clone := *table
	if table.AssignedWaiter != nil {
		waiter := *table.AssignedWaiter
		clone.AssignedWaiter = &waiter
	}
	if table.CurrentOrder != nil {
		order := *table.CurrentOrder
		clone.CurrentOrder = &order
	}
	return &clone
}
