package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/comandaclub/comanda/internal/restaurant"
)

// MenuItemRepo is the in-memory menu item store. Values are cloned on
// the way in and out so callers never share state with the store.
type MenuItemRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*restaurant.MenuItem
}

func NewMenuItemRepo() *MenuItemRepo {
	return &MenuItemRepo{
		items: make(map[uuid.UUID]*restaurant.MenuItem),
	}
}

func (r *MenuItemRepo) Create(ctx context.Context, item *restaurant.MenuItem) error {
	if item == nil {
		return fmt.Errorf("menu item is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("%w: menu item %s", restaurant.ErrDuplicateID, item.ID)
	}

	r.items[item.ID] = cloneMenuItem(item)
	return nil
}

func (r *MenuItemRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneMenuItem(item), nil
}

func (r *MenuItemRepo) List(ctx context.Context) ([]*restaurant.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*restaurant.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, cloneMenuItem(item))
	}
	return result, nil
}

func (r *MenuItemRepo) ListByCategory(ctx context.Context, category string) ([]*restaurant.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*restaurant.MenuItem
	for _, item := range r.items {
		if item.Category == category {
			result = append(result, cloneMenuItem(item))
		}
	}
	return result, nil
}

func (r *MenuItemRepo) Save(ctx context.Context, item *restaurant.MenuItem) error {
	if item == nil {
		return fmt.Errorf("menu item is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("menu item not found")
	}

	r.items[item.ID] = cloneMenuItem(item)
	return nil
}

func (r *MenuItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("menu item not found")
	}

	delete(r.items, id)
	return nil
}

func cloneMenuItem(item *restaurant.MenuItem) *restaurant.MenuItem {
	clone := *item
	clone.Ingredients = append([]string(nil), item.Ingredients...)
	clone.Allergens = append([]string(nil), item.Allergens...)
	return &clone
}
