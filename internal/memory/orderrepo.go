package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/comandaclub/comanda/internal/restaurant"
)

type OrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*restaurant.Order
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{
		orders: make(map[uuid.UUID]*restaurant.Order),
	}
}

func (r *OrderRepo) Create(ctx context.Context, order *restaurant.Order) error {
	if order == nil {
		return fmt.Errorf("order is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return fmt.Errorf("%w: order %s", restaurant.ErrDuplicateID, order.ID)
	}

	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(order), nil
}

func (r *OrderRepo) List(ctx context.Context) ([]*restaurant.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*restaurant.Order, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, cloneOrder(order))
	}
	return result, nil
}

func (r *OrderRepo) ListByTable(ctx context.Context, tableNumber string) ([]*restaurant.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*restaurant.Order
	for _, order := range r.orders {
		if order.TableNumber == tableNumber {
			result = append(result, cloneOrder(order))
		}
	}
	return result, nil
}

func (r *OrderRepo) ListByStatus(ctx context.Context, status string) ([]*restaurant.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*restaurant.Order
	for _, order := range r.orders {
		if order.Status == status {
			result = append(result, cloneOrder(order))
		}
	}
	return result, nil
}

func (r *OrderRepo) Save(ctx context.Context, order *restaurant.Order) error {
	if order == nil {
		return fmt.Errorf("order is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return fmt.Errorf("order not found")
	}

	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order not found")
	}

	delete(r.orders, id)
	return nil
}

func cloneOrder(order *restaurant.Order) *restaurant.Order {
	clone := *order
	clone.Items = append([]restaurant.OrderItem(nil), order.Items...)
	if order.AssignedWaiter != nil {
		waiter := *order.AssignedWaiter
		clone.AssignedWaiter = &waiter
	}
	if order.AssignedChef != nil {
		chef := *order.AssignedChef
		clone.AssignedChef = &chef
	}
	return &clone
}
