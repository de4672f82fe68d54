package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/comandaclub/comanda/internal/restaurant"
)

type BillRepo struct {
	mu    sync.RWMutex
	bills map[uuid.UUID]*restaurant.Bill
}

func NewBillRepo() *BillRepo {
	return &BillRepo{
		bills: make(map[uuid.UUID]*restaurant.Bill),
	}
}

func (r *BillRepo) Create(ctx context.Context, bill *restaurant.Bill) error {
	if bill == nil {
		return fmt.Errorf("bill is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bills[bill.ID]; exists {
		return fmt.Errorf("%w: bill %s", restaurant.ErrDuplicateID, bill.ID)
	}

	r.bills[bill.ID] = cloneBill(bill)
	return nil
}

func (r *BillRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bill, ok := r.bills[id]
	if !ok {
		return nil, nil
	}
	return cloneBill(bill), nil
}

func (r *BillRepo) GetByOrder(ctx context.Context, orderID uuid.UUID) (*restaurant.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, bill := range r.bills {
		if bill.OrderID == orderID {
			return cloneBill(bill), nil
		}
	}
	return nil, nil
}

func (r *BillRepo) List(ctx context.Context) ([]*restaurant.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*restaurant.Bill, 0, len(r.bills))
	for _, bill := range r.bills {
		result = append(result, cloneBill(bill))
	}
	return result, nil
}

func (r *BillRepo) Save(ctx context.Context, bill *restaurant.Bill) error {
	if bill == nil {
		return fmt.Errorf("bill is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bills[bill.ID]; !ok {
		return fmt.Errorf("bill not found")
	}

	r.bills[bill.ID] = cloneBill(bill)
	return nil
}

func (r *BillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bills[id]; !ok {
		return fmt.Errorf("bill not found")
	}

	delete(r.bills, id)
	return nil
}

func cloneBill(bill *restaurant.Bill) *restaurant.Bill {
	clone := *bill
	clone.Items = append([]restaurant.OrderItem(nil), bill.Items...)
	return &clone
}
