package restaurant

import (
	"context"

	"github.com/google/uuid"
)

// Repository contract shared by the in-memory and durable backends.
// Lookup misses return (nil, nil); Create fails with ErrDuplicateID
// when the id already exists.

type MenuItemRepo interface {
	Create(ctx context.Context, item *MenuItem) error
	Get(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	List(ctx context.Context) ([]*MenuItem, error)
	ListByCategory(ctx context.Context, category string) ([]*MenuItem, error)
	Save(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TableRepo interface {
	Create(ctx context.Context, table *Table) error
	Get(ctx context.Context, id uuid.UUID) (*Table, error)
	GetByNumber(ctx context.Context, number string) (*Table, error)
	List(ctx context.Context) ([]*Table, error)
	ListByStatus(ctx context.Context, status string) ([]*Table, error)
	Save(ctx context.Context, table *Table) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReservationRepo interface {
	Create(ctx context.Context, reservation *Reservation) error
	Get(ctx context.Context, id uuid.UUID) (*Reservation, error)
	List(ctx context.Context) ([]*Reservation, error)
	ListByDate(ctx context.Context, date string) ([]*Reservation, error)
	ListByTable(ctx context.Context, tableNumber string) ([]*Reservation, error)
	Save(ctx context.Context, reservation *Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderRepo interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	ListByTable(ctx context.Context, tableNumber string) ([]*Order, error)
	ListByStatus(ctx context.Context, status string) ([]*Order, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BillRepo interface {
	Create(ctx context.Context, bill *Bill) error
	Get(ctx context.Context, id uuid.UUID) (*Bill, error)
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*Bill, error)
	List(ctx context.Context) ([]*Bill, error)
	Save(ctx context.Context, bill *Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type StaffRepo interface {
	Create(ctx context.Context, staff *Staff) error
	Get(ctx context.Context, id uuid.UUID) (*Staff, error)
	GetByUsername(ctx context.Context, username string) (*Staff, error)
	List(ctx context.Context) ([]*Staff, error)
	Save(ctx context.Context, staff *Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repos bundles every repository the workflow and handler depend on.
type Repos struct {
	MenuItemRepo    MenuItemRepo
	TableRepo       TableRepo
	ReservationRepo ReservationRepo
	OrderRepo       OrderRepo
	BillRepo        BillRepo
	StaffRepo       StaffRepo
}
