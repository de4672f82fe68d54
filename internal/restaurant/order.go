package restaurant

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/comandaclub/comanda/pkg/enums/orderstatus"
)

type OrderItem struct {
	MenuItemID uuid.UUID `json:"menu_item_id" bson:"menu_item_id"`
	Quantity   int       `json:"quantity" bson:"quantity"`
	Price      float64   `json:"price" bson:"price"`
	Notes      string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

type Order struct {
	ID                uuid.UUID   `json:"id" bson:"_id"`
	TableNumber       string      `json:"table_number" bson:"table_number"`
	Items             []OrderItem `json:"items" bson:"items"`
	Status            string      `json:"status" bson:"status"`
	CustomerName      string      `json:"customer_name,omitempty" bson:"customer_name,omitempty"`
	AssignedWaiter    *uuid.UUID  `json:"assigned_waiter,omitempty" bson:"assigned_waiter,omitempty"`
	AssignedChef      *uuid.UUID  `json:"assigned_chef,omitempty" bson:"assigned_chef,omitempty"`
	ChefName          string      `json:"chef_name,omitempty" bson:"chef_name,omitempty"`
	EstimatedPrepTime int         `json:"estimated_prep_time,omitempty" bson:"estimated_prep_time,omitempty"`
	StartTime         string      `json:"start_time,omitempty" bson:"start_time,omitempty"`
	CreatedAt         time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" bson:"updated_at"`
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) ResourceType() string {
	return "order"
}

func (o *Order) SetID(id uuid.UUID) {
	o.ID = id
}

func NewOrder() *Order {
	return &Order{
		ID:     apt.GenerateNewID(),
		Status: orderstatus.Statuses.Pending.Code(),
		Items:  []OrderItem{},
	}
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = apt.GenerateNewID()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()
}

func (o *Order) BeforeUpdate() {
	o.UpdatedAt = time.Now()
}

// Accept stamps the kitchen acceptance fields and moves the order to
// preparing. The caller validates the prep time beforehand.
func (o *Order) Accept(chefID *uuid.UUID, chefName string, prepTime int, startedAt time.Time) {
	o.Status = orderstatus.Statuses.Preparing.Code()
	o.AssignedChef = chefID
	o.ChefName = chefName
	o.EstimatedPrepTime = prepTime
	o.StartTime = startedAt.UTC().Format(time.RFC3339)
	o.UpdatedAt = time.Now()
}

// SetStatus applies a status value and stamps UpdatedAt. Transitions
// are deliberately permissive; side effects belong to the workflow.
func (o *Order) SetStatus(status string) {
	o.Status = status
	o.UpdatedAt = time.Now()
}

// IsPaid reports whether the order has reached the paid state.
func (o *Order) IsPaid() bool {
	return o.Status == orderstatus.Statuses.Paid.Code()
}
