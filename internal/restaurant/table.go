package restaurant

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/comandaclub/comanda/pkg/enums/tablestatus"
)

type Table struct {
	ID             uuid.UUID  `json:"id" bson:"_id"`
	Number         string     `json:"number" bson:"number"`
	Capacity       int        `json:"capacity" bson:"capacity"`
	Status         string     `json:"status" bson:"status"`
	AssignedWaiter *uuid.UUID `json:"assigned_waiter,omitempty" bson:"assigned_waiter,omitempty"`
	CurrentOrder   *uuid.UUID `json:"current_order,omitempty" bson:"current_order,omitempty"`
	Location       string     `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" bson:"updated_at"`
}

func (t *Table) GetID() uuid.UUID {
	return t.ID
}

func (t *Table) ResourceType() string {
	return "table"
}

func (t *Table) SetID(id uuid.UUID) {
	t.ID = id
}

func NewTable() *Table {
	return &Table{
		ID:     apt.GenerateNewID(),
		Status: tablestatus.Statuses.Available.Code(),
	}
}

func (t *Table) EnsureID() {
	if t.ID == uuid.Nil {
		t.ID = apt.GenerateNewID()
	}
}

func (t *Table) BeforeCreate() {
	t.EnsureID()
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
}

func (t *Table) BeforeUpdate() {
	t.UpdatedAt = time.Now()
}

// Occupy marks the table occupied by a waiter and, when orderID is not
// nil, links the active order.
func (t *Table) Occupy(waiterID, orderID *uuid.UUID) {
	t.Status = tablestatus.Statuses.Occupied.Code()
	if waiterID != nil {
		t.AssignedWaiter = waiterID
	}
	if orderID != nil {
		t.CurrentOrder = orderID
	}
	t.UpdatedAt = time.Now()
}

// Reserve marks the table reserved. Waiter and order links are left
// untouched so a reserved table keeps its context until released.
func (t *Table) Reserve() {
	t.Status = tablestatus.Statuses.Reserved.Code()
	t.UpdatedAt = time.Now()
}

// NeedsAssistance flags the table for staff attention. No other fields
// change.
func (t *Table) NeedsAssistance() {
	t.Status = tablestatus.Statuses.NeedAssistance.Code()
	t.UpdatedAt = time.Now()
}

// Release returns the table to available and clears the waiter and
// order links unconditionally.
func (t *Table) Release() {
	t.Status = tablestatus.Statuses.Available.Code()
	t.AssignedWaiter = nil
	t.CurrentOrder = nil
	t.UpdatedAt = time.Now()
}
