package restaurant

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTableLifecycle(t *testing.T) {
	table := NewTable()

	if table.Status != "available" {
		t.Errorf("NewTable() status = %s, want available", table.Status)
	}
	if table.ID == uuid.Nil {
		t.Error("NewTable() should assign an id")
	}

	waiterID := uuid.New()
	orderID := uuid.New()

	table.Occupy(&waiterID, &orderID)
	if table.Status != "occupied" {
		t.Errorf("Occupy() status = %s, want occupied", table.Status)
	}
	if table.AssignedWaiter == nil || *table.AssignedWaiter != waiterID {
		t.Error("Occupy() should link the waiter")
	}
	if table.CurrentOrder == nil || *table.CurrentOrder != orderID {
		t.Error("Occupy() should link the order")
	}

	table.NeedsAssistance()
	if table.Status != "need_assistance" {
		t.Errorf("NeedsAssistance() status = %s, want need_assistance", table.Status)
	}
	if table.AssignedWaiter == nil || table.CurrentOrder == nil {
		t.Error("NeedsAssistance() should not clear links")
	}

	table.Release()
	if table.Status != "available" {
		t.Errorf("Release() status = %s, want available", table.Status)
	}
	if table.AssignedWaiter != nil || table.CurrentOrder != nil {
		t.Error("Release() should clear waiter and order links")
	}
}

func TestTableOccupyKeepsExistingLinks(t *testing.T) {
	table := NewTable()
	waiterID := uuid.New()
	table.Occupy(&waiterID, nil)

	if table.CurrentOrder != nil {
		t.Error("Occupy() with nil order should not set an order link")
	}

	orderID := uuid.New()
	table.Occupy(nil, &orderID)

	if table.AssignedWaiter == nil || *table.AssignedWaiter != waiterID {
		t.Error("Occupy() with nil waiter should keep the existing waiter")
	}
	if table.CurrentOrder == nil || *table.CurrentOrder != orderID {
		t.Error("Occupy() should set the order link")
	}
}

func TestEnsureIDHooks(t *testing.T) {
	table := &Table{}
	table.EnsureID()
	if table.ID == uuid.Nil {
		t.Error("EnsureID() should assign an id to a zero table")
	}

	existing := table.ID
	table.EnsureID()
	if table.ID != existing {
		t.Error("EnsureID() should keep an existing id")
	}

	order := &Order{}
	order.BeforeCreate()
	if order.ID == uuid.Nil {
		t.Error("BeforeCreate() should assign an order id")
	}
	if order.CreatedAt.IsZero() || order.UpdatedAt.IsZero() {
		t.Error("BeforeCreate() should stamp timestamps")
	}
}

func TestOrderAccept(t *testing.T) {
	order := NewOrder()
	chefID := uuid.New()
	startedAt := time.Date(2026, 9, 15, 18, 30, 0, 0, time.UTC)

	order.Accept(&chefID, "Anna", 25, startedAt)

	if order.Status != "preparing" {
		t.Errorf("Accept() status = %s, want preparing", order.Status)
	}
	if order.StartTime != "2026-09-15T18:30:00Z" {
		t.Errorf("Accept() start time = %s, want RFC3339 UTC", order.StartTime)
	}
	if order.EstimatedPrepTime != 25 {
		t.Errorf("Accept() prep time = %d, want 25", order.EstimatedPrepTime)
	}
}

func TestBillMarkPaid(t *testing.T) {
	bill := NewBill()

	if bill.PaymentStatus != PaymentPending {
		t.Errorf("NewBill() payment status = %s, want pending", bill.PaymentStatus)
	}
	if bill.PaymentMethod != DefaultPaymentMethod {
		t.Errorf("NewBill() payment method = %s, want %s", bill.PaymentMethod, DefaultPaymentMethod)
	}

	bill.MarkPaid("")
	if bill.PaymentStatus != PaymentPaid {
		t.Errorf("MarkPaid() payment status = %s, want paid", bill.PaymentStatus)
	}
	if bill.PaymentMethod != DefaultPaymentMethod {
		t.Errorf("MarkPaid(\"\") should keep the default method, got %s", bill.PaymentMethod)
	}

	bill.MarkPaid("card")
	if bill.PaymentMethod != "card" {
		t.Errorf("MarkPaid(card) method = %s, want card", bill.PaymentMethod)
	}
}
