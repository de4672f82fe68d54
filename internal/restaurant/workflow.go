package restaurant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/comandaclub/comanda/pkg"
	"github.com/comandaclub/comanda/pkg/enums/orderstatus"
	"github.com/comandaclub/comanda/pkg/enums/tablestatus"
)

const eventSource = "comanda"

// Workflow couples tables, reservations, orders and bills. Every
// multi-step mutation runs under one mutex so no caller observes a
// partially applied transition.
type Workflow struct {
	repos     Repos
	publisher events.Publisher
	logger    apt.Logger
	mu        sync.Mutex
}

func NewWorkflow(repos Repos, publisher events.Publisher, logger apt.Logger) *Workflow {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Workflow{
		repos:     repos,
		publisher: publisher,
		logger:    logger,
	}
}

// Table lifecycle

// AssignTable seats a waiter at the table and marks it occupied.
func (wf *Workflow) AssignTable(ctx context.Context, number string, waiterID uuid.UUID) (*Table, error) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	table, err := wf.loadTable(ctx, number)
	if err != nil {
		return nil, err
	}

	previous := table.Status
	table.Occupy(&waiterID, nil)

	if err := wf.repos.TableRepo.Save(ctx, table); err != nil {
		return nil, fmt.Errorf("%w: save table %s: %v", ErrStorage, number, err)
	}

	wf.publishTableStatus(ctx, table, previous, "table.assigned")
	return table, nil
}

// MarkNeedsAssistance flags the table for staff attention. No other
// fields change.
func (wf *Workflow) MarkNeedsAssistance(ctx context.Context, number string) (*Table, error) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	table, err := wf.loadTable(ctx, number)
	if err != nil {
		return nil, err
	}

	previous := table.Status
	table.NeedsAssistance()

	if err := wf.repos.TableRepo.Save(ctx, table); err != nil {
		return nil, fmt.Errorf("%w: save table %s: %v", ErrStorage, number, err)
	}

	wf.publishTableStatus(ctx, table, previous, "table.assistance_requested")
	return table, nil
}

// ReleaseTable returns the table to available, clearing the waiter and
// order links unconditionally.
func (wf *Workflow) ReleaseTable(ctx context.Context, number string) (*Table, error) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	return wf.releaseTable(ctx, number, "table.released")
}

// UpdateTable applies a generic partial update of status, capacity,
// location and waiter. It does not enforce the order-driven
// transitions; those belong to the order and billing flows.
func (wf *Workflow) UpdateTable(ctx context.Context, number string, req TableUpdateRequest) (*Table, error) {
	if errs := ValidateTableUpdate(ctx, req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	wf.mu.Lock()
	defer wf.mu.Unlock()

	table, err := wf.loadTable(ctx, number)
	if err != nil {
		return nil, err
	}

	previous := table.Status
	if req.Status != "" {
		table.Status = req.Status
	}
	if req.Capacity > 0 {
		table.Capacity = req.Capacity
	}
	if req.Location != "" {
		table.Location = req.Location
	}
	if req.AssignedWaiter != nil {
		table.AssignedWaiter = req.AssignedWaiter
	}
	table.BeforeUpdate()

	if err := wf.repos.TableRepo.Save(ctx, table); err != nil {
		return nil, fmt.Errorf("%w: save table %s: %v", ErrStorage, number, err)
	}

	if table.Status != previous {
		wf.publishTableStatus(ctx, table, previous, "table.updated")
	}
	return table, nil
}

// Order lifecycle

// CreateOrder validates the request against current table state,
// persists the order, and occupies the table with the order linked.
func (wf *Workflow) CreateOrder(ctx context.Context, req OrderCreateRequest) (*Order, error) {
	if errs := ValidateOrderCreate(ctx, req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	wf.mu.Lock()
	defer wf.mu.Unlock()

	table, err := wf.loadTable(ctx, req.TableNumber)
	if err != nil {
		return nil, err
	}

	order := NewOrder()
	order.TableNumber = req.TableNumber
	order.CustomerName = req.CustomerName
	order.AssignedWaiter = req.WaiterID
	for _, item := range req.Items {
		order.Items = append(order.Items, OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
			Notes:      item.Notes,
		})
	}
	order.BeforeCreate()

	if err := wf.repos.OrderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: create order: %v", ErrStorage, err)
	}

	previous := table.Status
	table.Occupy(req.WaiterID, &order.ID)

	if err := wf.repos.TableRepo.Save(ctx, table); err != nil {
		return nil, fmt.Errorf("%w: occupy table %s: %v", ErrStorage, req.TableNumber, err)
	}

	wf.publishTableStatus(ctx, table, previous, "order.created")
	wf.publishOrderStatus(ctx, order, "")
	return order, nil
}

// AcceptOrder is the kitchen accept operation: it requires a positive
// estimated prep time and stamps the chef assignment before moving the
// order to preparing. The order is untouched on validation failure.
func (wf *Workflow) AcceptOrder(ctx context.Context, orderID uuid.UUID, req OrderAcceptRequest) (*Order, error) {
	if req.EstimatedPrepTime <= 0 {
		return nil, validationError([]string{"estimated_prep_time must be greater than 0"})
	}

	wf.mu.Lock()
	defer wf.mu.Unlock()

	order, err := wf.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	order.Accept(req.ChefID, req.ChefName, req.EstimatedPrepTime, time.Now())

	if err := wf.repos.OrderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: save order %s: %v", ErrStorage, orderID, err)
	}

	wf.publishOrderStatus(ctx, order, previous)
	return order, nil
}

// UpdateOrderStatus applies any known status value. Transitions are
// deliberately permissive; the one mandatory side effect is that an
// order entering paid releases its table within the same operation.
func (wf *Workflow) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*Order, error) {
	if errs := ValidateOrderStatus(ctx, OrderStatusRequest{Status: status}); len(errs) > 0 {
		return nil, validationError(errs)
	}

	wf.mu.Lock()
	defer wf.mu.Unlock()

	order, err := wf.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	order.SetStatus(status)

	if err := wf.repos.OrderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: save order %s: %v", ErrStorage, orderID, err)
	}

	if order.IsPaid() {
		wf.releaseTableForOrder(ctx, order)
	}

	wf.publishOrderStatus(ctx, order, previous)
	return order, nil
}

// Reservations

// CreateReservation validates table availability and time-range
// conflicts before confirming the reservation and reserving the table.
func (wf *Workflow) CreateReservation(ctx context.Context, req ReservationCreateRequest) (*Reservation, error) {
	if errs := ValidateReservationCreate(ctx, req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	wf.mu.Lock()
	defer wf.mu.Unlock()

	table, err := wf.loadTable(ctx, req.TableNumber)
	if err != nil {
		return nil, err
	}

	switch table.Status {
	case tablestatus.Statuses.Occupied.Code(), tablestatus.Statuses.NeedAssistance.Code():
		return nil, fmt.Errorf("%w: table %s is %s", ErrTableUnavailable, req.TableNumber, table.Status)
	}

	end := req.EndTime
	if end == "" {
		end = DefaultEndTime(req.ReservationTime)
	}

	conflicts, err := wf.FindConflicts(ctx, req.TableNumber, req.ReservationDate, req.ReservationTime, end, nil)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: table %s already reserved for %s %s-%s",
			ErrTableUnavailable, req.TableNumber, req.ReservationDate, req.ReservationTime, end)
	}

	reservation := NewReservation()
	reservation.CustomerName = req.CustomerName
	reservation.CustomerPhone = req.CustomerPhone
	reservation.CustomerEmail = req.CustomerEmail
	reservation.TableNumber = req.TableNumber
	reservation.ReservationDate = req.ReservationDate
	reservation.ReservationTime = req.ReservationTime
	reservation.EndTime = end
	reservation.NumberOfGuests = req.NumberOfGuests
	reservation.BeforeCreate()

	if err := wf.repos.ReservationRepo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("%w: create reservation: %v", ErrStorage, err)
	}

	previous := table.Status
	table.Reserve()

	if err := wf.repos.TableRepo.Save(ctx, table); err != nil {
		return nil, fmt.Errorf("%w: reserve table %s: %v", ErrStorage, req.TableNumber, err)
	}

	wf.publishTableStatus(ctx, table, previous, "reservation.created")
	return reservation, nil
}

// FindConflicts returns the non-cancelled reservations for the table
// and date whose [start, end) window overlaps the given one. It is a
// pure query usable independently of reservation creation.
func (wf *Workflow) FindConflicts(ctx context.Context, tableNumber, date, start, end string, excludeID *uuid.UUID) ([]*Reservation, error) {
	reservations, err := wf.repos.ReservationRepo.ListByTable(ctx, tableNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: list reservations for table %s: %v", ErrStorage, tableNumber, err)
	}

	var conflicts []*Reservation
	for _, r := range reservations {
		if r.ReservationDate != date {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.Overlaps(start, end) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts, nil
}

// UpdateReservationStatus is a direct field update with no side
// effects on table status.
func (wf *Workflow) UpdateReservationStatus(ctx context.Context, id uuid.UUID, status string) (*Reservation, error) {
	if !ValidateReservationStatus(status) {
		return nil, validationError([]string{"invalid status"})
	}

	reservation, err := wf.repos.ReservationRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: get reservation %s: %v", ErrStorage, id, err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, id)
	}

	reservation.Status = status
	reservation.BeforeUpdate()

	if err := wf.repos.ReservationRepo.Save(ctx, reservation); err != nil {
		return nil, fmt.Errorf("%w: save reservation %s: %v", ErrStorage, id, err)
	}
	return reservation, nil
}

// Billing

// GenerateBill prices the order's current items into a bill snapshot.
// The order itself is not mutated, and regenerating against an
// unchanged order yields identical totals. One bill exists per order;
// regeneration refreshes the pending bill in place.
func (wf *Workflow) GenerateBill(ctx context.Context, orderID uuid.UUID, paymentMethod string) (*Bill, error) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	order, err := wf.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	totals := ComputeBillTotals(order.Items)
	items := make([]OrderItem, len(order.Items))
	copy(items, order.Items)

	existing, err := wf.repos.BillRepo.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: get bill for order %s: %v", ErrStorage, orderID, err)
	}

	if existing != nil {
		existing.Items = items
		existing.Subtotal = totals.Subtotal
		existing.Tax = totals.Tax
		existing.Total = totals.Total
		if paymentMethod != "" {
			existing.PaymentMethod = paymentMethod
		}
		existing.BeforeUpdate()

		if err := wf.repos.BillRepo.Save(ctx, existing); err != nil {
			return nil, fmt.Errorf("%w: save bill %s: %v", ErrStorage, existing.ID, err)
		}
		return existing, nil
	}

	bill := NewBill()
	bill.OrderID = order.ID
	bill.TableNumber = order.TableNumber
	bill.Items = items
	bill.Subtotal = totals.Subtotal
	bill.Tax = totals.Tax
	bill.Total = totals.Total
	if paymentMethod != "" {
		bill.PaymentMethod = paymentMethod
	}
	bill.BeforeCreate()

	if err := wf.repos.BillRepo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("%w: create bill: %v", ErrStorage, err)
	}
	return bill, nil
}

// PayBill completes payment: the order becomes paid, the table is
// released within the same operation, and the bill records the method.
func (wf *Workflow) PayBill(ctx context.Context, billID uuid.UUID, paymentMethod string) (*PaymentConfirmation, error) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	bill, err := wf.repos.BillRepo.Get(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("%w: get bill %s: %v", ErrStorage, billID, err)
	}
	if bill == nil {
		return nil, fmt.Errorf("%w: bill %s", ErrNotFound, billID)
	}

	order, err := wf.loadOrder(ctx, bill.OrderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	order.SetStatus(orderstatus.Statuses.Paid.Code())

	if err := wf.repos.OrderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: save order %s: %v", ErrStorage, order.ID, err)
	}

	wf.releaseTableForOrder(ctx, order)

	bill.MarkPaid(paymentMethod)

	if err := wf.repos.BillRepo.Save(ctx, bill); err != nil {
		return nil, fmt.Errorf("%w: save bill %s: %v", ErrStorage, billID, err)
	}

	wf.publishOrderStatus(ctx, order, previous)
	wf.publishBillPaid(ctx, bill)

	return &PaymentConfirmation{
		Success:       true,
		Message:       "payment processed",
		BillID:        bill.ID,
		PaymentMethod: bill.PaymentMethod,
	}, nil
}

// internal helpers

func (wf *Workflow) loadTable(ctx context.Context, number string) (*Table, error) {
	table, err := wf.repos.TableRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("%w: get table %s: %v", ErrStorage, number, err)
	}
	if table == nil {
		return nil, fmt.Errorf("%w: table %s", ErrNotFound, number)
	}
	return table, nil
}

func (wf *Workflow) loadOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	order, err := wf.repos.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: get order %s: %v", ErrStorage, id, err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return order, nil
}

func (wf *Workflow) releaseTable(ctx context.Context, number, reason string) (*Table, error) {
	table, err := wf.loadTable(ctx, number)
	if err != nil {
		return nil, err
	}

	previous := table.Status
	table.Release()

	if err := wf.repos.TableRepo.Save(ctx, table); err != nil {
		return nil, fmt.Errorf("%w: release table %s: %v", ErrStorage, number, err)
	}

	wf.publishTableStatus(ctx, table, previous, reason)
	return table, nil
}

// releaseTableForOrder frees the order's table after payment. A table
// that has since been deleted does not fail the payment.
func (wf *Workflow) releaseTableForOrder(ctx context.Context, order *Order) {
	if _, err := wf.releaseTable(ctx, order.TableNumber, "order.paid"); err != nil {
		wf.logger.Error("cannot release table after payment",
			"error", err, "table_number", order.TableNumber, "order_id", order.ID.String())
	}
}

func validationError(errs []string) error {
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, "; "))
}

func (wf *Workflow) publishTableStatus(ctx context.Context, table *Table, previousStatus, reason string) {
	if wf.publisher == nil || table == nil {
		return
	}

	event := pkg.TableStatusEvent{
		EventType:      pkg.EventTableStatusChanged,
		TableID:        table.ID.String(),
		TableNumber:    table.Number,
		Status:         table.Status,
		PreviousStatus: previousStatus,
		Reason:         reason,
		Source:         eventSource,
		OccurredAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		wf.logger.Error("cannot marshal table status event", "error", err, "table_id", table.ID.String())
		return
	}

	if err := wf.publisher.Publish(ctx, pkg.TableStatusTopic, payload); err != nil {
		wf.logger.Error("cannot publish table status event", "error", err, "table_id", table.ID.String())
	}
}

func (wf *Workflow) publishOrderStatus(ctx context.Context, order *Order, previousStatus string) {
	if wf.publisher == nil || order == nil {
		return
	}

	event := pkg.OrderStatusEvent{
		EventType:      pkg.EventOrderStatusChanged,
		OrderID:        order.ID.String(),
		TableNumber:    order.TableNumber,
		Status:         order.Status,
		PreviousStatus: previousStatus,
		Source:         eventSource,
		OccurredAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		wf.logger.Error("cannot marshal order status event", "error", err, "order_id", order.ID.String())
		return
	}

	if err := wf.publisher.Publish(ctx, pkg.OrderStatusTopic, payload); err != nil {
		wf.logger.Error("cannot publish order status event", "error", err, "order_id", order.ID.String())
	}
}

func (wf *Workflow) publishBillPaid(ctx context.Context, bill *Bill) {
	if wf.publisher == nil || bill == nil {
		return
	}

	event := pkg.BillPaidEvent{
		EventType:     pkg.EventBillPaid,
		BillID:        bill.ID.String(),
		OrderID:       bill.OrderID.String(),
		TableNumber:   bill.TableNumber,
		PaymentMethod: bill.PaymentMethod,
		Total:         bill.Total,
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		wf.logger.Error("cannot marshal bill paid event", "error", err, "bill_id", bill.ID.String())
		return
	}

	if err := wf.publisher.Publish(ctx, pkg.BillPaidTopic, payload); err != nil {
		wf.logger.Error("cannot publish bill paid event", "error", err, "bill_id", bill.ID.String())
	}
}
