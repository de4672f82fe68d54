package restaurant

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/comandaclub/comanda/pkg"
	"github.com/comandaclub/comanda/pkg/enums/orderstatus"
	"github.com/comandaclub/comanda/pkg/enums/tablestatus"
)

func newTestWorkflow() (*Workflow, Repos, *MockPublisher) {
	repos := newMockRepos()
	publisher := NewMockPublisher()
	wf := NewWorkflow(repos, publisher, nil)
	return wf, repos, publisher
}

func seedTable(t *testing.T, repos Repos, number string) *Table {
	t.Helper()
	table := NewTable()
	table.Number = number
	table.Capacity = 4
	table.BeforeCreate()
	if err := repos.TableRepo.Create(context.Background(), table); err != nil {
		t.Fatalf("cannot seed table: %v", err)
	}
	return table
}

func seedOrder(t *testing.T, wf *Workflow, tableNumber string) *Order {
	t.Helper()
	order, err := wf.CreateOrder(context.Background(), OrderCreateRequest{
		TableNumber: tableNumber,
		Items: []OrderItemRequest{
			{MenuItemID: uuid.New(), Quantity: 2, Price: 12.00},
			{MenuItemID: uuid.New(), Quantity: 1, Price: 6.50},
		},
	})
	if err != nil {
		t.Fatalf("cannot seed order: %v", err)
	}
	return order
}

func TestWorkflowCreateOrderOccupiesTable(t *testing.T) {
	wf, repos, publisher := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "5")

	waiterID := uuid.New()
	order, err := wf.CreateOrder(ctx, OrderCreateRequest{
		TableNumber: "5",
		WaiterID:    &waiterID,
		Items: []OrderItemRequest{
			{MenuItemID: uuid.New(), Quantity: 1, Price: 10.00},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	if order.Status != orderstatus.Statuses.Pending.Code() {
		t.Errorf("CreateOrder() status = %s, want pending", order.Status)
	}

	table, _ := repos.TableRepo.GetByNumber(ctx, "5")
	if table.Status != tablestatus.Statuses.Occupied.Code() {
		t.Errorf("table status = %s, want occupied", table.Status)
	}
	if table.CurrentOrder == nil || *table.CurrentOrder != order.ID {
		t.Error("table should link the created order")
	}
	if table.AssignedWaiter == nil || *table.AssignedWaiter != waiterID {
		t.Error("table should link the waiter")
	}

	if publisher.TopicCount(pkg.TableStatusTopic) != 1 {
		t.Error("expected one table status event")
	}
	if publisher.TopicCount(pkg.OrderStatusTopic) != 1 {
		t.Error("expected one order status event")
	}
}

func TestWorkflowCreateOrderValidation(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "1")

	tests := []struct {
		name    string
		req     OrderCreateRequest
		wantErr error
	}{
		{
			name: "missingTableNumber",
			req: OrderCreateRequest{
				Items: []OrderItemRequest{{MenuItemID: uuid.New(), Quantity: 1, Price: 5}},
			},
			wantErr: ErrValidation,
		},
		{
			name:    "emptyItems",
			req:     OrderCreateRequest{TableNumber: "1"},
			wantErr: ErrValidation,
		},
		{
			name: "zeroQuantity",
			req: OrderCreateRequest{
				TableNumber: "1",
				Items:       []OrderItemRequest{{MenuItemID: uuid.New(), Quantity: 0, Price: 5}},
			},
			wantErr: ErrValidation,
		},
		{
			name: "unknownTable",
			req: OrderCreateRequest{
				TableNumber: "99",
				Items:       []OrderItemRequest{{MenuItemID: uuid.New(), Quantity: 1, Price: 5}},
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wf.CreateOrder(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateOrder() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWorkflowAcceptOrder(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "3")
	order := seedOrder(t, wf, "3")

	chefID := uuid.New()
	accepted, err := wf.AcceptOrder(ctx, order.ID, OrderAcceptRequest{
		ChefID:            &chefID,
		ChefName:          "Anna",
		EstimatedPrepTime: 20,
	})
	if err != nil {
		t.Fatalf("AcceptOrder() error = %v", err)
	}

	if accepted.Status != orderstatus.Statuses.Preparing.Code() {
		t.Errorf("AcceptOrder() status = %s, want preparing", accepted.Status)
	}
	if accepted.EstimatedPrepTime != 20 {
		t.Errorf("AcceptOrder() prep time = %d, want 20", accepted.EstimatedPrepTime)
	}
	if accepted.ChefName != "Anna" {
		t.Errorf("AcceptOrder() chef name = %s, want Anna", accepted.ChefName)
	}
	if accepted.StartTime == "" {
		t.Error("AcceptOrder() should stamp start time")
	}
}

func TestWorkflowAcceptOrderRejectsNonPositivePrepTime(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "3")
	order := seedOrder(t, wf, "3")

	for _, prepTime := range []int{0, -5} {
		_, err := wf.AcceptOrder(ctx, order.ID, OrderAcceptRequest{EstimatedPrepTime: prepTime})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("AcceptOrder(prep=%d) error = %v, want ErrValidation", prepTime, err)
		}
	}

	stored, _ := repos.OrderRepo.Get(ctx, order.ID)
	if stored.Status != orderstatus.Statuses.Pending.Code() {
		t.Errorf("order status = %s, want pending after rejected accept", stored.Status)
	}
	if stored.StartTime != "" {
		t.Error("rejected accept should not stamp start time")
	}
}

func TestWorkflowUpdateOrderStatus(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "4")
	order := seedOrder(t, wf, "4")

	for _, status := range []string{"preparing", "ready", "served"} {
		updated, err := wf.UpdateOrderStatus(ctx, order.ID, status)
		if err != nil {
			t.Fatalf("UpdateOrderStatus(%s) error = %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("UpdateOrderStatus() status = %s, want %s", updated.Status, status)
		}
	}

	table, _ := repos.TableRepo.GetByNumber(ctx, "4")
	if table.Status != tablestatus.Statuses.Occupied.Code() {
		t.Errorf("table status = %s, should stay occupied before payment", table.Status)
	}
}

func TestWorkflowUpdateOrderStatusInvalid(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "4")
	order := seedOrder(t, wf, "4")

	_, err := wf.UpdateOrderStatus(ctx, order.ID, "teleported")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("UpdateOrderStatus() error = %v, want ErrValidation", err)
	}
}

func TestWorkflowPaidStatusReleasesTable(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "6")
	order := seedOrder(t, wf, "6")

	if _, err := wf.UpdateOrderStatus(ctx, order.ID, "paid"); err != nil {
		t.Fatalf("UpdateOrderStatus(paid) error = %v", err)
	}

	table, _ := repos.TableRepo.GetByNumber(ctx, "6")
	if table.Status != tablestatus.Statuses.Available.Code() {
		t.Errorf("table status = %s, want available after paid", table.Status)
	}
	if table.CurrentOrder != nil {
		t.Error("table should clear order link after paid")
	}
	if table.AssignedWaiter != nil {
		t.Error("table should clear waiter link after paid")
	}
}

func TestWorkflowGenerateBill(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "2")
	order := seedOrder(t, wf, "2")

	bill, err := wf.GenerateBill(ctx, order.ID, "")
	if err != nil {
		t.Fatalf("GenerateBill() error = %v", err)
	}

	// 2x12.00 + 1x6.50 = 30.50, 10% tax
	if bill.Subtotal != 30.50 {
		t.Errorf("GenerateBill() subtotal = %v, want 30.50", bill.Subtotal)
	}
	if bill.Tax != 3.05 {
		t.Errorf("GenerateBill() tax = %v, want 3.05", bill.Tax)
	}
	if bill.Total != 33.55 {
		t.Errorf("GenerateBill() total = %v, want 33.55", bill.Total)
	}
	if bill.PaymentStatus != PaymentPending {
		t.Errorf("GenerateBill() payment status = %s, want pending", bill.PaymentStatus)
	}
	if bill.PaymentMethod != DefaultPaymentMethod {
		t.Errorf("GenerateBill() payment method = %s, want %s", bill.PaymentMethod, DefaultPaymentMethod)
	}
	if len(bill.Items) != len(order.Items) {
		t.Errorf("GenerateBill() items = %d, want %d", len(bill.Items), len(order.Items))
	}

	stored, _ := repos.OrderRepo.Get(ctx, order.ID)
	if stored.Status != orderstatus.Statuses.Pending.Code() {
		t.Errorf("order status = %s, billing must not mutate the order", stored.Status)
	}
}

func TestWorkflowGenerateBillIsIdempotent(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "2")
	order := seedOrder(t, wf, "2")

	first, err := wf.GenerateBill(ctx, order.ID, "")
	if err != nil {
		t.Fatalf("GenerateBill() error = %v", err)
	}

	second, err := wf.GenerateBill(ctx, order.ID, "")
	if err != nil {
		t.Fatalf("GenerateBill() second call error = %v", err)
	}

	if first.ID != second.ID {
		t.Error("regenerating should refresh the existing bill, not create a new one")
	}
	if first.Total != second.Total {
		t.Errorf("regenerated total = %v, want %v", second.Total, first.Total)
	}

	bills, _ := repos.BillRepo.List(ctx)
	if len(bills) != 1 {
		t.Errorf("bill count = %d, want 1", len(bills))
	}
}

func TestWorkflowGenerateBillUnknownOrder(t *testing.T) {
	wf, _, _ := newTestWorkflow()

	_, err := wf.GenerateBill(context.Background(), uuid.New(), "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GenerateBill() error = %v, want ErrNotFound", err)
	}
}

func TestWorkflowPayBill(t *testing.T) {
	wf, repos, publisher := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "7")
	order := seedOrder(t, wf, "7")

	bill, err := wf.GenerateBill(ctx, order.ID, "")
	if err != nil {
		t.Fatalf("GenerateBill() error = %v", err)
	}

	confirmation, err := wf.PayBill(ctx, bill.ID, "card")
	if err != nil {
		t.Fatalf("PayBill() error = %v", err)
	}

	if !confirmation.Success {
		t.Error("PayBill() confirmation should report success")
	}
	if confirmation.BillID != bill.ID {
		t.Errorf("PayBill() bill id = %s, want %s", confirmation.BillID, bill.ID)
	}
	if confirmation.PaymentMethod != "card" {
		t.Errorf("PayBill() payment method = %s, want card", confirmation.PaymentMethod)
	}

	storedBill, _ := repos.BillRepo.Get(ctx, bill.ID)
	if storedBill.PaymentStatus != PaymentPaid {
		t.Errorf("bill payment status = %s, want paid", storedBill.PaymentStatus)
	}

	storedOrder, _ := repos.OrderRepo.Get(ctx, order.ID)
	if storedOrder.Status != orderstatus.Statuses.Paid.Code() {
		t.Errorf("order status = %s, want paid", storedOrder.Status)
	}

	table, _ := repos.TableRepo.GetByNumber(ctx, "7")
	if table.Status != tablestatus.Statuses.Available.Code() {
		t.Errorf("table status = %s, want available after payment", table.Status)
	}
	if table.CurrentOrder != nil || table.AssignedWaiter != nil {
		t.Error("table links should be cleared after payment")
	}

	if publisher.TopicCount(pkg.BillPaidTopic) != 1 {
		t.Error("expected one bill paid event")
	}
}

func TestWorkflowPayBillUnknownBill(t *testing.T) {
	wf, _, _ := newTestWorkflow()

	_, err := wf.PayBill(context.Background(), uuid.New(), "cash")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("PayBill() error = %v, want ErrNotFound", err)
	}
}

func TestWorkflowAssignAndReleaseTable(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "8")

	waiterID := uuid.New()
	table, err := wf.AssignTable(ctx, "8", waiterID)
	if err != nil {
		t.Fatalf("AssignTable() error = %v", err)
	}
	if table.Status != tablestatus.Statuses.Occupied.Code() {
		t.Errorf("AssignTable() status = %s, want occupied", table.Status)
	}
	if table.AssignedWaiter == nil || *table.AssignedWaiter != waiterID {
		t.Error("AssignTable() should link the waiter")
	}

	released, err := wf.ReleaseTable(ctx, "8")
	if err != nil {
		t.Fatalf("ReleaseTable() error = %v", err)
	}
	if released.Status != tablestatus.Statuses.Available.Code() {
		t.Errorf("ReleaseTable() status = %s, want available", released.Status)
	}
	if released.AssignedWaiter != nil || released.CurrentOrder != nil {
		t.Error("ReleaseTable() should clear waiter and order links")
	}
}

func TestWorkflowMarkNeedsAssistance(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	table := seedTable(t, repos, "9")

	waiterID := uuid.New()
	if _, err := wf.AssignTable(ctx, "9", waiterID); err != nil {
		t.Fatalf("AssignTable() error = %v", err)
	}

	flagged, err := wf.MarkNeedsAssistance(ctx, "9")
	if err != nil {
		t.Fatalf("MarkNeedsAssistance() error = %v", err)
	}
	if flagged.Status != tablestatus.Statuses.NeedAssistance.Code() {
		t.Errorf("MarkNeedsAssistance() status = %s, want need_assistance", flagged.Status)
	}
	if flagged.AssignedWaiter == nil {
		t.Error("MarkNeedsAssistance() should keep the waiter link")
	}
	_ = table
}

func TestWorkflowCreateReservation(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "10")

	reservation, err := wf.CreateReservation(ctx, ReservationCreateRequest{
		CustomerName:    "Ada",
		TableNumber:     "10",
		ReservationDate: "2026-09-15",
		ReservationTime: "19:00",
		NumberOfGuests:  2,
	})
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}

	if reservation.Status != ReservationConfirmed {
		t.Errorf("CreateReservation() status = %s, want confirmed", reservation.Status)
	}
	if reservation.EndTime != "21:00" {
		t.Errorf("CreateReservation() end time = %s, want default 21:00", reservation.EndTime)
	}

	table, _ := repos.TableRepo.GetByNumber(ctx, "10")
	if table.Status != tablestatus.Statuses.Reserved.Code() {
		t.Errorf("table status = %s, want reserved", table.Status)
	}
}

func TestWorkflowCreateReservationConflicts(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "11")

	base := ReservationCreateRequest{
		CustomerName:    "Ada",
		TableNumber:     "11",
		ReservationDate: "2026-09-15",
		ReservationTime: "19:00",
		EndTime:         "20:00",
	}
	if _, err := wf.CreateReservation(ctx, base); err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}

	overlapping := base
	overlapping.CustomerName = "Grace"
	overlapping.ReservationTime = "19:30"
	overlapping.EndTime = "20:30"
	if _, err := wf.CreateReservation(ctx, overlapping); !errors.Is(err, ErrTableUnavailable) {
		t.Errorf("overlapping CreateReservation() error = %v, want ErrTableUnavailable", err)
	}

	// The table is now reserved; a non-overlapping window on the same
	// table and date must still succeed.
	later := base
	later.CustomerName = "Grace"
	later.ReservationTime = "20:00"
	later.EndTime = "21:00"
	if _, err := wf.CreateReservation(ctx, later); err != nil {
		t.Errorf("back-to-back CreateReservation() error = %v, want nil", err)
	}

	otherDate := base
	otherDate.CustomerName = "Linus"
	otherDate.ReservationDate = "2026-09-16"
	if _, err := wf.CreateReservation(ctx, otherDate); err != nil {
		t.Errorf("other-date CreateReservation() error = %v, want nil", err)
	}
}

func TestWorkflowCreateReservationLateNightConflict(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "13")

	// Both rely on the defaulted end time, which clamps at 23:59
	// instead of wrapping into an inverted window.
	first := ReservationCreateRequest{
		CustomerName:    "Ada",
		TableNumber:     "13",
		ReservationDate: "2026-09-15",
		ReservationTime: "23:00",
	}
	created, err := wf.CreateReservation(ctx, first)
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}
	if created.EndTime != "23:59" {
		t.Errorf("late-night default end = %s, want 23:59", created.EndTime)
	}

	second := first
	second.CustomerName = "Grace"
	second.ReservationTime = "23:30"
	if _, err := wf.CreateReservation(ctx, second); !errors.Is(err, ErrTableUnavailable) {
		t.Errorf("late-night overlapping CreateReservation() error = %v, want ErrTableUnavailable", err)
	}
}

func TestWorkflowCreateReservationOccupiedTable(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "12")
	seedOrder(t, wf, "12")

	_, err := wf.CreateReservation(ctx, ReservationCreateRequest{
		CustomerName:    "Ada",
		TableNumber:     "12",
		ReservationDate: "2026-09-15",
		ReservationTime: "19:00",
	})
	if !errors.Is(err, ErrTableUnavailable) {
		t.Errorf("CreateReservation() on occupied table error = %v, want ErrTableUnavailable", err)
	}
}

func TestWorkflowFindConflictsExcludesReservation(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "13")

	reservation, err := wf.CreateReservation(ctx, ReservationCreateRequest{
		CustomerName:    "Ada",
		TableNumber:     "13",
		ReservationDate: "2026-09-15",
		ReservationTime: "19:00",
		EndTime:         "20:00",
	})
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}

	conflicts, err := wf.FindConflicts(ctx, "13", "2026-09-15", "19:30", "20:30", nil)
	if err != nil {
		t.Fatalf("FindConflicts() error = %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("FindConflicts() = %d conflicts, want 1", len(conflicts))
	}

	excluded, err := wf.FindConflicts(ctx, "13", "2026-09-15", "19:30", "20:30", &reservation.ID)
	if err != nil {
		t.Fatalf("FindConflicts() with exclude error = %v", err)
	}
	if len(excluded) != 0 {
		t.Errorf("FindConflicts() with exclude = %d conflicts, want 0", len(excluded))
	}

	cancelled, err := wf.UpdateReservationStatus(ctx, reservation.ID, ReservationCancelled)
	if err != nil {
		t.Fatalf("UpdateReservationStatus() error = %v", err)
	}
	if cancelled.Status != ReservationCancelled {
		t.Errorf("UpdateReservationStatus() status = %s, want cancelled", cancelled.Status)
	}

	afterCancel, err := wf.FindConflicts(ctx, "13", "2026-09-15", "19:30", "20:30", nil)
	if err != nil {
		t.Fatalf("FindConflicts() after cancel error = %v", err)
	}
	if len(afterCancel) != 0 {
		t.Errorf("FindConflicts() after cancel = %d conflicts, want 0", len(afterCancel))
	}
}

func TestWorkflowUpdateTable(t *testing.T) {
	wf, repos, _ := newTestWorkflow()
	ctx := context.Background()
	seedTable(t, repos, "14")

	waiterID := uuid.New()
	table, err := wf.UpdateTable(ctx, "14", TableUpdateRequest{
		Status:         "occupied",
		Capacity:       6,
		Location:       "terrace",
		AssignedWaiter: &waiterID,
	})
	if err != nil {
		t.Fatalf("UpdateTable() error = %v", err)
	}

	if table.Status != "occupied" || table.Capacity != 6 || table.Location != "terrace" {
		t.Errorf("UpdateTable() = %+v, fields not applied", table)
	}

	_, err = wf.UpdateTable(ctx, "14", TableUpdateRequest{Status: "levitating"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("UpdateTable() invalid status error = %v, want ErrValidation", err)
	}
}
