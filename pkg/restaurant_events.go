package pkg

import "time"

const (
	// TableStatusTopic delivers authoritative status changes for tables.
	TableStatusTopic = "tables.status"
	// OrderStatusTopic delivers order lifecycle transitions.
	OrderStatusTopic = "orders.status"
	// BillPaidTopic delivers payment completions.
	BillPaidTopic = "bills.paid"

	// EventTableStatusChanged identifies a table status change event payload.
	EventTableStatusChanged = "table.status.changed"
	// EventOrderStatusChanged identifies an order status change event payload.
	EventOrderStatusChanged = "order.status.changed"
	// EventBillPaid identifies a bill payment event payload.
	EventBillPaid = "bill.paid"
)

// TableStatusEvent captures the minimal information downstream consumers
// need to reason about a table's availability.
type TableStatusEvent struct {
	EventType      string    `json:"event_type"`
	TableID        string    `json:"table_id"`
	TableNumber    string    `json:"table_number"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	Source         string    `json:"source,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// OrderStatusEvent captures an order moving through its lifecycle.
type OrderStatusEvent struct {
	EventType      string    `json:"event_type"`
	OrderID        string    `json:"order_id"`
	TableNumber    string    `json:"table_number"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Source         string    `json:"source,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// BillPaidEvent captures a completed payment for a bill.
type BillPaidEvent struct {
	EventType     string    `json:"event_type"`
	BillID        string    `json:"bill_id"`
	OrderID       string    `json:"order_id"`
	TableNumber   string    `json:"table_number"`
	PaymentMethod string    `json:"payment_method"`
	Total         float64   `json:"total"`
	OccurredAt    time.Time `json:"occurred_at"`
}
