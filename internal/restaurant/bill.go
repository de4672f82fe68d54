package restaurant

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Payment statuses and the default payment method.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"

	DefaultPaymentMethod = "cash"
)

type Bill struct {
	ID            uuid.UUID   `json:"id" bson:"_id"`
	OrderID       uuid.UUID   `json:"order_id" bson:"order_id"`
	TableNumber   string      `json:"table_number" bson:"table_number"`
	Items         []OrderItem `json:"items" bson:"items"`
	Subtotal      float64     `json:"subtotal" bson:"subtotal"`
	Tax           float64     `json:"tax" bson:"tax"`
	Total         float64     `json:"total" bson:"total"`
	PaymentMethod string      `json:"payment_method" bson:"payment_method"`
	PaymentStatus string      `json:"payment_status" bson:"payment_status"`
	CreatedAt     time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" bson:"updated_at"`
}

func (b *Bill) GetID() uuid.UUID {
	return b.ID
}

func (b *Bill) ResourceType() string {
	return "bill"
}

func (b *Bill) SetID(id uuid.UUID) {
	b.ID = id
}

func NewBill() *Bill {
	return &Bill{
		ID:            apt.GenerateNewID(),
		PaymentStatus: PaymentPending,
		PaymentMethod: DefaultPaymentMethod,
		Items:         []OrderItem{},
	}
}

func (b *Bill) EnsureID() {
	if b.ID == uuid.Nil {
		b.ID = apt.GenerateNewID()
	}
}

func (b *Bill) BeforeCreate() {
	b.EnsureID()
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()
}

func (b *Bill) BeforeUpdate() {
	b.UpdatedAt = time.Now()
}

// MarkPaid records payment completion with the supplied method.
func (b *Bill) MarkPaid(method string) {
	if method != "" {
		b.PaymentMethod = method
	}
	b.PaymentStatus = PaymentPaid
	b.UpdatedAt = time.Now()
}
