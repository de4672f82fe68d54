package restaurant

import (
	"github.com/google/uuid"
)

type MenuItemCreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"image_url,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`
	Available   *bool    `json:"available,omitempty"`
}

type MenuItemUpdateRequest struct {
	Name        string    `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Category    string    `json:"category,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Ingredients *[]string `json:"ingredients,omitempty"`
	Allergens   *[]string `json:"allergens,omitempty"`
	Available   *bool     `json:"available,omitempty"`
}

type TableCreateRequest struct {
	Number   string `json:"number"`
	Capacity int    `json:"capacity,omitempty"`
	Location string `json:"location,omitempty"`
}

type TableUpdateRequest struct {
	Status         string     `json:"status,omitempty"`
	Capacity       int        `json:"capacity,omitempty"`
	Location       string     `json:"location,omitempty"`
	AssignedWaiter *uuid.UUID `json:"assigned_waiter,omitempty"`
}

type TableAssignRequest struct {
	WaiterID uuid.UUID `json:"waiter_id"`
}

type ReservationCreateRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	CustomerEmail   string `json:"customer_email,omitempty"`
	TableNumber     string `json:"table_number"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	EndTime         string `json:"end_time,omitempty"`
	NumberOfGuests  int    `json:"number_of_guests"`
}

type ReservationUpdateRequest struct {
	CustomerName    string `json:"customer_name,omitempty"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	CustomerEmail   string `json:"customer_email,omitempty"`
	ReservationDate string `json:"reservation_date,omitempty"`
	ReservationTime string `json:"reservation_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
	NumberOfGuests  int    `json:"number_of_guests,omitempty"`
	Status          string `json:"status,omitempty"`
}

type OrderItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	Price      float64   `json:"price"`
	Notes      string    `json:"notes,omitempty"`
}

type OrderCreateRequest struct {
	TableNumber  string             `json:"table_number"`
	Items        []OrderItemRequest `json:"items"`
	CustomerName string             `json:"customer_name,omitempty"`
	WaiterID     *uuid.UUID         `json:"waiter_id,omitempty"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

type OrderAcceptRequest struct {
	ChefID            *uuid.UUID `json:"chef_id,omitempty"`
	ChefName          string     `json:"chef_name,omitempty"`
	EstimatedPrepTime int        `json:"estimated_prep_time"`
}

type BillGenerateRequest struct {
	PaymentMethod string `json:"payment_method,omitempty"`
}

type PaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// PaymentConfirmation is returned by the pay operation.
type PaymentConfirmation struct {
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
	BillID        uuid.UUID `json:"bill_id"`
	PaymentMethod string    `json:"payment_method"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string    `json:"token"`
	StaffID  uuid.UUID `json:"staff_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Name     string    `json:"name"`
}
