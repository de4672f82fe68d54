package restaurant

import (
	"context"
	"strings"

	"github.com/comandaclub/comanda/pkg/enums/orderstatus"
	"github.com/comandaclub/comanda/pkg/enums/tablestatus"
)

func ValidateMenuItemCreate(ctx context.Context, req MenuItemCreateRequest) []string {
	var errors []string

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, "name is required")
	}

	if req.Price < 0 {
		errors = append(errors, "price cannot be negative")
	}

	if req.Category != "" && !ValidCategory(req.Category) {
		errors = append(errors, "invalid category")
	}

	return errors
}

func ValidateTableCreate(ctx context.Context, req TableCreateRequest) []string {
	var errors []string

	if strings.TrimSpace(req.Number) == "" {
		errors = append(errors, "number is required")
	}

	if req.Capacity < 0 {
		errors = append(errors, "capacity cannot be negative")
	}

	return errors
}

func ValidateTableUpdate(ctx context.Context, req TableUpdateRequest) []string {
	var errors []string

	if req.Status != "" && tablestatus.ByName(req.Status) == nil {
		errors = append(errors, "invalid status")
	}

	if req.Capacity < 0 {
		errors = append(errors, "capacity cannot be negative")
	}

	return errors
}

func ValidateReservationCreate(ctx context.Context, req ReservationCreateRequest) []string {
	var errors []string

	if strings.TrimSpace(req.CustomerName) == "" {
		errors = append(errors, "customer_name is required")
	}

	if strings.TrimSpace(req.ReservationDate) == "" {
		errors = append(errors, "reservation_date is required")
	}

	if strings.TrimSpace(req.ReservationTime) == "" {
		errors = append(errors, "reservation_time is required")
	}

	if strings.TrimSpace(req.TableNumber) == "" {
		errors = append(errors, "table_number is required")
	}

	if req.NumberOfGuests < 0 {
		errors = append(errors, "number_of_guests cannot be negative")
	}

	if req.EndTime != "" {
		start, startOK := parseClock(req.ReservationTime)
		end, endOK := parseClock(req.EndTime)
		if startOK && endOK && end <= start {
			errors = append(errors, "end_time must be after reservation_time")
		}
	}

	return errors
}

func ValidateOrderCreate(ctx context.Context, req OrderCreateRequest) []string {
	var errors []string

	if strings.TrimSpace(req.TableNumber) == "" {
		errors = append(errors, "table_number is required")
	}

	if len(req.Items) == 0 {
		errors = append(errors, "at least one item is required")
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			errors = append(errors, "quantity must be greater than 0")
			break
		}
	}

	for _, item := range req.Items {
		if item.Price < 0 {
			errors = append(errors, "price cannot be negative")
			break
		}
	}

	return errors
}

func ValidateOrderStatus(ctx context.Context, req OrderStatusRequest) []string {
	var errors []string

	if req.Status == "" {
		errors = append(errors, "status is required")
	} else if orderstatus.ByName(req.Status) == nil {
		errors = append(errors, "invalid status")
	}

	return errors
}

func ValidateReservationStatus(status string) bool {
	switch status {
	case ReservationConfirmed, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}
