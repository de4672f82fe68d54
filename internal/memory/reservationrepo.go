package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/comandaclub/comanda/internal/restaurant"
)

type ReservationRepo struct {
	mu           sync.RWMutex
	reservations map[uuid.UUID]*restaurant.Reservation
}

func NewReservationRepo() *ReservationRepo {
	return &ReservationRepo{
		reservations: make(map[uuid.UUID]*restaurant.Reservation),
	}
}

func (r *ReservationRepo) Create(ctx context.Context, reservation *restaurant.Reservation) error {
	if reservation == nil {
		return fmt.Errorf("reservation is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reservations[reservation.ID]; exists {
		return fmt.Errorf("%w: reservation %s", restaurant.ErrDuplicateID, reservation.ID)
	}

	r.reservations[reservation.ID] = cloneReservation(reservation)
	return nil
}

func (r *ReservationRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservation, ok := r.reservations[id]
	if !ok {
		return nil, nil
	}
	return cloneReservation(reservation), nil
}

func (r *ReservationRepo) List(ctx context.Context) ([]*restaurant.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*restaurant.Reservation, 0, len(r.reservations))
	for _, reservation := range r.reservations {
		result = append(result, cloneReservation(reservation))
	}
	return result, nil
}

func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]*restaurant.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*restaurant.Reservation
	for _, reservation := range r.reservations {
		if reservation.ReservationDate == date {
			result = append(result, cloneReservation(reservation))
		}
	}
	return result, nil
}

func (r *ReservationRepo) ListByTable(ctx context.Context, tableNumber string) ([]*restaurant.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*restaurant.Reservation
	for _, reservation := range r.reservations {
		if reservation.TableNumber == tableNumber {
			result = append(result, cloneReservation(reservation))
		}
	}
	return result, nil
}

func (r *ReservationRepo) Save(ctx context.Context, reservation *restaurant.Reservation) error {
	if reservation == nil {
		return fmt.Errorf("reservation is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reservations[reservation.ID]; !ok {
		return fmt.Errorf("reservation not found")
	}

	r.reservations[reservation.ID] = cloneReservation(reservation)
	return nil
}

func (r *ReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reservations[id]; !ok {
		return fmt.Errorf("reservation not found")
	}

	delete(r.reservations, id)
	return nil
}

func cloneReservation(reservation *restaurant.Reservation) *restaurant.Reservation {
	clone := *reservation
	return &clone
}
