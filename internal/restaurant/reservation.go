package restaurant

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Reservation statuses.
const (
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

const clockLayout = "15:04"

// DefaultReservationLength applies when a reservation does not provide
// an explicit end time.
const DefaultReservationLength = 2 * time.Hour

type Reservation struct {
	ID              uuid.UUID `json:"id" bson:"_id"`
	CustomerName    string    `json:"customer_name" bson:"customer_name"`
	CustomerPhone   string    `json:"customer_phone,omitempty" bson:"customer_phone,omitempty"`
	CustomerEmail   string    `json:"customer_email,omitempty" bson:"customer_email,omitempty"`
	TableNumber     string    `json:"table_number" bson:"table_number"`
	ReservationDate string    `json:"reservation_date" bson:"reservation_date"`
	ReservationTime string    `json:"reservation_time" bson:"reservation_time"`
	EndTime         string    `json:"end_time" bson:"end_time"`
	NumberOfGuests  int       `json:"number_of_guests" bson:"number_of_guests"`
	Status          string    `json:"status" bson:"status"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

func (r *Reservation) GetID() uuid.UUID {
	return r.ID
}

func (r *Reservation) ResourceType() string {
	return "reservation"
}

func (r *Reservation) SetID(id uuid.UUID) {
	r.ID = id
}

func NewReservation() *Reservation {
	return &Reservation{
		ID:     apt.GenerateNewID(),
		Status: ReservationConfirmed,
	}
}

func (r *Reservation) EnsureID() {
	if r.ID == uuid.Nil {
		r.ID = apt.GenerateNewID()
	}
}

func (r *Reservation) BeforeCreate() {
	r.EnsureID()
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
}

func (r *Reservation) BeforeUpdate() {
	r.UpdatedAt = time.Now()
}

func (r *Reservation) Cancel() {
	r.Status = ReservationCancelled
	r.UpdatedAt = time.Now()
}

func (r *Reservation) Complete() {
	r.Status = ReservationCompleted
	r.UpdatedAt = time.Now()
}

// Overlaps reports whether the reservation's [start, end) window
// intersects the given window. Cancelled reservations never overlap.
func (r *Reservation) Overlaps(start, end string) bool {
	if r.Status == ReservationCancelled {
		return false
	}
	return rangesOverlap(r.ReservationTime, r.EndTime, start, end)
}

// DefaultEndTime derives an end time from a start time using the
// default reservation length, clamped to 23:59 so the window never
// wraps past midnight into an inverted range. The start is returned
// unchanged when it cannot be parsed.
func DefaultEndTime(start string) string {
	t, err := time.Parse(clockLayout, start)
	if err != nil {
		return start
	}
	end := t.Add(DefaultReservationLength)
	if end.Day() != t.Day() {
		return "23:59"
	}
	return end.Format(clockLayout)
}

// rangesOverlap compares two half-open [start, end) clock ranges.
func rangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	as, ok1 := parseClock(aStart)
	ae, ok2 := parseClock(aEnd)
	bs, ok3 := parseClock(bStart)
	be, ok4 := parseClock(bEnd)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return as < be && bs < ae
}

func parseClock(value string) (int, bool) {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
