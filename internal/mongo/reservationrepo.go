package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/comandaclub/comanda/internal/restaurant"
)

const reservationsCollection = "reservations"

type ReservationRepo struct {
	base *BaseRepo
}

func NewReservationRepo(base *BaseRepo) *ReservationRepo {
	return &ReservationRepo{base: base}
}

type reservationDoc struct {
	ID              string    `bson:"_id"`
	CustomerName    string    `bson:"customer_name"`
	CustomerPhone   string    `bson:"customer_phone,omitempty"`
	CustomerEmail   string    `bson:"customer_email,omitempty"`
	TableNumber     string    `bson:"table_number"`
	ReservationDate string    `bson:"reservation_date"`
	ReservationTime string    `bson:"reservation_time"`
	EndTime         string    `bson:"end_time"`
	NumberOfGuests  int       `bson:"number_of_guests"`
	Status          string    `bson:"status"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func reservationToDoc(reservation *restaurant.Reservation) *reservationDoc {
	return &reservationDoc{
		ID:              reservation.ID.String(),
		CustomerName:    reservation.CustomerName,
		CustomerPhone:   reservation.CustomerPhone,
		CustomerEmail:   reservation.CustomerEmail,
		TableNumber:     reservation.TableNumber,
		ReservationDate: reservation.ReservationDate,
		ReservationTime: reservation.ReservationTime,
		EndTime:         reservation.EndTime,
		NumberOfGuests:  reservation.NumberOfGuests,
		Status:          reservation.Status,
		CreatedAt:       reservation.CreatedAt,
		UpdatedAt:       reservation.UpdatedAt,
	}
}

func reservationFromDoc(doc *reservationDoc) *restaurant.Reservation {
	return &restaurant.Reservation{
		ID:              parseUUID(doc.ID),
		CustomerName:    doc.CustomerName,
		CustomerPhone:   doc.CustomerPhone,
		CustomerEmail:   doc.CustomerEmail,
		TableNumber:     doc.TableNumber,
		ReservationDate: doc.ReservationDate,
		ReservationTime: doc.ReservationTime,
		EndTime:         doc.EndTime,
		NumberOfGuests:  doc.NumberOfGuests,
		Status:          doc.Status,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}

func (r *ReservationRepo) collection() *mongo.Collection {
	return r.base.GetDatabase().Collection(reservationsCollection)
}

func (r *ReservationRepo) Create(ctx context.Context, reservation *restaurant.Reservation) error {
	_, err := r.collection().InsertOne(ctx, reservationToDoc(reservation))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: reservation %s", restaurant.ErrDuplicateID, reservation.ID)
		}
		return fmt.Errorf("cannot insert reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Reservation, error) {
	var doc reservationDoc
	err := r.collection().FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot find reservation: %w", err)
	}
	return reservationFromDoc(&doc), nil
}

func (r *ReservationRepo) List(ctx context.Context) ([]*restaurant.Reservation, error) {
	return r.list(ctx, bson.M{})
}

func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]*restaurant.Reservation, error) {
	return r.list(ctx, bson.M{"reservation_date": date})
}

func (r *ReservationRepo) ListByTable(ctx context.Context, tableNumber string) ([]*restaurant.Reservation, error) {
	return r.list(ctx, bson.M{"table_number": tableNumber})
}

func (r *ReservationRepo) list(ctx context.Context, filter bson.M) ([]*restaurant.Reservation, error) {
	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("cannot list reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*restaurant.Reservation
	for cursor.Next(ctx) {
		var doc reservationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("cannot decode reservation: %w", err)
		}
		reservations = append(reservations, reservationFromDoc(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error listing reservations: %w", err)
	}
	return reservations, nil
}

func (r *ReservationRepo) Save(ctx context.Context, reservation *restaurant.Reservation) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": reservation.ID.String()}, reservationToDoc(reservation))
	if err != nil {
		return fmt.Errorf("cannot update reservation: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("reservation not found")
	}
	return nil
}

func (r *ReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("cannot delete reservation: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("reservation not found")
	}
	return nil
}
