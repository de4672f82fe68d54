package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/comandaclub/comanda/internal/restaurant"
)

const billsCollection = "bills"

type BillRepo struct {
	base *BaseRepo
}

func NewBillRepo(base *BaseRepo) *BillRepo {
	return &BillRepo{base: base}
}

type billDoc struct {
	ID            string         `bson:"_id"`
	OrderID       string         `bson:"order_id"`
	TableNumber   string         `bson:"table_number"`
	Items         []orderItemDoc `bson:"items"`
	Subtotal      float64        `bson:"subtotal"`
	Tax           float64        `bson:"tax"`
	Total         float64        `bson:"total"`
	PaymentMethod string         `bson:"payment_method"`
	PaymentStatus string         `bson:"payment_status"`
	CreatedAt     time.Time      `bson:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at"`
}

func billToDoc(bill *restaurant.Bill) *billDoc {
	return &billDoc{
		ID:            bill.ID.String(),
		OrderID:       bill.OrderID.String(),
		TableNumber:   bill.TableNumber,
		Items:         orderItemsToDoc(bill.Items),
		Subtotal:      bill.Subtotal,
		Tax:           bill.Tax,
		Total:         bill.Total,
		PaymentMethod: bill.PaymentMethod,
		PaymentStatus: bill.PaymentStatus,
		CreatedAt:     bill.CreatedAt,
		UpdatedAt:     bill.UpdatedAt,
	}
}

func billFromDoc(doc *billDoc) *restaurant.Bill {
	return &restaurant.Bill{
		ID:            parseUUID(doc.ID),
		OrderID:       parseUUID(doc.OrderID),
		TableNumber:   doc.TableNumber,
		Items:         orderItemsFromDoc(doc.Items),
		Subtotal:      doc.Subtotal,
		Tax:           doc.Tax,
		Total:         doc.Total,
		PaymentMethod: doc.PaymentMethod,
		PaymentStatus: doc.PaymentStatus,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func (r *BillRepo) collection() *mongo.Collection {
	return r.base.GetDatabase().Collection(billsCollection)
}

// EnsureIndexes creates the unique index on order_id, one bill per
// order.
func (r *BillRepo) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "order_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection().Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("cannot create bills index: %w", err)
	}
	return nil
}

func (r *BillRepo) Create(ctx context.Context, bill *restaurant.Bill) error {
	_, err := r.collection().InsertOne(ctx, billToDoc(bill))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: bill %s", restaurant.ErrDuplicateID, bill.ID)
		}
		return fmt.Errorf("cannot insert bill: %w", err)
	}
	return nil
}

func (r *BillRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Bill, error) {
	var doc billDoc
	err := r.collection().FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot find bill: %w", err)
	}
	return billFromDoc(&doc), nil
}

func (r *BillRepo) GetByOrder(ctx context.Context, orderID uuid.UUID) (*restaurant.Bill, error) {
	var doc billDoc
	err := r.collection().FindOne(ctx, bson.M{"order_id": orderID.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot find bill by order: %w", err)
	}
	return billFromDoc(&doc), nil
}

func (r *BillRepo) List(ctx context.Context) ([]*restaurant.Bill, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list bills: %w", err)
	}
	defer cursor.Close(ctx)

	var bills []*restaurant.Bill
	for cursor.Next(ctx) {
		var doc billDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("cannot decode bill: %w", err)
		}
		bills = append(bills, billFromDoc(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error listing bills: %w", err)
	}
	return bills, nil
}

func (r *BillRepo) Save(ctx context.Context, bill *restaurant.Bill) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": bill.ID.String()}, billToDoc(bill))
	if err != nil {
		return fmt.Errorf("cannot update bill: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("bill not found")
	}
	return nil
}

func (r *BillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("cannot delete bill: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("bill not found")
	}
	return nil
}
