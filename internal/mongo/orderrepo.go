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

const ordersCollection = "orders"

type OrderRepo struct {
	base *BaseRepo
}

func NewOrderRepo(base *BaseRepo) *OrderRepo {
	return &OrderRepo{base: base}
}

type orderItemDoc struct {
	MenuItemID string  `bson:"menu_item_id"`
	Quantity   int     `bson:"quantity"`
	Price      float64 `bson:"price"`
	Notes      string  `bson:"notes,omitempty"`
}

type orderDoc struct {
	ID                string         `bson:"_id"`
	TableNumber       string         `bson:"table_number"`
	Items             []orderItemDoc `bson:"items"`
	Status            string         `bson:"status"`
	CustomerName      string         `bson:"customer_name,omitempty"`
	AssignedWaiter    *string        `bson:"assigned_waiter,omitempty"`
	AssignedChef      *string        `bson:"assigned_chef,omitempty"`
	ChefName          string         `bson:"chef_name,omitempty"`
	EstimatedPrepTime int            `bson:"estimated_prep_time,omitempty"`
	StartTime         string         `bson:"start_time,omitempty"`
	CreatedAt         time.Time      `bson:"created_at"`
	UpdatedAt         time.Time      `bson:"updated_at"`
}

func orderItemsToDoc(items []restaurant.OrderItem) []orderItemDoc {
	docs := make([]orderItemDoc, 0, len(items))
	for _, item := range items {
		docs = append(docs, orderItemDoc{
			MenuItemID: item.MenuItemID.String(),
			Quantity:   item.Quantity,
			Price:      item.Price,
			Notes:      item.Notes,
		})
	}
	return docs
}

func orderItemsFromDoc(docs []orderItemDoc) []restaurant.OrderItem {
	items := make([]restaurant.OrderItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, restaurant.OrderItem{
			MenuItemID: parseUUID(doc.MenuItemID),
			Quantity:   doc.Quantity,
			Price:      doc.Price,
			Notes:      doc.Notes,
		})
	}
	return items
}

func orderToDoc(order *restaurant.Order) *orderDoc {
	return &orderDoc{
		ID:                order.ID.String(),
		TableNumber:       order.TableNumber,
		Items:             orderItemsToDoc(order.Items),
		Status:            order.Status,
		CustomerName:      order.CustomerName,
		AssignedWaiter:    uuidPtrToString(order.AssignedWaiter),
		AssignedChef:      uuidPtrToString(order.AssignedChef),
		ChefName:          order.ChefName,
		EstimatedPrepTime: order.EstimatedPrepTime,
		StartTime:         order.StartTime,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

func orderFromDoc(doc *orderDoc) *restaurant.Order {
	return &restaurant.Order{
		ID:                parseUUID(doc.ID),
		TableNumber:       doc.TableNumber,
		Items:             orderItemsFromDoc(doc.Items),
		Status:            doc.Status,
		CustomerName:      doc.CustomerName,
		AssignedWaiter:    stringToUUIDPtr(doc.AssignedWaiter),
		AssignedChef:      stringToUUIDPtr(doc.AssignedChef),
		ChefName:          doc.ChefName,
		EstimatedPrepTime: doc.EstimatedPrepTime,
		StartTime:         doc.StartTime,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
	}
}

func (r *OrderRepo) collection() *mongo.Collection {
	return r.base.GetDatabase().Collection(ordersCollection)
}

func (r *OrderRepo) Create(ctx context.Context, order *restaurant.Order) error {
	_, err := r.collection().InsertOne(ctx, orderToDoc(order))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: order %s", restaurant.ErrDuplicateID, order.ID)
		}
		return fmt.Errorf("cannot insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Order, error) {
	var doc orderDoc
	err := r.collection().FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot find order: %w", err)
	}
	return orderFromDoc(&doc), nil
}

func (r *OrderRepo) List(ctx context.Context) ([]*restaurant.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *OrderRepo) ListByTable(ctx context.Context, tableNumber string) ([]*restaurant.Order, error) {
	return r.list(ctx, bson.M{"table_number": tableNumber})
}

func (r *OrderRepo) ListByStatus(ctx context.Context, status string) ([]*restaurant.Order, error) {
	return r.list(ctx, bson.M{"status": status})
}

func (r *OrderRepo) list(ctx context.Context, filter bson.M) ([]*restaurant.Order, error) {
	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*restaurant.Order
	for cursor.Next(ctx) {
		var doc orderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("cannot decode order: %w", err)
		}
		orders = append(orders, orderFromDoc(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error listing orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepo) Save(ctx context.Context, order *restaurant.Order) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": order.ID.String()}, orderToDoc(order))
	if err != nil {
		return fmt.Errorf("cannot update order: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order not found")
	}
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("cannot delete order: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("order not found")
	}
	return nil
}
