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

const tablesCollection = "tables"

type TableRepo struct {
	base *BaseRepo
}

func NewTableRepo(base *BaseRepo) *TableRepo {
	return &TableRepo{base: base}
}

type tableDoc struct {
	ID             string    `bson:"_id"`
	Number         string    `bson:"number"`
	Capacity       int       `bson:"capacity"`
	Status         string    `bson:"status"`
	AssignedWaiter *string   `bson:"assigned_waiter,omitempty"`
	CurrentOrder   *string   `bson:"current_order,omitempty"`
	Location       string    `bson:"location,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func tableToDoc(table *restaurant.Table) *tableDoc {
	return &tableDoc{
		ID:             table.ID.String(),
		Number:         table.Number,
		Capacity:       table.Capacity,
		Status:         table.Status,
		AssignedWaiter: uuidPtrToString(table.AssignedWaiter),
		CurrentOrder:   uuidPtrToString(table.CurrentOrder),
		Location:       table.Location,
		CreatedAt:      table.CreatedAt,
		UpdatedAt:      table.UpdatedAt,
	}
}

func tableFromDoc(doc *tableDoc) *restaurant.Table {
	return &restaurant.Table{
		ID:             parseUUID(doc.ID),
		Number:         doc.Number,
		Capacity:       doc.Capacity,
		Status:         doc.Status,
		AssignedWaiter: stringToUUIDPtr(doc.AssignedWaiter),
		CurrentOrder:   stringToUUIDPtr(doc.CurrentOrder),
		Location:       doc.Location,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

func (r *TableRepo) collection() *mongo.Collection {
	return r.base.GetDatabase().Collection(tablesCollection)
}

// EnsureIndexes creates the unique index on the table number.
func (r *TableRepo) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection().Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("cannot create tables index: %w", err)
	}
	return nil
}

func (r *TableRepo) Create(ctx context.Context, table *restaurant.Table) error {
	_, err := r.collection().InsertOne(ctx, tableToDoc(table))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: table %s", restaurant.ErrDuplicateID, table.ID)
		}
		return fmt.Errorf("cannot insert table: %w", err)
	}
	return nil
}

func (r *TableRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Table, error) {
	var doc tableDoc
	err := r.collection().FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot find table: %w", err)
	}
	return tableFromDoc(&doc), nil
}

func (r *TableRepo) GetByNumber(ctx context.Context, number string) (*restaurant.Table, error) {
	var doc tableDoc
	err := r.collection().FindOne(ctx, bson.M{"number": number}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot find table by number: %w", err)
	}
	return tableFromDoc(&doc), nil
}

func (r *TableRepo) List(ctx context.Context) ([]*restaurant.Table, error) {
	return r.list(ctx, bson.M{})
}

func (r *TableRepo) ListByStatus(ctx context.Context, status string) ([]*restaurant.Table, error) {
	return r.list(ctx, bson.M{"status": status})
}

func (r *TableRepo) list(ctx context.Context, filter bson.M) ([]*restaurant.Table, error) {
	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("cannot list tables: %w", err)
	}
	defer cursor.Close(ctx)

	var tables []*restaurant.Table
	for cursor.Next(ctx) {
		var doc tableDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("cannot decode table: %w", err)
		}
		tables = append(tables, tableFromDoc(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error listing tables: %w", err)
	}
	return tables, nil
}

func (r *TableRepo) Save(ctx context.Context, table *restaurant.Table) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": table.ID.String()}, tableToDoc(table))
	if err != nil {
		return fmt.Errorf("cannot update table: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("table not found")
	}
	return nil
}

func (r *TableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("cannot delete table: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("table not found")
	}
	return nil
}
