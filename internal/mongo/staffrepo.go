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

const staffCollection = "staff"

type StaffRepo struct {
	base *BaseRepo
}

func NewStaffRepo(base *BaseRepo) *StaffRepo {
	return &StaffRepo{base: base}
}

type staffDoc struct {
	ID        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Password  string    `bson:"password"`
	Role      string    `bson:"role"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func staffToDoc(staff *restaurant.Staff) *staffDoc {
	return &staffDoc{
		ID:        staff.ID.String(),
		Username:  staff.Username,
		Password:  staff.Password,
		Role:      staff.Role,
		Name:      staff.Name,
		CreatedAt: staff.CreatedAt,
		UpdatedAt: staff.UpdatedAt,
	}
}

func staffFromDoc(doc *staffDoc) *restaurant.Staff {
	return &restaurant.Staff{
		ID:        parseUUID(doc.ID),
		Username:  doc.Username,
		Password:  doc.Password,
		Role:      doc.Role,
		Name:      doc.Name,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func (r *StaffRepo) collection() *mongo.Collection {
	return r.base.GetDatabase().Collection(staffCollection)
}

// EnsureIndexes creates the unique index on username.
func (r *StaffRepo) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection().Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("cannot create staff index: %w", err)
	}
	return nil
}

func (r *StaffRepo) Create(ctx context.Context, staff *restaurant.Staff) error {
	_, err := r.collection().InsertOne(ctx, staffToDoc(staff))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: staff %s", restaurant.ErrDuplicateID, staff.ID)
		}
		return fmt.Errorf("cannot insert staff: %w", err)
	}
	return nil
}

func (r *StaffRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Staff, error) {
	var doc staffDoc
	err := r.collection().FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot find staff: %w", err)
	}
	return staffFromDoc(&doc), nil
}

func (r *StaffRepo) GetByUsername(ctx context.Context, username string) (*restaurant.Staff, error) {
	var doc staffDoc
	err := r.collection().FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot find staff by username: %w", err)
	}
	return staffFromDoc(&doc), nil
}

func (r *StaffRepo) List(ctx context.Context) ([]*restaurant.Staff, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list staff: %w", err)
	}
	defer cursor.Close(ctx)

	var members []*restaurant.Staff
	for cursor.Next(ctx) {
		var doc staffDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("cannot decode staff: %w", err)
		}
		members = append(members, staffFromDoc(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error listing staff: %w", err)
	}
	return members, nil
}

func (r *StaffRepo) Save(ctx context.Context, staff *restaurant.Staff) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": staff.ID.String()}, staffToDoc(staff))
	if err != nil {
		return fmt.Errorf("cannot update staff: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("staff not found")
	}
	return nil
}

func (r *StaffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("cannot delete staff: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("staff not found")
	}
	return nil
}
