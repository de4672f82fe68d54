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

const menuItemsCollection = "menu_items"

type MenuItemRepo struct {
	base *BaseRepo
}

func NewMenuItemRepo(base *BaseRepo) *MenuItemRepo {
	return &MenuItemRepo{base: base}
}

// menuItemDoc keeps ingredients and allergens as JSON text columns so
// legacy documents with free-form content still decode.
type menuItemDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description,omitempty"`
	Price       float64   `bson:"price"`
	Category    string    `bson:"category"`
	ImageURL    string    `bson:"image_url,omitempty"`
	Ingredients string    `bson:"ingredients"`
	Allergens   string    `bson:"allergens"`
	Available   bool      `bson:"available"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func menuItemToDoc(item *restaurant.MenuItem) *menuItemDoc {
	return &menuItemDoc{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		ImageURL:    item.ImageURL,
		Ingredients: encodeStringList(item.Ingredients),
		Allergens:   encodeStringList(item.Allergens),
		Available:   item.Available,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func menuItemFromDoc(doc *menuItemDoc) *restaurant.MenuItem {
	return &restaurant.MenuItem{
		ID:          parseUUID(doc.ID),
		Name:        doc.Name,
		Description: doc.Description,
		Price:       doc.Price,
		Category:    doc.Category,
		ImageURL:    doc.ImageURL,
		Ingredients: decodeStringList(doc.Ingredients),
		Allergens:   decodeStringList(doc.Allergens),
		Available:   doc.Available,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func (r *MenuItemRepo) collection() *mongo.Collection {
	return r.base.GetDatabase().Collection(menuItemsCollection)
}

func (r *MenuItemRepo) Create(ctx context.Context, item *restaurant.MenuItem) error {
	_, err := r.collection().InsertOne(ctx, menuItemToDoc(item))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: menu item %s", restaurant.ErrDuplicateID, item.ID)
		}
		return fmt.Errorf("cannot insert menu item: %w", err)
	}
	return nil
}

func (r *MenuItemRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.MenuItem, error) {
	var doc menuItemDoc
	err := r.collection().FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot find menu item: %w", err)
	}
	return menuItemFromDoc(&doc), nil
}

func (r *MenuItemRepo) List(ctx context.Context) ([]*restaurant.MenuItem, error) {
	return r.list(ctx, bson.M{})
}

func (r *MenuItemRepo) ListByCategory(ctx context.Context, category string) ([]*restaurant.MenuItem, error) {
	return r.list(ctx, bson.M{"category": category})
}

func (r *MenuItemRepo) list(ctx context.Context, filter bson.M) ([]*restaurant.MenuItem, error) {
	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("cannot list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*restaurant.MenuItem
	for cursor.Next(ctx) {
		var doc menuItemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("cannot decode menu item: %w", err)
		}
		items = append(items, menuItemFromDoc(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error listing menu items: %w", err)
	}
	return items, nil
}

func (r *MenuItemRepo) Save(ctx context.Context, item *restaurant.MenuItem) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": item.ID.String()}, menuItemToDoc(item))
	if err != nil {
		return fmt.Errorf("cannot update menu item: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("menu item not found")
	}
	return nil
}

func (r *MenuItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("cannot delete menu item: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("menu item not found")
	}
	return nil
}
