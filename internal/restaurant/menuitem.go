package restaurant

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Menu item categories.
const (
	CategoryAppetizer = "appetizer"
	CategoryMain      = "main"
	CategoryDessert   = "dessert"
	CategoryBeverage  = "beverage"
)

var MenuCategories = []string{
	CategoryAppetizer,
	CategoryMain,
	CategoryDessert,
	CategoryBeverage,
}

type MenuItem struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Category    string    `json:"category" bson:"category"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Ingredients []string  `json:"ingredients" bson:"ingredients"`
	Allergens   []string  `json:"allergens" bson:"allergens"`
	Available   bool      `json:"available" bson:"available"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func (m *MenuItem) GetID() uuid.UUID {
	return m.ID
}

func (m *MenuItem) ResourceType() string {
	return "menu-item"
}

func (m *MenuItem) SetID(id uuid.UUID) {
	m.ID = id
}

func NewMenuItem() *MenuItem {
	return &MenuItem{
		ID:          apt.GenerateNewID(),
		Available:   true,
		Ingredients: []string{},
		Allergens:   []string{},
	}
}

func (m *MenuItem) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = apt.GenerateNewID()
	}
}

func (m *MenuItem) BeforeCreate() {
	m.EnsureID()
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()
}

func (m *MenuItem) BeforeUpdate() {
	m.UpdatedAt = time.Now()
}

// ValidCategory reports whether the category is one of the known menu
// categories.
func ValidCategory(category string) bool {
	for _, c := range MenuCategories {
		if c == category {
			return true
		}
	}
	return false
}
