package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is one line of a recipe. Amount is free text ("2", "1/2",
// "1 1/2", "a pinch") and is the source of truth for display.
type Ingredient struct {
	ID     *int64 `json:"id,omitempty"`
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
}

// DisplayName is the ingredient name, or its type when the name is blank.
func (i Ingredient) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Type
}

// IngredientList stores ingredients as a JSON array column.
type IngredientList []Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported ingredient list type %T", value)
	}

	return json.Unmarshal(bytes, l)
}

// Recipe is a stored recipe with structured ingredients.
type Recipe struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Servings    int            `gorm:"not null;default:1" json:"servings"`
	Ingredients IngredientList `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
	UserID      uuid.UUID      `gorm:"type:varchar(36);index" json:"user_id"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns an id when the caller did not.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ListRecipe converts the stored recipe into the shape kept on a shopping list.
func (r *Recipe) ListRecipe() ListRecipe {
	ingredients := make([]Ingredient, len(r.Ingredients))
	copy(ingredients, r.Ingredients)
	return ListRecipe{
		ID:          r.ID,
		Title:       r.Title,
		Servings:    r.Servings,
		Ingredients: ingredients,
	}
}

// ListRecipe is a recipe as held on a shopping list. Its ingredients may have
// been rescaled away from the stored recipe.
type ListRecipe struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Servings    int          `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
}
