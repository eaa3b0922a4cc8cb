package models

import "time"

// ShoppingListItem is one consolidated line of a shopping list.
type ShoppingListItem struct {
	Name          string   `json:"name"`
	Amount        string   `json:"amount"`
	Unit          string   `json:"unit,omitempty"`
	Type          string   `json:"type,omitempty"`
	NumericAmount *float64 `json:"numeric_amount"`
	Checked       bool     `json:"checked"`
	Recipes       []string `json:"recipes"`
}

// ShoppingListSnapshot is the persisted blob of recipes on a user's list.
type ShoppingListSnapshot struct {
	Key       string    `gorm:"size:255;primarykey" json:"key"`
	Data      string    `gorm:"type:text;not null" json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ShoppingListSnapshot) TableName() string {
	return "shopping_list_snapshots"
}
