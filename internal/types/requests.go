package types

import (
	"github.com/pageza/receiptify/backend/internal/models"
	"github.com/pageza/receiptify/backend/internal/shopping"
)

// CreateRecipeRequest represents a request to store a recipe
type CreateRecipeRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Servings    int                 `json:"servings" binding:"omitempty,min=1"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

// UpdateServingsRequest represents a request to rescale a recipe on the shopping list.
// Servings is a pointer so an explicit 0 reaches the service and is reported as
// invalid servings rather than a missing field.
type UpdateServingsRequest struct {
	Servings *int `json:"servings" binding:"required"`
}

// UpdateServingsResponse reports the rescaled recipe and the ingredients left as they were
type UpdateServingsResponse struct {
	Recipe      models.ListRecipe `json:"recipe"`
	NonScalable []string          `json:"non_scalable"`
}

// ScalePreviewResponse is the result of scaling a stored recipe without changing any list
type ScalePreviewResponse struct {
	RecipeID    string              `json:"recipe_id"`
	From        int                 `json:"from"`
	To          int                 `json:"to"`
	Ingredients []models.Ingredient `json:"ingredients"`
	NonScalable []string            `json:"non_scalable"`
}

// ShoppingListResponse is a generated shopping list, flat or grouped by category
type ShoppingListResponse struct {
	Organization string                    `json:"organization"`
	RecipeCount  int                       `json:"recipe_count"`
	Items        []models.ShoppingListItem `json:"items,omitempty"`
	Categories   []shopping.CategoryGroup  `json:"categories,omitempty"`
}

// InListResponse reports whether a recipe is on the shopping list
type InListResponse struct {
	InList bool `json:"in_list"`
}

// ShareResponse carries a time-limited link to an exported shopping list
type ShareResponse struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}
