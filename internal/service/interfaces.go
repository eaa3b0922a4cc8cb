package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/receiptify/backend/internal/models"
	"github.com/pageza/receiptify/backend/internal/shopping"
	"github.com/pageza/receiptify/backend/internal/types"
)

// IAuthService defines the interface for token operations
type IAuthService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context, userID *uuid.UUID) ([]*models.Recipe, error)
	ScaleRecipe(ctx context.Context, id uuid.UUID, servings int) (*types.ScalePreviewResponse, error)
}

// IShoppingListService defines the interface for per-user shopping list operations
type IShoppingListService interface {
	ListRecipes(ctx context.Context, userID uuid.UUID) []models.ListRecipe
	InList(ctx context.Context, userID, recipeID uuid.UUID) bool
	AddRecipe(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	RemoveRecipe(ctx context.Context, userID, recipeID uuid.UUID) bool
	UpdateServings(ctx context.Context, userID, recipeID uuid.UUID, servings int) (*types.UpdateServingsResponse, error)
	Clear(ctx context.Context, userID uuid.UUID)
	Generate(ctx context.Context, userID uuid.UUID, org shopping.Organization) *types.ShoppingListResponse
	Export(ctx context.Context, userID uuid.UUID, org shopping.Organization) string
	Share(ctx context.Context, userID uuid.UUID, org shopping.Organization) (*types.ShareResponse, error)
}

// RecipeSource looks up the recipes a user adds to a shopping list
type RecipeSource interface {
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
}

// ExportStorage stores exported shopping lists and hands out links to them
type ExportStorage interface {
	UploadObject(ctx context.Context, objectKey string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}
