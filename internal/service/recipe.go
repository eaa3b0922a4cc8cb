package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/receiptify/backend/internal/models"
	"github.com/pageza/receiptify/backend/internal/portion"
	"github.com/pageza/receiptify/backend/internal/types"
	apperrors "github.com/pageza/receiptify/backend/pkg/errors"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		db:     db,
		logger: logger,
	}
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	recipe.Title = strings.TrimSpace(recipe.Title)
	if recipe.Title == "" {
		return nil, apperrors.NewValidationError("title is required")
	}
	if recipe.Servings < 0 {
		return nil, apperrors.NewInvalidServingsError(recipe.Servings)
	}
	if recipe.Servings == 0 {
		recipe.Servings = 1
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = models.IngredientList{}
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, apperrors.NewDatabaseError("create recipe", err)
	}

	s.logger.Info("recipe created",
		zap.String("recipe_id", recipe.ID.String()),
		zap.Int("ingredients", len(recipe.Ingredients)),
	)
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(id.String())
		}
		return nil, apperrors.NewDatabaseError("load recipe", err)
	}
	return &recipe, nil
}

// ListRecipes lists recipes for a user or all users if userID is nil
func (s *RecipeService) ListRecipes(ctx context.Context, userID *uuid.UUID) ([]*models.Recipe, error) {
	var recipes []models.Recipe
	query := s.db.WithContext(ctx).Order("created_at")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, apperrors.NewDatabaseError("list recipes", err)
	}

	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// ScaleRecipe previews a stored recipe's ingredients at another serving count.
// Nothing is persisted.
func (s *RecipeService) ScaleRecipe(ctx context.Context, id uuid.UUID, servings int) (*types.ScalePreviewResponse, error) {
	if servings <= 0 {
		return nil, apperrors.NewInvalidServingsError(servings)
	}

	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	from := recipe.Servings
	if from <= 0 {
		from = 1
	}

	resp := &types.ScalePreviewResponse{
		RecipeID:    recipe.ID.String(),
		From:        from,
		To:          servings,
		Ingredients: recipe.ListRecipe().Ingredients,
		NonScalable: []string{},
	}
	if portion.ShouldScale(float64(from), float64(servings)) {
		res := portion.Scale(float64(from), float64(servings), resp.Ingredients)
		resp.Ingredients = res.Scaled
		resp.NonScalable = res.NonScalable
	}
	return resp, nil
}
