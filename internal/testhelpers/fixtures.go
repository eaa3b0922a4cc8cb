package testhelpers

import (
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/pageza/receiptify/backend/internal/models"
)

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	recipe models.Recipe
}

// NewRecipeBuilder starts a recipe with a generated title and four servings
func NewRecipeBuilder(seed int64) *RecipeBuilder {
	faker := gofakeit.New(seed)
	return &RecipeBuilder{recipe: models.Recipe{
		ID:          uuid.New(),
		Title:       faker.Dessert(),
		Description: faker.Sentence(8),
		Servings:    4,
		Ingredients: models.IngredientList{},
	}}
}

// WithTitle sets the recipe title
func (rb *RecipeBuilder) WithTitle(title string) *RecipeBuilder {
	rb.recipe.Title = title
	return rb
}

// WithServings sets the number of servings
func (rb *RecipeBuilder) WithServings(servings int) *RecipeBuilder {
	rb.recipe.Servings = servings
	return rb
}

// WithIngredient appends an ingredient
func (rb *RecipeBuilder) WithIngredient(name, amount, unit, itemType string) *RecipeBuilder {
	rb.recipe.Ingredients = append(rb.recipe.Ingredients, models.Ingredient{
		Name:   name,
		Amount: amount,
		Unit:   unit,
		Type:   itemType,
	})
	return rb
}

// Build returns a copy of the recipe
func (rb *RecipeBuilder) Build() *models.Recipe {
	r := rb.recipe
	r.Ingredients = append(models.IngredientList{}, rb.recipe.Ingredients...)
	return &r
}
