package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/receiptify/backend/internal/models"
	"github.com/pageza/receiptify/backend/internal/service"
	"github.com/pageza/receiptify/backend/internal/types"
	apperrors "github.com/pageza/receiptify/backend/pkg/errors"
)

type RecipeHandler struct {
	recipes service.IRecipeService
}

func NewRecipeHandler(recipes service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/scale", h.ScaleRecipe)
	}
}

// ListRecipes returns every recipe, or only the caller's with ?mine=true
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	owner := &userID
	if mine, _ := strconv.ParseBool(c.Query("mine")); !mine {
		owner = nil
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), owner)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidationError(err.Error()))
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), &models.Recipe{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Servings:    req.Servings,
		Ingredients: models.IngredientList(req.Ingredients),
		UserID:      userID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// ScaleRecipe previews a recipe at ?servings=N without touching any shopping list
func (h *RecipeHandler) ScaleRecipe(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}

	servings, err := strconv.Atoi(c.Query("servings"))
	if err != nil {
		_ = c.Error(apperrors.NewBadRequestError("servings must be a whole number"))
		return
	}

	preview, err := h.recipes.ScaleRecipe(c.Request.Context(), id, servings)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, preview)
}
