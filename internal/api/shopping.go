package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/receiptify/backend/internal/service"
	"github.com/pageza/receiptify/backend/internal/shopping"
	"github.com/pageza/receiptify/backend/internal/types"
	apperrors "github.com/pageza/receiptify/backend/pkg/errors"
)

// ShoppingListHandler serves the caller's shopping list
type ShoppingListHandler struct {
	shoppingList service.IShoppingListService
}

func NewShoppingListHandler(shoppingList service.IShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{shoppingList: shoppingList}
}

// RegisterRoutes mounts the shopping list routes. mutating runs ahead of
// every route that changes the list.
func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup, mutating ...gin.HandlerFunc) {
	with := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		chain := append([]gin.HandlerFunc{}, mutating...)
		return append(chain, handler)
	}

	list := router.Group("/shopping-list")
	{
		list.GET("", h.GetShoppingList)
		list.DELETE("", with(h.ClearShoppingList)...)
		list.GET("/export", h.ExportShoppingList)
		list.POST("/export/share", h.ShareShoppingList)

		list.GET("/recipes", h.ListRecipes)
		list.GET("/recipes/:id", h.InList)
		list.POST("/recipes/:id", with(h.AddRecipe)...)
		list.DELETE("/recipes/:id", with(h.RemoveRecipe)...)
		list.PUT("/recipes/:id/servings", with(h.UpdateServings)...)
	}
}

// GetShoppingList consolidates the list, grouped by ?organize=category (default) or alphabetical
func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	org := shopping.ParseOrganization(c.Query("organize"))
	c.JSON(http.StatusOK, h.shoppingList.Generate(c.Request.Context(), userID, org))
}

func (h *ShoppingListHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": h.shoppingList.ListRecipes(c.Request.Context(), userID)})
}

func (h *ShoppingListHandler) InList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, types.InListResponse{
		InList: h.shoppingList.InList(c.Request.Context(), userID, recipeID),
	})
}

// AddRecipe answers 201 when the recipe was added and 200 when it was already there
func (h *ShoppingListHandler) AddRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}

	added, err := h.shoppingList.AddRecipe(c.Request.Context(), userID, recipeID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, types.InListResponse{InList: true})
}

// RemoveRecipe answers 204 whether or not the recipe was on the list
func (h *ShoppingListHandler) RemoveRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}

	h.shoppingList.RemoveRecipe(c.Request.Context(), userID, recipeID)
	c.Status(http.StatusNoContent)
}

func (h *ShoppingListHandler) UpdateServings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(c)
	if !ok {
		return
	}

	var req types.UpdateServingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidationError(err.Error()))
		return
	}

	resp, err := h.shoppingList.UpdateServings(c.Request.Context(), userID, recipeID, *req.Servings)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShoppingListHandler) ClearShoppingList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	h.shoppingList.Clear(c.Request.Context(), userID)
	c.Status(http.StatusNoContent)
}

// ExportShoppingList downloads the list as plain text
func (h *ShoppingListHandler) ExportShoppingList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	org := shopping.ParseOrganization(c.Query("organize"))
	text := h.shoppingList.Export(c.Request.Context(), userID, org)
	c.Header("Content-Disposition", `attachment; filename="shopping-list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// ShareShoppingList uploads the exported list and returns a time-limited link to it
func (h *ShoppingListHandler) ShareShoppingList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	org := shopping.ParseOrganization(c.Query("organize"))
	resp, err := h.shoppingList.Share(c.Request.Context(), userID, org)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
