// Package api holds the HTTP handlers for recipes and shopping lists.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/receiptify/backend/internal/middleware"
	apperrors "github.com/pageza/receiptify/backend/pkg/errors"
)

// currentUser returns the authenticated user, recording an error on c when
// the request is anonymous.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		_ = c.Error(apperrors.NewUnauthorizedError("user not authenticated"))
	}
	return userID, ok
}

func recipeIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperrors.NewBadRequestError("invalid recipe id"))
		return uuid.Nil, false
	}
	return id, true
}
