package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/pageza/receiptify/backend/pkg/errors"
)

// ErrorHandler renders the last error a handler attached with c.Error as a
// JSON error body, unless the handler already wrote a response.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperrors.Wrap(c.Errors.Last().Err, "An unexpected error occurred")
		if appErr.StatusCode() >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("code", string(appErr.Code)),
				zap.Error(appErr.Unwrap()),
			)
		}
		c.JSON(appErr.StatusCode(), apperrors.ToErrorResponse(appErr))
	}
}

// Recovery turns a panic into a JSON 500 response
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		abortWithError(c, apperrors.NewInternalError(""))
	})
}

func abortWithError(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.StatusCode(), apperrors.ToErrorResponse(err))
}
