package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/pageza/receiptify/backend/internal/middleware"
	"github.com/pageza/receiptify/backend/internal/testhelpers"
	apperrors "github.com/pageza/receiptify/backend/pkg/errors"
)

func rateLimitedRouter(limiter *middleware.RateLimiter, userID uuid.UUID) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	router.Use(limiter.RateLimitMiddleware())
	router.POST("/shopping-list/recipes/:id", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return router
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	limiter := middleware.NewShoppingListRateLimiter(client, 1, time.Minute, zap.NewNop())
	router := rateLimitedRouter(limiter, uuid.New())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/shopping-list/recipes/r1", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
	}
}

func TestRateLimiterEnforcesLimit(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	limiter := middleware.NewShoppingListRateLimiter(client, 2, time.Minute, zap.NewNop())

	alice := rateLimitedRouter(limiter, uuid.New())
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		alice.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/shopping-list/recipes/r1", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(1-i), w.Header().Get("X-RateLimit-Remaining"))
	}

	w := httptest.NewRecorder()
	alice.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/shopping-list/recipes/r1", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, apperrors.CodeTooManyRequests, decodeError(t, w).Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// another user has their own window
	bob := rateLimitedRouter(limiter, uuid.New())
	w = httptest.NewRecorder()
	bob.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/shopping-list/recipes/r1", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}
