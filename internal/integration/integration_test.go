// Package integration runs the whole HTTP stack against Postgres and Redis
// containers.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/receiptify/backend/config"
	"github.com/pageza/receiptify/backend/internal/metrics"
	"github.com/pageza/receiptify/backend/internal/models"
	"github.com/pageza/receiptify/backend/internal/server"
	"github.com/pageza/receiptify/backend/internal/service"
	"github.com/pageza/receiptify/backend/internal/shopping"
	"github.com/pageza/receiptify/backend/internal/testhelpers"
	"github.com/pageza/receiptify/backend/internal/types"
)

const jwtSecret = "integration-secret"

// newServer builds a server the way cmd/api does. Calling it twice over the
// same database simulates a restart.
func newServer(t *testing.T, db *gorm.DB, rdb *redis.Client, rateLimit int) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment:       config.Test,
		ServerHost:        "localhost",
		ServerPort:        "0",
		CORSOrigins:       []string{"http://localhost:5173"},
		JWTSecret:         jwtSecret,
		RateLimitRequests: rateLimit,
		RateLimitWindow:   time.Minute,
	}
	collector := metrics.NewCollector(prometheus.NewRegistry())
	recipes := service.NewRecipeService(db, zap.NewNop())

	return server.New(cfg, server.Deps{
		DB:      db,
		Redis:   rdb,
		Auth:    service.NewAuthService(jwtSecret, time.Hour),
		Recipes: recipes,
		ShoppingList: service.NewShoppingListService(recipes, shopping.NewDBSnapshotStore(db), nil, collector, zap.NewNop(),
			service.ShoppingListConfig{AutoSave: true}),
		Metrics: collector,
		Logger:  zap.NewNop(),
	}).Handler()
}

func bearer(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := service.NewAuthService(jwtSecret, time.Hour).GenerateToken(&types.TokenClaims{UserID: userID})
	require.NoError(t, err)
	return "Bearer " + token
}

func call(t *testing.T, h http.Handler, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestShoppingListFlow(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	rdb := testhelpers.SetupRedis(t)
	h := newServer(t, db, rdb, 100)
	auth := bearer(t, uuid.New())

	w := call(t, h, http.MethodPost, "/api/v1/recipes", auth, types.CreateRecipeRequest{
		Title:    "Pancakes",
		Servings: 2,
		Ingredients: []models.Ingredient{
			{Name: "flour", Amount: "1", Unit: "cup", Type: "GRAINS"},
			{Name: "milk", Amount: "3/4", Unit: "cup", Type: "DAIRY"},
			{Name: "salt", Amount: "a pinch", Type: "HERBS"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Recipe models.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	listPath := "/api/v1/shopping-list/recipes/" + created.Recipe.ID.String()

	w = call(t, h, http.MethodPost, listPath, auth, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "99", w.Header().Get("X-RateLimit-Remaining"))

	w = call(t, h, http.MethodPut, listPath+"/servings", auth, map[string]int{"servings": 3})
	require.Equal(t, http.StatusOK, w.Code)

	// a fresh server over the same database picks the list back up
	restarted := newServer(t, db, rdb, 100)
	w = call(t, restarted, http.MethodGet, "/api/v1/shopping-list?organize=alphabetical", auth, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list types.ShoppingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 3)
	assert.Equal(t, "flour", list.Items[0].Name)
	assert.Equal(t, "1 1/2", list.Items[0].Amount)
	assert.Equal(t, "milk", list.Items[1].Name)
	assert.Equal(t, "1 1/8", list.Items[1].Amount)
	assert.Equal(t, "a pinch", list.Items[2].Amount)
}

func TestShoppingListMutationsAreRateLimited(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	rdb := testhelpers.SetupRedis(t)
	h := newServer(t, db, rdb, 2)
	auth := bearer(t, uuid.New())

	for i := 0; i < 2; i++ {
		w := call(t, h, http.MethodDelete, "/api/v1/shopping-list", auth, nil)
		require.Equal(t, http.StatusNoContent, w.Code)
	}
	w := call(t, h, http.MethodDelete, "/api/v1/shopping-list", auth, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// reads are not limited
	w = call(t, h, http.MethodGet, "/api/v1/shopping-list", auth, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
