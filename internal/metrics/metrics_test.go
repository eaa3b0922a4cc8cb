package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorCountsRequestsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewCollector(prometheus.NewRegistry())

	router := gin.New()
	router.Use(m.GinMiddleware())
	router.GET("/recipes/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/recipes/a", "/recipes/b", "/nowhere"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/recipes/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestCollectorShoppingListMetrics(t *testing.T) {
	m := NewCollector(prometheus.NewRegistry())

	m.RecordMutation("add")
	m.RecordMutation("add")
	m.RecordMutation("clear")
	m.AddNonScalable(3)
	m.RecordExport("category", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.listMutationsTotal.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.listMutationsTotal.WithLabelValues("clear")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.nonScalableTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exportsTotal.WithLabelValues("category", "true")))
}

func TestCollectorHandler(t *testing.T) {
	m := NewCollector(prometheus.NewRegistry())
	m.ObserveListSize(2)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shopping_list_recipes_count 1")
}
