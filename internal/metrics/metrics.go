package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector handles Prometheus metrics collection
type Collector struct {
	gatherer prometheus.Gatherer

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Shopping list metrics
	listMutationsTotal *prometheus.CounterVec
	listRecipes        prometheus.Histogram
	nonScalableTotal   prometheus.Counter
	exportsTotal       *prometheus.CounterVec
}

// NewCollector registers the application metrics on reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		gatherer: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		listMutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopping_list_mutations_total",
				Help: "Total number of shopping list changes by operation",
			},
			[]string{"operation"},
		),
		listRecipes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shopping_list_recipes",
				Help:    "Number of recipes on a shopping list when it is generated",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
			},
		),
		nonScalableTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shopping_list_non_scalable_ingredients_total",
				Help: "Total number of ingredients left unscaled by a servings change",
			},
		),
		exportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopping_list_exports_total",
				Help: "Total number of shopping list exports",
			},
			[]string{"organization", "shared"},
		),
	}
}

// GinMiddleware records request counts and latencies by route.
func (m *Collector) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Collector) RecordMutation(operation string) {
	m.listMutationsTotal.WithLabelValues(operation).Inc()
}

func (m *Collector) ObserveListSize(recipes int) {
	m.listRecipes.Observe(float64(recipes))
}

func (m *Collector) AddNonScalable(n int) {
	m.nonScalableTotal.Add(float64(n))
}

func (m *Collector) RecordExport(organization string, shared bool) {
	m.exportsTotal.WithLabelValues(organization, strconv.FormatBool(shared)).Inc()
}
