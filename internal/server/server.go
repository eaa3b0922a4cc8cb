// Package server assembles the HTTP engine: middleware, health, metrics and
// the versioned API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/receiptify/backend/config"
	"github.com/pageza/receiptify/backend/internal/api"
	"github.com/pageza/receiptify/backend/internal/database"
	"github.com/pageza/receiptify/backend/internal/metrics"
	"github.com/pageza/receiptify/backend/internal/middleware"
	"github.com/pageza/receiptify/backend/internal/service"
	apperrors "github.com/pageza/receiptify/backend/pkg/errors"
	"github.com/pageza/receiptify/backend/pkg/logger"
)

// Deps are the services the server routes to. Redis is optional; without it,
// or with a zero request limit, shopping list mutations are not rate limited.
type Deps struct {
	DB           *gorm.DB
	Redis        *redis.Client
	Auth         service.IAuthService
	Recipes      service.IRecipeService
	ShoppingList service.IShoppingListService
	Metrics      *metrics.Collector
	Logger       *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) *Server {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(deps.Logger),
		logger.GinMiddleware(deps.Logger),
		deps.Metrics.GinMiddleware(),
		middleware.CORS(cfg.CORSOrigins),
		middleware.ErrorHandler(deps.Logger),
	)

	checks := map[string]api.Pinger{
		"database": func(ctx context.Context) error { return database.Ping(ctx, deps.DB) },
	}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return deps.Redis.Ping(ctx).Err() }
	}
	router.GET("/health", api.NewHealthHandler(checks).Health)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.NewNotFoundError("route"))
	})

	v1 := router.Group("/api/v1", middleware.AuthMiddleware(deps.Auth))
	api.NewRecipeHandler(deps.Recipes).RegisterRoutes(v1)

	var mutating []gin.HandlerFunc
	if deps.Redis != nil && cfg.RateLimitRequests > 0 {
		limiter := middleware.NewShoppingListRateLimiter(deps.Redis, cfg.RateLimitRequests, cfg.RateLimitWindow, deps.Logger)
		mutating = append(mutating, limiter.RateLimitMiddleware())
	}
	api.NewShoppingListHandler(deps.ShoppingList).RegisterRoutes(v1, mutating...)

	return &Server{
		router: router,
		logger: deps.Logger,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
