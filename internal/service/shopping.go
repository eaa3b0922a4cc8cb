package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/receiptify/backend/internal/metrics"
	"github.com/pageza/receiptify/backend/internal/models"
	"github.com/pageza/receiptify/backend/internal/shopping"
	"github.com/pageza/receiptify/backend/internal/types"
	apperrors "github.com/pageza/receiptify/backend/pkg/errors"
)

const exportContentType = "text/plain; charset=utf-8"

// ShoppingListConfig tunes a ShoppingListService
type ShoppingListConfig struct {
	AutoSave     bool
	ShareLinkTTL time.Duration
	Categories   []shopping.CategoryRule
}

// ShoppingListService keeps one shopping.Store per user, loaded from the
// snapshot store on first use.
type ShoppingListService struct {
	recipes    RecipeSource
	snapshots  shopping.SnapshotStore
	exports    ExportStorage
	classifier *shopping.Classifier
	metrics    *metrics.Collector
	logger     *zap.Logger
	cfg        ShoppingListConfig

	mu     sync.Mutex
	stores map[uuid.UUID]*shopping.Store
}

// NewShoppingListService creates a new ShoppingListService instance. exports
// may be nil, in which case Share reports the service as unavailable.
func NewShoppingListService(
	recipes RecipeSource,
	snapshots shopping.SnapshotStore,
	exports ExportStorage,
	collector *metrics.Collector,
	logger *zap.Logger,
	cfg ShoppingListConfig,
) *ShoppingListService {
	if cfg.ShareLinkTTL <= 0 {
		cfg.ShareLinkTTL = 24 * time.Hour
	}
	return &ShoppingListService{
		recipes:    recipes,
		snapshots:  snapshots,
		exports:    exports,
		classifier: shopping.NewClassifier(cfg.Categories),
		metrics:    collector,
		logger:     logger,
		cfg:        cfg,
		stores:     make(map[uuid.UUID]*shopping.Store),
	}
}

func (s *ShoppingListService) store(ctx context.Context, userID uuid.UUID) *shopping.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.stores[userID]; ok {
		return st
	}

	st := shopping.NewStore(
		shopping.WithSnapshots(s.snapshots, shopping.SnapshotKeyFor(userID.String())),
		shopping.WithAutoSave(s.cfg.AutoSave),
		shopping.WithLogger(s.logger.With(zap.String("user_id", userID.String()))),
	)
	st.Load(ctx)
	s.stores[userID] = st
	return st
}

// persist saves st after a mutation when the store does not save on its own
func (s *ShoppingListService) persist(ctx context.Context, st *shopping.Store) {
	if s.cfg.AutoSave {
		return
	}
	if err := st.Save(ctx); err != nil {
		s.logger.Warn("failed to save shopping list", zap.Error(err))
	}
}

// ListRecipes returns the recipes on the user's list in the order they were added
func (s *ShoppingListService) ListRecipes(ctx context.Context, userID uuid.UUID) []models.ListRecipe {
	return s.store(ctx, userID).Recipes()
}

// InList reports whether the recipe is on the user's list
func (s *ShoppingListService) InList(ctx context.Context, userID, recipeID uuid.UUID) bool {
	return s.store(ctx, userID).Contains(recipeID)
}

// AddRecipe adds a stored recipe to the user's list. It reports false when the
// recipe was already there.
func (s *ShoppingListService) AddRecipe(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return false, err
	}

	st := s.store(ctx, userID)
	added := st.Add(ctx, recipe.ListRecipe())
	if added {
		s.metrics.RecordMutation("add")
		s.persist(ctx, st)
	}
	return added, nil
}

// RemoveRecipe drops a recipe from the user's list. Removing an absent recipe is a no-op.
func (s *ShoppingListService) RemoveRecipe(ctx context.Context, userID, recipeID uuid.UUID) bool {
	st := s.store(ctx, userID)
	removed := st.Remove(ctx, recipeID)
	if removed {
		s.metrics.RecordMutation("remove")
		s.persist(ctx, st)
	}
	return removed
}

// UpdateServings rescales a recipe already on the user's list
func (s *ShoppingListService) UpdateServings(ctx context.Context, userID, recipeID uuid.UUID, servings int) (*types.UpdateServingsResponse, error) {
	st := s.store(ctx, userID)

	res, err := st.UpdateServings(ctx, recipeID, servings)
	switch {
	case errors.Is(err, shopping.ErrInvalidServings):
		return nil, apperrors.NewInvalidServingsError(servings)
	case errors.Is(err, shopping.ErrRecipeNotInList):
		return nil, apperrors.NewRecipeNotInListError(recipeID.String())
	case err != nil:
		return nil, apperrors.Wrap(err, "failed to update servings")
	}

	s.metrics.RecordMutation("update_servings")
	s.persist(ctx, st)
	s.metrics.AddNonScalable(len(res.NonScalable))

	resp := &types.UpdateServingsResponse{NonScalable: res.NonScalable}
	for _, r := range st.Recipes() {
		if r.ID == recipeID {
			resp.Recipe = r
			break
		}
	}
	return resp, nil
}

// Clear empties the user's list
func (s *ShoppingListService) Clear(ctx context.Context, userID uuid.UUID) {
	st := s.store(ctx, userID)
	st.Clear(ctx)
	s.metrics.RecordMutation("clear")
	s.persist(ctx, st)
}

// Generate consolidates the user's list, grouped by category or sorted by name
func (s *ShoppingListService) Generate(ctx context.Context, userID uuid.UUID, org shopping.Organization) *types.ShoppingListResponse {
	st := s.store(ctx, userID)
	recipes := st.Recipes()
	items := shopping.Consolidate(recipes)
	s.metrics.ObserveListSize(len(recipes))

	resp := &types.ShoppingListResponse{
		Organization: string(org),
		RecipeCount:  len(recipes),
	}
	if org == shopping.Alphabetical {
		resp.Items = shopping.SortAlphabetically(items)
	} else {
		resp.Categories = s.classifier.GroupByCategory(items)
	}
	return resp
}

// Export renders the user's list as plain text
func (s *ShoppingListService) Export(ctx context.Context, userID uuid.UUID, org shopping.Organization) string {
	text := s.classifier.ExportText(s.store(ctx, userID).Generate(), org)
	s.metrics.RecordExport(string(org), false)
	return text
}

// Share uploads the plain-text export and returns a time-limited link to it
func (s *ShoppingListService) Share(ctx context.Context, userID uuid.UUID, org shopping.Organization) (*types.ShareResponse, error) {
	if s.exports == nil {
		return nil, apperrors.NewAppError(apperrors.CodeServiceUnavailable, "Sharing is not configured", "")
	}

	text := s.classifier.ExportText(s.store(ctx, userID).Generate(), org)
	key := fmt.Sprintf("shopping-lists/%s/%s.txt", userID, uuid.New())

	if err := s.exports.UploadObject(ctx, key, []byte(text), exportContentType); err != nil {
		return nil, apperrors.NewExternalServiceError("object storage", err)
	}
	url, err := s.exports.GeneratePresignedURL(ctx, key, s.cfg.ShareLinkTTL)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("object storage", err)
	}

	s.metrics.RecordExport(string(org), true)
	s.logger.Info("shopping list shared",
		zap.String("user_id", userID.String()),
		zap.String("object_key", key),
	)
	return &types.ShareResponse{URL: url, ExpiresIn: int64(s.cfg.ShareLinkTTL.Seconds())}, nil
}
