package shopping

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/receiptify/backend/internal/models"
	"github.com/pageza/receiptify/backend/internal/portion"
)

var (
	ErrRecipeNotInList  = errors.New("recipe is not on the shopping list")
	ErrInvalidServings  = errors.New("servings must be a positive number")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// SnapshotStore persists a serialized recipe set under a key.
// LoadSnapshot returns ErrSnapshotNotFound when nothing is stored.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context, key string) ([]byte, error)
	SaveSnapshot(ctx context.Context, key string, data []byte) error
	DeleteSnapshot(ctx context.Context, key string) error
}

// SnapshotKey is the storage key of an anonymous list.
const SnapshotKey = "shopping-list-recipes"

// SnapshotKeyFor scopes SnapshotKey to an owner.
func SnapshotKeyFor(owner string) string {
	if owner == "" {
		return SnapshotKey
	}
	return SnapshotKey + ":" + owner
}

// Store is the ordered set of recipes on one user's shopping list.
// Mutations and saves are serialized by writeMu so the snapshot written last
// always reflects the latest mutation.
type Store struct {
	writeMu   sync.Mutex
	mu        sync.RWMutex
	recipes   []models.ListRecipe
	snapshots SnapshotStore
	key       string
	autoSave  bool
	listeners []func([]models.ListRecipe)
	logger    *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSnapshots sets where Save and Load keep the list.
func WithSnapshots(snapshots SnapshotStore, key string) Option {
	return func(s *Store) {
		s.snapshots = snapshots
		s.key = key
	}
}

// WithAutoSave saves after every mutation. Save failures are logged only.
func WithAutoSave(enabled bool) Option {
	return func(s *Store) {
		s.autoSave = enabled
	}
}

// WithListener registers fn to receive the recipe set after each mutation.
func WithListener(fn func([]models.ListRecipe)) Option {
	return func(s *Store) {
		s.listeners = append(s.listeners, fn)
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		recipes: []models.ListRecipe{},
		key:     SnapshotKey,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recipes returns a copy of the recipes on the list.
func (s *Store) Recipes() []models.ListRecipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecipes(s.recipes)
}

// Contains reports whether the recipe is on the list.
func (s *Store) Contains(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// Add appends recipe unless one with the same id is already present.
// It reports whether the list changed.
func (s *Store) Add(ctx context.Context, recipe models.ListRecipe) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.indexOf(recipe.ID) >= 0 {
		s.mu.Unlock()
		return false
	}
	s.recipes = append(s.recipes, cloneRecipe(recipe))
	s.mu.Unlock()

	s.changed(ctx)
	return true
}

// Remove drops the recipe with id. Removing an absent recipe is a no-op.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.recipes = append(s.recipes[:i:i], s.recipes[i+1:]...)
	s.mu.Unlock()

	s.changed(ctx)
	return true
}

// UpdateServings rescales the stored ingredients of a recipe from its
// current serving count (1 when unset) to servings.
func (s *Store) UpdateServings(ctx context.Context, id uuid.UUID, servings int) (portion.Result, error) {
	if servings <= 0 {
		return portion.Result{}, ErrInvalidServings
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return portion.Result{}, ErrRecipeNotInList
	}

	recipe := s.recipes[i]
	original := recipe.Servings
	if original <= 0 {
		original = 1
	}
	if !portion.ShouldScale(float64(original), float64(servings)) {
		s.mu.Unlock()
		return portion.Result{Scaled: cloneIngredients(recipe.Ingredients), NonScalable: []string{}}, nil
	}

	res := portion.Scale(float64(original), float64(servings), recipe.Ingredients)
	s.recipes[i] = models.ListRecipe{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Servings:    servings,
		Ingredients: res.Scaled,
	}
	s.mu.Unlock()

	s.logger.Debug("rescaled shopping list recipe",
		zap.String("recipe_id", id.String()),
		zap.Int("from", original),
		zap.Int("to", servings),
		zap.Strings("non_scalable", res.NonScalable),
	)
	s.changed(ctx)
	return portion.Result{Scaled: cloneIngredients(res.Scaled), NonScalable: res.NonScalable}, nil
}

// Clear empties the list.
func (s *Store) Clear(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.recipes = []models.ListRecipe{}
	s.mu.Unlock()

	s.notify()
	if s.autoSave && s.snapshots != nil {
		if err := s.snapshots.DeleteSnapshot(ctx, s.key); err != nil {
			s.logger.Warn("failed to delete shopping list snapshot", zap.String("key", s.key), zap.Error(err))
		}
	}
}

// Generate consolidates the current recipes into shopping-list items.
func (s *Store) Generate() []models.ShoppingListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Consolidate(s.recipes)
}

// Save writes the recipe set to the snapshot store.
func (s *Store) Save(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.save(ctx)
}

func (s *Store) save(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	s.mu.RLock()
	data, err := json.Marshal(s.recipes)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return s.snapshots.SaveSnapshot(ctx, s.key, data)
}

// Load replaces the recipe set with the stored snapshot. A missing,
// unreadable or corrupt snapshot leaves the list empty.
func (s *Store) Load(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	recipes := []models.ListRecipe{}
	defer func() {
		s.mu.Lock()
		s.recipes = recipes
		s.mu.Unlock()
	}()

	if s.snapshots == nil {
		return
	}

	data, err := s.snapshots.LoadSnapshot(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrSnapshotNotFound) {
			s.logger.Warn("failed to load shopping list snapshot", zap.String("key", s.key), zap.Error(err))
		}
		return
	}

	var stored []models.ListRecipe
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Warn("discarding corrupt shopping list snapshot", zap.String("key", s.key), zap.Error(err))
		return
	}
	if stored != nil {
		recipes = stored
	}
}

func (s *Store) changed(ctx context.Context) {
	s.notify()
	if !s.autoSave {
		return
	}
	if err := s.save(ctx); err != nil {
		s.logger.Warn("failed to save shopping list snapshot", zap.String("key", s.key), zap.Error(err))
	}
}

func (s *Store) notify() {
	if len(s.listeners) == 0 {
		return
	}
	recipes := s.Recipes()
	for _, fn := range s.listeners {
		fn(recipes)
	}
}

func (s *Store) indexOf(id uuid.UUID) int {
	for i, r := range s.recipes {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func cloneRecipes(in []models.ListRecipe) []models.ListRecipe {
	out := make([]models.ListRecipe, len(in))
	for i, r := range in {
		out[i] = cloneRecipe(r)
	}
	return out
}

func cloneRecipe(r models.ListRecipe) models.ListRecipe {
	r.Ingredients = cloneIngredients(r.Ingredients)
	return r
}

func cloneIngredients(in []models.Ingredient) []models.Ingredient {
	out := make([]models.Ingredient, len(in))
	copy(out, in)
	return out
}
