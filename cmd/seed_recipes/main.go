package main

import (
	"context"
	"flag"
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/receiptify/backend/config"
	"github.com/pageza/receiptify/backend/internal/database"
	"github.com/pageza/receiptify/backend/internal/models"
	"github.com/pageza/receiptify/backend/internal/service"
	"github.com/pageza/receiptify/backend/pkg/logger"
)

// pantry is drawn from when building seed recipes. Amounts mix whole numbers,
// fractions and free text so every formatting path shows up in the UI.
var pantry = []models.Ingredient{
	{Name: "all-purpose flour", Amount: "2", Unit: "cup", Type: "GRAINS"},
	{Name: "rolled oats", Amount: "1 1/2", Unit: "cup", Type: "GRAINS"},
	{Name: "rice", Amount: "1", Unit: "cup", Type: "GRAINS"},
	{Name: "milk", Amount: "3/4", Unit: "cup", Type: "DAIRY"},
	{Name: "butter", Amount: "2", Unit: "tbsp", Type: "DAIRY"},
	{Name: "eggs", Amount: "2", Type: "DAIRY"},
	{Name: "chicken breast", Amount: "1", Unit: "lb", Type: "PROTEINS"},
	{Name: "ground beef", Amount: "1/2", Unit: "lb", Type: "PROTEINS"},
	{Name: "salmon fillet", Amount: "2", Type: "PROTEINS"},
	{Name: "onion", Amount: "1", Type: "VEGETABLES"},
	{Name: "garlic", Amount: "3", Unit: "clove", Type: "VEGETABLES"},
	{Name: "carrots", Amount: "2", Type: "VEGETABLES"},
	{Name: "lemon", Amount: "1/2", Type: "FRUITS"},
	{Name: "apples", Amount: "3", Type: "FRUITS"},
	{Name: "olive oil", Amount: "1", Unit: "tbsp", Type: "OILS"},
	{Name: "salt", Amount: "to taste", Type: "HERBS"},
	{Name: "black pepper", Amount: "a pinch", Type: "HERBS"},
	{Name: "parsley", Amount: "1 bunch", Type: "HERBS"},
	{Name: "cinnamon", Amount: "1/4", Unit: "tsp", Type: "HERBS"},
	{Name: "baking powder", Amount: "1/3", Unit: "tsp", Type: "SWEETENERS"},
	{Name: "sugar", Amount: "2/3", Unit: "cup", Type: "SWEETENERS"},
}

func main() {
	count := flag.Int("count", 25, "number of recipes to create")
	seed := flag.Int64("seed", 42, "random seed for titles and ingredient picks")
	owner := flag.String("user", "", "owner user id (random when empty)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLog, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	db, err := database.Open(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, zapLog); err != nil {
		zapLog.Fatal("migration failed", zap.Error(err))
	}

	userID := uuid.New()
	if *owner != "" {
		if userID, err = uuid.Parse(*owner); err != nil {
			zapLog.Fatal("invalid user id", zap.Error(err))
		}
	}

	faker := gofakeit.New(*seed)
	recipes := service.NewRecipeService(db, zapLog)
	ctx := context.Background()

	for i := 0; i < *count; i++ {
		recipe, err := recipes.CreateRecipe(ctx, &models.Recipe{
			Title:       faker.Dessert(),
			Description: faker.Sentence(12),
			Servings:    faker.Number(1, 8),
			Ingredients: pickIngredients(faker, faker.Number(3, 8)),
			UserID:      userID,
		})
		if err != nil {
			zapLog.Error("failed to create recipe", zap.Int("index", i), zap.Error(err))
			continue
		}
		zapLog.Info("created recipe",
			zap.String("id", recipe.ID.String()),
			zap.String("title", recipe.Title),
			zap.Int("ingredients", len(recipe.Ingredients)),
		)
	}
}

func pickIngredients(faker *gofakeit.Faker, n int) models.IngredientList {
	order := make([]int, len(pantry))
	for i := range order {
		order[i] = i
	}
	faker.ShuffleInts(order)

	picked := make(models.IngredientList, 0, n)
	for _, idx := range order[:n] {
		picked = append(picked, pantry[idx])
	}
	return picked
}
