// Package portion rescales recipe ingredients to a new serving count.
package portion

import (
	"math"

	"github.com/pageza/receiptify/backend/internal/models"
	"github.com/pageza/receiptify/backend/internal/quantity"
)

// Result holds the rescaled ingredients and the display names of the ones
// whose amount could not be scaled.
type Result struct {
	Scaled      []models.Ingredient `json:"ingredients"`
	NonScalable []string            `json:"non_scalable"`
}

// ShouldScale reports whether a request to move from original to target
// servings needs any work. Callers check this before calling Scale.
func ShouldScale(original, target float64) bool {
	if math.IsNaN(target) || target <= 0 {
		return false
	}
	return target != original
}

// Scale multiplies every parseable amount by target/original. Ingredients
// without an amount, or with one that does not parse, keep their amount and
// are listed in NonScalable. The input slice is not modified.
func Scale(original, target float64, ingredients []models.Ingredient) Result {
	res := Result{
		Scaled:      make([]models.Ingredient, len(ingredients)),
		NonScalable: []string{},
	}

	ratio := 0.0
	if original > 0 {
		ratio = target / original
	}

	for i, ing := range ingredients {
		res.Scaled[i] = ing
		if ing.Amount == "" {
			res.NonScalable = append(res.NonScalable, ing.DisplayName())
			continue
		}
		if original <= 0 {
			res.NonScalable = append(res.NonScalable, ing.DisplayName())
			continue
		}

		v, ok := quantity.ParseAmount(ing.Amount)
		if !ok {
			res.NonScalable = append(res.NonScalable, ing.DisplayName())
			continue
		}
		if ratio == 1 {
			continue
		}
		res.Scaled[i].Amount = quantity.FormatAmount(v * ratio)
	}

	return res
}
