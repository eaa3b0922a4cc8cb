// Package shopping builds consolidated shopping lists from the recipes a
// user has added, and keeps that recipe set between sessions.
package shopping

import (
	"github.com/pageza/receiptify/backend/internal/models"
	"github.com/pageza/receiptify/backend/internal/quantity"
)

// ConsolidationKey identifies which ingredients share a shopping-list line.
// Amountless ingredients cannot be summed, so their unit is ignored.
func ConsolidationKey(ing models.Ingredient) string {
	if ing.Amount == "" {
		return ing.Name
	}
	return ing.Name + "|" + ing.Unit
}

// Consolidate merges the ingredients of recipes into shopping-list items in
// first-seen order. Numeric amounts with the same key are summed; anything
// that cannot be summed is joined with ", " so no quantity is lost.
func Consolidate(recipes []models.ListRecipe) []models.ShoppingListItem {
	index := make(map[string]int)
	items := []models.ShoppingListItem{}

	for _, recipe := range recipes {
		for _, ing := range recipe.Ingredients {
			key := ConsolidationKey(ing)
			n, numeric := quantity.ParseAmount(ing.Amount)

			pos, seen := index[key]
			if !seen {
				item := models.ShoppingListItem{
					Name:    ing.Name,
					Amount:  ing.Amount,
					Unit:    ing.Unit,
					Type:    ing.Type,
					Recipes: []string{recipe.Title},
				}
				if numeric {
					v := n
					item.NumericAmount = &v
				}
				index[key] = len(items)
				items = append(items, item)
				continue
			}

			item := &items[pos]
			switch {
			case numeric && item.NumericAmount != nil:
				total := *item.NumericAmount + n
				item.NumericAmount = &total
				item.Amount = quantity.FormatAmount(total)
			case ing.Amount != "":
				if item.Amount == "" {
					item.Amount = ing.Amount
				} else {
					item.Amount = item.Amount + ", " + ing.Amount
				}
				item.NumericAmount = nil
			}
			item.Recipes = append(item.Recipes, recipe.Title)
		}
	}

	return items
}
