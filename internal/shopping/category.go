package shopping

import (
	"sort"
	"strings"

	"github.com/pageza/receiptify/backend/internal/models"
)

// OtherCategory collects items whose type matches no rule.
const OtherCategory = "Other"

// CategoryRule maps ingredient types containing Pattern to Category.
type CategoryRule struct {
	Pattern  string
	Category string
}

// DefaultCategoryRules are evaluated in order; the first match wins.
var DefaultCategoryRules = []CategoryRule{
	{"VEGETABLES", "Vegetables"},
	{"Vegetables", "Vegetables"},
	{"FRUITS", "Fruits"},
	{"Fruits", "Fruits"},
	{"PROTEINS", "Proteins"},
	{"Proteins", "Proteins"},
	{"DAIRY", "Dairy & Eggs"},
	{"Dairy", "Dairy & Eggs"},
	{"GRAINS", "Grains & Starches"},
	{"Grains", "Grains & Starches"},
	{"HERBS", "Herbs & Spices"},
	{"Herbs", "Herbs & Spices"},
	{"OILS", "Oils, Vinegars & Condiments"},
	{"Oils", "Oils, Vinegars & Condiments"},
	{"NUTS", "Nuts, Seeds & Dried Fruits"},
	{"Nuts", "Nuts, Seeds & Dried Fruits"},
	{"SWEETENERS", "Sweeteners & Baking"},
	{"Sweeteners", "Sweeteners & Baking"},
	{"BEVERAGES", "Beverages"},
	{"Beverages", "Beverages"},
	{"CANNED", "Canned & Jarred Goods"},
	{"Canned", "Canned & Jarred Goods"},
	{"FROZEN", "Frozen Foods"},
	{"Frozen", "Frozen Foods"},
	{"INTERNATIONAL", "International"},
	{"International", "International"},
}

// Classifier assigns shopping-list categories from ingredient types.
type Classifier struct {
	rules []CategoryRule
}

// NewClassifier returns a classifier over rules, or DefaultCategoryRules
// when rules is empty.
func NewClassifier(rules []CategoryRule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultCategoryRules
	}
	return &Classifier{rules: rules}
}

// Category returns the category of the first rule whose pattern is a
// substring of itemType, or OtherCategory.
func (c *Classifier) Category(itemType string) string {
	if itemType == "" {
		return OtherCategory
	}
	for _, r := range c.rules {
		if strings.Contains(itemType, r.Pattern) {
			return r.Category
		}
	}
	return OtherCategory
}

// CategoryGroup is the items of one category, in consolidation order.
type CategoryGroup struct {
	Category string                    `json:"category"`
	Items    []models.ShoppingListItem `json:"items"`
}

// GroupByCategory buckets items by category. Groups are sorted by name with
// OtherCategory last.
func (c *Classifier) GroupByCategory(items []models.ShoppingListItem) []CategoryGroup {
	byCategory := make(map[string][]models.ShoppingListItem)
	for _, item := range items {
		cat := c.Category(item.Type)
		byCategory[cat] = append(byCategory[cat], item)
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == OtherCategory {
			return false
		}
		if names[j] == OtherCategory {
			return true
		}
		return names[i] < names[j]
	})

	groups := make([]CategoryGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, CategoryGroup{Category: name, Items: byCategory[name]})
	}
	return groups
}

// SortAlphabetically returns a copy of items ordered by name.
func SortAlphabetically(items []models.ShoppingListItem) []models.ShoppingListItem {
	sorted := make([]models.ShoppingListItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	return sorted
}
