package shopping

import (
	"fmt"
	"strings"

	"github.com/pageza/receiptify/backend/internal/models"
)

// Organization selects how an exported list is laid out.
type Organization string

const (
	ByCategory   Organization = "category"
	Alphabetical Organization = "alphabetical"
)

// ParseOrganization maps a query value to an Organization, defaulting to
// ByCategory.
func ParseOrganization(s string) Organization {
	if Organization(strings.ToLower(s)) == Alphabetical {
		return Alphabetical
	}
	return ByCategory
}

// ExportText renders items as the plain-text shopping list users download.
func (c *Classifier) ExportText(items []models.ShoppingListItem, org Organization) string {
	var b strings.Builder
	b.WriteString("Shopping List\n\n")

	if org == Alphabetical {
		for _, item := range SortAlphabetically(items) {
			writeLine(&b, item)
		}
		return b.String()
	}

	for _, group := range c.GroupByCategory(items) {
		fmt.Fprintf(&b, "## %s\n", group.Category)
		for _, item := range group.Items {
			writeLine(&b, item)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeLine(b *strings.Builder, item models.ShoppingListItem) {
	amount := ""
	if item.Amount != "" {
		amount = item.Amount + " "
		if item.Unit != "" {
			amount += item.Unit + " "
		}
	}
	fmt.Fprintf(b, "- %s%s (%s)\n", amount, item.Name, strings.Join(item.Recipes, ", "))
}
