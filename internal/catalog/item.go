// Package catalog holds the menu representation shared by the auth server's
// menu endpoint and the storefront.
package catalog

import "github.com/shopspring/decimal"

// Item is a menu entry as served by GET /api/menu.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageKey    string          `json:"imageKey,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	IsFrozen    bool            `json:"isFrozen"`
	Available   bool            `json:"available"`
}

// Categories returns the distinct categories of items in first-seen order.
func Categories(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Category == "" {
			continue
		}
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}

// Find returns the item with the given id.
func Find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
