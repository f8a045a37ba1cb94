// Package catalog holds the pure, in-memory half of the inventory:
// search/filtering over a fetched item collection, summary stats, and
// the helpers the public catalog needs to render an item (image URL
// resolution, contact links).
package catalog

import (
	"strings"

	"github.com/brecho/backend/internal/models"
)

// All is the sentinel filter value that disables a categorical filter.
// The empty string behaves the same way.
const All = "all"

// Filter returns the items matching the free-text term and category,
// preserving the input order. The term matches case-insensitively
// against name, color, code and description; an empty term matches
// everything.
func Filter(items []models.ClothingItem, term, category string) []models.ClothingItem {
	return FilterWithStatus(items, term, category, "")
}

// FilterWithStatus is Filter with an additional status filter, using the
// same ""/"all" convention.
func FilterWithStatus(items []models.ClothingItem, term, category, status string) []models.ClothingItem {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]models.ClothingItem, 0, len(items))
	for _, item := range items {
		if !matchesTerm(item, term) {
			continue
		}
		if category != "" && category != All && item.Category != category {
			continue
		}
		if status != "" && status != All && item.Status != status {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesTerm(item models.ClothingItem, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Name), term) ||
		strings.Contains(strings.ToLower(item.Color), term) ||
		strings.Contains(strings.ToLower(item.Code), term) ||
		strings.Contains(strings.ToLower(item.Description), term)
}
