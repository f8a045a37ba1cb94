package catalog

import "github.com/brecho/backend/internal/models"

// Stats summarizes the current item collection. Values are sums of item
// prices by status.
type Stats struct {
	Total          int     `json:"total"`
	Available      int     `json:"available"`
	Sold           int     `json:"sold"`
	AvailableValue float64 `json:"available_value"`
	SoldValue      float64 `json:"sold_value"`
}

// Aggregate recomputes the stats from scratch in a single pass. No
// caching; callers invoke it against the collection they just fetched.
func Aggregate(items []models.ClothingItem) Stats {
	var s Stats
	s.Total = len(items)
	for _, item := range items {
		switch item.Status {
		case models.StatusSold:
			s.Sold++
			s.SoldValue += item.Price
		default:
			s.Available++
			s.AvailableValue += item.Price
		}
	}
	return s
}
