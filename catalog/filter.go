package catalog

import (
	"strings"

	"food-storefront/models"
)

// FilterCategories keeps categories whose name contains query, ignoring case.
// An empty query keeps everything.
func FilterCategories(list []models.Category, query string) []models.Category {
	return filterByName(list, query, func(c models.Category) string { return c.Name })
}

func FilterRestaurants(list []models.Restaurant, query string) []models.Restaurant {
	return filterByName(list, query, func(r models.Restaurant) string { return r.Name })
}

func filterByName[T any](list []T, query string, name func(T) string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	out := make([]T, 0, len(list))
	for _, v := range list {
		if strings.Contains(strings.ToLower(name(v)), q) {
			out = append(out, v)
		}
	}
	return out
}
