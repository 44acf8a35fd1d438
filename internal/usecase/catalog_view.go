package usecase

import (
	"cmp"
	"slices"
	"strings"

	"github.com/tagtracer/backend/internal/domain"
)

// unknownDeliveryDays is used for delivery times without a leading day count
const unknownDeliveryDays = 999

// FilterAndSort returns the products whose name, website or category contain
// term (case-insensitive), ordered by the given sort option.
// The input slice is never modified.
func FilterAndSort(products []domain.Product, term string, sortBy domain.SortOption) []domain.Product {
	needle := strings.ToLower(term)

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesTerm(p, needle) {
			result = append(result, p)
		}
	}

	switch sortBy {
	case domain.SortPriceLowHigh:
		slices.SortStableFunc(result, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case domain.SortPriceHighLow:
		slices.SortStableFunc(result, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case domain.SortRatingHighLow:
		slices.SortStableFunc(result, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case domain.SortDeliveryFastest:
		slices.SortStableFunc(result, func(a, b domain.Product) int {
			return cmp.Compare(ParseDeliveryDays(a.DeliveryTime), ParseDeliveryDays(b.DeliveryTime))
		})
	}

	return result
}

func matchesTerm(p domain.Product, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Website), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle)
}

// ParseDeliveryDays extracts the leading integer of the first word of a
// delivery estimate ("2 Days" -> 2, "2-3 Days" -> 2). Estimates without one
// ("Same Day", "Varies") sort last.
func ParseDeliveryDays(deliveryTime string) int {
	fields := strings.Fields(deliveryTime)
	if len(fields) == 0 {
		return unknownDeliveryDays
	}
	token := fields[0]

	sign := 1
	switch {
	case strings.HasPrefix(token, "-"):
		sign = -1
		token = token[1:]
	case strings.HasPrefix(token, "+"):
		token = token[1:]
	}

	days, digits := 0, 0
	for _, r := range token {
		if r < '0' || r > '9' {
			break
		}
		// long digit runs saturate instead of overflowing
		if days < unknownDeliveryDays*1000 {
			days = days*10 + int(r-'0')
		}
		digits++
	}
	if digits == 0 {
		return unknownDeliveryDays
	}
	return sign * days
}
