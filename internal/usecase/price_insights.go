package usecase

import (
	"cmp"
	"slices"

	"github.com/tagtracer/backend/internal/domain"
)

// ChartPoint is one bar of the price comparison chart
type ChartPoint struct {
	Name       string  `json:"name"`
	Website    string  `json:"website"`
	Price      float64 `json:"price"`
	Percentage float64 `json:"percentage"` // price relative to the most expensive listing
	IsLowest   bool    `json:"isLowest"`
}

// LowestPrice returns the smallest known (non-zero) price, or 0 when no
// product has one
func LowestPrice(products []domain.Product) float64 {
	lowest := 0.0
	for _, p := range products {
		if p.Price > 0 && (lowest == 0 || p.Price < lowest) {
			lowest = p.Price
		}
	}
	return lowest
}

// IsBestValue reports whether p carries the lowest known price in products
func IsBestValue(p domain.Product, products []domain.Product) bool {
	return p.Price > 0 && p.Price == LowestPrice(products)
}

// PriceChart builds chart points for every product with a known price,
// cheapest first
func PriceChart(products []domain.Product) []ChartPoint {
	points := make([]ChartPoint, 0, len(products))
	maxPrice := 0.0
	for _, p := range products {
		if p.Price <= 0 {
			continue
		}
		points = append(points, ChartPoint{Name: p.Name, Website: p.Website, Price: p.Price})
		maxPrice = max(maxPrice, p.Price)
	}
	if len(points) == 0 {
		return points
	}

	slices.SortStableFunc(points, func(a, b ChartPoint) int {
		return cmp.Compare(a.Price, b.Price)
	})

	minPrice := points[0].Price
	for i := range points {
		points[i].Percentage = points[i].Price / maxPrice * 100
		points[i].IsLowest = points[i].Price == minPrice
	}
	return points
}
