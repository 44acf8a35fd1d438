package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tagtracer/backend/internal/domain"
	"github.com/tagtracer/backend/internal/infrastructure/listing"
)

// MapRow converts one catalog row into a Product. Rows are trusted for id,
// category and the AI flag; numeric fields are still clamped into range.
// Rows without an id get "sheet-<idx>".
func MapRow(row map[string]any, idx int) domain.Product {
	id := listing.String(row, "id", "")
	if id == "" {
		if n, ok := listing.Number(row["id"]); ok {
			id = strconv.FormatFloat(n, 'f', -1, 64)
		} else {
			id = fmt.Sprintf("sheet-%d", idx)
		}
	}

	return domain.Product{
		ID:            id,
		Name:          listing.String(row, "name", ""),
		Website:       listing.String(row, "website", ""),
		Price:         listing.Price(row["price"]),
		Features:      features(row["features"]),
		Rating:        listing.StrictRating(row["rating"]),
		DeliveryTime:  listing.String(row, "deliveryTime", ""),
		URL:           listing.String(row, "url", ""),
		ImageURL:      listing.String(row, "imageUrl", ""),
		Category:      listing.String(row, "category", ""),
		IsAIGenerated: truthy(row["isAiGenerated"]),
		ReviewSummary: listing.ReviewSummary(row["reviewSummary"]),
	}
}

// features accepts either a JSON array or a "|"-separated cell
func features(v any) []string {
	if s, ok := v.(string); ok {
		return splitCell(s)
	}
	return listing.StringList(v)
}

func splitCell(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	}
	return false
}
