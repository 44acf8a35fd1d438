package gemini

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagtracer/backend/internal/domain"
)

var fixedNow = time.UnixMilli(1700000000000)

func TestExtractItems(t *testing.T) {
	t.Run("array surrounded by prose and fences", func(t *testing.T) {
		text := "Here are the listings:\n```json\n[{\"name\":\"A\"}, 3, {\"name\":\"B\"}]\n```\nHope this helps."
		items, err := extractItems(text)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "A", items[0]["name"])
		assert.Equal(t, "B", items[1]["name"])
	})

	t.Run("no array", func(t *testing.T) {
		_, err := extractItems("Sorry, I could not find that product.")
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := extractItems("[{name: A}]")
		assert.Error(t, err)
	})
}

func TestMapComparisonItem(t *testing.T) {
	t.Run("complete listing", func(t *testing.T) {
		item := map[string]any{
			"name":         "Sony WH-1000XM5",
			"website":      "Reliance Digital",
			"price":        27990.0,
			"rating":       4.7,
			"deliveryTime": "2 Days",
			"url":          "https://www.reliancedigital.in/sony",
			"imageUrl":     "https://img.example/sony.jpg",
			"features":     []any{"ANC", "30h battery"},
			"reviewSummary": map[string]any{
				"sentiment":  "Positive",
				"highlights": []any{"Excellent ANC"},
				"score":      92.0,
			},
		}

		p := MapComparisonItem(item, "sony headphones", 1, fixedNow)

		assert.Equal(t, "live-reliance-digital-1700000000000-1", p.ID)
		assert.Equal(t, "Sony WH-1000XM5", p.Name)
		assert.Equal(t, 27990.0, p.Price)
		assert.Equal(t, 4.7, p.Rating)
		assert.Equal(t, "2 Days", p.DeliveryTime)
		assert.Equal(t, "https://img.example/sony.jpg", p.ImageURL)
		assert.Equal(t, []string{"ANC", "30h battery"}, p.Features)
		assert.Equal(t, comparisonCategory, p.Category)
		assert.True(t, p.IsAIGenerated)
		require.NotNil(t, p.ReviewSummary)
		assert.Equal(t, 92, p.ReviewSummary.Score)
	})

	t.Run("sparse listing gets defaults", func(t *testing.T) {
		p := MapComparisonItem(map[string]any{"price": "₹1,299"}, "usb cable", 0, fixedNow)

		assert.Equal(t, "live-retailer-1700000000000-0", p.ID)
		assert.Equal(t, "usb cable", p.Name)
		assert.Equal(t, defaultWebsite, p.Website)
		assert.Equal(t, 1299.0, p.Price)
		assert.Equal(t, 4.0, p.Rating)
		assert.Equal(t, "Varies", p.DeliveryTime)
		assert.Equal(t, "#", p.URL)
		assert.Equal(t, "https://images.weserv.nl/?url=%23&w=400&h=400&fit=cover", p.ImageURL)
		assert.Equal(t, []string{}, p.Features)
		assert.Nil(t, p.ReviewSummary)
	})

	t.Run("invalid values are normalized", func(t *testing.T) {
		p := MapComparisonItem(map[string]any{
			"name":          "Thing",
			"price":         -50.0,
			"rating":        12.0,
			"reviewSummary": map[string]any{"sentiment": "Ecstatic"},
		}, "thing", 2, fixedNow)

		assert.Equal(t, 0.0, p.Price)
		assert.Equal(t, 5.0, p.Rating)
		assert.Nil(t, p.ReviewSummary)
	})
}

func TestMapRecommendationItem(t *testing.T) {
	t.Run("named suggestion", func(t *testing.T) {
		p, ok := MapRecommendationItem(map[string]any{
			"name":     "Bose QC Ultra",
			"price":    29900.0,
			"website":  "Amazon India",
			"category": "Headphones",
		}, 3, fixedNow)

		require.True(t, ok)
		assert.Equal(t, "rec-3-1700000000000", p.ID)
		assert.Equal(t, "Bose QC Ultra", p.Name)
		assert.Equal(t, "Headphones", p.Category)
		assert.Equal(t, "Check Store", p.DeliveryTime)
		assert.Equal(t, "https://placehold.co/400x400?text=Bose%20QC%20Ultra", p.ImageURL)
		assert.Equal(t, 4.0, p.Rating)
		assert.True(t, p.IsAIGenerated)
	})

	t.Run("defaults", func(t *testing.T) {
		p, ok := MapRecommendationItem(map[string]any{"name": "Thing"}, 0, fixedNow)
		require.True(t, ok)
		assert.Equal(t, "Related", p.Category)
		assert.Equal(t, defaultWebsite, p.Website)
		assert.Equal(t, "#", p.URL)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		_, ok := MapRecommendationItem(map[string]any{"price": 100.0}, 0, fixedNow)
		assert.False(t, ok)
	})
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "amazon-india", slugify("Amazon India"))
	assert.Equal(t, "tata-cliq-luxury", slugify("  Tata   CLiQ Luxury "))
}

func TestMappedProductsAreValid(t *testing.T) {
	items := []map[string]any{
		{"name": "A", "price": -1.0, "rating": -3.0},
		{"price": "abc", "rating": "xyz"},
		{"name": "C", "price": 10.0, "rating": 99.0},
	}

	for idx, item := range items {
		p := MapComparisonItem(item, "q", idx, fixedNow)
		assertValidProduct(t, p)
	}
}

func assertValidProduct(t *testing.T, p domain.Product) {
	t.Helper()
	assert.NotEmpty(t, p.ID)
	assert.GreaterOrEqual(t, p.Price, 0.0)
	assert.GreaterOrEqual(t, p.Rating, 0.0)
	assert.LessOrEqual(t, p.Rating, 5.0)
}
