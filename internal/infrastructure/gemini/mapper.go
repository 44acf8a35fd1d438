package gemini

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/tagtracer/backend/internal/domain"
	"github.com/tagtracer/backend/internal/infrastructure/listing"
)

const (
	defaultWebsite         = "Retailer"
	defaultDeliveryTime    = "Varies"
	defaultURL             = "#"
	comparisonCategory     = "Live Comparison"
	recommendationCategory = "Related"
	recommendationDelivery = "Check Store"
	comparisonSourceTitle  = "Verified Retailer Source"
	liveDealsSourceTitle   = "Retailer Source"
)

var (
	// greedy: first '[' to last ']'
	jsonArrayRegex  = regexp.MustCompile(`\[[\s\S]*\]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// extractItems finds the JSON array embedded in free model text and returns
// its object elements
func extractItems(text string) ([]map[string]any, error) {
	match := jsonArrayRegex.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("no JSON array in model response")
	}

	var raw []any
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode model JSON: %w", err)
	}

	items := make([]map[string]any, 0, len(raw))
	for _, el := range raw {
		if obj, ok := el.(map[string]any); ok {
			items = append(items, obj)
		}
	}
	return items, nil
}

// MapComparisonItem converts one retailer listing from the comparison search
// into a Product
func MapComparisonItem(item map[string]any, query string, idx int, now time.Time) domain.Product {
	website := listing.String(item, "website", defaultWebsite)
	productURL := listing.String(item, "url", defaultURL)

	imageURL := listing.String(item, "imageUrl", "")
	if imageURL == "" {
		imageURL = fmt.Sprintf("https://images.weserv.nl/?url=%s&w=400&h=400&fit=cover", encodeURIComponent(productURL))
	}

	return domain.Product{
		ID:            fmt.Sprintf("live-%s-%d-%d", slugify(website), now.UnixMilli(), idx),
		Name:          listing.String(item, "name", query),
		Website:       website,
		Price:         listing.Price(item["price"]),
		Features:      listing.StringList(item["features"]),
		Rating:        listing.Rating(item["rating"]),
		DeliveryTime:  listing.String(item, "deliveryTime", defaultDeliveryTime),
		URL:           productURL,
		ImageURL:      imageURL,
		Category:      comparisonCategory,
		IsAIGenerated: true,
		ReviewSummary: listing.ReviewSummary(item["reviewSummary"]),
	}
}

// MapRecommendationItem converts one similar-product suggestion into a
// Product. Suggestions without a name are rejected.
func MapRecommendationItem(item map[string]any, idx int, now time.Time) (domain.Product, bool) {
	name := listing.String(item, "name", "")
	if name == "" {
		return domain.Product{}, false
	}

	imageURL := listing.String(item, "imageUrl", "")
	if imageURL == "" {
		imageURL = "https://placehold.co/400x400?text=" + encodeURIComponent(name)
	}

	return domain.Product{
		ID:            fmt.Sprintf("rec-%d-%d", idx, now.UnixMilli()),
		Name:          name,
		Website:       listing.String(item, "website", defaultWebsite),
		Price:         listing.Price(item["price"]),
		Features:      []string{},
		Rating:        listing.Rating(item["rating"]),
		DeliveryTime:  recommendationDelivery,
		URL:           listing.String(item, "url", defaultURL),
		ImageURL:      imageURL,
		Category:      listing.String(item, "category", recommendationCategory),
		IsAIGenerated: true,
	}, true
}

func slugify(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// encodeURIComponent escapes s for use as a single query value, with spaces as %20
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
