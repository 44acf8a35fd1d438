package domain

// Sentiment is the aggregated tone of a product's customer reviews
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Valid reports whether s is one of the enumerated sentiments
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// ReviewSummary is the AI-generated digest of a product's reviews
type ReviewSummary struct {
	Sentiment  Sentiment `json:"sentiment"`
	Highlights []string  `json:"highlights"`
	Score      int       `json:"score"` // 0-100 overall customer satisfaction
}

// Product represents a single retailer listing in the catalog
type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Website       string         `json:"website"`
	Price         float64        `json:"price"` // INR, 0 means "check site"
	Features      []string       `json:"features"`
	Rating        float64        `json:"rating"` // 0-5
	DeliveryTime  string         `json:"deliveryTime"`
	URL           string         `json:"url"`
	ImageURL      string         `json:"imageUrl"`
	Category      string         `json:"category"`
	IsAIGenerated bool           `json:"isAiGenerated,omitempty"`
	ReviewSummary *ReviewSummary `json:"reviewSummary,omitempty"`
}

// Source is a citation returned by the search service as provenance
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// SortOption selects the ordering of the catalog view
type SortOption string

const (
	SortPriceLowHigh    SortOption = "price_asc"
	SortPriceHighLow    SortOption = "price_desc"
	SortRatingHighLow   SortOption = "rating_desc"
	SortDeliveryFastest SortOption = "delivery_fast"
)

// ParseSortOption maps a raw value onto a known sort option.
// Unknown or empty values fall back to price ascending.
func ParseSortOption(raw string) SortOption {
	switch opt := SortOption(raw); opt {
	case SortPriceLowHigh, SortPriceHighLow, SortRatingHighLow, SortDeliveryFastest:
		return opt
	}
	return SortPriceLowHigh
}

// ComparisonResult is the outcome of a live comparison search
type ComparisonResult struct {
	Products []Product `json:"products"`
	Sources  []Source  `json:"sources"`
}

// LiveDeals is the free-text outcome of a live deal search
type LiveDeals struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}
