package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CatalogFeed fetches a full catalog from an external spreadsheet-backed endpoint
type CatalogFeed interface {
	FetchCatalog(ctx context.Context) ([]Product, error)
}

// ProductSearcher discovers live prices and similar products
type ProductSearcher interface {
	SearchAndCompare(ctx context.Context, query string) (*ComparisonResult, error)
	FindSimilar(ctx context.Context, query string) ([]Product, error)
}

// Advisor answers free-form shopping questions
type Advisor interface {
	SmartAdvice(ctx context.Context, query string, products []Product) (string, error)
	SearchLiveDeals(ctx context.Context, query string) (*LiveDeals, error)
}

// ImageGenerator edits or synthesizes product images.
// Both methods return a data URL, or ErrAIEmptyResult when no image came back.
type ImageGenerator interface {
	RefineImage(ctx context.Context, image []byte, mimeType, instruction string) (string, error)
	GenerateImage(ctx context.Context, instruction string) (string, error)
}

// ImageFetcher loads the bytes behind an image URL
type ImageFetcher interface {
	Fetch(ctx context.Context, imageURL string) (data []byte, mimeType string, err error)
}
