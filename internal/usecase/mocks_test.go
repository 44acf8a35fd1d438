package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/tagtracer/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu       sync.Mutex
	data     map[string][]byte
	getError error
	setError error
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockProductSearcher is a mock implementation of domain.ProductSearcher
type MockProductSearcher struct {
	comparison      *domain.ComparisonResult
	compareError    error
	recommendations []domain.Product
	similarError    error

	mu      sync.Mutex
	queries []string
}

func (m *MockProductSearcher) SearchAndCompare(ctx context.Context, query string) (*domain.ComparisonResult, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()
	if m.compareError != nil {
		return nil, m.compareError
	}
	return m.comparison, nil
}

func (m *MockProductSearcher) FindSimilar(ctx context.Context, query string) ([]domain.Product, error) {
	if m.similarError != nil {
		return nil, m.similarError
	}
	return m.recommendations, nil
}

// MockCatalogFeed is a mock implementation of domain.CatalogFeed
type MockCatalogFeed struct {
	products []domain.Product
	err      error
	calls    int
}

func (m *MockCatalogFeed) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

// MockAdvisor is a mock implementation of domain.Advisor
type MockAdvisor struct {
	advice      string
	adviceError error
	deals       *domain.LiveDeals
	dealsError  error

	adviceCalls  int
	dealsCalls   int
	lastProducts []domain.Product

	// block, when set, holds SmartAdvice until it is closed
	block chan struct{}
}

func (m *MockAdvisor) SmartAdvice(ctx context.Context, query string, products []domain.Product) (string, error) {
	if m.block != nil {
		<-m.block
	}
	m.adviceCalls++
	m.lastProducts = products
	if m.adviceError != nil {
		return "", m.adviceError
	}
	return m.advice, nil
}

func (m *MockAdvisor) SearchLiveDeals(ctx context.Context, query string) (*domain.LiveDeals, error) {
	m.dealsCalls++
	if m.dealsError != nil {
		return nil, m.dealsError
	}
	return m.deals, nil
}

// MockImageGenerator is a mock implementation of domain.ImageGenerator
type MockImageGenerator struct {
	result string
	err    error

	refineInputs  [][]byte
	refinePrompts []string
	freshPrompts  []string
}

func (m *MockImageGenerator) RefineImage(ctx context.Context, image []byte, mimeType, instruction string) (string, error) {
	m.refineInputs = append(m.refineInputs, image)
	m.refinePrompts = append(m.refinePrompts, instruction)
	if m.err != nil {
		return "", m.err
	}
	return m.result, nil
}

func (m *MockImageGenerator) GenerateImage(ctx context.Context, instruction string) (string, error) {
	m.freshPrompts = append(m.freshPrompts, instruction)
	if m.err != nil {
		return "", m.err
	}
	return m.result, nil
}

// MockImageFetcher is a mock implementation of domain.ImageFetcher
type MockImageFetcher struct {
	data     []byte
	mimeType string
	err      error
	urls     []string
}

func (m *MockImageFetcher) Fetch(ctx context.Context, imageURL string) ([]byte, string, error) {
	m.urls = append(m.urls, imageURL)
	if m.err != nil {
		return nil, "", m.err
	}
	return m.data, m.mimeType, nil
}

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Apple AirPods Pro", Website: "Amazon India", Price: 24900, Rating: 4.8, DeliveryTime: "Same Day", ImageURL: "https://img.example/1.jpg", Category: "Electronics"},
		{ID: "2", Name: "Apple AirPods Pro", Website: "Flipkart", Price: 23999, Rating: 4.7, DeliveryTime: "2 Days", ImageURL: "https://img.example/2.jpg", Category: "Electronics"},
		{ID: "3", Name: "Nike Air Max", Website: "Myntra", Price: 13995, Rating: 4.5, DeliveryTime: "4 Days", ImageURL: "https://img.example/3.jpg", Category: "Footwear"},
		{ID: "4", Name: "Sony WH-1000XM5", Website: "Croma", Price: 29990, Rating: 4.9, DeliveryTime: "1 Day", ImageURL: "https://img.example/4.jpg", Category: "Electronics"},
	}
}
