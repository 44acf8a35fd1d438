package usecase

import (
	"github.com/rs/zerolog/log"

	"github.com/tagtracer/backend/internal/domain"
)

// AppState is the complete dashboard state. It is treated as an immutable
// value: every transition below returns a new AppState and never writes
// through slices it shares with its input.
type AppState struct {
	Catalog         []domain.Product
	SearchTerm      string
	SortBy          domain.SortOption
	Sources         []domain.Source
	Recommendations []domain.Product
	Loading         bool // catalog sync in flight
	GlobalLoading   bool // live search in flight
}

// NewAppState returns the initial state for a seed catalog
func NewAppState(seed []domain.Product) AppState {
	return AppState{
		Catalog: uniqueByID(seed),
		SortBy:  domain.SortPriceLowHigh,
	}
}

// View is the filtered and sorted catalog for the current search term and sort option
func (s AppState) View() []domain.Product {
	return FilterAndSort(s.Catalog, s.SearchTerm, s.SortBy)
}

// WithView sets the search term and sort option
func (s AppState) WithView(term string, sortBy domain.SortOption) AppState {
	s.SearchTerm = term
	s.SortBy = sortBy
	return s
}

// ReplaceCatalog swaps the whole catalog, e.g. after a feed sync
func (s AppState) ReplaceCatalog(products []domain.Product) AppState {
	s.Catalog = uniqueByID(products)
	return s
}

// ApplySearchResults merges a successful dual search into the state.
// An empty comparison leaves catalog and sources untouched; recommendations
// are always replaced.
func (s AppState) ApplySearchResults(comparison *domain.ComparisonResult, recommendations []domain.Product) AppState {
	if comparison != nil && len(comparison.Products) > 0 {
		s.Catalog = MergeLiveResults(s.Catalog, comparison.Products)
		s.Sources = append([]domain.Source(nil), comparison.Sources...)
	}
	s.Recommendations = append([]domain.Product(nil), recommendations...)
	return s
}

// UpdateImage sets the image of the product with the given id.
// It reports false and returns the state unchanged when no product matches.
func (s AppState) UpdateImage(productID, imageURL string) (AppState, bool) {
	catalog, ok := UpdateImageURL(s.Catalog, productID, imageURL)
	if !ok {
		return s, false
	}
	s.Catalog = catalog
	return s, true
}

// FindProduct returns the catalog entry with the given id
func (s AppState) FindProduct(productID string) (domain.Product, bool) {
	for _, p := range s.Catalog {
		if p.ID == productID {
			return p, true
		}
	}
	return domain.Product{}, false
}

// MergeLiveResults returns fresh followed by every non-AI entry of catalog
// in its original order. Previous AI entries are dropped. An empty fresh
// batch returns catalog unchanged.
func MergeLiveResults(catalog, fresh []domain.Product) []domain.Product {
	if len(fresh) == 0 {
		return catalog
	}

	merged := make([]domain.Product, 0, len(fresh)+len(catalog))
	merged = append(merged, fresh...)
	for _, p := range catalog {
		if !p.IsAIGenerated {
			merged = append(merged, p)
		}
	}
	return uniqueByID(merged)
}

// UpdateImageURL returns a copy of catalog in which only the imageUrl of the
// product with the given id differs
func UpdateImageURL(catalog []domain.Product, productID, imageURL string) ([]domain.Product, bool) {
	idx := -1
	for i, p := range catalog {
		if p.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return catalog, false
	}

	updated := make([]domain.Product, len(catalog))
	copy(updated, catalog)
	updated[idx].ImageURL = imageURL
	return updated, true
}

// uniqueByID keeps the first occurrence of every id
func uniqueByID(products []domain.Product) []domain.Product {
	seen := make(map[string]struct{}, len(products))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			log.Warn().Str("product_id", p.ID).Msg("dropping duplicate catalog id")
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
