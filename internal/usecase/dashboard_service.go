package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tagtracer/backend/internal/domain"
)

// DashboardService owns the dashboard state and is the only writer of it.
// AI and feed calls run outside the lock; their results are applied through
// the pure AppState transitions.
type DashboardService struct {
	searcher domain.ProductSearcher
	feed     domain.CatalogFeed

	mu             sync.RWMutex
	state          AppState
	syncInflight   int
	searchInflight int
}

// NewDashboardService creates a dashboard seeded with the given catalog.
// feed may be nil when no catalog endpoint is configured.
func NewDashboardService(seed []domain.Product, searcher domain.ProductSearcher, feed domain.CatalogFeed) *DashboardService {
	return &DashboardService{
		searcher: searcher,
		feed:     feed,
		state:    NewAppState(seed),
	}
}

// Snapshot returns the current state
func (s *DashboardService) Snapshot() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// View returns the filtered and sorted catalog for the current view settings
func (s *DashboardService) View() []domain.Product {
	return s.Snapshot().View()
}

// SetView changes the search term and sort option
func (s *DashboardService) SetView(term string, sortBy domain.SortOption) AppState {
	return s.update(func(st AppState) AppState {
		return st.WithView(term, sortBy)
	})
}

// FindProduct looks a product up by id
func (s *DashboardService) FindProduct(productID string) (domain.Product, error) {
	p, ok := s.Snapshot().FindProduct(productID)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	return p, nil
}

// UpdateImage overwrites the imageUrl of exactly one product
func (s *DashboardService) UpdateImage(productID, imageURL string) error {
	found := false
	s.update(func(st AppState) AppState {
		st, found = st.UpdateImage(productID, imageURL)
		return st
	})
	if !found {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	return nil
}

// SyncFromFeed replaces the catalog with the contents of the configured feed.
// On any failure the previous catalog is kept and the error is returned for
// reporting only.
func (s *DashboardService) SyncFromFeed(ctx context.Context) (int, error) {
	if s.feed == nil {
		return 0, nil
	}

	s.update(func(st AppState) AppState {
		s.syncInflight++
		st.Loading = true
		return st
	})

	products, err := s.feed.FetchCatalog(ctx)

	st := s.update(func(st AppState) AppState {
		s.syncInflight--
		st.Loading = s.syncInflight > 0
		if err == nil {
			st = st.ReplaceCatalog(products)
		}
		return st
	})
	if err != nil {
		log.Error().Err(err).Msg("catalog sync failed")
		return 0, err
	}

	log.Info().Int("products", len(st.Catalog)).Msg("catalog synced from feed")
	return len(st.Catalog), nil
}

// GlobalSearch runs the comparison search and the recommendation search
// concurrently. Both must succeed for anything to be applied; on failure the
// state is left as it was.
func (s *DashboardService) GlobalSearch(ctx context.Context, query string) (AppState, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Snapshot(), domain.ErrInvalidRequest
	}

	s.update(func(st AppState) AppState {
		s.searchInflight++
		st.GlobalLoading = true
		return st
	})

	var (
		g               errgroup.Group
		comparison      *domain.ComparisonResult
		recommendations []domain.Product
	)
	g.Go(func() error {
		var err error
		comparison, err = s.searcher.SearchAndCompare(ctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		recommendations, err = s.searcher.FindSimilar(ctx, query)
		return err
	})
	err := g.Wait()

	st := s.update(func(st AppState) AppState {
		s.searchInflight--
		st.GlobalLoading = s.searchInflight > 0
		if err == nil {
			st = st.ApplySearchResults(comparison, recommendations)
		}
		return st
	})
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("global search failed")
		return st, err
	}

	found := 0
	if comparison != nil {
		found = len(comparison.Products)
	}
	log.Info().
		Str("query", query).
		Int("products", found).
		Int("recommendations", len(recommendations)).
		Msg("global search completed")

	return st, nil
}

// SearchFromRecommendation makes a recommended product the search term and
// runs a global search for it
func (s *DashboardService) SearchFromRecommendation(ctx context.Context, name string) (AppState, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.Snapshot(), domain.ErrInvalidRequest
	}
	s.update(func(st AppState) AppState {
		return st.WithView(name, st.SortBy)
	})
	return s.GlobalSearch(ctx, name)
}

func (s *DashboardService) update(fn func(AppState) AppState) AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}
