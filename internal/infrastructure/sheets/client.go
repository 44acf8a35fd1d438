package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/tagtracer/backend/internal/domain"
)

// maxFeedBytes bounds how much of a feed response is read
const maxFeedBytes = 10 << 20

// Client fetches the catalog from a spreadsheet-backed JSON endpoint
// (for example an Apps Script web app publishing a sheet as an array of rows)
type Client struct {
	httpClient  *http.Client
	feedURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new feed client
func NewClient(feedURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		feedURL:     feedURL,
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// SetDebug enables logging of raw feed bodies
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// FetchCatalog downloads and decodes the feed. The body must be a JSON array,
// whatever the response status; every element is normalized into a Product.
// Exactly one attempt is made.
func (c *Client) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "TagTracer/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", domain.ErrFeedFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn().Str("url", c.feedURL).Int("status", resp.StatusCode).Msg("catalog feed returned non-200 status")
	}

	if c.debug {
		log.Debug().Str("url", c.feedURL).Int("bytes", len(body)).Msg("catalog feed body received")
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrFeedFailure, err)
	}

	rows, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: response is not an array", domain.ErrFeedFailure)
	}

	products := make([]domain.Product, 0, len(rows))
	for idx, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			log.Warn().Int("row", idx).Msg("skipping non-object catalog row")
			continue
		}
		products = append(products, MapRow(obj, idx))
	}

	log.Info().Int("rows", len(rows)).Int("products", len(products)).Msg("catalog feed decoded")
	return products, nil
}
