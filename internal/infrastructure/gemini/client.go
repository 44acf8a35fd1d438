package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/tagtracer/backend/internal/domain"
)

const (
	adviceThinkingBudget = 32768
	freshAspectRatio     = "1:1"
)

// Models names the Gemini model used for each kind of request
type Models struct {
	Search string
	Advice string
	Image  string
}

// Config holds Gemini client configuration
type Config struct {
	APIKey         string
	Models         Models
	RequestsPerSec float64
	Burst          int
}

// generator is the single SDK call the client depends on
type generator interface {
	generate(ctx context.Context, model string, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type sdkGenerator struct {
	models *genai.Models
}

func (g sdkGenerator) generate(ctx context.Context, model string, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	return g.models.GenerateContent(ctx, model, contents, config)
}

// Client talks to Gemini for price discovery, advice and image editing.
// Every operation makes exactly one attempt.
type Client struct {
	gen         generator
	models      Models
	rateLimiter *rate.Limiter
	now         func() time.Time
}

// NewClient creates a Gemini client
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newClient(sdkGenerator{models: sdk.Models}, cfg), nil
}

func newClient(gen generator, cfg Config) *Client {
	models := cfg.Models
	if models.Search == "" {
		models.Search = "gemini-3-flash-preview"
	}
	if models.Advice == "" {
		models.Advice = "gemini-3-pro-preview"
	}
	if models.Image == "" {
		models.Image = "gemini-2.5-flash-image"
	}

	rps, burst := cfg.RequestsPerSec, cfg.Burst
	if rps <= 0 {
		rps = 2
	}
	if burst <= 0 {
		burst = 4
	}

	return &Client{
		gen:         gen,
		models:      models,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		now:         time.Now,
	}
}

// searchConfig enables Google Search grounding
func searchConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
}

// SearchAndCompare finds the queried product on the major Indian retailers.
// A response without a parseable listing array yields no products, not an error.
func (c *Client) SearchAndCompare(ctx context.Context, query string) (*domain.ComparisonResult, error) {
	resp, err := c.call(ctx, "comparison", c.models.Search, searchConfig(), genai.NewPartFromText(comparisonPrompt(query)))
	if err != nil {
		return nil, err
	}

	result := &domain.ComparisonResult{
		Products: []domain.Product{},
		Sources:  sources(resp, comparisonSourceTitle),
	}

	items, err := extractItems(responseText(resp))
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("failed to extract data from retailer search")
		return result, nil
	}

	now := c.now()
	for idx, item := range items {
		result.Products = append(result.Products, MapComparisonItem(item, query, idx, now))
	}
	return result, nil
}

// FindSimilar suggests products similar to the query
func (c *Client) FindSimilar(ctx context.Context, query string) ([]domain.Product, error) {
	resp, err := c.call(ctx, "recommendations", c.models.Search, searchConfig(), genai.NewPartFromText(recommendationPrompt(query)))
	if err != nil {
		return nil, err
	}

	items, err := extractItems(responseText(resp))
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("failed to parse recommendations")
		return []domain.Product{}, nil
	}

	now := c.now()
	products := make([]domain.Product, 0, len(items))
	for idx, item := range items {
		if p, ok := MapRecommendationItem(item, idx, now); ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// SmartAdvice returns a markdown analysis of the given products
func (c *Client) SmartAdvice(ctx context.Context, query string, products []domain.Product) (string, error) {
	productsJSON, err := json.Marshal(products)
	if err != nil {
		return "", fmt.Errorf("failed to encode products: %w", err)
	}

	config := &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](adviceThinkingBudget)},
	}
	resp, err := c.call(ctx, "advice", c.models.Advice, config, genai.NewPartFromText(advicePrompt(query, string(productsJSON))))
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

// SearchLiveDeals returns a text summary of current deals with its sources
func (c *Client) SearchLiveDeals(ctx context.Context, query string) (*domain.LiveDeals, error) {
	resp, err := c.call(ctx, "live_deals", c.models.Search, searchConfig(), genai.NewPartFromText(liveDealsPrompt(query)))
	if err != nil {
		return nil, err
	}
	return &domain.LiveDeals{
		Text:    responseText(resp),
		Sources: sources(resp, liveDealsSourceTitle),
	}, nil
}

// RefineImage edits an existing image according to instruction
func (c *Client) RefineImage(ctx context.Context, image []byte, mimeType, instruction string) (string, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	resp, err := c.call(ctx, "image_refine", c.models.Image, nil,
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(instruction),
	)
	if err != nil {
		return "", err
	}
	return imageDataURL(resp)
}

// GenerateImage synthesizes a new image from instruction alone
func (c *Client) GenerateImage(ctx context.Context, instruction string) (string, error) {
	config := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: freshAspectRatio},
	}
	resp, err := c.call(ctx, "image_fresh", c.models.Image, config, genai.NewPartFromText(instruction))
	if err != nil {
		return "", err
	}
	return imageDataURL(resp)
}

func (c *Client) call(ctx context.Context, op, model string, config *genai.GenerateContentConfig, parts ...*genai.Part) (*genai.GenerateContentResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	start := time.Now()
	resp, err := c.gen.generate(ctx, model, parts, config)
	if err != nil {
		log.Error().Err(err).Str("op", op).Str("model", model).Msg("gemini request failed")
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrAIServiceFailure, op, err)
	}

	log.Debug().
		Str("op", op).
		Str("model", model).
		Dur("took", time.Since(start)).
		Msg("gemini request completed")
	return resp, nil
}

// responseText concatenates the text parts of the first candidate, skipping thoughts
func responseText(resp *genai.GenerateContentResponse) string {
	content := firstContent(resp)
	if content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// imageDataURL returns the first inline image of the first candidate as a data URL
func imageDataURL(resp *genai.GenerateContentResponse) (string, error) {
	content := firstContent(resp)
	if content == nil {
		return "", domain.ErrAIEmptyResult
	}

	for _, part := range content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mimeType := part.InlineData.MIMEType
		if mimeType == "" {
			mimeType = "image/png"
		}
		return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(part.InlineData.Data)), nil
	}
	return "", domain.ErrAIEmptyResult
}

// sources lists the web grounding chunks of the first candidate
func sources(resp *genai.GenerateContentResponse, fallbackTitle string) []domain.Source {
	out := []domain.Source{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].GroundingMetadata == nil {
		return out
	}

	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		src := domain.Source{Title: fallbackTitle, URI: defaultURL}
		if chunk.Web != nil {
			if chunk.Web.Title != "" {
				src.Title = chunk.Web.Title
			}
			if chunk.Web.URI != "" {
				src.URI = chunk.Web.URI
			}
		}
		out = append(out, src)
	}
	return out
}

func firstContent(resp *genai.GenerateContentResponse) *genai.Content {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	return resp.Candidates[0].Content
}
