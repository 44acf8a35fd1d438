package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tagtracer/backend/internal/domain"
)

// EditMode selects how a new product image is produced
type EditMode string

const (
	// EditModeRefine edits the current preview image
	EditModeRefine EditMode = "refine"
	// EditModeFresh synthesizes an image from text alone
	EditModeFresh EditMode = "fresh"
)

// imagePresets are the canned instructions offered by the editor
var imagePresets = []string{
	"Add a clean white studio background",
	"Place on a luxury marble countertop",
	"Change the color to Midnight Black",
	"Show in a professional office setting",
	"Enhance with cinematic lighting",
	"Add soft bokeh background",
}

// EditSession is an open image edit for one product. PreviewURL holds the
// pending image until the session is confirmed.
type EditSession struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	OriginalURL string    `json:"originalUrl"`
	PreviewURL  string    `json:"previewUrl"`
	Edits       int       `json:"edits"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductImageStore is the part of the dashboard the editor reads and writes
type ProductImageStore interface {
	FindProduct(productID string) (domain.Product, error)
	UpdateImage(productID, imageURL string) error
}

// ImageEditorConfig holds configuration for the image editor
type ImageEditorConfig struct {
	SessionTTL time.Duration
}

// ImageEditor runs refine/fresh image edits against a pending preview and
// commits the preview to the catalog only on confirmation
type ImageEditor struct {
	cache      domain.CacheRepository
	generator  domain.ImageGenerator
	fetcher    domain.ImageFetcher
	products   ProductImageStore
	sessionTTL time.Duration
}

// NewImageEditor creates an image editor with dependencies
func NewImageEditor(
	cache domain.CacheRepository,
	generator domain.ImageGenerator,
	fetcher domain.ImageFetcher,
	products ProductImageStore,
	config ImageEditorConfig,
) *ImageEditor {
	ttl := config.SessionTTL
	if ttl == 0 {
		ttl = time.Hour
	}

	return &ImageEditor{
		cache:      cache,
		generator:  generator,
		fetcher:    fetcher,
		products:   products,
		sessionTTL: ttl,
	}
}

// Presets returns the suggested edit instructions
func (e *ImageEditor) Presets() []string {
	return append([]string(nil), imagePresets...)
}

// Begin opens an edit session whose preview starts as the product's current image
func (e *ImageEditor) Begin(ctx context.Context, productID string) (*EditSession, error) {
	product, err := e.products.FindProduct(productID)
	if err != nil {
		return nil, err
	}

	session := &EditSession{
		ID:          uuid.NewString(),
		ProductID:   product.ID,
		ProductName: product.Name,
		OriginalURL: product.ImageURL,
		PreviewURL:  product.ImageURL,
		CreatedAt:   time.Now(),
	}
	if err := e.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Session returns an open edit session
func (e *ImageEditor) Session(ctx context.Context, sessionID string) (*EditSession, error) {
	return e.loadSession(ctx, sessionID)
}

// Apply produces a new preview. The catalog is not touched; on failure the
// previous preview is kept.
func (e *ImageEditor) Apply(ctx context.Context, sessionID string, mode EditMode, prompt string) (*EditSession, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidRequest)
	}

	session, err := e.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var resultURL string
	switch mode {
	case EditModeRefine:
		data, mimeType, ferr := e.fetcher.Fetch(ctx, session.PreviewURL)
		if ferr != nil {
			log.Warn().Err(ferr).Str("session_id", session.ID).Msg("source image fetch failed")
			return nil, fmt.Errorf("%w: %w", domain.ErrSourceImageUnavailable, ferr)
		}
		resultURL, err = e.generator.RefineImage(ctx, data, mimeType, prompt)
	case EditModeFresh:
		fullPrompt := fmt.Sprintf("A high-resolution product photography of %s: %s", session.ProductName, prompt)
		resultURL, err = e.generator.GenerateImage(ctx, fullPrompt)
	default:
		return nil, fmt.Errorf("%w: unknown edit mode %q", domain.ErrInvalidRequest, mode)
	}
	if err != nil {
		return nil, err
	}
	if resultURL == "" {
		return nil, domain.ErrAIEmptyResult
	}

	session.PreviewURL = resultURL
	session.Edits++
	if err := e.saveSession(ctx, session); err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", session.ID).
		Str("product_id", session.ProductID).
		Str("mode", string(mode)).
		Int("edits", session.Edits).
		Msg("image preview updated")
	return session, nil
}

// Confirm writes the pending preview into the product's imageUrl and closes the session
func (e *ImageEditor) Confirm(ctx context.Context, sessionID string) (domain.Product, error) {
	session, err := e.loadSession(ctx, sessionID)
	if err != nil {
		return domain.Product{}, err
	}

	if err := e.products.UpdateImage(session.ProductID, session.PreviewURL); err != nil {
		return domain.Product{}, err
	}
	if err := e.cache.Delete(ctx, sessionKey(sessionID)); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to drop confirmed edit session")
	}

	return e.products.FindProduct(session.ProductID)
}

// Cancel discards an edit session without touching the catalog
func (e *ImageEditor) Cancel(ctx context.Context, sessionID string) error {
	if _, err := e.loadSession(ctx, sessionID); err != nil {
		return err
	}
	return e.cache.Delete(ctx, sessionKey(sessionID))
}

func (e *ImageEditor) loadSession(ctx context.Context, sessionID string) (*EditSession, error) {
	raw, err := e.cache.Get(ctx, sessionKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, fmt.Errorf("%w: %s", domain.ErrEditSessionNotFound, sessionID)
		}
		return nil, err
	}

	var session EditSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode edit session: %w", err)
	}
	return &session, nil
}

func (e *ImageEditor) saveSession(ctx context.Context, session *EditSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode edit session: %w", err)
	}
	return e.cache.Set(ctx, sessionKey(session.ID), raw, e.sessionTTL)
}

// sessionKey format: "imageedit:{session_id}"
func sessionKey(sessionID string) string {
	return "imageedit:" + sessionID
}
