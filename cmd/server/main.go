package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tagtracer/backend/config"
	httpDelivery "github.com/tagtracer/backend/internal/delivery/http"
	"github.com/tagtracer/backend/internal/domain"
	"github.com/tagtracer/backend/internal/infrastructure/cache"
	"github.com/tagtracer/backend/internal/infrastructure/gemini"
	"github.com/tagtracer/backend/internal/infrastructure/imagefetch"
	"github.com/tagtracer/backend/internal/infrastructure/logging"
	"github.com/tagtracer/backend/internal/infrastructure/sheets"
	"github.com/tagtracer/backend/internal/usecase"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init("tagtracer-backend", cfg.Server.Environment, cfg.Server.LogLevel)

	log.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Type).
		Msg("starting TagTracer backend")

	ctx := context.Background()

	// Initialize infrastructure dependencies
	sessionCache, closeCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize cache")
	}
	defer closeCache()

	geminiClient, err := gemini.NewClient(ctx, gemini.Config{
		APIKey: cfg.Gemini.APIKey,
		Models: gemini.Models{
			Search: cfg.Gemini.SearchModel,
			Advice: cfg.Gemini.AdviceModel,
			Image:  cfg.Gemini.ImageModel,
		},
		RequestsPerSec: cfg.RateLimit.Gemini,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Gemini client")
	}

	seed := domain.SeedProducts()
	if cfg.Catalog.SeedFile != "" {
		seed, err = sheets.LoadWorkbook(cfg.Catalog.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Catalog.SeedFile).Msg("failed to load catalog seed file")
		}
	}

	var feed domain.CatalogFeed
	if cfg.Catalog.SheetsURL != "" {
		feedClient := sheets.NewClient(cfg.Catalog.SheetsURL, cfg.Catalog.FeedTimeout)
		feedClient.SetDebug(cfg.Server.Environment == "development")
		feed = feedClient
		log.Info().Str("url", cfg.Catalog.SheetsURL).Msg("catalog feed configured")
	}

	// Initialize usecase layer
	dashboard := usecase.NewDashboardService(seed, geminiClient, feed)
	assistant := usecase.NewAssistantService(geminiClient, dashboard.View)
	editor := usecase.NewImageEditor(
		sessionCache,
		geminiClient,
		imagefetch.NewFetcher(cfg.ImageEdit.FetchTimeout),
		dashboard,
		usecase.ImageEditorConfig{SessionTTL: cfg.ImageEdit.SessionTTL},
	)

	// One-time catalog sync; failures keep the seed catalog
	if feed != nil {
		go func() {
			syncCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := dashboard.SyncFromFeed(syncCtx); err != nil {
				log.Warn().Err(err).Msg("initial catalog sync failed, keeping seed catalog")
			}
		}()
	}

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(dashboard, assistant, editor)
	router := httpDelivery.SetupRouter(cfg, handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // AI searches and image generation are slow
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// newCache builds the cache backend selected in configuration
func newCache(ctx context.Context, cfg config.CacheConfig) (domain.CacheRepository, func(), error) {
	if cfg.Type == "redis" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return redisCache, func() { _ = redisCache.Close() }, nil
	}

	memoryCache := cache.NewMemoryCache()
	return memoryCache, func() { _ = memoryCache.Close() }, nil
}
