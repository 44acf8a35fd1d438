package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	ImageEdit ImageEditConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey      string `mapstructure:"api_key"`
	SearchModel string `mapstructure:"search_model"`
	AdviceModel string `mapstructure:"advice_model"`
	ImageModel  string `mapstructure:"image_model"`
}

// CatalogConfig holds catalog seeding configuration
type CatalogConfig struct {
	SheetsURL   string        `mapstructure:"sheets_url"`   // JSON feed, empty disables sync
	SeedFile    string        `mapstructure:"seed_file"`    // optional .xlsx seed
	FeedTimeout time.Duration `mapstructure:"feed_timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string `mapstructure:"type"` // "memory" or "redis"
	RedisURL string `mapstructure:"redis_url"`
	Prefix   string `mapstructure:"prefix"`
}

// ImageEditConfig holds image editor configuration
type ImageEditConfig struct {
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP  int     `mapstructure:"per_ip"` // requests per minute per client
	Gemini float64 `mapstructure:"gemini"` // requests per second to Gemini
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on environment variables")
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tagtracer/")

	// Environment variable settings
	v.SetEnvPrefix("TAGTRACER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values. Every key is registered here
// so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.search_model", "gemini-3-flash-preview")
	v.SetDefault("gemini.advice_model", "gemini-3-pro-preview")
	v.SetDefault("gemini.image_model", "gemini-2.5-flash-image")

	// Catalog defaults
	v.SetDefault("catalog.sheets_url", "")
	v.SetDefault("catalog.seed_file", "")
	v.SetDefault("catalog.feed_timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.prefix", "tagtracer")

	// Image edit defaults
	v.SetDefault("imageedit.session_ttl", "1h")
	v.SetDefault("imageedit.fetch_timeout", "20s")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
	v.SetDefault("ratelimit.gemini", 2.0)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Gemini.APIKey == "" {
		return fmt.Errorf("Gemini API key is required (set TAGTRACER_GEMINI_API_KEY)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit.per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
