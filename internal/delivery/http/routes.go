package http

import (
	"github.com/gin-gonic/gin"

	"github.com/tagtracer/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		v1.GET("/products", handler.ListProducts)

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("", handler.GetDashboard)
			dashboard.PUT("/view", handler.UpdateView)
		}

		v1.POST("/catalog/sync", handler.SyncCatalog)
		v1.POST("/search", handler.GlobalSearch)
		v1.POST("/recommendations/search", handler.SearchRecommendation)

		assistant := v1.Group("/assistant")
		{
			assistant.GET("/messages", handler.ListMessages)
			assistant.POST("/messages", handler.SendMessage)
		}

		images := v1.Group("/images")
		{
			images.GET("/presets", handler.ImagePresets)
			images.POST("/edits", handler.BeginImageEdit)
			images.GET("/edits/:id", handler.GetImageEdit)
			images.POST("/edits/:id/apply", handler.ApplyImageEdit)
			images.POST("/edits/:id/confirm", handler.ConfirmImageEdit)
			images.DELETE("/edits/:id", handler.CancelImageEdit)
		}
	}

	return router
}
