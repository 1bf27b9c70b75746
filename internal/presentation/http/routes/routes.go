package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lunchlokaal/catering-api/internal/config"
	"github.com/lunchlokaal/catering-api/internal/presentation/http/handler"
	"github.com/lunchlokaal/catering-api/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Catalog *handler.CatalogHandler
	Quote   *handler.QuoteHandler
	Webhook *handler.WebhookHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg *config.Config
	Log *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-IP rate limiter for the public storefront API
		rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerCatalogRoutes(v1, h)
		registerQuoteRoutes(v1, h)
		registerWebhookRoutes(v1, h)
	}

	return router
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/products", h.Catalog.ListProducts)
		catalog.GET("/drinks", h.Catalog.ListDrinks)
		catalog.POST("/refresh", h.Catalog.Refresh)
	}
}

func registerQuoteRoutes(v1 *gin.RouterGroup, h *Handlers) {
	quotes := v1.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", h.Quote.Create)
		quotes.POST("/price", h.Quote.PreviewPrice)
		quotes.GET("/:reference", h.Quote.Get)
		quotes.GET("/:reference/pdf", h.Quote.DownloadPDF)
		quotes.POST("/:reference/export", h.Quote.Export)
	}
}

func registerWebhookRoutes(v1 *gin.RouterGroup, h *Handlers) {
	webhooks := v1.Group("/webhooks")
	{
		webhooks.POST("/payment", h.Webhook.HandlePayment)
	}
}
