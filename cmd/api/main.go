package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/lunchlokaal/catering-api/internal/application/invoice"
	"github.com/lunchlokaal/catering-api/internal/application/pricing"
	"github.com/lunchlokaal/catering-api/internal/application/service"
	"github.com/lunchlokaal/catering-api/internal/config"
	"github.com/lunchlokaal/catering-api/internal/infrastructure/accounting"
	"github.com/lunchlokaal/catering-api/internal/infrastructure/cms"
	"github.com/lunchlokaal/catering-api/internal/infrastructure/database"
	"github.com/lunchlokaal/catering-api/internal/infrastructure/pdf"
	"github.com/lunchlokaal/catering-api/internal/infrastructure/repository"
	"github.com/lunchlokaal/catering-api/internal/presentation/http/handler"
	"github.com/lunchlokaal/catering-api/internal/presentation/http/routes"
	"github.com/lunchlokaal/catering-api/pkg/email"
	"github.com/lunchlokaal/catering-api/pkg/jobqueue"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	quoteRepo := repository.NewQuoteRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// Initialize external clients
	cmsClient := cms.NewClient(cfg.CMS.BaseURL, cfg.CMS.APIToken, cfg.CMS.Timeout)
	accountingSink := accounting.NewClient(
		cfg.Accounting.BaseURL,
		cfg.Accounting.APIKey,
		cfg.Accounting.AdministrationID,
		cfg.Accounting.Timeout,
		logger,
	)
	pdfRenderer := pdf.NewRenderer(cfg.PDF.ChromePath, cfg.PDF.Timeout, logger)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:      cfg.Email.SMTPHost,
		SMTPPort:      cfg.Email.SMTPPort,
		SMTPUsername:  cfg.Email.SMTPUsername,
		SMTPPassword:  cfg.Email.SMTPPassword,
		FromName:      cfg.Email.FromName,
		FromEmail:     cfg.Email.FromEmail,
		OperatorEmail: cfg.Email.OperatorEmail,
	})

	// Background queue for accounting exports
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	exportQueue := jobqueue.New(ctx, cfg.Export.QueueCapacity, cfg.Export.Workers, logger)
	defer exportQueue.Shutdown()

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo, cmsClient, logger)
	pricingEngine := pricing.NewEngine(logger)
	invoiceBuilder := invoice.NewBuilder(logger)
	deliveryQuoter := &service.FlatRateQuoter{
		Fee:       cfg.Delivery.Fee,
		FreeAbove: cfg.Delivery.FreeAbove,
		Prefixes:  cfg.Delivery.Prefixes,
	}
	quoteService := service.NewQuoteService(quoteRepo, catalogService, pricingEngine, invoiceBuilder, deliveryQuoter, pdfRenderer, logger)
	exportService := service.NewExportService(quoteRepo, catalogService, invoiceBuilder, accountingSink, emailService, exportQueue, logger)
	paymentService := service.NewPaymentService(quoteRepo, exportService, emailService, logger)

	// Warm the catalog snapshot so the first request does not pay for it.
	if _, err := catalogService.Snapshot(ctx); err != nil {
		logger.Warn("Catalog warm-up failed, will retry on first request", zap.Error(err))
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService),
		Quote:   handler.NewQuoteHandler(quoteService, exportService),
		Webhook: handler.NewWebhookHandler(paymentService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg: cfg,
		Log: logger,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("Starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env),
	)

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
