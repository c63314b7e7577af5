// Package app wires configuration, storage, services and handlers into
// one application instance.
package app

import (
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/handlers"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/services/brandvoice"
	"github.com/ternarybob/copydesk/internal/services/chat"
	"github.com/ternarybob/copydesk/internal/services/embeddings"
	"github.com/ternarybob/copydesk/internal/services/llm"
	"github.com/ternarybob/copydesk/internal/services/rag"
	"github.com/ternarybob/copydesk/internal/services/reports"
	"github.com/ternarybob/copydesk/internal/services/research"
	"github.com/ternarybob/copydesk/internal/services/scraping"
	"github.com/ternarybob/copydesk/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core services
	LLMService        interfaces.LLMService
	EmbeddingService  interfaces.EmbeddingService
	ResearchService   interfaces.ResearchService
	BackfillService   interfaces.BackfillService
	BackfillScheduler *embeddings.Scheduler
	ScrapingService   interfaces.ScrapingService
	WebsiteScraper    interfaces.WebsiteScraper
	RagBuilder        interfaces.RagBuilder
	GenerationService interfaces.GenerationService
	BrandVoiceService interfaces.BrandVoiceService
	ReportService     interfaces.ReportService

	// HTTP handlers
	APIHandler        *handlers.APIHandler
	StatusHandler     *handlers.StatusHandler
	GenerateHandler   *handlers.GenerateHandler
	SessionHandler    *handlers.SessionHandler
	FeedbackHandler   *handlers.FeedbackHandler
	ContentHandler    *handlers.ContentHandler
	ScrapeHandler     *handlers.ScrapeHandler
	BrandVoiceHandler *handlers.BrandVoiceHandler
	ReportHandler     *handlers.ReportHandler
	ProcessingHandler *handlers.ProcessingHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	if cfg.Processing.Enabled {
		app.BackfillScheduler = embeddings.NewScheduler(app.BackfillService, cfg.Processing.Limit, logger)
		if err := app.BackfillScheduler.Start(cfg.Processing.Schedule); err != nil {
			return nil, fmt.Errorf("failed to start backfill scheduler: %w", err)
		}
	}

	logger.Info().
		Str("brand", cfg.Brand.Name).
		Bool("processing_enabled", cfg.Processing.Enabled).
		Bool("research_enabled", app.ResearchService.IsAvailable()).
		Msg("Application initialization complete")

	return app, nil
}

// initStorage initializes the storage layer (Badger)
func (a *App) initStorage() error {
	manager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}

	a.StorageManager = manager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices wires the service graph. Claude and Gemini are
// required; research and scraping degrade when their keys are absent.
func (a *App) initServices() error {
	llmService, err := llm.NewClaudeService(&a.Config.Claude, a.Logger)
	if err != nil {
		return fmt.Errorf("claude service: %w", err)
	}
	a.LLMService = llmService

	embeddingService, err := embeddings.NewGeminiService(&a.Config.Gemini, a.Logger)
	if err != nil {
		return fmt.Errorf("gemini service: %w", err)
	}
	a.EmbeddingService = embeddingService

	a.ResearchService = research.NewPerplexityService(&a.Config.Research, a.Logger)

	a.BackfillService = embeddings.NewBackfillService(
		a.StorageManager.ContentStorage(),
		a.EmbeddingService,
		a.Logger,
	)

	apifyClient := scraping.NewApifyClient(a.Config.Apify.APIToken,
		scraping.WithApifyBaseURL(a.Config.Apify.BaseURL),
		scraping.WithApifyLogger(a.Logger),
		scraping.WithApifyRateLimit(a.Config.Apify.RateLimit),
		scraping.WithApifyHTTPClient(&http.Client{Timeout: a.Config.Apify.RequestTimeout}),
	)
	a.ScrapingService = scraping.NewScrapingService(
		a.Config,
		apifyClient,
		a.StorageManager.ScrapeJobStorage(),
		a.StorageManager.ContentStorage(),
		a.BackfillService,
		a.Logger,
	)
	a.WebsiteScraper = scraping.NewWebsiteScraper(a.Logger)

	a.RagBuilder = rag.NewContextBuilder(
		a.EmbeddingService,
		a.StorageManager.ContentStorage(),
		a.StorageManager.FeedbackStorage(),
		a.StorageManager.BrandVoiceStorage(),
		a.Config,
		a.Logger,
	)

	a.GenerationService = chat.NewService(
		a.LLMService,
		a.EmbeddingService,
		a.ResearchService,
		a.RagBuilder,
		a.StorageManager.SessionStorage(),
		a.StorageManager.FeedbackStorage(),
		a.Config,
		a.Logger,
	)

	a.BrandVoiceService = brandvoice.NewService(
		a.LLMService,
		a.EmbeddingService,
		a.ScrapingService,
		a.WebsiteScraper,
		a.StorageManager.BrandVoiceStorage(),
		a.Config,
		a.Logger,
	)

	a.ReportService = reports.NewService(
		a.LLMService,
		a.StorageManager.ContentStorage(),
		a.StorageManager.SessionStorage(),
		a.StorageManager.BrandVoiceStorage(),
		a.StorageManager.ReportStorage(),
		a.Config,
		a.Logger,
	)

	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler()
	a.StatusHandler = handlers.NewStatusHandler(a.StorageManager, a.LLMService, a.EmbeddingService, a.ResearchService, a.Logger)
	a.GenerateHandler = handlers.NewGenerateHandler(a.GenerationService, a.Logger)
	a.SessionHandler = handlers.NewSessionHandler(a.GenerationService, a.Logger)
	a.FeedbackHandler = handlers.NewFeedbackHandler(a.GenerationService, a.StorageManager.FeedbackStorage(), a.Logger)
	a.ContentHandler = handlers.NewContentHandler(a.StorageManager.ContentStorage(), a.EmbeddingService, a.Config, a.Logger)
	a.ScrapeHandler = handlers.NewScrapeHandler(a.ScrapingService, a.Logger)
	a.BrandVoiceHandler = handlers.NewBrandVoiceHandler(a.BrandVoiceService, a.Config, a.Logger)
	a.ReportHandler = handlers.NewReportHandler(a.ReportService, a.Logger)
	a.ProcessingHandler = handlers.NewProcessingHandler(a.BackfillService, a.Config, a.Logger)
}

// Close shuts down application components in dependency order
func (a *App) Close() error {
	if a.BackfillScheduler != nil {
		a.BackfillScheduler.Stop()
	}

	if a.LLMService != nil {
		a.LLMService.Close()
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
			return err
		}
	}

	a.Logger.Info().Msg("Application shutdown complete")
	return nil
}
