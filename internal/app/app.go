package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-companion/external/gemini"
	"github.com/riskibarqy/draft-companion/internal/config"
	"github.com/riskibarqy/draft-companion/internal/domain/explanation"
	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/infrastructure/catalog"
	"github.com/riskibarqy/draft-companion/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-companion/internal/interfaces/httpapi"
	"github.com/riskibarqy/draft-companion/internal/interfaces/stream"
	"github.com/riskibarqy/draft-companion/internal/observability"
	"github.com/riskibarqy/draft-companion/internal/platform/cache"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
	"github.com/riskibarqy/draft-companion/internal/platform/resilience"
	"github.com/riskibarqy/draft-companion/internal/usecase"
)

// demoCatalogTeams sizes the in-memory player pool for the largest league.
const demoCatalogTeams = 20

// App owns the HTTP server and everything that must be released with it.
type App struct {
	Server *http.Server

	drafts *usecase.DraftService
	hub    *stream.Hub
	db     *sqlx.DB
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var db *sqlx.DB
	if cfg.SettingsStore == config.SettingsStorePostgres {
		opened, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		db = opened
	}

	settingsRepo, err := newSettingsRepository(cfg, db)
	if err != nil {
		closeDB(db, logger)
		return nil, err
	}
	exportRepo := newRosterExportRepository(db)

	loader, err := newCatalogLoader(cfg, logger)
	if err != nil {
		closeDB(db, logger)
		return nil, err
	}

	recorder := observability.NewRecorder()
	hub := stream.NewHub(cfg.CORSAllowedOrigins, logger.Named("stream"))

	settingsSvc := usecase.NewSettingsService(settingsRepo, logger, nil)
	playerSvc := usecase.NewPlayerService(loader, cache.NewStore[*player.Catalog](cfg.CatalogCacheTTL), logger)
	explainSvc := usecase.NewExplainService(newExplanationGenerator(cfg, logger), cache.NewStore[string](cfg.ExplanationCacheTTL), logger)

	draftSvc, err := usecase.NewDraftService(usecase.DraftServiceDeps{
		Settings:  settingsRepo,
		Drafts:    memory.NewDraftRepositoryWithTTL(cfg.DraftSessionTTL, nil),
		Exports:   exportRepo,
		Catalog:   playerSvc,
		Explainer: explainSvc,
		Events:    hub,
		Metrics:   recorder,
		Logger:    logger,
	}, usecase.DraftServiceConfig{
		AutoPickDelay:  cfg.DraftAutoPickDelay,
		ExplainWorkers: cfg.DraftExplainWorkers,
	})
	if err != nil {
		hub.Close()
		closeDB(db, logger)
		return nil, err
	}
	playerSvc.SetDraftedSource(draftSvc)

	opts := httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.MetricsEnabled {
		opts.Metrics = recorder.Handler()
		opts.Recorder = recorder
	}

	handler := httpapi.NewHandler(settingsSvc, playerSvc, draftSvc, explainSvc, hub, logger)
	router := httpapi.NewRouter(handler, logger, opts)

	logger.Info("app wired",
		"settings_store", cfg.SettingsStore,
		"catalog_source", cfg.CatalogSource,
		"explanations", cfg.GeminiConfigured(),
		"metrics", cfg.MetricsEnabled,
	)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		drafts: draftSvc,
		hub:    hub,
		db:     db,
		logger: logger,
	}, nil
}

// Shutdown drains the HTTP server, then stops draft timers, closes event
// streams and releases the database.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Server.Shutdown(ctx)
	a.drafts.Close()
	a.hub.Close()
	if a.db != nil {
		err = errors.Join(err, a.db.Close())
	}
	return err
}

func newCatalogLoader(cfg config.Config, logger *logging.Logger) (player.Loader, error) {
	if cfg.CatalogSource == config.CatalogSourceMemory {
		return memory.NewPlayerLoader(memory.SeedPlayers(demoCatalogTeams)), nil
	}
	loader, err := catalog.NewLoader(cfg.CatalogSource, cfg.CatalogTimeout, logger.Named("catalog"))
	if err != nil {
		return nil, fmt.Errorf("build catalog loader: %w", err)
	}
	return loader, nil
}

// newExplanationGenerator returns nil without an API key, which leaves the
// explanation feature unconfigured.
func newExplanationGenerator(cfg config.Config, logger *logging.Logger) explanation.Generator {
	if !cfg.GeminiConfigured() {
		return nil
	}
	return gemini.NewClient(gemini.ClientConfig{
		BaseURL:     cfg.GeminiBaseURL,
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		Timeout:     cfg.GeminiTimeout,
		MinInterval: cfg.GeminiMinInterval,
		Burst:       cfg.GeminiBurst,
		Logger:      logger.Named("gemini"),
		CircuitBreaker: resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
			Enabled:          cfg.GeminiCircuitEnabled,
			FailureThreshold: cfg.GeminiCircuitFailureCount,
			OpenTimeout:      cfg.GeminiCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GeminiCircuitHalfOpenMax,
		}),
	})
}
