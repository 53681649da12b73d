package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/ivywealth/ivy-portal/internal/cache"
	"github.com/ivywealth/ivy-portal/internal/client"
	"github.com/ivywealth/ivy-portal/internal/common"
	"github.com/ivywealth/ivy-portal/internal/config"
	"github.com/ivywealth/ivy-portal/internal/handlers"
	"github.com/ivywealth/ivy-portal/internal/mcp"
	"github.com/ivywealth/ivy-portal/internal/roster"
	badgerstore "github.com/ivywealth/ivy-portal/internal/storage/badger"
	"github.com/ivywealth/ivy-portal/internal/view"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Log    *common.Logger

	// Core components
	Engine   *client.EngineClient
	Roster   *roster.Store
	Cache    *cache.ResponseCache
	DB       *badgerstore.BadgerDB
	Reports  *badgerstore.ReportStore
	Creds    *badgerstore.CredentialStore
	Sessions *view.Sessions

	// HTTP handlers
	HealthHandler       *handlers.HealthHandler
	EngineHealthHandler *handlers.EngineHealthHandler
	VersionHandler      *handlers.VersionHandler
	ClientsHandler      *handlers.ClientsHandler
	ReportHandler       *handlers.ReportHandler
	ExportHandler       *handlers.ExportHandler
	ViewHandler         *handlers.ViewHandler
	SettingsHandler     *handlers.SettingsHandler
	MCPHandler          *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
		Log:    common.NewLogger(cfg.Logging.Level),
	}

	db, err := badgerstore.NewBadgerDB(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, err
	}
	a.DB = db

	a.Engine = client.NewEngineClient(cfg.Engine.URL)
	a.Roster = roster.New(a.Engine.ListClients)
	a.Cache = cache.New(time.Duration(cfg.Cache.TTLSeconds)*time.Second, cfg.Cache.MaxEntries)
	a.Reports = badgerstore.NewReportStore(db, a.Log)
	a.Creds = badgerstore.NewCredentialStore(db, a.Log)
	a.Sessions = view.NewSessions()

	a.initHandlers()

	// Initial roster fetch is best-effort: a down engine surfaces as the
	// one-shot banner, not a startup failure.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Roster.Refresh(ctx); err != nil {
		a.Log.Warn().Str("error", err.Error()).Msg("initial roster fetch failed, starting with empty list")
	}

	logger.Info("application initialization complete",
		"engine_url", cfg.Engine.URL,
		"clients", len(a.Roster.Clients()),
	)

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler(a.Log)
	a.EngineHealthHandler = handlers.NewEngineHealthHandler(a.Log, a.Engine, a.Cache)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.ClientsHandler = handlers.NewClientsHandler(a.Log, a.Roster, a.Cache)
	a.ReportHandler = handlers.NewReportHandler(a.Log, a.Engine, a.Roster, a.Reports)
	a.ExportHandler = handlers.NewExportHandler(a.Log, a.Reports)
	a.ViewHandler = handlers.NewViewHandler(a.Log, a.Sessions)
	a.SettingsHandler = handlers.NewSettingsHandler(a.Log, a.Creds)
	a.MCPHandler = mcp.NewHandler(a.Log, a.Engine, a.Roster)

	a.Log.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
