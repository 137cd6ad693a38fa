package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/postboard-backend/internal/data/db"
	apphttp "github.com/yungbote/postboard-backend/internal/http"
	httpH "github.com/yungbote/postboard-backend/internal/http/handlers"
	"github.com/yungbote/postboard-backend/internal/observability"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
	Metrics  *observability.Metrics
	Server   *apphttp.Server

	dbService    *db.Service
	otelShutdown func(context.Context) error
	closed       bool
}

// OpenDB connects using the configured driver.
func OpenDB(log *logger.Logger, cfg Config) (*db.Service, error) {
	return db.NewService(db.Config{
		Driver:       cfg.DB.Driver,
		DSN:          cfg.DB.PostgresDSN(),
		SQLitePath:   cfg.DB.SQLitePath,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
	}, log)
}

// New wires every component. migrate runs AutoMigrate before serving.
func New(ctx context.Context, log *logger.Logger, cfg Config, migrate bool) (*App, error) {
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OTel.Enabled,
		ServiceName: cfg.OTel.ServiceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTel.Endpoint,
		Headers:     observability.ParseHeaders(cfg.OTel.Headers),
		Insecure:    cfg.OTel.Insecure,
		SampleRatio: cfg.OTel.SampleRatio,
	})

	dbService, err := OpenDB(log, cfg)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, fmt.Errorf("init database: %w", err)
	}
	theDB := dbService.DB()
	if migrate {
		if err := db.AutoMigrateAll(theDB); err != nil {
			_ = dbService.Close()
			_ = otelShutdown(ctx)
			return nil, fmt.Errorf("automigrate: %w", err)
		}
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = dbService.Close()
		_ = otelShutdown(ctx)
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet, clients, metrics)
	if err != nil {
		clients.Close()
		_ = dbService.Close()
		_ = otelShutdown(ctx)
		return nil, err
	}

	health := map[string]httpH.Pinger{"database": dbService}
	if cfg.Redis.Addr != "" {
		health["cache"] = clients.Cache
	}
	handlerset := wireHandlers(log, serviceset, health)
	middleware := wireMiddleware(log, serviceset)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clients,
		Metrics:      metrics,
		Server:       wireServer(log, cfg, metrics, handlerset, middleware),
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("server listening", "addr", a.Cfg.HTTPAddr)
		errCh <- a.Server.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) Close() {
	if a == nil || a.closed {
		return
	}
	a.closed = true
	a.Clients.Close()
	if a.dbService != nil {
		_ = a.dbService.Close()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.otelShutdown(ctx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
