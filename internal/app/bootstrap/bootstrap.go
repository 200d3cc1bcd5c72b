package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	admindashboardservice "pledgewall/contexts/donation-pledges/admin-dashboard-service"
	auditservice "pledgewall/contexts/donation-pledges/audit-service"
	leaderboardservice "pledgewall/contexts/donation-pledges/leaderboard-service"
	pledgeservice "pledgewall/contexts/donation-pledges/pledge-service"
	"pledgewall/internal/platform/config"
	"pledgewall/internal/platform/db"
	"pledgewall/internal/platform/httpserver"
	"pledgewall/internal/platform/kv"
	kvmemory "pledgewall/internal/platform/kv/memory"
	kvpostgres "pledgewall/internal/platform/kv/postgres"
)

// App owns the wired modules and the resources behind them.
type App struct {
	Server   *httpserver.Server
	Logger   *slog.Logger
	postgres *db.Postgres
}

// Build loads config and wires every module against a shared kv store.
// With POSTGRES_DSN set the store is backed by postgres; without it the
// process runs on the in-memory store, which is enough for local work.
func Build(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		"service", cfg.ServiceName,
	)
	slog.SetDefault(logger)

	app := &App{Logger: logger}

	var store kv.Store
	if cfg.PostgresDSN != "" {
		postgres, err := db.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		app.postgres = postgres

		pgStore := kvpostgres.NewStore(postgres.DB, logger)
		if err := pgStore.Migrate(ctx); err != nil {
			_ = postgres.Close()
			return nil, fmt.Errorf("migrate kv store: %w", err)
		}
		store = pgStore
	} else {
		logger.Warn("no postgres dsn configured, using in-memory store",
			"event", "kv_store_in_memory",
			"module", "internal/app/bootstrap",
			"layer", "app",
		)
		store = kvmemory.NewStore()
	}

	audit := auditservice.NewKVModule(store, logger)
	pledges := pledgeservice.NewKVModule(store, audit.Service, logger)
	leaderboard := leaderboardservice.NewModule(leaderboardservice.Dependencies{
		Pledges:  pledges.Repo,
		Limit:    cfg.LeaderboardLimit,
		Interval: cfg.LeaderboardRefresh,
		Logger:   logger,
	})
	dashboard := admindashboardservice.NewModule(admindashboardservice.Dependencies{
		Pledges:    pledges.Repo,
		Audit:      audit.Service,
		AuditLimit: cfg.AuditLogLimit,
		Logger:     logger,
	})

	app.Server = httpserver.New(
		pledges,
		audit,
		leaderboard,
		dashboard,
		cfg.AdminKey,
		logger,
		":"+cfg.HTTPPort,
	)
	return app, nil
}

func (a *App) Run() error {
	return a.Server.Start()
}

func (a *App) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}
