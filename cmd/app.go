package cmd

import (
	"context"
	"fmt"

	"elternaccounts/core/config"
	"elternaccounts/core/database"
	"elternaccounts/core/forms"
	"elternaccounts/core/logger"
	"elternaccounts/core/metrics"
	"elternaccounts/core/reconcile"
	"elternaccounts/core/storage"
	"elternaccounts/core/username"
	"elternaccounts/feature/accounts"
	"elternaccounts/feature/ledger"
	"elternaccounts/feature/sheet"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles what every command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &app{cfg: cfg, logger: logg}, nil
}

// newGenerator builds the username generator from the optional mapping file.
func (a *app) newGenerator() (*username.Generator, error) {
	mapping, err := username.LoadMapping(a.cfg.Accounts.MappingFile)
	if err != nil {
		return nil, err
	}
	return username.NewGenerator(mapping), nil
}

// newEngine builds a reconciliation engine; rec may be nil.
func (a *app) newEngine(gen *username.Generator, rec reconcile.Recorder) *reconcile.Engine {
	return reconcile.NewEngine(reconcile.EngineConfig{
		Policy:   a.cfg.Match.Policy(),
		Workers:  a.cfg.Match.Workers,
		Recorder: rec,
	}, gen, a.logger)
}

// openLedger connects to the configured database. It returns nil when the ledger is
// disabled or unreachable; reconciliation runs without it.
func (a *app) openLedger(ctx context.Context) (*ledger.Store, *gorm.DB) {
	if !a.cfg.Database.Enabled() {
		return nil, nil
	}
	db, err := database.Connect(a.cfg.Database)
	if err != nil {
		a.logger.Warn("Optional database connection failed", zap.Error(err))
		return nil, nil
	}
	store := ledger.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		a.logger.Warn("Ledger migration failed", zap.Error(err))
		return nil, db
	}
	return store, db
}

// newSheets returns the sheet service, or nil when no forms connection is configured.
func (a *app) newSheets(client storage.Client) *sheet.Service {
	if !a.cfg.Forms.Enabled() {
		return nil
	}
	return sheet.NewService(client, a.cfg.Storage.Bucket, forms.NewClient(a.cfg.Forms, nil), a.logger)
}

// accountsDeps wires the storage-backed reconciliation.
func (a *app) accountsDeps(ctx context.Context, reg prometheus.Registerer) (accounts.Deps, *gorm.DB, error) {
	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return accounts.Deps{}, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	gen, err := a.newGenerator()
	if err != nil {
		return accounts.Deps{}, nil, err
	}

	var m *metrics.Metrics
	var rec reconcile.Recorder
	if reg != nil {
		m = metrics.New(reg)
		rec = m
	}

	store, db := a.openLedger(ctx)
	return accounts.Deps{
		Client:    client,
		Bucket:    a.cfg.Storage.Bucket,
		Config:    a.cfg.Accounts,
		Engine:    a.newEngine(gen, rec),
		Generator: gen,
		Cache:     reconcile.NewIndexCache(a.cfg.Match.CacheTTL()),
		Sheets:    a.newSheets(client),
		Ledger:    store,
		Metrics:   m,
		Logger:    a.logger,
	}, db, nil
}
