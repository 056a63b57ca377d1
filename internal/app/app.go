package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vk/flowgraph/internal/ctxlog"
	"github.com/vk/flowgraph/internal/executor"
	"github.com/vk/flowgraph/internal/httpapi"
	"github.com/vk/flowgraph/internal/livesync"
	"github.com/vk/flowgraph/internal/registry"
	"github.com/vk/flowgraph/internal/stdlib"
	"github.com/vk/flowgraph/internal/store/postgres"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: a Postgres-backed graph store, the standard-library function
// registry, the recursive evaluator, the live-sync publisher, and the
// Fiber server exposing all of it over HTTP.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	pool *pgxpool.Pool
	store *postgres.Store
	reg   *registry.Registry
	exec  *executor.Executor
	live  *livesync.Publisher

	fiber      *fiber.App
	httpServer *httpServer
}

// NewApp connects to the database, builds the registry and evaluator, and
// wires the HTTP API, returning a fully initialized App. The live-sync
// connection is attempted but its failure is logged, not fatal: preview
// still works locally, it just doesn't fan out to collectors.
func NewApp(ctx context.Context, outW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("logger configured")

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("app: connect to database: %w", err)
	}
	store := postgres.New(pool)
	logger.Debug("database pool established")

	reg := registry.New()
	stdlib.RegisterAll(reg)
	logger.Debug("standard-library functions registered")

	exec := executor.New(store, reg)

	var live *livesync.Publisher
	if cfg.LiveSyncURL != "" {
		live, err = livesync.Dial(ctx, cfg.LiveSyncURL, cfg.LiveSyncNamespace, cfg.LiveSyncInsecureSkipTLS)
		if err != nil {
			logger.Warn("live-sync collector unreachable, preview fan-out disabled", "error", err)
			live = nil
		} else {
			logger.Debug("connected to live-sync collector", "url", cfg.LiveSyncURL)
		}
	}

	fiberApp := fiber.New()
	httpapi.New(store, reg, exec, live).Mount(fiberApp)

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		pool:   pool,
		store:  store,
		reg:    reg,
		exec:   exec,
		live:   live,
		fiber:  fiberApp,
	}, nil
}

// Registry returns the application's function registry. Primarily for
// testing.
func (a *App) Registry() *registry.Registry {
	return a.reg
}
