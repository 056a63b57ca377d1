package app

import (
	"context"
	"fmt"

	"github.com/vk/flowgraph/internal/ctxlog"
)

// Run starts the healthcheck server (if enabled) and blocks serving the
// HTTP API on cfg.ListenAddr until the context is cancelled or the server
// errors out.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("app.Run starting")

	a.startHealthcheckServer()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http api starting", "address", a.config.ListenAddr)
		errCh <- a.fiber.Listen(a.config.ListenAddr)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown requested")
		return a.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("app: http api: %w", err)
		}
		return nil
	}
}

// Shutdown tears down the HTTP server, healthcheck server, live-sync
// connection, and database pool, in that order.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error

	if err := a.fiber.ShutdownWithContext(ctx); err != nil {
		firstErr = fmt.Errorf("app: shutdown http api: %w", err)
	}
	if err := a.closeHealthcheckServer(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if a.live != nil {
		a.live.Close()
	}
	a.pool.Close()

	return firstErr
}
