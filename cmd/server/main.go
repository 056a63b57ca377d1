// Command server runs the flowgraph HTTP API: schema management, node
// CRUD, execute, and preview, backed by PostgreSQL.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/vk/flowgraph/internal/app"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(context.Background(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the entrypoint logic for easier testing and error
// handling, the way the corpus separates main() from a testable run().
func run(ctx context.Context, outW io.Writer) error {
	cfg, err := app.NewConfig(configFromEnv())
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.NewApp(ctx, outW, cfg)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	return a.Run(ctx)
}

func configFromEnv() app.Config {
	return app.Config{
		DatabaseURL:             getenv("FLOWGRAPH_DATABASE_URL", ""),
		ListenAddr:              getenv("FLOWGRAPH_LISTEN_ADDR", ":8080"),
		HealthcheckPort:         getenvInt("FLOWGRAPH_HEALTHCHECK_PORT", 0),
		LogFormat:               getenv("FLOWGRAPH_LOG_FORMAT", "text"),
		LogLevel:                getenv("FLOWGRAPH_LOG_LEVEL", "info"),
		LiveSyncURL:             getenv("FLOWGRAPH_LIVESYNC_URL", ""),
		LiveSyncNamespace:       getenv("FLOWGRAPH_LIVESYNC_NAMESPACE", "/"),
		LiveSyncInsecureSkipTLS: getenvInt("FLOWGRAPH_LIVESYNC_INSECURE_SKIP_TLS", 0) != 0,
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
