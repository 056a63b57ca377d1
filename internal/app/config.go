package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// DatabaseURL is a pgx connection string for the node/edge store.
	DatabaseURL string

	// ListenAddr is the address the HTTP API listens on, e.g. ":8080".
	ListenAddr string

	// HealthcheckPort is the port for the standalone healthcheck server.
	// Zero disables it.
	HealthcheckPort int

	LogFormat string
	LogLevel  string

	// LiveSyncURL is the Socket.IO collector to forward preview updates
	// to. Empty disables live-sync; preview calls still succeed.
	LiveSyncURL            string
	LiveSyncNamespace      string
	LiveSyncInsecureSkipTLS bool
}

// NewConfig validates cfg and returns a copy ready for use by NewApp.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DatabaseURL is a required configuration field and cannot be empty")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LiveSyncNamespace == "" {
		cfg.LiveSyncNamespace = "/"
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("LogLevel %q is not one of debug, info, warn, error", cfg.LogLevel)
	}
	return &cfg, nil
}
