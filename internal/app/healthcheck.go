package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// httpServer is the standalone healthcheck listener, kept separate from
// the Fiber API server so orchestrators can probe liveness without
// exercising the graph store or evaluator.
type httpServer struct {
	srv *http.Server
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("health check endpoint hit", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// startHealthcheckServer launches the healthcheck server in a goroutine.
// A non-positive port disables it entirely.
func (a *App) startHealthcheckServer() {
	if a.config.HealthcheckPort <= 0 {
		a.logger.Debug("health check server disabled")
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)

	a.httpServer = &httpServer{srv: &http.Server{Addr: addr, Handler: mux}}

	go func() {
		a.logger.Info("health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := a.httpServer.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("health check server failed unexpectedly", "error", err)
		}
	}()
}

func (a *App) closeHealthcheckServer(ctx context.Context) error {
	if a.httpServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	a.logger.Info("shutting down health check server")
	if err := a.httpServer.srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("health check server shutdown failed", "error", err)
		return err
	}
	return nil
}
