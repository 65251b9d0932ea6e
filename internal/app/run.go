package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptometric/internal/server"
)

const shutdownTimeout = 5 * time.Second

// RunServe runs the dashboard HTTP server until ctx is done or a
// SIGINT/SIGTERM arrives, then shuts down gracefully.
func RunServe(ctx context.Context, cfg *Config, srv *server.Server, logger *slog.Logger) error {
	httpSrv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv.Handler(),
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("dashboard listening", "addr", httpSrv.Addr, "data_dir", cfg.DataDir)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-signals:
		logger.Info("received signal, graceful shutdown", "sig", sig)
	case <-ctx.Done():
		logger.Info("context done, graceful shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
