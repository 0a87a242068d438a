// Package main starts the NoteShare API server: configuration, logging,
// snapshot storage, stores, handlers and the HTTP listener.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/NoteShare/internal/app"
	"github.com/atinyakov/NoteShare/internal/config"
	"github.com/atinyakov/NoteShare/internal/logger"
	"github.com/atinyakov/NoteShare/internal/server/handler/http"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := app.OpenBackend(ctx, options, zapLogger)
	if err != nil {
		zapLogger.Error("cannot open storage", zap.String("storage", options.Storage), zap.Error(err))
		return
	}
	defer func() {
		if err := backend.Close(); err != nil {
			zapLogger.Error("failed to close storage", zap.Error(err))
		}
	}()

	stores, err := app.NewStores(ctx, backend.Repo, zapLogger)
	if err != nil {
		zapLogger.Error("cannot restore stores", zap.Error(err))
		return
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(
		http.NewAuthHandler(stores.Auth),
		http.NewNotesHandler(stores.Notes, stores.Comments),
		stores.Auth,
		options.Latency,
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("starting HTTP server",
			zap.String("addr", options.Port),
			zap.String("storage", options.Storage),
			zap.Duration("latency", options.Latency),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Error("HTTP server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
