// Package main runs the NoteShare shell: a single-user session that keeps
// its stores in a local file or Badger backend.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"

	"github.com/atinyakov/NoteShare/internal/app"
	"github.com/atinyakov/NoteShare/internal/client/shell"
	"github.com/atinyakov/NoteShare/internal/config"
	"github.com/atinyakov/NoteShare/internal/logger"
	"go.uber.org/zap"
)

var (
	version   string
	buildDate string
)

func main() {
	options := config.Parse()

	fmt.Printf("NoteShare %s (%s)\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), options, log.Log); err != nil {
		fmt.Fprintf(os.Stderr, "noteshare: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, options *config.Options, log *zap.Logger) error {
	if options.Storage == config.StoragePostgres {
		log.Info("the shell keeps its session locally, using file storage instead of postgres")
		options.Storage = config.StorageFile
	}

	backend, err := app.OpenBackend(ctx, options, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("failed to close storage", zap.Error(err))
		}
	}()

	stores, err := app.NewStores(ctx, backend.Repo, log)
	if err != nil {
		return err
	}

	fmt.Println(`Escribe "help" para ver los comandos.`)
	return shell.New(stores, os.Stdin, os.Stdout, log).Run(ctx)
}
