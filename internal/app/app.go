// Package app opens the configured snapshot backend and builds the three stores on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/atinyakov/NoteShare/internal/config"
	"github.com/atinyakov/NoteShare/internal/db"
	"github.com/atinyakov/NoteShare/internal/repository"
	"github.com/atinyakov/NoteShare/internal/service"
	"go.uber.org/zap"
)

const (
	gcInterval     = 10 * time.Minute
	gcDiscardRatio = 0.5
)

// Backend is an opened snapshot repository and the resources behind it.
type Backend struct {
	Repo    service.SnapshotRepository
	closers []func() error
}

// Close releases the backend's resources in reverse opening order.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	b.closers = nil
	return errors.Join(errs...)
}

// OpenBackend opens the snapshot repository selected by opts.Storage.
func OpenBackend(ctx context.Context, opts *config.Options, log *zap.Logger) (*Backend, error) {
	switch opts.Storage {
	case config.StorageMemory:
		return &Backend{Repo: repository.NewMemorySnapshotRepository()}, nil

	case config.StorageFile:
		repo, err := repository.NewFileSnapshotRepository(opts.DataDir)
		if err != nil {
			return nil, err
		}
		return &Backend{Repo: repo}, nil

	case config.StorageBadger:
		bdb, err := db.OpenBadger(db.BadgerConfig{
			Path:       filepath.Join(opts.DataDir, "badger"),
			SyncWrites: true,
			Logger:     log.Named("badger"),
		})
		if err != nil {
			return nil, err
		}
		gcCtx, cancel := context.WithCancel(ctx)
		db.StartValueLogGC(gcCtx, bdb, gcInterval, gcDiscardRatio, log)
		return &Backend{
			Repo: repository.NewBadgerSnapshotRepository(bdb),
			closers: []func() error{
				bdb.Close,
				func() error { cancel(); return nil },
			},
		}, nil

	case config.StoragePostgres:
		pdb, err := db.InitPostgres(opts.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		repo := repository.NewPostgresSnapshotRepository(pdb)
		keys, err := repo.Keys(ctx, []string{service.AuthKey, service.NotesKey, service.CommentsKey})
		if err != nil {
			_ = pdb.Close()
			return nil, err
		}
		log.Info("postgres snapshots found", zap.Strings("keys", keys))
		return &Backend{Repo: repo, closers: []func() error{pdb.Close}}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", opts.Storage)
}

// Stores groups the three stores of one session.
type Stores struct {
	Auth     *service.AuthStore
	Notes    *service.NotesStore
	Comments *service.CommentsStore
}

// NewStores rehydrates every store from repo.
func NewStores(ctx context.Context, repo service.SnapshotRepository, log *zap.Logger) (*Stores, error) {
	auth, err := service.NewAuthStore(ctx, repo, log.Named("auth"))
	if err != nil {
		return nil, fmt.Errorf("auth store: %w", err)
	}
	notes, err := service.NewNotesStore(ctx, repo, log.Named("notes"))
	if err != nil {
		return nil, fmt.Errorf("notes store: %w", err)
	}
	comments, err := service.NewCommentsStore(ctx, repo, log.Named("comments"))
	if err != nil {
		return nil, fmt.Errorf("comments store: %w", err)
	}
	return &Stores{Auth: auth, Notes: notes, Comments: comments}, nil
}
