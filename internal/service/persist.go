package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atinyakov/NoteShare/internal/metrics"
	"github.com/atinyakov/NoteShare/internal/repository"
	"go.uber.org/zap"
)

// Snapshot keys under which each store persists its state.
const (
	AuthKey     = "auth-data"
	NotesKey    = "notes-data"
	CommentsKey = "comments-data"
)

// snapshotVersion is written into every envelope; snapshots with another version are rejected.
const snapshotVersion = 0

// SnapshotRepository defines the durable key-value operations the stores need.
type SnapshotRepository interface {
	// Load returns the bytes stored under key, or repository.ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the bytes stored under key.
	Save(ctx context.Context, key string, data []byte) error
}

type envelope[T any] struct {
	State   T   `json:"state"`
	Version int `json:"version"`
}

// loadSnapshot decodes the snapshot under key into dst.
// It reports false without error when nothing has been stored yet.
func loadSnapshot[T any](ctx context.Context, repo SnapshotRepository, key string, dst *T) (bool, error) {
	data, err := repo.Load(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}

	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	if env.Version != snapshotVersion {
		return false, fmt.Errorf("decode %s: unsupported snapshot version %d", key, env.Version)
	}
	*dst = env.State
	return true, nil
}

// saveSnapshot writes state under key. Failures are logged and otherwise dropped:
// the in-memory state stays authoritative and the next mutation writes the full state again.
func saveSnapshot[T any](ctx context.Context, repo SnapshotRepository, log *zap.Logger, key string, state T) {
	data, err := json.Marshal(envelope[T]{State: state, Version: snapshotVersion})
	if err != nil {
		log.Error("failed to encode snapshot", zap.String("key", key), zap.Error(err))
		return
	}
	if err := repo.Save(ctx, key, data); err != nil {
		log.Error("failed to persist snapshot", zap.String("key", key), zap.Error(err))
		return
	}
	metrics.SnapshotWrites.WithLabelValues(key).Inc()
}
