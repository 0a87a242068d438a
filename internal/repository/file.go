package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FileSnapshotRepository stores every key as <dir>/<key>.json.
type FileSnapshotRepository struct {
	// Dir is the directory holding the snapshot files.
	Dir string
	mu  sync.Mutex
}

// NewFileSnapshotRepository creates dir if needed and returns a repository rooted at it.
func NewFileSnapshotRepository(dir string) (*FileSnapshotRepository, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileSnapshotRepository{Dir: dir}, nil
}

func (r *FileSnapshotRepository) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid snapshot key %q", key)
	}
	return filepath.Join(r.Dir, key+".json"), nil
}

// Load reads the snapshot file for key.
func (r *FileSnapshotRepository) Load(_ context.Context, key string) ([]byte, error) {
	p, err := r.path(key)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return data, nil
}

// Save replaces the snapshot file for key. The file is written to a temporary
// name first and renamed, so a crash never leaves a truncated snapshot behind.
func (r *FileSnapshotRepository) Save(_ context.Context, key string, data []byte) error {
	p, err := r.path(key)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.CreateTemp(r.Dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename snapshot %s: %w", key, err)
	}
	return nil
}
