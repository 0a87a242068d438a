package repository

import (
	"context"
	"slices"
	"sync"
)

// MemorySnapshotRepository keeps snapshots in a map. Nothing survives the process.
type MemorySnapshotRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemorySnapshotRepository returns an empty repository.
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{data: make(map[string][]byte)}
}

// Load returns a copy of the bytes under key, or ErrNotFound.
func (r *MemorySnapshotRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

// Save stores a copy of data under key.
func (r *MemorySnapshotRepository) Save(_ context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = slices.Clone(data)
	return nil
}
