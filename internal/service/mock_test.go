package service

import (
	"context"
	"sync"

	"github.com/atinyakov/NoteShare/internal/repository"
)

// mockRepo records saves and can be primed with snapshots or failures.
type mockRepo struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   map[string]int
	LoadErr error
	SaveErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{data: map[string][]byte{}, saves: map[string]int{}}
}

func (m *mockRepo) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (m *mockRepo) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data[key] = append([]byte(nil), data...)
	m.saves[key]++
	return nil
}

func (m *mockRepo) saveCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[key]
}

func (m *mockRepo) raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data[key])
}
