package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/atinyakov/NoteShare/internal/metrics"
	"github.com/atinyakov/NoteShare/internal/models"
	"github.com/atinyakov/NoteShare/internal/state"
	"go.uber.org/zap"
)

// NotesStore owns the category catalog and the favorite set.
type NotesStore struct {
	mu    sync.RWMutex
	state state.NotesState
	repo  SnapshotRepository
	log   *zap.Logger
}

// NewNotesStore rehydrates the catalog from repo, or starts from the default catalog.
func NewNotesStore(ctx context.Context, repo SnapshotRepository, log *zap.Logger) (*NotesStore, error) {
	s := &NotesStore{repo: repo, log: log, state: state.DefaultNotes()}

	var restored state.NotesState
	found, err := loadSnapshot(ctx, repo, NotesKey, &restored)
	if err != nil {
		return nil, err
	}
	if found {
		s.state = restored
	}
	log.Info("notes store ready",
		zap.Bool("restored", found),
		zap.Int("categories", s.state.Catalog.Len()),
		zap.Int("favorites", len(s.state.FavoriteIDs)),
	)
	return s, nil
}

// ListCategories returns the categories in catalog order with their note counts.
func (s *NotesStore) ListCategories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Categories()
}

// ListNotesByCategory returns the notes of a category, or an empty list.
func (s *NotesStore) ListNotesByCategory(name string) []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.NotesByCategory(name)
}

// GetNoteByID looks a note up across all categories.
func (s *NotesStore) GetNoteByID(id int) (models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.NoteByID(id)
}

// ListFavorites returns the favorite notes in catalog order.
func (s *NotesStore) ListFavorites() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Favorites()
}

// IsFavorite reports whether id is in the favorite set.
func (s *NotesStore) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsFavorite(id)
}

// SearchByTitle returns notes whose title contains query, ignoring case.
func (s *NotesStore) SearchByTitle(query string) []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SearchByTitle(query)
}

// ToggleFavorite flips membership of id in the favorite set.
// The id is not checked against the catalog.
func (s *NotesStore) ToggleFavorite(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.ToggleFavorite(id)
	s.save(ctx)
}

// AddNote files a new note with rating and downloads at zero.
// Empty fields are accepted; callers validate input.
func (s *NotesStore) AddNote(ctx context.Context, category, title, author, preview string) (models.Note, models.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, note, res := s.state.AddNote(category, title, author, preview)
	metrics.StoreResults.WithLabelValues("add_note", strconv.FormatBool(res.Success)).Inc()
	s.state = next
	s.save(ctx)
	s.log.Info("note added", zap.Int("id", note.ID), zap.String("category", category))
	return note, res
}

func (s *NotesStore) save(ctx context.Context) {
	saveSnapshot(ctx, s.repo, s.log, NotesKey, s.state)
}
