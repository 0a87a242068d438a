package service

import (
	"context"
	"sync"
	"time"

	"github.com/atinyakov/NoteShare/internal/models"
	"github.com/atinyakov/NoteShare/internal/state"
	"go.uber.org/zap"
)

const commentDateLayout = "2006-01-02"

// CommentsStore owns the per-note comment threads.
type CommentsStore struct {
	mu    sync.RWMutex
	state state.CommentsState
	repo  SnapshotRepository
	log   *zap.Logger
	newID IntIDFunc
	now   Clock
}

// CommentsOption customizes a CommentsStore.
type CommentsOption func(*CommentsStore)

// WithCommentIDGenerator sets the generator for comment ids.
// By default ids continue from the highest stored id.
func WithCommentIDGenerator(f IntIDFunc) CommentsOption {
	return func(s *CommentsStore) { s.newID = f }
}

// WithClock sets the clock used to date new comments.
func WithClock(c Clock) CommentsOption {
	return func(s *CommentsStore) { s.now = c }
}

// NewCommentsStore rehydrates the threads from repo, or starts from the default threads.
func NewCommentsStore(ctx context.Context, repo SnapshotRepository, log *zap.Logger, opts ...CommentsOption) (*CommentsStore, error) {
	s := &CommentsStore{
		repo:  repo,
		log:   log,
		now:   time.Now,
		state: state.DefaultComments(),
	}

	var restored state.CommentsState
	found, err := loadSnapshot(ctx, repo, CommentsKey, &restored)
	if err != nil {
		return nil, err
	}
	if found {
		s.state = restored
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.newID == nil {
		s.newID = Counter(s.state.MaxCommentID() + 1)
	}

	log.Info("comments store ready",
		zap.Bool("restored", found),
		zap.Int("threads", len(s.state.Threads)),
	)
	return s, nil
}

// ListByNoteID returns the thread of a note in insertion order.
func (s *CommentsStore) ListByNoteID(noteID int) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ByNoteID(noteID)
}

// AddComment appends a comment dated today to the note's thread.
// The note id is not checked against the catalog.
func (s *CommentsStore) AddComment(ctx context.Context, noteID int, author, text string) models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := models.Comment{
		ID:     s.newID(),
		Author: author,
		Date:   s.now().UTC().Format(commentDateLayout),
		Text:   text,
	}
	s.state = s.state.Add(noteID, c)
	saveSnapshot(ctx, s.repo, s.log, CommentsKey, s.state)
	return c
}
